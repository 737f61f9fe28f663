package board

import "errors"

var (
	// ErrStoreUnavailable means the records could not be read. Users are told
	// the data cannot be accessed right now.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrWriteFailure means a submission could not be stored.
	ErrWriteFailure = errors.New("write failure")

	// ErrUnknownUser is returned for operations on users that never
	// registered.
	ErrUnknownUser = errors.New("unknown user")
)
