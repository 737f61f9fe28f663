package database

import (
	"context"
	"fmt"
)

// unavailableStore stands in for a database that failed to open. Every call
// fails with ErrUnavailable wrapping the original cause.
type unavailableStore struct {
	cause error
}

// NewUnavailableStore returns a Store whose methods all fail with
// ErrUnavailable. It lets the bot keep answering users while the database
// is down.
func NewUnavailableStore(cause error) Store {
	return &unavailableStore{cause: cause}
}

func (s *unavailableStore) err() error {
	if s.cause == nil {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, s.cause)
}

func (s *unavailableStore) Ping(context.Context) error { return s.err() }

func (s *unavailableStore) GetUser(context.Context, int64) (*User, error) { return nil, s.err() }

func (s *unavailableStore) SaveUser(context.Context, *User) error { return s.err() }

func (s *unavailableStore) IncrementSubmissions(context.Context, int64) error { return s.err() }

func (s *unavailableStore) SetNotifications(context.Context, int64, NotificationState) error {
	return s.err()
}

func (s *unavailableStore) ListRecipients(context.Context) ([]User, error) { return nil, s.err() }

func (s *unavailableStore) AppendOffer(context.Context, *JobOffer) error { return s.err() }

func (s *unavailableStore) ListOffers(context.Context) ([]JobOffer, error) { return nil, s.err() }

func (s *unavailableStore) DeleteOffers(context.Context, []int64) (int64, error) { return 0, s.err() }

func (s *unavailableStore) AppendCandidate(context.Context, *Candidate) error { return s.err() }

func (s *unavailableStore) ListCandidates(context.Context) ([]Candidate, error) { return nil, s.err() }

func (s *unavailableStore) DeleteCandidates(context.Context, []int64) (int64, error) { return 0, s.err() }

func (s *unavailableStore) Stats(context.Context) (Stats, error) { return Stats{}, s.err() }

func (s *unavailableStore) RunSQLMaintenance(context.Context) error { return s.err() }
