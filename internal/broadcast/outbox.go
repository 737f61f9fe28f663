// Package broadcast stages admin announcements behind opaque handles and
// delivers them to every subscribed user.
package broadcast

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Callback token prefixes carried by the confirmation buttons.
const (
	ConfirmPrefix = "broadcast-confirm:"
	CancelPrefix  = "broadcast-cancel:"
)

var (
	// ErrNotFound means the handle is unknown or was already used.
	ErrNotFound = errors.New("broadcast not found")
	// ErrExpired means the handle outlived its time to live.
	ErrExpired = errors.New("broadcast expired")
	// ErrNotAuthor means someone other than the author tried to use the handle.
	ErrNotAuthor = errors.New("broadcast belongs to another user")
)

// Pending is a staged broadcast awaiting confirmation.
type Pending struct {
	ID       string
	AuthorID int64
	Text     string
	StagedAt time.Time
}

// Outbox holds pending broadcasts in memory.
type Outbox struct {
	ttl time.Duration

	mu      sync.Mutex
	pending map[string]Pending
}

// NewOutbox creates an outbox whose handles expire after ttl.
func NewOutbox(ttl time.Duration) *Outbox {
	return &Outbox{
		ttl:     ttl,
		pending: make(map[string]Pending),
	}
}

// Stage stores text and returns the handle the buttons refer to.
func (o *Outbox) Stage(authorID int64, text string, now time.Time) Pending {
	p := Pending{
		ID:       uuid.NewString(),
		AuthorID: authorID,
		Text:     text,
		StagedAt: now,
	}

	o.mu.Lock()
	o.pending[p.ID] = p
	o.mu.Unlock()

	return p
}

// Take removes and returns the broadcast if userID is its author and it has
// not expired. An expired broadcast is removed as well.
func (o *Outbox) Take(id string, userID int64, now time.Time) (Pending, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	p, ok := o.pending[id]
	if !ok {
		return Pending{}, ErrNotFound
	}
	if p.AuthorID != userID {
		return Pending{}, ErrNotAuthor
	}
	delete(o.pending, id)

	if o.expired(p, now) {
		return Pending{}, ErrExpired
	}
	return p, nil
}

// Discard drops the broadcast without sending it. Only the author may do so.
func (o *Outbox) Discard(id string, userID int64) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	p, ok := o.pending[id]
	if !ok {
		return ErrNotFound
	}
	if p.AuthorID != userID {
		return ErrNotAuthor
	}
	delete(o.pending, id)
	return nil
}

// Expire drops every broadcast older than the time to live and returns how
// many were dropped.
func (o *Outbox) Expire(now time.Time) int {
	o.mu.Lock()
	defer o.mu.Unlock()

	n := 0
	for id, p := range o.pending {
		if o.expired(p, now) {
			delete(o.pending, id)
			n++
		}
	}
	return n
}

// Len returns the number of pending broadcasts.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending)
}

func (o *Outbox) expired(p Pending, now time.Time) bool {
	return o.ttl > 0 && now.Sub(p.StagedAt) >= o.ttl
}

// ConfirmToken returns the callback data of the confirm button.
func ConfirmToken(id string) string { return ConfirmPrefix + id }

// CancelToken returns the callback data of the cancel button.
func CancelToken(id string) string { return CancelPrefix + id }

// ParseToken splits callback data into its action prefix and handle.
func ParseToken(data string) (prefix, id string, ok bool) {
	for _, p := range []string{ConfirmPrefix, CancelPrefix} {
		if rest, found := strings.CutPrefix(data, p); found && rest != "" {
			return p, rest, true
		}
	}
	return "", "", false
}
