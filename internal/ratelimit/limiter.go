// Package ratelimit gatekeeps inbound text: a forbidden-term content filter
// followed by a per-user sliding time window.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// Reason tells why a message was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonContent
	ReasonRate
)

func (r Reason) String() string {
	switch r {
	case ReasonContent:
		return "content"
	case ReasonRate:
		return "rate"
	default:
		return "none"
	}
}

// Decision is the outcome of Check.
type Decision struct {
	Allowed bool
	Reason  Reason
	// Term is the forbidden term that matched, for ReasonContent.
	Term string
}

// Options configures a Limiter.
type Options struct {
	Window         time.Duration
	MaxMessages    int
	ForbiddenTerms []string
}

// Limiter holds one window of accepted-message timestamps per user.
// It is safe for concurrent use.
type Limiter struct {
	window time.Duration
	max    int
	terms  []string

	mu      sync.Mutex
	windows map[int64][]time.Time
}

// New creates a Limiter. Terms are matched case-insensitively.
func New(opts Options) *Limiter {
	terms := make([]string, 0, len(opts.ForbiddenTerms))
	for _, term := range opts.ForbiddenTerms {
		if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
			terms = append(terms, term)
		}
	}
	return &Limiter{
		window:  opts.Window,
		max:     opts.MaxMessages,
		terms:   terms,
		windows: make(map[int64][]time.Time),
	}
}

// Check applies the content filter, then the rate window. Only accepted
// messages are recorded; a rejected message never extends the window.
func (l *Limiter) Check(userID int64, text string, now time.Time) Decision {
	if term, ok := l.forbidden(text); ok {
		return Decision{Reason: ReasonContent, Term: term}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.trim(l.windows[userID], now)
	if len(recent) >= l.max {
		l.windows[userID] = recent
		return Decision{Reason: ReasonRate}
	}
	l.windows[userID] = append(recent, now)
	return Decision{Allowed: true}
}

// Recent returns a copy of the user's window as of now.
func (l *Limiter) Recent(userID int64, now time.Time) []time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.trim(l.windows[userID], now)
	out := make([]time.Time, len(recent))
	copy(out, recent)
	return out
}

// Sweep trims every window and forgets users whose window is empty.
// It returns the number of users forgotten.
func (l *Limiter) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for userID, stamps := range l.windows {
		recent := l.trim(stamps, now)
		if len(recent) == 0 {
			delete(l.windows, userID)
			removed++
			continue
		}
		l.windows[userID] = recent
	}
	return removed
}

func (l *Limiter) forbidden(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, term := range l.terms {
		if strings.Contains(lower, term) {
			return term, true
		}
	}
	return "", false
}

// trim drops timestamps at least one window old. Timestamps are appended in
// arrival order, so the survivors are a suffix.
func (l *Limiter) trim(stamps []time.Time, now time.Time) []time.Time {
	i := 0
	for i < len(stamps) && now.Sub(stamps[i]) >= l.window {
		i++
	}
	return stamps[i:]
}
