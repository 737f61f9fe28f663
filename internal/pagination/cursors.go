package pagination

import "sync"

// Kind names an independently paginated listing.
type Kind string

const (
	KindOffers     Kind = "offers"
	KindCandidates Kind = "candidates"
)

type cursorKey struct {
	userID int64
	kind   Kind
}

// Cursors stores one cursor per (user, listing). Missing cursors read as zero.
type Cursors struct {
	mu sync.Mutex
	m  map[cursorKey]int
}

// NewCursors creates an empty cursor store.
func NewCursors() *Cursors {
	return &Cursors{m: make(map[cursorKey]int)}
}

// Get returns the stored cursor, zero if none.
func (c *Cursors) Get(userID int64, kind Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m[cursorKey{userID, kind}]
}

// Set stores a cursor. Storing zero forgets the entry.
func (c *Cursors) Set(userID int64, kind Kind, cursor int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cursorKey{userID, kind}
	if cursor <= 0 {
		delete(c.m, key)
		return
	}
	c.m[key] = cursor
}

// Reset sets the cursor back to the most recent record.
func (c *Cursors) Reset(userID int64, kind Kind) {
	c.Set(userID, kind, 0)
}

// Forget drops every cursor of the user.
func (c *Cursors) Forget(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.m {
		if key.userID == userID {
			delete(c.m, key)
		}
	}
}

// Advance paginates records from the stored cursor and stores the next one,
// which is zero once the listing is exhausted.
func Advance[T any](c *Cursors, userID int64, kind Kind, records []T, size int) Page[T] {
	page := Paginate(records, c.Get(userID, kind), size)
	c.Set(userID, kind, page.Next)
	return page
}
