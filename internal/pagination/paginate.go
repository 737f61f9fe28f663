// Package pagination serves stored records newest-first, one page at a time,
// and remembers per user how far each listing has been read.
package pagination

// Page is one slice of a listing.
type Page[T any] struct {
	// Items are ordered most recent first.
	Items []T
	Total int
	// Next is the cursor to store for the following page; zero when exhausted.
	Next int
	// More reports whether older records remain after this page.
	More bool
}

// Paginate returns the page of records starting after the cursor most recent
// ones. Records are ordered oldest first, as stored. A cursor outside
// [0, total) restarts from the most recent record.
func Paginate[T any](records []T, cursor, size int) Page[T] {
	total := len(records)
	if total == 0 || size <= 0 {
		return Page[T]{Total: total}
	}
	if cursor < 0 || cursor >= total {
		cursor = 0
	}

	end := total - cursor
	start := max(0, end-size)

	items := make([]T, 0, end-start)
	for i := end - 1; i >= start; i-- {
		items = append(items, records[i])
	}

	page := Page[T]{Items: items, Total: total}
	if cursor+size < total {
		page.Next = cursor + size
		page.More = true
	}
	return page
}
