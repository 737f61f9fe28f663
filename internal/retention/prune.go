// Package retention removes job offers and candidate profiles that are older
// than the configured number of days.
package retention

import (
	"time"

	"github.com/edgard/empleobot/internal/database"
)

// ParseDate parses a stored date as a day or as a timestamp, interpreting it
// in loc.
func ParseDate(value string, loc *time.Location) (time.Time, bool) {
	for _, layout := range []string{database.DateLayout, database.TimestampLayout} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AgeDays returns the number of whole days elapsed between date and now.
func AgeDays(date, now time.Time) int {
	return int(now.Sub(date) / (24 * time.Hour))
}

// Prune splits rows into those to keep and those to remove. A row is kept
// when its date is at most maxAgeDays whole days old, or when its date cannot
// be parsed. Order is preserved in both results.
func Prune[T any](rows []T, dateOf func(T) string, now time.Time, maxAgeDays int) (kept, removed []T) {
	kept = make([]T, 0, len(rows))
	for _, row := range rows {
		date, ok := ParseDate(dateOf(row), now.Location())
		if !ok || AgeDays(date, now) <= maxAgeDays {
			kept = append(kept, row)
			continue
		}
		removed = append(removed, row)
	}
	return kept, removed
}
