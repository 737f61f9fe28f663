package config

import "slices"

// IsAdmin reports whether userID is on the broadcast allow-list.
// An empty allow-list authorizes nobody.
func (c *Config) IsAdmin(userID int64) bool {
	return slices.Contains(c.Telegram.AdminIDs, userID)
}
