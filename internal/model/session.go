package model

import "time"

// Session is the logged-in user object as persisted on this machine.
type Session struct {
	AuthUser
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Expired reports whether the token carried an expiry that has passed.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// SearchEntry is one remembered product search.
type SearchEntry struct {
	Term       string    `json:"term"`
	SearchedAt time.Time `json:"searchedAt"`
}
