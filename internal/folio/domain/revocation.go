package domain

import "time"

// RevokedLink records a link an operator revoked before its expiry. Rows are
// only useful until ExpiresAt, after which the token is dead anyway.
type RevokedLink struct {
	JTI        string // token id (ULID)
	ResourceID string
	ExpiresAt  time.Time
	RevokedAt  time.Time
	Reason     string
}

// IsLive reports whether the revoked token would still verify at now.
func (r *RevokedLink) IsLive(now time.Time) bool {
	return now.Before(r.ExpiresAt)
}
