package entity

import "time"

// Session represents a logged-in browser or basic-auth client.
// The session cookie carries a signed token naming ID; the record is re-read on every request.
type Session struct {
	ID        string     // UUID
	Username  string     // Principal that logged in
	Roles     []Role     // Roles granted at login time
	UserAgent string     // Client's User-Agent header
	IPAddress string     // Client's IP address
	CreatedAt time.Time  // Session creation time
	ExpiresAt time.Time  // Session expiration time
	RevokedAt *time.Time // Logout time (nil if active)
}

// IsExpiredAt reports whether the session has reached its expiration time at now.
func (s *Session) IsExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// IsRevoked returns true if the session has been revoked.
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// Principal returns the identity carried by the session.
func (s *Session) Principal() *Principal {
	return &Principal{Username: s.Username, Roles: s.Roles}
}
