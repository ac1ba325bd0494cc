package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated login, identified by an opaque token.
type Session struct {
	Token     string    // 64 lowercase hex characters.
	UserID    uuid.UUID // Owning user.
	ExpiresAt time.Time // Absolute expiry.
	CreatedAt time.Time
}

// IsExpired reports whether the session is past its expiry at the given instant.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
