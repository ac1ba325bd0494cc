package repository

import (
	"context"
	"errors"

	"jobassist/internal/domain/entity"
)

// ErrSessionNotFound is returned when no session row matches a token.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores sessions keyed by their token.
type SessionRepository interface {
	// Create persists a session. It must be durable before the token is handed out.
	Create(ctx context.Context, session *entity.Session) error

	// FindByToken returns the session regardless of expiry; callers decide what expired means.
	FindByToken(ctx context.Context, token string) (*entity.Session, error)

	// DeleteByToken removes the session. Deleting a missing token is not an error.
	DeleteByToken(ctx context.Context, token string) error
}
