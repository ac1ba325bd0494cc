package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel mirrors the 'user_sessions' table, keyed by the session token.
type SessionModel struct {
	SessionToken string    `gorm:"type:char(64);primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt    time.Time `gorm:"not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "user_sessions"
}
