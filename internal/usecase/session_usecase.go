// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"jobassist/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to create an account.
type RegisterInput struct {
	Email         string
	Name          string
	Password      string
	Phone         *string
	Location      *string
	CurrentSalary *int64
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// PublicUser is the subset of a user that is safe to hand to clients.
type PublicUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AccountOutput is returned by registration. It never carries the password hash.
type AccountOutput struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Phone         *string   `json:"phone,omitempty"`
	Location      *string   `json:"location,omitempty"`
	CurrentSalary *int64    `json:"currentSalary,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// LoginOutput returns the authenticated user and a freshly issued session token.
type LoginOutput struct {
	User         *PublicUser `json:"user"`
	SessionToken string      `json:"sessionToken"`
}

// NewPublicUser projects a user entity onto its public fields.
func NewPublicUser(user *entity.User) *PublicUser {
	return &PublicUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// NewAccountOutput projects a freshly created user onto the registration response.
func NewAccountOutput(user *entity.User) *AccountOutput {
	return &AccountOutput{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Phone:         user.Phone,
		Location:      user.Location,
		CurrentSalary: user.CurrentSalary,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

// SessionUsecase defines account registration and the session lifecycle.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type SessionUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AccountOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	VerifySession(ctx context.Context, sessionToken string) (*PublicUser, error)
	// Logout deletes the session if it exists. It never fails.
	Logout(ctx context.Context, sessionToken string)
}
