// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account of the job-application assistant.
// PasswordHash is either an Argon2id PHC string or a legacy SHA-256 hex digest.
type User struct {
	ID            uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email         string    // Login identifier, unique across accounts.
	Name          string    // Display name.
	Phone         *string   // Optional contact phone.
	Location      *string   // Optional location, free text.
	CurrentSalary *int64    // Optional current salary in the user's currency.
	PasswordHash  string    // Stored credential. Never leaves the service layer.
	CreatedAt     time.Time // Timestamp of when this user account was created.
	UpdatedAt     time.Time // Timestamp of the last modification to this user's data.
}
