package service

import "context"

// SecretProvider fetches process-wide secrets.
type SecretProvider interface {
	// Pepper returns the password pepper. An error means the secret is unavailable;
	// callers substitute the documented default.
	Pepper(ctx context.Context) (string, error)
}
