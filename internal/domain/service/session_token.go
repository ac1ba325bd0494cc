package service

// SessionTokenGenerator mints opaque session tokens.
type SessionTokenGenerator interface {
	// Generate returns 32 bytes from a CSPRNG encoded as 64 lowercase hex characters.
	Generate() (string, error)
}
