package auth

import (
	"crypto/rand"
	"encoding/hex"

	"jobassist/internal/domain/service"
	"jobassist/internal/errors"
)

const sessionTokenBytes = 32

// randomTokenGenerator mints session tokens from crypto/rand.
type randomTokenGenerator struct{}

// NewSessionTokenGenerator is the constructor for the session token generator.
func NewSessionTokenGenerator() service.SessionTokenGenerator {
	return &randomTokenGenerator{}
}

// Generate returns 32 random bytes as 64 lowercase hex characters.
func (g *randomTokenGenerator) Generate() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes for session token")
	}

	return hex.EncodeToString(buf), nil
}
