// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"context"
	"strings"
)

// CredentialHasher hashes and verifies peppered passwords.
// This abstracts the underlying hashing algorithm, keeping the domain pure.
type CredentialHasher interface {
	// Hash produces an encoded hash with a fresh salt. An error means the
	// hasher itself is broken (e.g. entropy source failure) or ctx ended
	// before a hashing slot was free.
	Hash(ctx context.Context, password string) (string, error)

	// Verify reports whether password matches encoded. Malformed input and a
	// ctx that ends before hashing starts are both a mismatch.
	Verify(ctx context.Context, password, encoded string) bool

	// LegacySHA256 returns the unsalted, unpeppered hex digest of the retired scheme.
	LegacySHA256(password string) string
}

// HashScheme identifies how a stored credential was produced.
type HashScheme int

const (
	HashSchemeUnknown HashScheme = iota
	HashSchemeArgon2id
	HashSchemeLegacySHA256
)

// Argon2idPrefix is the PHC identifier every current hash starts with.
const Argon2idPrefix = "$argon2id$"

const legacySHA256HexLen = 64

// String implements fmt.Stringer for log attributes.
func (s HashScheme) String() string {
	switch s {
	case HashSchemeArgon2id:
		return "argon2id"
	case HashSchemeLegacySHA256:
		return "legacy_sha256"
	default:
		return "unknown"
	}
}

// StoredCredential is a stored password hash tagged with the scheme inferred from its shape.
type StoredCredential struct {
	Scheme  HashScheme
	Encoded string
}

// ParseStoredCredential classifies a stored hash by shape only; it does not validate parameters.
func ParseStoredCredential(encoded string) StoredCredential {
	switch {
	case strings.HasPrefix(encoded, Argon2idPrefix):
		return StoredCredential{Scheme: HashSchemeArgon2id, Encoded: encoded}
	case isLowerHex(encoded, legacySHA256HexLen):
		return StoredCredential{Scheme: HashSchemeLegacySHA256, Encoded: encoded}
	default:
		return StoredCredential{Scheme: HashSchemeUnknown, Encoded: encoded}
	}
}

func isLowerHex(s string, n int) bool {
	if len(s) != n {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}

	return true
}
