package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStoredCredential(t *testing.T) {
	legacy := sha256.Sum256([]byte("OldPass123"))
	legacyHex := hex.EncodeToString(legacy[:])

	tests := []struct {
		name    string
		encoded string
		want    HashScheme
	}{
		{name: "argon2id", encoded: "$argon2id$v=19$m=65536,t=3,p=1$c2FsdA$aGFzaA", want: HashSchemeArgon2id},
		{name: "argon2id prefix only", encoded: "$argon2id$garbage", want: HashSchemeArgon2id},
		{name: "legacy sha256", encoded: legacyHex, want: HashSchemeLegacySHA256},
		{name: "uppercase hex", encoded: strings.ToUpper(legacyHex), want: HashSchemeUnknown},
		{name: "short hex", encoded: legacyHex[:63], want: HashSchemeUnknown},
		{name: "bcrypt", encoded: "$2a$10$abcdefghijklmnopqrstuu", want: HashSchemeUnknown},
		{name: "argon2i", encoded: "$argon2i$v=19$m=65536,t=3,p=1$c2FsdA$aGFzaA", want: HashSchemeUnknown},
		{name: "empty", encoded: "", want: HashSchemeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStoredCredential(tt.encoded)
			assert.Equal(t, tt.want, got.Scheme)
			assert.Equal(t, tt.encoded, got.Encoded)
		})
	}
}

func TestHashScheme_String(t *testing.T) {
	assert.Equal(t, "argon2id", HashSchemeArgon2id.String())
	assert.Equal(t, "legacy_sha256", HashSchemeLegacySHA256.String())
	assert.Equal(t, "unknown", HashSchemeUnknown.String())
}
