// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"jobassist/config"
	"jobassist/internal/domain/service"
	"jobassist/internal/errors"

	"go.uber.org/fx"
	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"
)

// Cost parameters for newly produced hashes.
const (
	argon2Time    uint32 = 3
	argon2Memory  uint32 = 64 * 1024 // KiB
	argon2Threads uint8  = 1
	argon2KeyLen  uint32 = 32
	argon2SaltLen        = 16
)

// Upper bounds accepted when decoding stored hashes, so a corrupt row cannot
// make a single verification allocate gigabytes.
const (
	maxArgon2Memory  uint32 = 256 * 1024
	maxArgon2Time    uint32 = 16
	maxArgon2Threads uint8  = 16
	minArgon2KeyLen         = 16
	maxArgon2KeyLen         = 128
	minArgon2SaltLen        = 8
)

var b64 = base64.RawStdEncoding

// Pepper is the process-wide secret appended to every password before hashing.
type Pepper string

type argon2Params struct {
	memory  uint32
	time    uint32
	threads uint8
}

// argon2Hasher is a concrete implementation of the CredentialHasher interface using Argon2id.
type argon2Hasher struct {
	pepper string
	gate   *semaphore.Weighted
	logger *slog.Logger
}

// Argon2HasherParams holds dependencies for the Argon2id hasher, injected by Fx.
type Argon2HasherParams struct {
	fx.In

	Pepper Pepper
	Config *config.Config
	Logger *slog.Logger
}

// NewArgon2Hasher is the constructor for argon2Hasher.
// It returns the implementation as a service.CredentialHasher interface.
func NewArgon2Hasher(params Argon2HasherParams) service.CredentialHasher {
	maxConcurrent := 0
	if params.Config != nil && params.Config.Auth != nil {
		maxConcurrent = params.Config.Auth.MaxConcurrentHashes
	}

	return newArgon2Hasher(string(params.Pepper), maxConcurrent, params.Logger)
}

func newArgon2Hasher(pepper string, maxConcurrent int, logger *slog.Logger) *argon2Hasher {
	h := &argon2Hasher{
		pepper: pepper,
		logger: logger,
	}
	if maxConcurrent > 0 {
		h.gate = semaphore.NewWeighted(int64(maxConcurrent))
	}

	return h
}

// Hash generates a salted Argon2id hash of password+pepper in PHC string format.
func (h *argon2Hasher) Hash(ctx context.Context, password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "failed to generate salt")
	}

	params := argon2Params{memory: argon2Memory, time: argon2Time, threads: argon2Threads}
	key, err := h.derive(ctx, password, salt, params, argon2KeyLen)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		service.Argon2idPrefix,
		argon2.Version,
		params.memory, params.time, params.threads,
		b64.EncodeToString(salt),
		b64.EncodeToString(key),
	), nil
}

// Verify recomputes the digest under the parameters embedded in encoded and
// compares in constant time. Any decoding problem counts as a mismatch.
func (h *argon2Hasher) Verify(ctx context.Context, password, encoded string) bool {
	params, salt, key, err := decodeArgon2id(encoded)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("Stored argon2id hash is malformed", slog.String("reason", err.Error()))
		}

		return false
	}

	candidate, err := h.derive(ctx, password, salt, params, uint32(len(key)))
	if err != nil {
		if h.logger != nil {
			h.logger.Debug("Argon2id verification abandoned", slog.String("reason", err.Error()))
		}

		return false
	}

	return subtle.ConstantTimeCompare(key, candidate) == 1
}

// LegacySHA256 returns the lowercase hex SHA-256 of the raw password.
func (h *argon2Hasher) LegacySHA256(password string) string {
	sum := sha256.Sum256([]byte(password))

	return hex.EncodeToString(sum[:])
}

// derive waits for a hashing slot and computes the key. A caller whose ctx
// ends while queued gives up without allocating the Argon2 memory.
func (h *argon2Hasher) derive(ctx context.Context, password string, salt []byte, params argon2Params, keyLen uint32) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "argon2id derivation cancelled")
	}
	if h.gate != nil {
		if err := h.gate.Acquire(ctx, 1); err != nil {
			return nil, errors.Wrap(err, "argon2id derivation cancelled while queued")
		}
		defer h.gate.Release(1)
	}

	return argon2.IDKey([]byte(password+h.pepper), salt, params.time, params.memory, params.threads, keyLen), nil
}

func decodeArgon2id(encoded string) (argon2Params, []byte, []byte, error) {
	var params argon2Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return params, nil, nil, errors.New("not an argon2id PHC string")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, errors.Wrap(err, "invalid version segment")
	}
	if version != argon2.Version {
		return params, nil, nil, errors.Errorf("unsupported argon2 version %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return params, nil, nil, errors.Wrap(err, "invalid parameter segment")
	}
	if params.memory == 0 || params.memory > maxArgon2Memory ||
		params.time == 0 || params.time > maxArgon2Time ||
		params.threads == 0 || params.threads > maxArgon2Threads {
		return params, nil, nil, errors.Errorf("argon2 parameters out of range m=%d t=%d p=%d", params.memory, params.time, params.threads)
	}

	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, errors.Wrap(err, "invalid salt encoding")
	}
	if len(salt) < minArgon2SaltLen {
		return params, nil, nil, errors.New("salt too short")
	}

	key, err := b64.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, errors.Wrap(err, "invalid digest encoding")
	}
	if len(key) < minArgon2KeyLen || len(key) > maxArgon2KeyLen {
		return params, nil, nil, errors.Errorf("digest length %d out of range", len(key))
	}

	return params, salt, key, nil
}
