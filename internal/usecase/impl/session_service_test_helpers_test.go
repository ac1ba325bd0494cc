package impl

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"jobassist/config"
	mockRepo "jobassist/internal/mocks/repository"
	mockSvc "jobassist/internal/mocks/service"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(sessionTTL time.Duration) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			SessionTTL:          sessionTTL,
			MaxConcurrentHashes: 2,
		},
	}
}

// sessionServiceFixtures holds all test dependencies for session service tests.
type sessionServiceFixtures struct {
	service     *sessionService
	userRepo    *mockRepo.MockUserRepository
	sessionRepo *mockRepo.MockSessionRepository
	hasher      *mockSvc.MockCredentialHasher
	tokens      *mockSvc.MockSessionTokenGenerator
	now         time.Time
}

func createTestSessionService(t *testing.T) sessionServiceFixtures {
	t.Helper()

	fixtures := sessionServiceFixtures{
		userRepo:    mockRepo.NewMockUserRepository(t),
		sessionRepo: mockRepo.NewMockSessionRepository(t),
		hasher:      mockSvc.NewMockCredentialHasher(t),
		tokens:      mockSvc.NewMockSessionTokenGenerator(t),
		now:         time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	fixtures.service = newSessionService(SessionServiceParams{
		UserRepo:       fixtures.userRepo,
		SessionRepo:    fixtures.sessionRepo,
		Hasher:         fixtures.hasher,
		TokenGenerator: fixtures.tokens,
		Config:         newTestConfig(config.DefaultSessionTTL),
		Logger:         newDiscardLogger(),
	}, func() time.Time { return fixtures.now })

	return fixtures
}

// captureLogs routes the service's fallback logger into a buffer of JSON lines.
func (f sessionServiceFixtures) captureLogs() *bytes.Buffer {
	var buf bytes.Buffer
	f.service.logger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return &buf
}
