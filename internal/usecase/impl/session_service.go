// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"jobassist/config"
	deliverycontext "jobassist/internal/delivery/context"
	"jobassist/internal/domain/entity"
	domainerrors "jobassist/internal/domain/errors"
	"jobassist/internal/domain/repository"
	"jobassist/internal/domain/service"
	"jobassist/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	hasher      service.CredentialHasher
	tokens      service.SessionTokenGenerator
	sessionTTL  time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	UserRepo       repository.UserRepository
	SessionRepo    repository.SessionRepository
	Hasher         service.CredentialHasher
	TokenGenerator service.SessionTokenGenerator
	Config         *config.Config
	Logger         *slog.Logger
}

// NewSessionService is the constructor for sessionService. It receives all dependencies as interfaces.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return newSessionService(params, time.Now)
}

func newSessionService(params SessionServiceParams, now func() time.Time) *sessionService {
	sessionTTL := config.DefaultSessionTTL
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.SessionTTL > 0 {
		sessionTTL = params.Config.Auth.SessionTTL
	}

	return &sessionService{
		userRepo:    params.UserRepo,
		sessionRepo: params.SessionRepo,
		hasher:      params.Hasher,
		tokens:      params.TokenGenerator,
		sessionTTL:  sessionTTL,
		now:         now,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account with an Argon2id credential.
func (srv *sessionService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AccountOutput, error) {
	existing, err := srv.userRepo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		srv.log(ctx).Warn("Registration rejected, email already in use", slog.Any("user_id", existing.ID))

		return nil, errors.Wrap(domainerrors.ErrDuplicateEmail, "email already registered")
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, errors.Wrap(err, "failed to check existing account")
	}

	passwordHash, err := srv.hasher.Hash(ctx, input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	newUser := &entity.User{
		Email:         input.Email,
		Name:          input.Name,
		Phone:         input.Phone,
		Location:      input.Location,
		CurrentSalary: input.CurrentSalary,
		PasswordHash:  passwordHash,
	}

	// The unique index on email settles concurrent registrations; the loser
	// surfaces ErrDuplicateEmail from the repository.
	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateEmail) {
			srv.log(ctx).Warn("Concurrent registration lost the uniqueness race")
		}

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	srv.log(ctx).Info("Registration completed", slog.Any("user_id", newUser.ID))

	return usecase.NewAccountOutput(newUser), nil
}

// Login authenticates a user, upgrading legacy credentials, and issues a session.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login attempt for unknown account")

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "user not found")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if !srv.authenticate(ctx, user, input.Password) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	token, err := srv.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User logged in", slog.Any("user_id", user.ID))

	return &usecase.LoginOutput{
		User:         usecase.NewPublicUser(user),
		SessionToken: token,
	}, nil
}

// authenticate checks password against the stored credential. A matching
// legacy credential is replaced by an Argon2id hash before returning.
func (srv *sessionService) authenticate(ctx context.Context, user *entity.User, password string) bool {
	stored := service.ParseStoredCredential(user.PasswordHash)

	switch stored.Scheme {
	case service.HashSchemeArgon2id:
		if !srv.hasher.Verify(ctx, password, stored.Encoded) {
			srv.log(ctx).Warn("Password mismatch", slog.Any("user_id", user.ID), slog.String("scheme", stored.Scheme.String()))

			return false
		}

		return true

	case service.HashSchemeLegacySHA256:
		digest := srv.hasher.LegacySHA256(password)
		if subtle.ConstantTimeCompare([]byte(digest), []byte(stored.Encoded)) != 1 {
			srv.log(ctx).Warn("Password mismatch", slog.Any("user_id", user.ID), slog.String("scheme", stored.Scheme.String()))

			return false
		}
		srv.upgradeCredential(ctx, user, password)

		return true

	default:
		srv.log(ctx).Error("Stored credential has an unrecognized format",
			slog.Any("user_id", user.ID),
			slog.String("scheme", stored.Scheme.String()),
		)

		return false
	}
}

// upgradeCredential rehashes a legacy password with Argon2id. Failures are
// logged and never fail the login; the next legacy login retries.
func (srv *sessionService) upgradeCredential(ctx context.Context, user *entity.User, password string) {
	logger := srv.log(ctx).With(slog.Any("user_id", user.ID))

	upgraded, err := srv.hasher.Hash(ctx, password)
	if err != nil {
		logger.Warn("Failed to hash password for legacy upgrade", slog.Any("error", err))

		return
	}

	if err := srv.userRepo.UpdatePasswordHash(ctx, user.ID, upgraded); err != nil {
		logger.Warn("Failed to persist upgraded password hash", slog.Any("error", err))

		return
	}

	user.PasswordHash = upgraded
	logger.Info("Upgraded legacy password hash", slog.String("scheme", service.HashSchemeArgon2id.String()))
}

// issueSession generates a token and persists the session before handing the token out.
func (srv *sessionService) issueSession(ctx context.Context, user *entity.User) (string, error) {
	token, err := srv.tokens.Generate()
	if err != nil {
		srv.log(ctx).Error("Failed to generate session token", slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrSessionIssueFailed, err.Error())
	}

	session := &entity.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: srv.now().Add(srv.sessionTTL),
	}
	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		srv.log(ctx).Error("Failed to persist session", slog.Any("user_id", user.ID), slog.Any("error", err))

		return "", errors.Wrap(err, "failed to create session")
	}

	return token, nil
}

// VerifySession resolves a session token to its owner. Expired sessions are
// deleted on first sight.
func (srv *sessionService) VerifySession(ctx context.Context, sessionToken string) (*usecase.PublicUser, error) {
	if sessionToken == "" {
		return nil, errors.Wrap(domainerrors.ErrInvalidSession, "empty session token")
	}

	session, err := srv.sessionRepo.FindByToken(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidSession, "session not found")
		}

		return nil, errors.Wrap(err, "failed to find session")
	}

	if session.IsExpired(srv.now()) {
		if err := srv.sessionRepo.DeleteByToken(ctx, sessionToken); err != nil {
			srv.log(ctx).Warn("Failed to delete expired session", slog.Any("user_id", session.UserID), slog.Any("error", err))
		}

		return nil, errors.Wrap(domainerrors.ErrSessionExpired, "session expired")
	}

	user, err := srv.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Session owner no longer exists", slog.Any("user_id", session.UserID))

			return nil, errors.Wrap(domainerrors.ErrInvalidSession, "session owner not found")
		}

		return nil, errors.Wrap(err, "failed to find session owner")
	}

	return usecase.NewPublicUser(user), nil
}

// Logout deletes the session. Unknown tokens and storage errors are not reported.
func (srv *sessionService) Logout(ctx context.Context, sessionToken string) {
	if sessionToken == "" {
		return
	}

	if err := srv.sessionRepo.DeleteByToken(ctx, sessionToken); err != nil {
		srv.log(ctx).Warn("Failed to delete session on logout", slog.Any("error", err))
	}
}
