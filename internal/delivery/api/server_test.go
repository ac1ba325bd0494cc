package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobassist/config"
	"jobassist/internal/delivery/api/middleware"
	"jobassist/internal/delivery/api/router"
	"jobassist/internal/delivery/api/router/handler"
	domainerrors "jobassist/internal/domain/errors"
	mockUC "jobassist/internal/mocks/usecase"
	"jobassist/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type testServer struct {
	echo     *echo.Echo
	sessions *mockUC.MockSessionUsecase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "1KB"
	cfg.HTTP.Timeouts.IdleTimeout = time.Second

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := mockUC.NewMockSessionUsecase(t)

	lc := fxtest.NewLifecycle(t)
	srv, err := NewServer(ServerParams{
		Lc:     lc,
		Cfg:    cfg,
		Logger: logger,
		RouterParams: router.RouterParams{
			AuthHandler:       handler.NewAuthHandler(handler.AuthHandlerParams{SessionUC: sessions, Logger: logger}),
			SessionMiddleware: middleware.NewSessionMiddleware(sessions),
		},
	})
	require.NoError(t, err)
	lc.RequireStart()
	t.Cleanup(lc.RequireStop)

	return &testServer{echo: srv.(*apiServer).server, sessions: sessions}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}

	return rec, env
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
	assert.NotEmpty(t, env.Meta.RequestID)
	assert.Equal(t, env.Meta.RequestID, rec.Header().Get("X-Request-Id"))
}

func TestServer_PropagatesClientRequestID(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/health", "", "X-Request-Id", "req-123")

	assert.Equal(t, "req-123", env.Meta.RequestID)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
}

func TestServer_Register(t *testing.T) {
	s := newTestServer(t)

	id := uuid.New()
	s.sessions.EXPECT().
		Register(mock.Anything, mock.MatchedBy(func(in *usecase.RegisterInput) bool {
			return in.Email == "alice@example.com" && in.Password == "CorrectHorse1!" &&
				in.CurrentSalary != nil && *in.CurrentSalary == 90000 && in.Phone == nil
		})).
		Return(&usecase.AccountOutput{ID: id, Email: "alice@example.com", Name: "Alice"}, nil)

	rec, env := s.do(t, http.MethodPost, "/users",
		`{"email":"alice@example.com","name":"Alice","password":"CorrectHorse1!","currentSalary":90000}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var account map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &account))
	assert.Equal(t, id.String(), account["id"])
	assert.NotContains(t, account, "passwordHash")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestServer_Register_ValidationFailure(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/users", `{"email":"not-an-email","name":"Alice","password":"short"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Contains(t, string(env.Error.Details), `"field":"email"`)
	assert.Contains(t, string(env.Error.Details), `"field":"password"`)
}

func TestServer_Register_DuplicateEmail(t *testing.T) {
	s := newTestServer(t)

	s.sessions.EXPECT().
		Register(mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(domainerrors.ErrDuplicateEmail, "email already registered"))

	rec, env := s.do(t, http.MethodPost, "/users", `{"email":"alice@example.com","name":"Alice","password":"CorrectHorse1!"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE_EMAIL", env.Error.Code)
}

func TestServer_Login(t *testing.T) {
	s := newTestServer(t)

	id := uuid.New()
	token := strings.Repeat("ab", 32)
	s.sessions.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{Email: "alice@example.com", Password: "CorrectHorse1!"}).
		Return(&usecase.LoginOutput{
			User:         &usecase.PublicUser{ID: id, Name: "Alice", Email: "alice@example.com"},
			SessionToken: token,
		}, nil)

	rec, env := s.do(t, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"CorrectHorse1!"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		User         usecase.PublicUser `json:"user"`
		SessionToken string             `json:"sessionToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, token, out.SessionToken)
	assert.Equal(t, id, out.User.ID)
}

func TestServer_Login_LongLegacyPasswordReachesService(t *testing.T) {
	s := newTestServer(t)

	password := strings.Repeat("p", 400)
	s.sessions.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{Email: "legacy@example.com", Password: password}).
		Return(&usecase.LoginOutput{
			User:         &usecase.PublicUser{ID: uuid.New(), Name: "Legacy", Email: "legacy@example.com"},
			SessionToken: strings.Repeat("cd", 32),
		}, nil)

	rec, _ := s.do(t, http.MethodPost, "/auth/login", `{"email":"legacy@example.com","password":"`+password+`"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_Login_InvalidCredentials(t *testing.T) {
	s := newTestServer(t)

	s.sessions.EXPECT().
		Login(mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch"))

	rec, env := s.do(t, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
	assert.Equal(t, "Invalid email or password", env.Error.Message)
	assert.NotContains(t, rec.Body.String(), "password mismatch")
}

func TestServer_Login_DatabaseFailureIsOpaque(t *testing.T) {
	s := newTestServer(t)

	s.sessions.EXPECT().
		Login(mock.Anything, mock.Anything).
		Return(nil, domainerrors.NewDatabaseExecuteError(errors.New("dial tcp 10.0.0.5:5432"), "failed to find user by email"))

	rec, env := s.do(t, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"whatever"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", env.Error.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestServer_Login_UnexpectedError(t *testing.T) {
	s := newTestServer(t)

	s.sessions.EXPECT().Login(mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	rec, env := s.do(t, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"whatever"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestServer_MalformedBody(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/auth/login", `{"email":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestServer_BodyTooLarge(t *testing.T) {
	s := newTestServer(t)

	body := `{"email":"alice@example.com","password":"` + strings.Repeat("x", 2048) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestServer_Verify(t *testing.T) {
	s := newTestServer(t)

	token := strings.Repeat("cd", 32)
	id := uuid.New()
	s.sessions.EXPECT().
		VerifySession(mock.Anything, token).
		Return(&usecase.PublicUser{ID: id, Name: "Alice", Email: "alice@example.com"}, nil)

	rec, env := s.do(t, http.MethodPost, "/auth/verify", `{"sessionToken":"`+token+`"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), id.String())
}

func TestServer_Verify_Expired(t *testing.T) {
	s := newTestServer(t)

	s.sessions.EXPECT().
		VerifySession(mock.Anything, "stale").
		Return(nil, errors.Wrap(domainerrors.ErrSessionExpired, "session expired"))

	rec, env := s.do(t, http.MethodPost, "/auth/verify", `{"sessionToken":"stale"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "SESSION_EXPIRED", env.Error.Code)
}

func TestServer_Logout(t *testing.T) {
	s := newTestServer(t)

	s.sessions.EXPECT().Logout(mock.Anything, "whatever").Return()

	rec, env := s.do(t, http.MethodPost, "/auth/logout", `{"sessionToken":"whatever"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, string(env.Data))
}

func TestServer_Logout_MissingToken(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/auth/logout", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestServer_Me(t *testing.T) {
	s := newTestServer(t)

	token := strings.Repeat("ef", 32)
	id := uuid.New()
	s.sessions.EXPECT().
		VerifySession(mock.Anything, token).
		Return(&usecase.PublicUser{ID: id, Name: "Alice", Email: "alice@example.com"}, nil)

	rec, env := s.do(t, http.MethodGet, "/auth/me", "", "Authorization", "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), id.String())
}

func TestServer_Me_Unauthenticated(t *testing.T) {
	s := newTestServer(t)

	s.sessions.EXPECT().
		VerifySession(mock.Anything, "revoked").
		Return(nil, errors.Wrap(domainerrors.ErrInvalidSession, "session not found"))

	tests := []struct {
		name   string
		header []string
	}{
		{name: "no header"},
		{name: "basic auth", header: []string{"Authorization", "Basic dXNlcjpwYXNz"}},
		{name: "revoked token", header: []string{"Authorization", "Bearer revoked"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(t, http.MethodGet, "/auth/me", "", tt.header...)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "INVALID_SESSION", env.Error.Code)
		})
	}
}

func TestServer_CORSPreflightAllowsAuthorization(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodOptions, "/auth/me", "",
		echo.HeaderOrigin, "https://app.example.com",
		echo.HeaderAccessControlRequestMethod, http.MethodGet,
	)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), echo.HeaderAuthorization)
}

func TestServer_RecoversFromPanic(t *testing.T) {
	s := newTestServer(t)
	s.sessions.EXPECT().Login(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, *usecase.LoginInput) (*usecase.LoginOutput, error) {
			panic("boom")
		})

	rec, env := s.do(t, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"CorrectHorse1!"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
}
