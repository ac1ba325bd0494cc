package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	mockUC "jobassist/internal/mocks/usecase"
	"jobassist/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "Bearer abc", token: "abc", ok: true},
		{header: "bearer abc", token: "abc", ok: true},
		{header: "BEARER  abc ", token: "abc", ok: true},
		{header: "Bearer ", ok: false},
		{header: "Bearer    ", ok: false},
		{header: "Basic abc", ok: false},
		{header: "abc", ok: false},
		{header: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := bearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestSessionMiddleware_SetsUser(t *testing.T) {
	sessions := mockUC.NewMockSessionUsecase(t)
	m := NewSessionMiddleware(sessions)

	user := &usecase.PublicUser{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	sessions.EXPECT().VerifySession(mock.Anything, "tok").Return(user, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *usecase.PublicUser
	err := m.Authenticate(func(c echo.Context) error {
		var ok bool
		seen, ok = GetUser(c)
		require.True(t, ok)

		return c.NoContent(http.StatusNoContent)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, user, seen)
}

func TestGetUser_Missing(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	user, ok := GetUser(c)
	assert.False(t, ok)
	assert.Nil(t, user)
}
