package middleware

import (
	"strings"

	"jobassist/internal/delivery/api/response"
	domainerrors "jobassist/internal/domain/errors"
	"jobassist/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	contextKeyUser = "user"
	bearerPrefix   = "bearer "
)

// SessionMiddleware authenticates requests carrying a session token.
type SessionMiddleware struct {
	sessions usecase.SessionUsecase
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(sessions usecase.SessionUsecase) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// Authenticate resolves the bearer token to a user and stores it on the echo context.
func (m *SessionMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return response.Unauthorized(c, domainerrors.ErrInvalidSession.ErrorCode(), "Authorization header must carry a bearer session token")
		}

		user, err := m.sessions.VerifySession(c.Request().Context(), token)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		c.Set(contextKeyUser, user)

		return next(c)
	}
}

// GetUser returns the user stored by Authenticate.
func GetUser(c echo.Context) (*usecase.PublicUser, bool) {
	user, ok := c.Get(contextKeyUser).(*usecase.PublicUser)

	return user, ok && user != nil
}

func bearerToken(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}
