package middleware

import (
	"log/slog"
	"net/http"

	"jobassist/internal/delivery/api/response"
	deliverycontext "jobassist/internal/delivery/context"
	domainerrors "jobassist/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware is the echo HTTPErrorHandler for the auth API.
type ErrorMiddleware struct {
	logger *slog.Logger
}

func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError renders err as an error envelope. Server-side failures are
// logged with the request-scoped logger and answered with a generic message;
// their causes (SQL errors, hashing failures) never reach the client.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logServerError(c, err, appErr.ErrorCode(), appErr.Details())
		}
		_ = response.AppError(c, appErr)

		return
	}

	// Routing misses, bad methods and body limit rejections from echo itself.
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, nil)

		return
	}

	m.logServerError(c, err, domainerrors.ErrInternalError.ErrorCode(), "")
	_ = response.InternalServerError(c, "Internal server error, please try again later")
}

func (m *ErrorMiddleware) logServerError(c echo.Context, err error, code, details string) {
	attrs := []slog.Attr{
		slog.String("code", code),
		slog.String("error", err.Error()),
		slog.String("route", c.Path()),
		slog.String("method", c.Request().Method),
	}
	if details != "" {
		attrs = append(attrs, slog.String("details", details))
	}

	ctx := c.Request().Context()
	deliverycontext.GetLoggerOrDefault(ctx, m.logger).LogAttrs(ctx, slog.LevelError, "Request failed", attrs...)
}
