// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"jobassist/internal/delivery/api/middleware"
	"jobassist/internal/delivery/api/response"
	"jobassist/internal/delivery/api/validator"
	domainerrors "jobassist/internal/domain/errors"
	"jobassist/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	SessionUC usecase.SessionUsecase
	Logger    *slog.Logger
}

// AuthHandler serves account creation and the session endpoints.
type AuthHandler struct {
	sessionUC usecase.SessionUsecase
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		sessionUC: params.SessionUC,
		logger:    params.Logger,
	}
}

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Email         string  `json:"email" validate:"required,email,max=255"`
	Name          string  `json:"name" validate:"required,max=255"`
	Password      string  `json:"password" validate:"required,min=8,max=256"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=64"`
	Location      *string `json:"location,omitempty" validate:"omitempty,max=255"`
	CurrentSalary *int64  `json:"currentSalary,omitempty" validate:"omitempty,gte=0"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

// SessionTokenRequest carries a session token in the request body
type SessionTokenRequest struct {
	SessionToken string `json:"sessionToken" validate:"required,max=128"`
}

// UserResponse wraps a public user
type UserResponse struct {
	User *usecase.PublicUser `json:"user"`
}

// LogoutResponse acknowledges a logout
type LogoutResponse struct {
	Success bool `json:"success"`
}

// Register handles account creation
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidInput(c, "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.Violations(err))
	}

	account, err := h.sessionUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:         req.Email,
		Name:          req.Name,
		Password:      req.Password,
		Phone:         req.Phone,
		Location:      req.Location,
		CurrentSalary: req.CurrentSalary,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, account)
}

// Login handles email and password authentication
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidInput(c, "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.Violations(err))
	}

	output, err := h.sessionUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output)
}

// Verify resolves a session token to its user
func (h *AuthHandler) Verify(c echo.Context) error {
	var req SessionTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidInput(c, "Invalid session token input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.Violations(err))
	}

	user, err := h.sessionUC.VerifySession(c.Request().Context(), req.SessionToken)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, UserResponse{User: user})
}

// Logout invalidates a session token
func (h *AuthHandler) Logout(c echo.Context) error {
	var req SessionTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidInput(c, "Invalid session token input")
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, validator.Violations(err))
	}

	h.sessionUC.Logout(c.Request().Context(), req.SessionToken)

	return response.Success(c, http.StatusOK, LogoutResponse{Success: true})
}

// Me returns the user authenticated by the session middleware
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.AppError(c, domainerrors.ErrInvalidSession)
	}

	return response.Success(c, http.StatusOK, UserResponse{User: user})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
