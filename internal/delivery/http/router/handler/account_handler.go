// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "github.com/shilwantharshal/mini-user-management/internal/delivery/context"
	"github.com/shilwantharshal/mini-user-management/internal/delivery/http/response"
	"github.com/shilwantharshal/mini-user-management/internal/domain/entity"
	domainerrors "github.com/shilwantharshal/mini-user-management/internal/domain/errors"
	"github.com/shilwantharshal/mini-user-management/internal/usecase"
)

// userResponse is the account summary shape shared by all endpoints.
// The password hash is never part of any output.
type userResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
}

func newUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role.String(),
		Status:    user.Status.String(),
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
	}
}

// AccountHandler holds dependencies for account self-service handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Signup handles the account creation request.
func (h *AccountHandler) Signup(c echo.Context) error {
	input := new(usecase.SignupInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "Invalid signup input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output, err := h.uc.Signup(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{
		"access_token": output.AccessToken,
	}, "Signup successful")
}

// Login handles the credential verification request.
func (h *AccountHandler) Login(c echo.Context) error {
	input := new(usecase.LoginInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"access_token": output.AccessToken,
	}, "Login successful")
}

// Me returns the caller's own account, as resolved by the access control
// middleware.
func (h *AccountHandler) Me(c echo.Context) error {
	account, ok := deliverycontext.GetAccount(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	return response.Success(c, http.StatusOK, newUserResponse(account), "Profile retrieved successfully")
}

// Logout acknowledges a logout. Tokens are stateless, so there is
// nothing to revoke server-side; the client deletes the token.
func (h *AccountHandler) Logout(c echo.Context) error {
	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// UpdateProfile handles the self-service profile mutation.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	account, ok := deliverycontext.GetAccount(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	input := new(usecase.UpdateProfileInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "Invalid profile input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	if err := h.uc.UpdateProfile(c.Request().Context(), account.ID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Profile updated successfully")
}

// ChangePassword handles credential rotation for the caller's account.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	account, ok := deliverycontext.GetAccount(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	input := new(usecase.ChangePasswordInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "Invalid password input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	if err := h.uc.ChangePassword(c.Request().Context(), account.ID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully. Please login again.")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "API running"}, "Service is healthy")
}
