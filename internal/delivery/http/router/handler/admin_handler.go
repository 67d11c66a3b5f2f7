package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shilwantharshal/mini-user-management/internal/delivery/http/response"
	"github.com/shilwantharshal/mini-user-management/internal/domain/entity"
	"github.com/shilwantharshal/mini-user-management/internal/usecase"
)

// AdminHandler holds dependencies for administrative user management handlers.
type AdminHandler struct {
	uc     usecase.AdminUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListUsers returns one page of account summaries, newest first.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	output, err := h.uc.ListUsers(c.Request().Context(), page)
	if err != nil {
		return errors.WithStack(err)
	}

	users := make([]userResponse, 0, len(output.Users))
	for _, user := range output.Users {
		users = append(users, newUserResponse(user))
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"users":        users,
		"total":        output.Total,
		"current_page": output.CurrentPage,
		"pages":        output.Pages,
	}, "Users retrieved successfully")
}

// ActivateUser sets the target account's status to active.
func (h *AdminHandler) ActivateUser(c echo.Context) error {
	if err := h.uc.SetStatus(c.Request().Context(), c.Param("id"), entity.StatusActive); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User activated successfully")
}

// DeactivateUser sets the target account's status to inactive.
func (h *AdminHandler) DeactivateUser(c echo.Context) error {
	if err := h.uc.SetStatus(c.Request().Context(), c.Param("id"), entity.StatusInactive); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deactivated successfully")
}

// ChangeRole assigns a role to the target account.
func (h *AdminHandler) ChangeRole(c echo.Context) error {
	input := new(usecase.ChangeRoleInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "Invalid role input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	role := entity.Role(input.Role)
	if err := h.uc.SetRole(c.Request().Context(), c.Param("id"), role); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User role updated to "+role.String())
}
