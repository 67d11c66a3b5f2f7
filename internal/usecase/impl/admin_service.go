// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	deliverycontext "github.com/shilwantharshal/mini-user-management/internal/delivery/context"
	"github.com/shilwantharshal/mini-user-management/internal/domain/entity"
	domainerrors "github.com/shilwantharshal/mini-user-management/internal/domain/errors"
	"github.com/shilwantharshal/mini-user-management/internal/domain/repository"
	"github.com/shilwantharshal/mini-user-management/internal/usecase"
)

// pageSize is the fixed page size of the admin user listing.
const pageSize = 10

// adminService implements the AdminUsecase interface.
type adminService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(userRepo repository.UserRepository, logger *slog.Logger) usecase.AdminUsecase {
	return &adminService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers returns the page-th page of accounts, newest first, together
// with the unfiltered total and the ceiling-divided page count.
func (srv *adminService) ListUsers(ctx context.Context, page int) (*usecase.UserListOutput, error) {
	if page < 1 {
		page = 1
	}

	offset := int64(page-1) * pageSize

	users, total, err := srv.userRepo.List(ctx, offset, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	srv.log(ctx).Debug("Listed users", slog.Int("page", page), slog.Int64("total", total))

	return &usecase.UserListOutput{
		Users:       users,
		Total:       total,
		CurrentPage: page,
		Pages:       (total + pageSize - 1) / pageSize,
	}, nil
}

// SetStatus activates or deactivates the target account.
func (srv *adminService) SetStatus(ctx context.Context, userID string, status entity.Status) error {
	if !status.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails("invalid status")
	}

	if err := srv.userRepo.Update(ctx, userID, repository.UserUpdate{Status: &status}); err != nil {
		return srv.mapTargetError(err, "failed to update user status")
	}

	srv.log(ctx).Info("User status changed", slog.String("userID", userID), slog.Any("status", status))

	return nil
}

// SetRole assigns a role to the target account.
func (srv *adminService) SetRole(ctx context.Context, userID string, role entity.Role) error {
	if !role.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails("invalid role")
	}

	if err := srv.userRepo.Update(ctx, userID, repository.UserUpdate{Role: &role}); err != nil {
		return srv.mapTargetError(err, "failed to update user role")
	}

	srv.log(ctx).Info("User role changed", slog.String("userID", userID), slog.Any("role", role))

	return nil
}

// mapTargetError converts repository sentinels for the target of an
// admin mutation into their domain errors.
func (srv *adminService) mapTargetError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrInvalidUserID):
		return errors.WithStack(domainerrors.ErrInvalidUserID)
	case errors.Is(err, repository.ErrUserNotFound):
		return errors.WithStack(domainerrors.ErrUserNotFound)
	default:
		return errors.Wrap(err, message)
	}
}
