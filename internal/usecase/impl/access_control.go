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
	"github.com/shilwantharshal/mini-user-management/internal/domain/service"
	"github.com/shilwantharshal/mini-user-management/internal/usecase"
)

// accessControl implements the AccessControl pipeline. Tokens only prove
// identity; status and role are checked live against the store on every
// call, so a deactivation takes effect immediately even for tokens
// issued before it.
type accessControl struct {
	userRepo     repository.UserRepository
	tokenService service.TokenService
	logger       *slog.Logger
}

// NewAccessControl is the constructor for accessControl.
func NewAccessControl(
	userRepo repository.UserRepository,
	tokenService service.TokenService,
	logger *slog.Logger,
) usecase.AccessControl {
	return &accessControl{
		userRepo:     userRepo,
		tokenService: tokenService,
		logger:       logger,
	}
}

func (srv *accessControl) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Authorize runs the precondition pipeline in fixed order: token, then
// existence, then status, then role.
func (srv *accessControl) Authorize(ctx context.Context, token string, allowed entity.Roles) (*entity.User, error) {
	if token == "" {
		return nil, errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	claims, err := srv.tokenService.Validate(token)
	if err != nil {
		srv.log(ctx).Debug("Token validation failed", slog.Any("error", err))

		return nil, errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidUserID):
			return nil, errors.WithStack(domainerrors.ErrInvalidAuthID)
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		default:
			return nil, errors.Wrap(err, "failed to resolve token subject")
		}
	}

	if user.Status != entity.StatusActive {
		return nil, errors.WithStack(domainerrors.ErrAccountInactive)
	}

	if len(allowed) > 0 && !allowed.Contains(user.Role) {
		return nil, errors.WithStack(domainerrors.ErrForbidden)
	}

	return user, nil
}
