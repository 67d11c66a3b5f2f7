// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "github.com/shilwantharshal/mini-user-management/internal/delivery/context"
	"github.com/shilwantharshal/mini-user-management/internal/domain/entity"
	domainerrors "github.com/shilwantharshal/mini-user-management/internal/domain/errors"
	"github.com/shilwantharshal/mini-user-management/internal/domain/repository"
	"github.com/shilwantharshal/mini-user-management/internal/domain/service"
	"github.com/shilwantharshal/mini-user-management/internal/domain/validate"
	"github.com/shilwantharshal/mini-user-management/internal/usecase"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup orchestrates account creation: validation, uniqueness check,
// hashing, insert, and token issuance. Validation short-circuits before
// any hashing or store write.
func (srv *accountService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	email := validate.NormalizeEmail(input.Email)
	fullName := strings.TrimSpace(input.FullName)

	if email == "" || input.Password == "" || fullName == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email, password and full_name are required")
	}
	if !validate.IsValidEmail(email) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid email format")
	}
	if !validate.IsStrongPassword(input.Password) {
		return nil, errors.WithStack(domainerrors.ErrWeakPassword)
	}

	srv.log(ctx).Info("Starting signup", slog.String("email", email))

	// Early duplicate check. The unique index on email is the hard
	// guarantee; this read keeps the common case cheap.
	if _, err := srv.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, errors.WithStack(domainerrors.ErrDuplicateEmail)
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email uniqueness")
	}

	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during signup")
	}

	newUser := &entity.User{
		Email:        email,
		PasswordHash: hashed,
		FullName:     fullName,
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		// A concurrent signup with the same email loses here.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, errors.WithStack(domainerrors.ErrDuplicateEmail)
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	token, err := srv.tokenService.Generate(newUser.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token after signup")
	}

	srv.log(ctx).Debug("Signup completed", slog.String("userID", newUser.ID))

	return &usecase.AuthOutput{AccessToken: token, User: newUser}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password yield the same error so callers cannot enumerate accounts;
// the status gate only runs after the credentials verified.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := validate.NormalizeEmail(input.Email)

	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email and password are required")
	}

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	if user.Status != entity.StatusActive {
		return nil, errors.WithStack(domainerrors.ErrAccountInactive)
	}

	now := time.Now().UTC()
	if err := srv.userRepo.Update(ctx, user.ID, repository.UserUpdate{LastLogin: &now}); err != nil {
		return nil, errors.Wrap(err, "failed to record login time")
	}
	user.LastLogin = &now
	user.UpdatedAt = now

	token, err := srv.tokenService.Generate(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token after login")
	}

	srv.log(ctx).Info("Login succeeded", slog.String("userID", user.ID))

	return &usecase.AuthOutput{AccessToken: token, User: user}, nil
}

// UpdateProfile changes the caller's display name and email after
// verifying the new email is not held by another account.
func (srv *accountService) UpdateProfile(ctx context.Context, userID string, input *usecase.UpdateProfileInput) error {
	fullName := strings.TrimSpace(input.FullName)
	email := validate.NormalizeEmail(input.Email)

	if fullName == "" || email == "" {
		return domainerrors.ErrValidationFailed.WithDetails("full_name and email are required")
	}
	if !validate.IsValidEmail(email) {
		return domainerrors.ErrValidationFailed.WithDetails("invalid email format")
	}

	// The caller keeping their own email is not a conflict.
	existing, err := srv.userRepo.FindByEmail(ctx, email)
	if err == nil && existing.ID != userID {
		return errors.WithStack(domainerrors.ErrEmailInUse)
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check email availability")
	}

	update := repository.UserUpdate{FullName: &fullName, Email: &email}
	if err := srv.userRepo.Update(ctx, userID, update); err != nil {
		return srv.mapTargetError(err, "failed to update profile")
	}

	srv.log(ctx).Info("Profile updated", slog.String("userID", userID))

	return nil
}

// ChangePassword rotates the caller's credential. Format validation runs
// before any store read; the current password must verify before the new
// one is accepted.
func (srv *accountService) ChangePassword(ctx context.Context, userID string, input *usecase.ChangePasswordInput) error {
	if input.CurrentPassword == "" || input.NewPassword == "" || input.ConfirmPassword == "" {
		return domainerrors.ErrValidationFailed.WithDetails("current_password, new_password and confirm_password are required")
	}
	if input.NewPassword != input.ConfirmPassword {
		return errors.WithStack(domainerrors.ErrPasswordMismatch)
	}
	if !validate.IsStrongPassword(input.NewPassword) {
		return errors.WithStack(domainerrors.ErrWeakPassword)
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return srv.mapTargetError(err, "failed to load account for password change")
	}

	if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
		return errors.WithStack(domainerrors.ErrInvalidCurrentPassword)
	}

	hashed, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during password change", slog.Any("error", err))

		return errors.Wrap(err, "failed to hash new password")
	}

	if err := srv.userRepo.Update(ctx, userID, repository.UserUpdate{PasswordHash: &hashed}); err != nil {
		return srv.mapTargetError(err, "failed to store new password")
	}

	srv.log(ctx).Info("Password changed", slog.String("userID", userID))

	return nil
}

// mapTargetError converts repository sentinels for an operation target
// into their domain errors, wrapping anything unexpected.
func (srv *accountService) mapTargetError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrInvalidUserID):
		return errors.WithStack(domainerrors.ErrInvalidUserID)
	case errors.Is(err, repository.ErrUserNotFound):
		return errors.WithStack(domainerrors.ErrUserNotFound)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return errors.WithStack(domainerrors.ErrEmailInUse)
	default:
		return errors.Wrap(err, message)
	}
}
