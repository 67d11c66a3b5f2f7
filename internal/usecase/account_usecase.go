// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/shilwantharshal/mini-user-management/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to create a new account.
type SignupInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileInput defines the self-service profile mutation payload.
type UpdateProfileInput struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required"`
}

// ChangePasswordInput defines the credential rotation payload.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// --- Output DTOs ---

// AuthOutput returns the issued token and the account it belongs to
// after a successful signup or login.
type AuthOutput struct {
	AccessToken string
	User        *entity.User
}

// AccountUsecase defines the interface for account self-service operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	UpdateProfile(ctx context.Context, userID string, input *UpdateProfileInput) error
	ChangePassword(ctx context.Context, userID string, input *ChangePasswordInput) error
}
