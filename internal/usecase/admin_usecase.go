package usecase

import (
	"context"

	"github.com/shilwantharshal/mini-user-management/internal/domain/entity"
)

// ChangeRoleInput defines the admin role assignment payload.
type ChangeRoleInput struct {
	Role string `json:"role" validate:"required"`
}

// UserListOutput returns one page of the admin user listing.
type UserListOutput struct {
	Users       []*entity.User
	Total       int64
	CurrentPage int
	Pages       int64
}

// AdminUsecase defines the administrative user management operations.
// Every operation here is gated on the admin role by the access control
// pipeline before it runs.
type AdminUsecase interface {
	// ListUsers returns the page-th page (1-based) of accounts, newest
	// first, with a fixed page size.
	ListUsers(ctx context.Context, page int) (*UserListOutput, error)

	// SetStatus activates or deactivates an account.
	SetStatus(ctx context.Context, userID string, status entity.Status) error

	// SetRole assigns a role to an account.
	SetRole(ctx context.Context, userID string, role entity.Role) error
}
