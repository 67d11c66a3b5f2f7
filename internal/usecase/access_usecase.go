package usecase

import (
	"context"

	"github.com/shilwantharshal/mini-user-management/internal/domain/entity"
)

// AccessControl is the gate in front of every protected operation. Given
// a presented token and the set of roles permitted for the operation
// (empty set = any authenticated role), it resolves the caller's account
// and enforces the preconditions in fixed order:
//
//  1. token verification           -> ErrUnauthenticated
//  2. account resolution           -> ErrInvalidAuthID / ErrUserNotFound
//  3. account status must be active -> ErrAccountInactive
//  4. role membership, when given  -> ErrForbidden
//
// The order must not change: each later check assumes the earlier ones
// held. An inactive admin is rejected for status, never let through on role.
type AccessControl interface {
	Authorize(ctx context.Context, token string, allowed entity.Roles) (*entity.User, error)
}
