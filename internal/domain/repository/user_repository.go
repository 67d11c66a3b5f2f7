// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shilwantharshal/mini-user-management/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidUserID is returned when an identifier is not well-formed.
// It is distinct from ErrUserNotFound: a malformed id can never match a
// record, and callers surface the two differently.
var ErrInvalidUserID = errors.New("invalid user id")

// ErrDuplicateEmail is returned when an insert collides with the unique
// email constraint. The store enforces this as a hard invariant; the
// read-before-write check in the signup flow is racy on its own.
var ErrDuplicateEmail = errors.New("email already exists")

// UserUpdate describes a partial field-set merge. Nil fields are left
// untouched. The repository stamps the record's updated_at as part of
// the same logical operation.
type UserUpdate struct {
	Email        *string
	FullName     *string
	PasswordHash *string
	Role         *entity.Role
	Status       *entity.Status
	LastLogin    *time.Time
}

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
// All operations are atomic at the single-record level; no cross-record
// transactions are required or used.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	// Returns ErrInvalidUserID for a malformed id and ErrUserNotFound
	// for a well-formed but absent one.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindByEmail retrieves a single user by their normalized email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage, populating the
	// generated ID and creation timestamps on the passed entity.
	// Returns ErrDuplicateEmail if the email is already taken.
	Create(ctx context.Context, user *entity.User) error

	// Update applies a partial field-set merge to an existing record.
	Update(ctx context.Context, id string, update UserUpdate) error

	// List returns a page of users ordered by creation time, newest
	// first, together with the full unfiltered count. The projected
	// records never include the password hash.
	List(ctx context.Context, offset, limit int64) ([]*entity.User, int64, error)
}
