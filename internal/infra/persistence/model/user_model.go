// Package model contains the persistence representations of domain
// entities, kept separate so driver concerns never leak into the domain.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shilwantharshal/mini-user-management/internal/domain/entity"
	"github.com/shilwantharshal/mini-user-management/internal/domain/repository"
)

// UserModel mirrors a document in the 'users' collection. MongoDB
// generates the ObjectID. The email field carries a unique index,
// created at startup.
type UserModel struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash,omitempty"`
	FullName     string             `bson:"full_name"`
	Role         string             `bson:"role"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
	LastLogin    *time.Time         `bson:"last_login"`
}

// CollectionUsers is the collection name backing UserModel.
const CollectionUsers = "users"

// ToDomain maps the persistence model back to a pure domain entity.
func (m *UserModel) ToDomain() *entity.User {
	return &entity.User{
		ID:           m.ID.Hex(),
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Role:         entity.Role(m.Role),
		Status:       entity.Status(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		LastLogin:    m.LastLogin,
	}
}

// FromDomain maps a domain entity to its persistence model. An empty
// entity id yields a zero ObjectID so the store generates one on insert.
func FromDomain(user *entity.User) (*UserModel, error) {
	m := &UserModel{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		FullName:     user.FullName,
		Role:         user.Role.String(),
		Status:       user.Status.String(),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
		LastLogin:    user.LastLogin,
	}

	if user.ID != "" {
		oid, err := primitive.ObjectIDFromHex(user.ID)
		if err != nil {
			return nil, repository.ErrInvalidUserID
		}
		m.ID = oid
	}

	return m, nil
}
