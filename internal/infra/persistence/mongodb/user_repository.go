package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shilwantharshal/mini-user-management/internal/domain/entity"
	"github.com/shilwantharshal/mini-user-management/internal/domain/repository"
	"github.com/shilwantharshal/mini-user-management/internal/infra/persistence/model"
)

// userRepository implements the repository.UserRepository interface on a
// MongoDB collection. Every operation is a single-document command, so
// the store's per-document atomicity is the only atomicity used.
type userRepository struct {
	users *mongo.Collection
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{
		users: db.Collection(model.CollectionUsers),
	}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidUserID
	}

	var userM model.UserModel
	if err := repo.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&userM); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return userM.ToDomain(), nil
}

// FindByEmail retrieves a single user by their normalized email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.users.FindOne(ctx, bson.M{"email": email}).Decode(&userM); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return userM.ToDomain(), nil
}

// Create persists a new user document and writes the generated id and
// timestamps back onto the entity.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	userM, err := model.FromDomain(user)
	if err != nil {
		return err
	}

	result, err := repo.users.InsertOne(ctx, userM)
	if err != nil {
		// The unique email index rejects the losing side of a concurrent signup.
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateEmail
		}

		return errors.Wrap(err, "failed to insert user")
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return errors.New("unexpected inserted id type")
	}
	user.ID = oid.Hex()

	return nil
}

// Update applies a partial field-set merge, stamping updated_at as part
// of the same write.
func (repo *userRepository) Update(ctx context.Context, id string, update repository.UserUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidUserID
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.FullName != nil {
		set["full_name"] = *update.FullName
	}
	if update.PasswordHash != nil {
		set["password_hash"] = *update.PasswordHash
	}
	if update.Role != nil {
		set["role"] = update.Role.String()
	}
	if update.Status != nil {
		set["status"] = update.Status.String()
	}
	if update.LastLogin != nil {
		set["last_login"] = *update.LastLogin
	}

	result, err := repo.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateEmail
		}

		return errors.Wrap(err, "failed to update user")
	}

	if result.MatchedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// List returns a page of users ordered by creation time, newest first,
// together with the full unfiltered count. The password hash is excluded
// from the projection.
func (repo *userRepository) List(ctx context.Context, offset, limit int64) ([]*entity.User, int64, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit).
		SetProjection(bson.M{"password_hash": 0})

	cursor, err := repo.users.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list users")
	}
	defer cursor.Close(ctx)

	var users []*entity.User
	for cursor.Next(ctx) {
		var userM model.UserModel
		if err := cursor.Decode(&userM); err != nil {
			return nil, 0, errors.Wrap(err, "failed to decode user document")
		}
		users = append(users, userM.ToDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "failed to iterate user documents")
	}

	total, err := repo.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count users")
	}

	return users, total, nil
}
