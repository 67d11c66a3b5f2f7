package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shilwantharshal/mini-user-management/internal/domain/entity"
	"github.com/shilwantharshal/mini-user-management/internal/domain/repository"
	"github.com/shilwantharshal/mini-user-management/internal/domain/service"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepository is an in-memory UserRepository. It mirrors the store's
// id discipline: lookups by a malformed hex id fail with ErrInvalidUserID,
// well-formed but absent ids with ErrUserNotFound.
type fakeUserRepository struct {
	users map[string]*entity.User

	findByIDCalls    int
	findByEmailCalls int
	updateCalls      int

	createErr error
	updateErr error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*entity.User)}
}

// seed inserts a user directly, assigning an id when missing.
func (r *fakeUserRepository) seed(user *entity.User) *entity.User {
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.users[user.ID] = user

	return user
}

func (r *fakeUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	r.findByIDCalls++

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repository.ErrInvalidUserID
	}

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (r *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.findByEmailCalls++

	for _, user := range r.users {
		if user.Email == email {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepository) Create(ctx context.Context, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}

	user.ID = primitive.NewObjectID().Hex()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	copied := *user
	r.users[user.ID] = &copied

	return nil
}

func (r *fakeUserRepository) Update(ctx context.Context, id string, update repository.UserUpdate) error {
	r.updateCalls++

	if r.updateErr != nil {
		return r.updateErr
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return repository.ErrInvalidUserID
	}

	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	if update.Email != nil {
		for otherID, other := range r.users {
			if otherID != id && other.Email == *update.Email {
				return repository.ErrDuplicateEmail
			}
		}
		user.Email = *update.Email
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.Status != nil {
		user.Status = *update.Status
	}
	if update.LastLogin != nil {
		user.LastLogin = update.LastLogin
	}
	user.UpdatedAt = time.Now().UTC()

	return nil
}

func (r *fakeUserRepository) List(ctx context.Context, offset, limit int64) ([]*entity.User, int64, error) {
	all := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		copied.PasswordHash = ""
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return all[offset:end], total, nil
}

// fakeHasher is a deterministic PasswordHasher for tests.
type fakeHasher struct {
	hashErr error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}

	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService issues reversible tokens so tests can assert on the
// subject without real signing.
type fakeTokenService struct {
	generateErr error
}

func (s *fakeTokenService) Generate(userID string) (string, error) {
	if s.generateErr != nil {
		return "", s.generateErr
	}

	return "token-for-" + userID, nil
}

func (s *fakeTokenService) Validate(tokenString string) (*service.Claims, error) {
	userID, ok := strings.CutPrefix(tokenString, "token-for-")
	if !ok {
		return nil, fmt.Errorf("malformed token %q", tokenString)
	}

	return &service.Claims{UserID: userID}, nil
}

type accountServiceFixtures struct {
	service      *accountService
	userRepo     *fakeUserRepository
	hasher       *fakeHasher
	tokenService *fakeTokenService
}

func createTestAccountService() accountServiceFixtures {
	userRepo := newFakeUserRepository()
	hasher := &fakeHasher{}
	tokenService := &fakeTokenService{}

	svc := NewAccountService(AccountServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       newDiscardLogger(),
	})

	return accountServiceFixtures{
		service:      svc.(*accountService),
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

// seedActiveUser stores an active user with the given credentials.
func (fx accountServiceFixtures) seedActiveUser(email, password string) *entity.User {
	return fx.userRepo.seed(&entity.User{
		Email:        email,
		PasswordHash: "hashed:" + password,
		FullName:     "Seeded User",
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
	})
}
