package impl

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shilwantharshal/mini-user-management/internal/domain/entity"
	domainerrors "github.com/shilwantharshal/mini-user-management/internal/domain/errors"
	"github.com/shilwantharshal/mini-user-management/internal/errors"
)

type adminServiceFixtures struct {
	service  *adminService
	userRepo *fakeUserRepository
}

func createTestAdminService() adminServiceFixtures {
	userRepo := newFakeUserRepository()
	svc := NewAdminService(userRepo, newDiscardLogger())

	return adminServiceFixtures{
		service:  svc.(*adminService),
		userRepo: userRepo,
	}
}

// seedUsers stores n users with strictly increasing creation times, so
// user n-1 is the newest.
func (fx adminServiceFixtures) seedUsers(n int) []*entity.User {
	base := time.Now().UTC().Add(-time.Duration(n) * time.Minute)
	users := make([]*entity.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, fx.userRepo.seed(&entity.User{
			Email:     fmt.Sprintf("user%02d@example.com", i),
			FullName:  fmt.Sprintf("User %02d", i),
			Role:      entity.RoleUser,
			Status:    entity.StatusActive,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	return users
}

func TestAdminService_ListUsers_Pagination(t *testing.T) {
	fx := createTestAdminService()
	ctx := context.Background()
	seeded := fx.seedUsers(25)

	page1, err := fx.service.ListUsers(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(25), page1.Total)
	assert.Equal(t, int64(3), page1.Pages)
	assert.Equal(t, 1, page1.CurrentPage)
	require.Len(t, page1.Users, 10)
	// Newest first.
	assert.Equal(t, seeded[24].Email, page1.Users[0].Email)
	assert.Equal(t, seeded[15].Email, page1.Users[9].Email)

	page3, err := fx.service.ListUsers(ctx, 3)
	require.NoError(t, err)
	require.Len(t, page3.Users, 5)
	assert.Equal(t, seeded[0].Email, page3.Users[4].Email)

	beyond, err := fx.service.ListUsers(ctx, 4)
	require.NoError(t, err)
	assert.Empty(t, beyond.Users)
	assert.Equal(t, int64(25), beyond.Total)
}

func TestAdminService_ListUsers_PageClampedToOne(t *testing.T) {
	fx := createTestAdminService()
	ctx := context.Background()
	fx.seedUsers(3)

	output, err := fx.service.ListUsers(ctx, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, output.CurrentPage)
	assert.Len(t, output.Users, 3)
}

func TestAdminService_ListUsers_OmitsPasswordHash(t *testing.T) {
	fx := createTestAdminService()
	ctx := context.Background()
	fx.userRepo.seed(&entity.User{
		Email:        "secret@example.com",
		PasswordHash: "hashed:Strong@123",
		FullName:     "Secret User",
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
	})

	output, err := fx.service.ListUsers(ctx, 1)

	require.NoError(t, err)
	require.Len(t, output.Users, 1)
	assert.Empty(t, output.Users[0].PasswordHash)
}

func TestAdminService_SetStatus(t *testing.T) {
	fx := createTestAdminService()
	ctx := context.Background()
	user := fx.userRepo.seed(&entity.User{
		Email:  "target@example.com",
		Role:   entity.RoleUser,
		Status: entity.StatusActive,
	})

	require.NoError(t, fx.service.SetStatus(ctx, user.ID, entity.StatusInactive))
	assert.Equal(t, entity.StatusInactive, fx.userRepo.users[user.ID].Status)

	require.NoError(t, fx.service.SetStatus(ctx, user.ID, entity.StatusActive))
	assert.Equal(t, entity.StatusActive, fx.userRepo.users[user.ID].Status)
}

func TestAdminService_SetStatus_InvalidStatus(t *testing.T) {
	fx := createTestAdminService()

	err := fx.service.SetStatus(context.Background(), primitive.NewObjectID().Hex(), entity.Status("parked"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	assert.Zero(t, fx.userRepo.updateCalls)
}

func TestAdminService_SetRole(t *testing.T) {
	fx := createTestAdminService()
	ctx := context.Background()
	user := fx.userRepo.seed(&entity.User{
		Email:  "promote@example.com",
		Role:   entity.RoleUser,
		Status: entity.StatusActive,
	})

	require.NoError(t, fx.service.SetRole(ctx, user.ID, entity.RoleAdmin))
	assert.Equal(t, entity.RoleAdmin, fx.userRepo.users[user.ID].Role)
}

func TestAdminService_SetRole_InvalidRole(t *testing.T) {
	fx := createTestAdminService()

	err := fx.service.SetRole(context.Background(), primitive.NewObjectID().Hex(), entity.Role("superuser"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAdminService_TargetErrors(t *testing.T) {
	fx := createTestAdminService()
	ctx := context.Background()

	malformedErr := fx.service.SetRole(ctx, "not-a-hex-id", entity.RoleAdmin)
	require.Error(t, malformedErr)
	assert.True(t, errors.Is(malformedErr, domainerrors.ErrInvalidUserID))

	absentErr := fx.service.SetRole(ctx, primitive.NewObjectID().Hex(), entity.RoleAdmin)
	require.Error(t, absentErr)
	assert.True(t, errors.Is(absentErr, domainerrors.ErrUserNotFound))
}
