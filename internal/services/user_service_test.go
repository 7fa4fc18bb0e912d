package services

import (
	"context"
	"testing"

	"carpool/internal/apperrors"
	"carpool/internal/auth"
	"carpool/internal/models"
	"carpool/internal/repositories/interfaces"
	"carpool/internal/repositories/memory"
	"carpool/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo interfaces.UserRepository, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Name:   "Sam",
		Email:  string(role) + "@example.com",
		Role:   role,
		Active: true,
	}
	require.NoError(t, user.SetPassword("correct-horse"))
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func identityFor(user *models.User) auth.Identity {
	return auth.Identity{UserID: user.ID, Name: user.Name, Role: user.Role, Active: user.Active}
}

func TestUpdateProfileVehicleFieldsDriverOnly(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := NewUserService(repo, logger.NewNop())
	ctx := context.Background()

	driver := seedUser(t, repo, models.RoleDriver)
	passenger := seedUser(t, repo, models.RolePassenger)

	updated, err := svc.UpdateProfile(ctx, identityFor(driver), &UpdateProfileRequest{
		Name:          "Sam D",
		Phone:         "555-0101",
		VehicleModel:  "Swift",
		VehicleNumber: "MH12AB1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "Swift", updated.VehicleModel)

	updated, err = svc.UpdateProfile(ctx, identityFor(passenger), &UpdateProfileRequest{
		Name:         "Sam P",
		VehicleModel: "Swift",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sam P", updated.Name)
	assert.Empty(t, updated.VehicleModel)
}

func TestAdminSurfaceRequiresAdminRole(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := NewUserService(repo, logger.NewNop())
	ctx := context.Background()

	driver := seedUser(t, repo, models.RoleDriver)
	admin := seedUser(t, repo, models.RoleAdmin)

	_, err := svc.ListUsers(ctx, identityFor(driver))
	assert.ErrorIs(t, err, apperrors.ErrRoleViolation)

	users, err := svc.ListUsers(ctx, identityFor(admin))
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = svc.SetUserStatus(ctx, identityFor(driver), driver.ID, false)
	assert.ErrorIs(t, err, apperrors.ErrRoleViolation)

	deactivated, err := svc.SetUserStatus(ctx, identityFor(admin), driver.ID, false)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)
}
