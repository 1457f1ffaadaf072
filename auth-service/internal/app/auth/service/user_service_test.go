package service

import (
	"context"
	"testing"
	"time"

	"makonmed/auth-service/internal/app/auth/entity"
	"makonmed/auth-service/internal/app/auth/repository"
	"makonmed/auth-service/internal/app/auth/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestUserService() (*UserService, *mocks.MockUserRepository, *mocks.MockTokenRepository) {
	userRepo := new(mocks.MockUserRepository)
	tokenRepo := new(mocks.MockTokenRepository)
	return NewUserService(userRepo, tokenRepo), userRepo, tokenRepo
}

func adminUser() entity.User {
	return entity.User{
		ID:        uuid.New(),
		Email:     "admin@makonmed.uz",
		Name:      "Admin",
		Role:      entity.RoleAdmin,
		Status:    entity.UserStatusActive,
		CreatedAt: time.Now(),
	}
}

func TestCreateUser_Success(t *testing.T) {
	svc, userRepo, _ := newTestUserService()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "new@makonmed.uz").Return(nil, repository.ErrUserNotFound)
	userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := svc.CreateUser(ctx, &entity.CreateUserRequest{
		Email:    "new@makonmed.uz",
		Password: "secret123",
		Name:     "New Staff",
		Role:     entity.RoleStaff,
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.UserStatusActive, user.Status)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, userRepo, _ := newTestUserService()
	ctx := context.Background()

	existing := adminUser()
	userRepo.On("GetByEmail", ctx, existing.Email).Return(&existing, nil)

	_, err := svc.CreateUser(ctx, &entity.CreateUserRequest{
		Email:    existing.Email,
		Password: "secret123",
		Name:     "Dup",
		Role:     entity.RoleStaff,
	})

	assert.ErrorIs(t, err, ErrUserExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateUserStatus_BlockRevokesRefreshTokens(t *testing.T) {
	svc, userRepo, tokenRepo := newTestUserService()
	ctx := context.Background()

	staff := adminUser()
	staff.Role = entity.RoleStaff

	userRepo.On("GetByID", ctx, staff.ID).Return(&staff, nil)
	userRepo.On("UpdateStatus", ctx, staff.ID, entity.UserStatusBlocked).Return(nil)
	tokenRepo.On("DeleteUserRefreshTokens", ctx, staff.ID).Return(nil)

	user, err := svc.UpdateUserStatus(ctx, staff.ID, entity.UserStatusBlocked)

	assert.NoError(t, err)
	assert.Equal(t, entity.UserStatusBlocked, user.Status)
	tokenRepo.AssertCalled(t, "DeleteUserRefreshTokens", ctx, staff.ID)
}

func TestUpdateUserStatus_LastAdminCannotBeBlocked(t *testing.T) {
	svc, userRepo, tokenRepo := newTestUserService()
	ctx := context.Background()

	admin := adminUser()

	userRepo.On("GetByID", ctx, admin.ID).Return(&admin, nil)
	userRepo.On("List", ctx).Return([]entity.User{admin}, nil)

	_, err := svc.UpdateUserStatus(ctx, admin.ID, entity.UserStatusBlocked)

	assert.ErrorIs(t, err, ErrLastAdmin)
	userRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	tokenRepo.AssertNotCalled(t, "DeleteUserRefreshTokens", mock.Anything, mock.Anything)
}

func TestUpdateUserStatus_BlockAllowedWhenAnotherActiveAdminExists(t *testing.T) {
	svc, userRepo, tokenRepo := newTestUserService()
	ctx := context.Background()

	admin := adminUser()
	other := adminUser()

	userRepo.On("GetByID", ctx, admin.ID).Return(&admin, nil)
	userRepo.On("List", ctx).Return([]entity.User{admin, other}, nil)
	userRepo.On("UpdateStatus", ctx, admin.ID, entity.UserStatusBlocked).Return(nil)
	tokenRepo.On("DeleteUserRefreshTokens", ctx, admin.ID).Return(nil)

	_, err := svc.UpdateUserStatus(ctx, admin.ID, entity.UserStatusBlocked)

	assert.NoError(t, err)
}

func TestUpdateUser_LastAdminCannotBeDemoted(t *testing.T) {
	svc, userRepo, _ := newTestUserService()
	ctx := context.Background()

	admin := adminUser()

	userRepo.On("GetByID", ctx, admin.ID).Return(&admin, nil)
	userRepo.On("List", ctx).Return([]entity.User{admin}, nil)

	_, err := svc.UpdateUser(ctx, admin.ID, &entity.UpdateUserRequest{Role: entity.RoleStaff})

	assert.ErrorIs(t, err, ErrLastAdmin)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteUser_LastAdminProtected(t *testing.T) {
	svc, userRepo, _ := newTestUserService()
	ctx := context.Background()

	admin := adminUser()
	blockedAdmin := adminUser()
	blockedAdmin.Status = entity.UserStatusBlocked

	userRepo.On("GetByID", ctx, admin.ID).Return(&admin, nil)
	// Заблокированный админ не считается
	userRepo.On("List", ctx).Return([]entity.User{admin, blockedAdmin}, nil)

	err := svc.DeleteUser(ctx, admin.ID)

	assert.ErrorIs(t, err, ErrLastAdmin)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteUser_RevokesSessions(t *testing.T) {
	svc, userRepo, tokenRepo := newTestUserService()
	ctx := context.Background()

	staff := adminUser()
	staff.Role = entity.RoleStaff

	userRepo.On("GetByID", ctx, staff.ID).Return(&staff, nil)
	userRepo.On("Delete", ctx, staff.ID).Return(nil)
	tokenRepo.On("DeleteUserRefreshTokens", ctx, staff.ID).Return(nil)

	err := svc.DeleteUser(ctx, staff.ID)

	assert.NoError(t, err)
	tokenRepo.AssertExpectations(t)
}

func TestGetUser_NotFound(t *testing.T) {
	svc, userRepo, _ := newTestUserService()
	ctx := context.Background()

	id := uuid.New()
	userRepo.On("GetByID", ctx, id).Return(nil, repository.ErrUserNotFound)

	_, err := svc.GetUser(ctx, id)

	assert.ErrorIs(t, err, ErrUserNotFound)
}
