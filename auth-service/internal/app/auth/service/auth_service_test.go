package service

import (
	"context"
	"testing"
	"time"

	"makonmed/auth-service/internal/app/auth/entity"
	"makonmed/auth-service/internal/app/auth/repository"
	"makonmed/auth-service/internal/app/auth/repository/mocks"
	"makonmed/auth-service/internal/app/auth/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestAuthService() (*AuthService, *mocks.MockUserRepository, *mocks.MockTokenRepository) {
	userRepo := new(mocks.MockUserRepository)
	tokenRepo := new(mocks.MockTokenRepository)
	jwtManager := util.NewJWTManager("test-secret", 15*time.Minute, 168*time.Hour)
	return NewAuthService(userRepo, tokenRepo, jwtManager), userRepo, tokenRepo
}

func activeUser(password string) *entity.User {
	hash, _ := util.HashPassword(password)
	return &entity.User{
		ID:           uuid.New(),
		Email:        "admin@makonmed.uz",
		PasswordHash: hash,
		Name:         "Admin",
		Role:         entity.RoleAdmin,
		Status:       entity.UserStatusActive,
		CreatedAt:    time.Now(),
	}
}

func TestLogin_Success(t *testing.T) {
	svc, userRepo, tokenRepo := newTestAuthService()
	ctx := context.Background()

	user := activeUser("secret123")
	userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)
	tokenRepo.On("SaveRefreshToken", ctx, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	resp, err := svc.Login(ctx, &entity.LoginRequest{Email: user.Email, Password: "secret123"})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.Equal(t, user.Email, resp.User.Email)
	tokenRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, userRepo, tokenRepo := newTestAuthService()
	ctx := context.Background()

	user := activeUser("secret123")
	userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

	_, err := svc.Login(ctx, &entity.LoginRequest{Email: user.Email, Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	tokenRepo.AssertNotCalled(t, "SaveRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, userRepo, _ := newTestAuthService()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "nobody@makonmed.uz").Return(nil, repository.ErrUserNotFound)

	_, err := svc.Login(ctx, &entity.LoginRequest{Email: "nobody@makonmed.uz", Password: "secret123"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_BlockedUserRejectedEvenWithCorrectPassword(t *testing.T) {
	svc, userRepo, tokenRepo := newTestAuthService()
	ctx := context.Background()

	user := activeUser("secret123")
	user.Status = entity.UserStatusBlocked
	userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

	_, err := svc.Login(ctx, &entity.LoginRequest{Email: user.Email, Password: "secret123"})

	assert.ErrorIs(t, err, ErrUserBlocked)
	tokenRepo.AssertNotCalled(t, "SaveRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshTokens_RotatesToken(t *testing.T) {
	svc, userRepo, tokenRepo := newTestAuthService()
	ctx := context.Background()

	user := activeUser("secret123")
	stored := &entity.RefreshToken{UserID: user.ID, Token: "old-token"}

	tokenRepo.On("GetRefreshToken", ctx, "old-token").Return(stored, nil)
	tokenRepo.On("DeleteRefreshToken", ctx, "old-token").Return(nil)
	userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
	tokenRepo.On("SaveRefreshToken", ctx, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	pair, err := svc.RefreshTokens(ctx, "old-token")

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEqual(t, "old-token", pair.RefreshToken)
	tokenRepo.AssertCalled(t, "DeleteRefreshToken", ctx, "old-token")
}

func TestRefreshTokens_UnknownToken(t *testing.T) {
	svc, _, tokenRepo := newTestAuthService()
	ctx := context.Background()

	tokenRepo.On("GetRefreshToken", ctx, "missing").Return(nil, repository.ErrTokenNotFound)

	_, err := svc.RefreshTokens(ctx, "missing")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshTokens_BlockedUser(t *testing.T) {
	svc, userRepo, tokenRepo := newTestAuthService()
	ctx := context.Background()

	user := activeUser("secret123")
	user.Status = entity.UserStatusBlocked
	stored := &entity.RefreshToken{UserID: user.ID, Token: "old-token"}

	tokenRepo.On("GetRefreshToken", ctx, "old-token").Return(stored, nil)
	tokenRepo.On("DeleteRefreshToken", ctx, "old-token").Return(nil)
	userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

	_, err := svc.RefreshTokens(ctx, "old-token")

	assert.ErrorIs(t, err, ErrUserBlocked)
	tokenRepo.AssertNotCalled(t, "SaveRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogout_BlacklistsAccessTokenAndRevokesRefresh(t *testing.T) {
	svc, _, tokenRepo := newTestAuthService()
	ctx := context.Background()

	user := activeUser("secret123")
	jwtManager := util.NewJWTManager("test-secret", 15*time.Minute, 168*time.Hour)
	accessToken, err := jwtManager.GenerateAccessToken(user)
	assert.NoError(t, err)

	tokenRepo.On("AddToBlacklist", ctx, accessToken, mock.AnythingOfType("time.Time")).Return(nil)
	tokenRepo.On("DeleteUserRefreshTokens", ctx, user.ID).Return(nil)

	err = svc.Logout(ctx, user.ID, accessToken)

	assert.NoError(t, err)
	tokenRepo.AssertExpectations(t)
}

func TestValidateToken_BlacklistedTokenRejected(t *testing.T) {
	svc, _, tokenRepo := newTestAuthService()
	ctx := context.Background()

	tokenRepo.On("IsBlacklisted", ctx, "some-token").Return(true, nil)

	_, err := svc.ValidateToken(ctx, "some-token")

	assert.ErrorIs(t, err, util.ErrInvalidToken)
}
