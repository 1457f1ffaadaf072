package service

import (
	"context"

	"makonmed/auth-service/internal/app/auth/entity"
	"makonmed/auth-service/internal/app/auth/util"

	"github.com/google/uuid"
)

// AuthServiceInterface операции аутентификации
type AuthServiceInterface interface {
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*entity.TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID, accessToken string) error
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	ValidateToken(ctx context.Context, token string) (*util.JWTClaims, error)
}

// UserServiceInterface управление пользователями админки
type UserServiceInterface interface {
	CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	ListUsers(ctx context.Context) ([]entity.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *entity.UpdateUserRequest) (*entity.User, error)
	UpdateUserStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) (*entity.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
