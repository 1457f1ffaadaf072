package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"makonmed/auth-service/internal/app/auth/entity"
	"makonmed/auth-service/internal/app/auth/repository"
	"makonmed/auth-service/internal/app/auth/util"

	"github.com/google/uuid"
)

// UserService управляет пользователями админки
type UserService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// CreateUser создает нового пользователя админки
func (s *UserService) CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	passwordHash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Role:         req.Role,
		Status:       entity.UserStatusActive,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser получает пользователя по ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// ListUsers получает всех пользователей
func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// UpdateUser меняет имя или роль пользователя
// Понижение последнего админа запрещено
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req *entity.UpdateUserRequest) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if req.Role != "" && req.Role != user.Role && user.Role == entity.RoleAdmin {
		if err := s.ensureNotLastAdmin(ctx, id); err != nil {
			return nil, err
		}
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = req.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// UpdateUserStatus блокирует или разблокирует учетную запись
// Блокировка отзывает все refresh токены пользователя
func (s *UserService) UpdateUserStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if status == entity.UserStatusBlocked && user.Role == entity.RoleAdmin {
		if err := s.ensureNotLastAdmin(ctx, id); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}

	user.Status = status

	if status == entity.UserStatusBlocked {
		if err := s.tokenRepo.DeleteUserRefreshTokens(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to revoke user tokens: %w", err)
		}
	}

	return user, nil
}

// DeleteUser удаляет пользователя и его сессии
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.Role == entity.RoleAdmin {
		if err := s.ensureNotLastAdmin(ctx, id); err != nil {
			return err
		}
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := s.tokenRepo.DeleteUserRefreshTokens(ctx, id); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}

	return nil
}

// ensureNotLastAdmin проверяет, что кроме excludeID остается хотя бы один активный админ
func (s *UserService) ensureNotLastAdmin(ctx context.Context, excludeID uuid.UUID) error {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	for _, u := range users {
		if u.ID != excludeID && u.Role == entity.RoleAdmin && u.Status == entity.UserStatusActive {
			return nil
		}
	}

	return ErrLastAdmin
}
