package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserRole роль пользователя в админке
type UserRole string

const (
	RoleAdmin UserRole = "admin" // Полный доступ, включая управление пользователями
	RoleStaff UserRole = "staff" // Работа с каталогом и заказами
)

// UserStatus статус учетной записи
type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked" // Заблокированный пользователь не проходит аутентификацию
)

// User представляет пользователя админки
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"` // не возвращаем в JSON
	Name         string     `json:"name" db:"name"`
	Role         UserRole   `json:"role" db:"role"`
	Status       UserStatus `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// RefreshToken хранит refresh токены для обновления JWT
type RefreshToken struct {
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenPair содержит access и refresh токены
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // время жизни access token в секундах
}

// AuthResponse ответ на успешный вход
type AuthResponse struct {
	User   User      `json:"user"`
	Tokens TokenPair `json:"tokens"`
}
