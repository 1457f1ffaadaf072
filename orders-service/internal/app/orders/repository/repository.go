package repository

import (
	"context"
	"errors"

	"makonmed/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrOrderNotFound = errors.New("order not found")
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetAll(ctx context.Context) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[entity.OrderStatus]int64, error)
}

// CartRepository хранит корзины покупателей в Redis
type CartRepository interface {
	Get(ctx context.Context, cartID string) (*entity.Cart, error)
	AddItem(ctx context.Context, cartID string, productID uuid.UUID) (int, error)
	RemoveItem(ctx context.Context, cartID string, productID uuid.UUID) (int, error)
	SetItem(ctx context.Context, cartID string, productID uuid.UUID, quantity int) error
	Clear(ctx context.Context, cartID string) error
}
