package service

import (
	"context"

	"makonmed/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
)

// OrderServiceInterface определяет бизнес-операции с заказами
type OrderServiceInterface interface {
	SubmitOrder(ctx context.Context, req *entity.SubmitOrderRequest) (*entity.Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)
	GetAllOrders(ctx context.Context) ([]entity.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus entity.OrderStatus) (*entity.Order, error)
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
	GetOrderStats(ctx context.Context) (*entity.OrderStats, error)
}

// CartServiceInterface определяет операции с серверной корзиной
type CartServiceInterface interface {
	GetCart(ctx context.Context, cartID string) (*entity.CartResponse, error)
	AddItem(ctx context.Context, cartID string, productID uuid.UUID) (int, error)
	RemoveItem(ctx context.Context, cartID string, productID uuid.UUID) (int, error)
	SetItem(ctx context.Context, cartID string, productID uuid.UUID, quantity int) error
	ClearCart(ctx context.Context, cartID string) error
}
