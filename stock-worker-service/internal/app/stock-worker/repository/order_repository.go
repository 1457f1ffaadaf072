package repository

import (
	"context"
	"fmt"
	"time"

	"makonmed/stock-worker-service/internal/app/stock-worker/entity"
	"makonmed/pkg/metrics"

	"gorm.io/gorm"
)

// orderRepository читает завершенные заказы из БД Orders Service
// Используется только джобой сверки остатков
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository создает новый репозиторий заказов
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// GetCompletedSince получает заказы, завершенные после указанного времени.
// Фильтр по updated_at, а не created_at: заказ завершается позже, чем
// создается, и по дате создания выпадал бы из окна сверки
func (r *orderRepository) GetCompletedSince(ctx context.Context, since time.Time) ([]entity.CompletedOrder, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "orders")
	defer timer.ObserveDuration()

	var orders []entity.CompletedOrder
	result := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ? AND updated_at > ?", "completed", since).
		Order("updated_at ASC").
		Find(&orders)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to get completed orders: %w", result.Error)
	}

	return orders, nil
}
