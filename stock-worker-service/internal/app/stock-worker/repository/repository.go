package repository

import (
	"context"
	"errors"
	"time"

	"makonmed/stock-worker-service/internal/app/stock-worker/entity"

	"github.com/google/uuid"
)

// ErrAuditExists возвращается при попытке повторно занять заказ под списание
var ErrAuditExists = errors.New("stock audit for order already exists")

// ProductRepository интерфейс для списания остатков в БД каталога
type ProductRepository interface {
	// DecrementStock списывает остатки по всем позициям в одной транзакции.
	// Отсутствующий товар не прерывает списание: позиция помечается missing.
	DecrementStock(ctx context.Context, items []entity.StockDecrementRequest) ([]entity.StockDecrementResult, error)

	// GetAmount возвращает текущий остаток товара
	GetAmount(ctx context.Context, productID uuid.UUID) (int, error)
}

// OrderRepository интерфейс для чтения завершенных заказов из БД Orders Service
type OrderRepository interface {
	// GetCompletedSince получает заказы, завершенные после указанного времени
	GetCompletedSince(ctx context.Context, since time.Time) ([]entity.CompletedOrder, error)
}

// AuditRepository интерфейс для журнала списаний в MongoDB
type AuditRepository interface {
	// Create пишет запись аудита. Уникальный индекс по order_id делает
	// вставку захватом заказа: второй писатель получает ErrAuditExists.
	Create(ctx context.Context, audit *entity.StockAudit) error

	// SetResults дописывает результаты списания в ранее созданную запись
	SetResults(ctx context.Context, orderID uuid.UUID, items []entity.StockAuditItem) error

	// Delete удаляет запись аудита, освобождая заказ для повторной обработки
	Delete(ctx context.Context, orderID uuid.UUID) error

	// HasOrderAudit проверяет, было ли уже списание по заказу
	HasOrderAudit(ctx context.Context, orderID uuid.UUID) (bool, error)
}

// CheckpointRepository интерфейс для чекпоинта сверки в Redis
type CheckpointRepository interface {
	// Get возвращает время последней сверки; нулевое время, если чекпоинта нет
	Get(ctx context.Context) (time.Time, error)

	// Set сохраняет время последней сверки
	Set(ctx context.Context, t time.Time) error
}
