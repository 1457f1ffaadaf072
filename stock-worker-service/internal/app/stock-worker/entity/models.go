package entity

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderEvent событие заказа из Kafka топика order_events
// Формат совпадает с тем, что публикует Orders Service
type OrderEvent struct {
	EventType   string           `json:"event_type"` // ORDER_CREATED, ORDER_COMPLETED
	OrderID     uuid.UUID        `json:"order_id"`
	OrderNumber int64            `json:"order_number"`
	TotalPrice  float64          `json:"total_price"`
	Status      string           `json:"status"`
	Items       []OrderItemEvent `json:"items,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
}

// OrderItemEvent позиция заказа в событии
type OrderItemEvent struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

const (
	EventTypeOrderCreated   = "ORDER_CREATED"
	EventTypeOrderCompleted = "ORDER_COMPLETED"
)

// Product остаток товара в БД каталога
// Worker трогает только поле amount, остальные колонки не читаем
type Product struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Amount int       `json:"amount" gorm:"not null;default:0"`
}

func (Product) TableName() string {
	return "products"
}

// CompletedOrder завершенный заказ из БД Orders Service (для сверки)
// UpdatedAt двигается при смене статуса: заказ, созданный до чекпоинта,
// но завершенный после него, все равно попадает в окно сверки
type CompletedOrder struct {
	ID          uuid.UUID            `json:"id" gorm:"type:uuid;primaryKey"`
	OrderNumber int64                `json:"order_number"`
	Status      string               `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Items       []CompletedOrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

func (CompletedOrder) TableName() string {
	return "orders"
}

// CompletedOrderItem позиция завершенного заказа
type CompletedOrderItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
}

func (CompletedOrderItem) TableName() string {
	return "order_items"
}

// Исход списания по одной позиции
const (
	DecrementOutcomeApplied = "applied" // Остаток уменьшен на полное количество
	DecrementOutcomeClamped = "clamped" // Остатка не хватило, списали до нуля
	DecrementOutcomeMissing = "missing" // Товар не найден в каталоге, позиция пропущена
)

// StockDecrementRequest запрос на списание остатка по позиции
type StockDecrementRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

// StockDecrementResult результат списания по позиции
type StockDecrementResult struct {
	ProductID uuid.UUID
	Requested int
	OldAmount int
	NewAmount int
	Outcome   string // applied, clamped, missing
}

// Источник обработки для аудита
const (
	AuditSourceEvent          = "event"          // Обработано по событию из Kafka
	AuditSourceReconciliation = "reconciliation" // Обработано джобой сверки
)

// StockAudit запись аудита списания остатков в MongoDB
type StockAudit struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID     string             `bson:"order_id" json:"order_id"`
	OrderNumber int64              `bson:"order_number" json:"order_number"`
	Source      string             `bson:"source" json:"source"` // event, reconciliation
	Items       []StockAuditItem   `bson:"items" json:"items"`
	ProcessedAt time.Time          `bson:"processed_at" json:"processed_at"`
}

// StockAuditItem исход списания по позиции в записи аудита
type StockAuditItem struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Requested int    `bson:"requested" json:"requested"`
	OldAmount int    `bson:"old_amount" json:"old_amount"`
	NewAmount int    `bson:"new_amount" json:"new_amount"`
	Outcome   string `bson:"outcome" json:"outcome"`
}

// Ключ чекпоинта сверки в Redis
const ReconciliationCheckpointKey = "stock_worker:reconciliation_checkpoint"
