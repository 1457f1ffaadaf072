package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus представляет статусы заказа
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"        // Новый, ожидает обработки
	OrderStatusProcessing OrderStatus = "processing" // В обработке
	OrderStatusCompleted  OrderStatus = "completed"  // Выполнен, остатки списаны
	OrderStatusCancelled  OrderStatus = "cancelled"  // Отменен
)

// IsFinal сообщает, является ли статус конечным
func (s OrderStatus) IsFinal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CustomerInfo контактные данные покупателя из формы оформления
type CustomerInfo struct {
	Name    string `json:"name" gorm:"column:customer_name;type:varchar(200);not null"`
	Phone   string `json:"phone" gorm:"column:customer_phone;type:varchar(32);not null"` // Нормализован к ведущему "+"
	Comment string `json:"comment,omitempty" gorm:"column:customer_comment;type:text"`
}

// Location геоданные покупателя на момент оформления (если удалось определить)
type Location struct {
	IP      string  `json:"ip,omitempty" gorm:"column:loc_ip;type:varchar(64)"`
	City    string  `json:"city,omitempty" gorm:"column:loc_city;type:varchar(100)"`
	Region  string  `json:"region,omitempty" gorm:"column:loc_region;type:varchar(100)"`
	Country string  `json:"country,omitempty" gorm:"column:loc_country;type:varchar(100)"`
	Lat     float64 `json:"lat,omitempty" gorm:"column:loc_lat"`
	Lng     float64 `json:"lng,omitempty" gorm:"column:loc_lng"`
}

// Order представляет заказ в системе
type Order struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	OrderNumber int64        `json:"order_number" gorm:"uniqueIndex;not null"` // Unix-время оформления в миллисекундах
	Customer    CustomerInfo `json:"customer" gorm:"embedded"`
	Location    Location     `json:"location" gorm:"embedded"`
	TotalPrice  float64      `json:"total_price" gorm:"type:decimal(12,2);not null"`
	Status      OrderStatus  `json:"status" gorm:"type:varchar(20);not null;default:'new'"`
	CreatedAt   time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"autoUpdateTime"` // По нему worker находит завершенные заказы при сверке
	Items       []OrderItem  `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName указывает имя таблицы для GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem представляет позицию в заказе
// Название и цена фиксируются на момент оформления
type OrderItem struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID `json:"product_id" gorm:"type:uuid;not null"`
	Name           string    `json:"name" gorm:"type:varchar(200);not null"`
	Quantity       int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	UnitPrice      float64   `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	TotalItemPrice float64   `json:"total_item_price" gorm:"type:decimal(12,2);not null"`
}

// TableName указывает имя таблицы для GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderStats количество заказов по статусам для дашборда админки
type OrderStats struct {
	New        int64 `json:"new"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
	Total      int64 `json:"total"`
}

// OrderEvent представляет событие заказа для Kafka
// ORDER_COMPLETED несет позиции, по которым worker списывает остатки
type OrderEvent struct {
	EventType   string           `json:"event_type"` // ORDER_CREATED, ORDER_COMPLETED
	OrderID     uuid.UUID        `json:"order_id"`
	OrderNumber int64            `json:"order_number"`
	TotalPrice  float64          `json:"total_price"`
	Status      OrderStatus      `json:"status"`
	Items       []OrderItemEvent `json:"items,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
}

// OrderItemEvent позиция заказа в событии
type OrderItemEvent struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Cart содержимое корзины: ID товара -> количество
type Cart struct {
	ID    string            `json:"id"`
	Items map[uuid.UUID]int `json:"items"`
}

// Product представляет информацию о товаре из Catalog Service
type Product struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Amount     int       `json:"amount"`
	CategoryID uuid.UUID `json:"category_id"`
	Image      string    `json:"image,omitempty"`
}
