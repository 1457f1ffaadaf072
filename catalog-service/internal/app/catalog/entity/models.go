package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryStatus статус публикации категории в витрине
type CategoryStatus string

const (
	CategoryStatusDraft     CategoryStatus = "Draft"     // Черновик, не виден покупателям
	CategoryStatusPublished CategoryStatus = "Published" // Опубликована в витрине
)

// Category представляет категорию товаров
type Category struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string         `json:"title" gorm:"type:varchar(100);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Status      CategoryStatus `json:"status" gorm:"type:varchar(20);not null;default:'Draft'"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// Product представляет товар в каталоге
// Товар ссылается на категорию по ID, а не по названию:
// переименование категории не ломает привязку товаров
type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(200);not null"`
	Description string    `json:"description" gorm:"type:text"`
	Price       float64   `json:"price" gorm:"type:decimal(12,2);not null"`
	Amount      int       `json:"amount" gorm:"not null;default:0"` // Остаток на складе
	CategoryID  uuid.UUID `json:"category_id" gorm:"type:uuid;not null;index"`
	Image       string    `json:"image,omitempty" gorm:"type:text"` // data URI с картинкой товара
	Like        bool      `json:"like" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	Category *Category `json:"-" gorm:"foreignKey:CategoryID"`
}

// TableName указывает имя таблицы для GORM
func (Product) TableName() string {
	return "products"
}

// ProductWithCategory содержит товар с информацией о категории
type ProductWithCategory struct {
	Product
	Category Category `json:"category"`
}

// ProductEvent представляет событие изменения товара для Kafka
type ProductEvent struct {
	EventType  string    `json:"event_type"` // PRODUCT_CREATED, PRODUCT_UPDATED, PRODUCT_DELETED
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Amount     int       `json:"amount"`
	CategoryID uuid.UUID `json:"category_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// ImportResult итог загрузки прайс-листа
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"` // Дубликаты (name, category) и пустые строки
	Errors  []string `json:"errors,omitempty"`
}
