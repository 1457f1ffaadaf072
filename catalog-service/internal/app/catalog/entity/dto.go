package entity

import "github.com/google/uuid"

type CreateCategoryRequest struct {
	Title       string         `json:"title" validate:"required,min=2,max=100"`
	Description string         `json:"description" validate:"max=2000"`
	Status      CategoryStatus `json:"status" validate:"required,oneof=Draft Published"`
}

type UpdateCategoryRequest struct {
	Title       string         `json:"title" validate:"omitempty,min=2,max=100"`
	Description string         `json:"description" validate:"omitempty,max=2000"`
	Status      CategoryStatus `json:"status" validate:"omitempty,oneof=Draft Published"`
}

type CreateProductRequest struct {
	Name        string    `json:"name" validate:"required,min=2,max=200"`
	Description string    `json:"description" validate:"max=5000"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Amount      int       `json:"amount" validate:"gte=0"`
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	Image       string    `json:"image" validate:"omitempty"`
}

type UpdateProductRequest struct {
	Name        string    `json:"name" validate:"omitempty,min=2,max=200"`
	Description string    `json:"description" validate:"omitempty,max=5000"`
	Price       float64   `json:"price" validate:"omitempty,gt=0"`
	Amount      *int      `json:"amount" validate:"omitempty,gte=0"`
	CategoryID  uuid.UUID `json:"category_id" validate:"omitempty"`
	Image       string    `json:"image" validate:"omitempty"`
}

// ImportPriceListRequest запрос на загрузку прайс-листа
// Строки передаются как есть, разбор и нормализация на стороне сервиса
type ImportPriceListRequest struct {
	CategoryID uuid.UUID `json:"category_id" validate:"required"`
	Data       string    `json:"data" validate:"required"` // CSV содержимое листа "Прайс"
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ProductListResponse struct {
	Products []ProductWithCategory `json:"products"`
	Total    int                   `json:"total"`
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
}
