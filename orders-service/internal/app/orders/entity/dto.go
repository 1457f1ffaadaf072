package entity

import "github.com/google/uuid"

type SubmitOrderRequest struct {
	Customer CustomerInfoRequest `json:"customer" validate:"required"`
	Items    []OrderItemRequest  `json:"items" validate:"required,min=1,dive"`
	Location *LocationRequest    `json:"location" validate:"omitempty"`
}

type CustomerInfoRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=200"`
	Phone   string `json:"phone" validate:"required,min=5,max=32"`
	Comment string `json:"comment" validate:"max=2000"`
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type LocationRequest struct {
	IP      string  `json:"ip" validate:"omitempty,max=64"`
	City    string  `json:"city" validate:"omitempty,max=100"`
	Region  string  `json:"region" validate:"omitempty,max=100"`
	Country string  `json:"country" validate:"omitempty,max=100"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=new processing completed cancelled"`
}

type CartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

type SetCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// CartItemView позиция корзины, обогащенная данными каталога
type CartItemView struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Total     float64   `json:"total"`
	Image     string    `json:"image,omitempty"`
}

type CartResponse struct {
	CartID string         `json:"cart_id"`
	Items  []CartItemView `json:"items"`
	Total  float64        `json:"total"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
