package handler

import (
	"errors"
	"net/http"

	"makonmed/orders-service/internal/app/orders/entity"
	"makonmed/orders-service/internal/app/orders/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CartHandler обрабатывает HTTP запросы корзины
// Корзина идентифицируется произвольным ID, который генерирует фронт
type CartHandler struct {
	cartService service.CartServiceInterface
	validator   *validator.Validate
}

// NewCartHandler создает новый обработчик корзины
func NewCartHandler(cartService service.CartServiceInterface) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// GetCart обрабатывает GET /cart/:cart_id
func (h *CartHandler) GetCart(c *gin.Context) {
	cartID := c.Param("cart_id")
	if cartID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart ID required"})
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), cartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// AddItem обрабатывает POST /cart/:cart_id/items (плюс единица товара)
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID := c.Param("cart_id")

	var req entity.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	quantity, err := h.cartService.AddItem(c.Request.Context(), cartID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product_id": req.ProductID, "quantity": quantity})
}

// RemoveItem обрабатывает DELETE /cart/:cart_id/items/:product_id (минус единица)
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID := c.Param("cart_id")

	productID, err := parseProductID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	quantity, err := h.cartService.RemoveItem(c.Request.Context(), cartID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item from cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product_id": productID, "quantity": quantity})
}

// SetItem обрабатывает PUT /cart/:cart_id/items (явное количество)
func (h *CartHandler) SetItem(c *gin.Context) {
	cartID := c.Param("cart_id")

	var req entity.SetCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.cartService.SetItem(c.Request.Context(), cartID, req.ProductID, req.Quantity); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set cart item"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Cart item updated"})
}

// ClearCart обрабатывает DELETE /cart/:cart_id
func (h *CartHandler) ClearCart(c *gin.Context) {
	cartID := c.Param("cart_id")

	if err := h.cartService.ClearCart(c.Request.Context(), cartID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Cart cleared"})
}

func parseProductID(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("product_id"))
}
