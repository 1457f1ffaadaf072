package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"makonmed/orders-service/internal/app/orders/entity"
	"makonmed/orders-service/internal/app/orders/infrastructure"
	"makonmed/orders-service/internal/app/orders/repository"
	"makonmed/pkg/metrics"

	"github.com/google/uuid"
)

// CartService управляет серверной корзиной покупателя
// Содержимое живет в Redis, цены и названия подтягиваются из каталога
type CartService struct {
	cartRepo      repository.CartRepository
	catalogClient infrastructure.CatalogServiceClient
}

// NewCartService создает новый сервис корзины
func NewCartService(cartRepo repository.CartRepository, catalogClient infrastructure.CatalogServiceClient) *CartService {
	return &CartService{
		cartRepo:      cartRepo,
		catalogClient: catalogClient,
	}
}

// GetCart возвращает корзину, обогащенную данными каталога
// Товары, исчезнувшие из каталога, в ответ не попадают
func (s *CartService) GetCart(ctx context.Context, cartID string) (*entity.CartResponse, error) {
	cart, err := s.cartRepo.Get(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	productIDs := make([]uuid.UUID, 0, len(cart.Items))
	for productID := range cart.Items {
		productIDs = append(productIDs, productID)
	}

	products, err := s.catalogClient.GetProducts(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get products from catalog: %w", err)
	}

	items := make([]entity.CartItemView, 0, len(cart.Items))
	var total float64

	for productID, quantity := range cart.Items {
		product, exists := products[productID]
		if !exists {
			continue
		}

		itemTotal := product.Price * float64(quantity)
		items = append(items, entity.CartItemView{
			ProductID: productID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  quantity,
			Total:     itemTotal,
			Image:     product.Image,
		})
		total += itemTotal
	}

	// Стабильный порядок позиций в ответе
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})

	return &entity.CartResponse{
		CartID: cartID,
		Items:  items,
		Total:  total,
	}, nil
}

// AddItem добавляет единицу товара в корзину
// Товар должен существовать в каталоге
func (s *CartService) AddItem(ctx context.Context, cartID string, productID uuid.UUID) (int, error) {
	if _, err := s.catalogClient.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, infrastructure.ErrProductNotFound) {
			return 0, ErrProductNotFound
		}
		return 0, fmt.Errorf("failed to check product: %w", err)
	}

	quantity, err := s.cartRepo.AddItem(ctx, cartID, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to add item: %w", err)
	}

	metrics.RecordCartOperation("add")
	return quantity, nil
}

// RemoveItem убирает единицу товара из корзины
// При достижении нуля позиция исчезает
func (s *CartService) RemoveItem(ctx context.Context, cartID string, productID uuid.UUID) (int, error) {
	quantity, err := s.cartRepo.RemoveItem(ctx, cartID, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove item: %w", err)
	}

	metrics.RecordCartOperation("remove")
	return quantity, nil
}

// SetItem задает количество товара явно
func (s *CartService) SetItem(ctx context.Context, cartID string, productID uuid.UUID, quantity int) error {
	if _, err := s.catalogClient.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, infrastructure.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to check product: %w", err)
	}

	if err := s.cartRepo.SetItem(ctx, cartID, productID, quantity); err != nil {
		return fmt.Errorf("failed to set item: %w", err)
	}

	metrics.RecordCartOperation("set")
	return nil
}

// ClearCart очищает корзину целиком
func (s *CartService) ClearCart(ctx context.Context, cartID string) error {
	if err := s.cartRepo.Clear(ctx, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	metrics.RecordCartOperation("clear")
	return nil
}
