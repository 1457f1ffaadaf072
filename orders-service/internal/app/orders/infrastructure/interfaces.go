package infrastructure

import (
	"context"
	"errors"

	"makonmed/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound товар отсутствует в каталоге
var ErrProductNotFound = errors.New("product not found in catalog")

type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// CatalogServiceClient получает актуальные данные товаров из Catalog Service
// Цены в заказе всегда берутся из каталога, а не из запроса клиента
type CatalogServiceClient interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)
	GetProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*entity.Product, error)
}
