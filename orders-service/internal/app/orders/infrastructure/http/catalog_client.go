package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"makonmed/orders-service/internal/app/orders/entity"
	"makonmed/orders-service/internal/app/orders/infrastructure"

	"github.com/google/uuid"
)

// CatalogClient клиент для взаимодействия с Catalog Service
// Используется для актуализации цен при оформлении заказа и показе корзины
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCatalogClient создает новый клиент для Catalog Service
func NewCatalogClient(baseURL string) *CatalogClient {
	return &CatalogClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetProduct получает информацию о товаре из Catalog Service
func (c *CatalogClient) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	url := fmt.Sprintf("%s/products/%s", c.baseURL, productID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, infrastructure.ErrProductNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var product entity.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &product, nil
}

// GetProducts получает информацию о нескольких товарах
// Batch endpoint в каталоге отсутствует, запросы идут последовательно
func (c *CatalogClient) GetProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*entity.Product, error) {
	products := make(map[uuid.UUID]*entity.Product, len(productIDs))

	for _, productID := range productIDs {
		product, err := c.GetProduct(ctx, productID)
		if err != nil {
			if errors.Is(err, infrastructure.ErrProductNotFound) {
				continue // Отсутствующие товары определяет вызывающая сторона
			}
			return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
		}
		products[productID] = product
	}

	return products, nil
}
