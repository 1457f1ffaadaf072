package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"makonmed/stock-worker-service/internal/app/stock-worker/entity"
	"makonmed/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const serviceName = "stock-worker-service"

// Атомарное списание одним UPDATE: GREATEST не дает уйти в минус,
// old.amount нужен чтобы отличить полное списание от обрезанного
const decrementQuery = `
UPDATE products AS p
SET amount = GREATEST(p.amount - ?, 0)
FROM (SELECT id, amount FROM products WHERE id = ? FOR UPDATE) AS old
WHERE p.id = old.id
RETURNING old.amount, p.amount`

// productRepository реализует ProductRepository поверх БД каталога через GORM
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий остатков
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// DecrementStock списывает остатки по всем позициям заказа в одной транзакции
func (r *productRepository) DecrementStock(ctx context.Context, items []entity.StockDecrementRequest) ([]entity.StockDecrementResult, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "products")
	defer timer.ObserveDuration()

	results := make([]entity.StockDecrementResult, 0, len(items))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var oldAmount, newAmount int

			row := tx.Raw(decrementQuery, item.Quantity, item.ProductID).Row()
			if err := row.Scan(&oldAmount, &newAmount); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					// Товар удален из каталога: пропускаем позицию, заказ не блокируем
					results = append(results, entity.StockDecrementResult{
						ProductID: item.ProductID,
						Requested: item.Quantity,
						Outcome:   entity.DecrementOutcomeMissing,
					})
					continue
				}
				return fmt.Errorf("failed to decrement stock for product %s: %w", item.ProductID, err)
			}

			outcome := entity.DecrementOutcomeApplied
			if oldAmount < item.Quantity {
				outcome = entity.DecrementOutcomeClamped
			}

			results = append(results, entity.StockDecrementResult{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				OldAmount: oldAmount,
				NewAmount: newAmount,
				Outcome:   outcome,
			})
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return results, nil
}

// GetAmount возвращает текущий остаток товара
func (r *productRepository) GetAmount(ctx context.Context, productID uuid.UUID) (int, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "products")
	defer timer.ObserveDuration()

	var product entity.Product
	result := r.db.WithContext(ctx).Where("id = ?", productID).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("product not found: %w", result.Error)
		}
		return 0, fmt.Errorf("failed to get product amount: %w", result.Error)
	}

	return product.Amount, nil
}
