package repository

import (
	"context"
	"errors"

	"makonmed/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create создает новый товар
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Create(product)
	return result.Error
}

// GetByID получает товар по ID
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return &product, nil
}

// GetWithCategory получает товар с информацией о категории
func (r *productRepository) GetWithCategory(ctx context.Context, id uuid.UUID) (*entity.ProductWithCategory, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return toProductWithCategory(product), nil
}

// GetAllWithCategories получает все товары с информацией о категориях
func (r *productRepository) GetAllWithCategories(ctx context.Context) ([]entity.ProductWithCategory, error) {
	var products []entity.Product
	result := r.db.WithContext(ctx).Preload("Category").Order("created_at DESC").Find(&products)

	if result.Error != nil {
		return nil, result.Error
	}

	out := make([]entity.ProductWithCategory, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductWithCategory(p))
	}

	return out, nil
}

// Search ищет товары по подстроке имени без учета регистра
// Поиск выполняется на стороне БД, а не фильтрацией в памяти
func (r *productRepository) Search(ctx context.Context, query string) ([]entity.ProductWithCategory, error) {
	var products []entity.Product
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("name ILIKE ?", "%"+query+"%").
		Order("created_at DESC").
		Find(&products)

	if result.Error != nil {
		return nil, result.Error
	}

	out := make([]entity.ProductWithCategory, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductWithCategory(p))
	}

	return out, nil
}

// ExistsByNameAndCategory проверяет наличие товара с такой же парой (name, category_id)
func (r *productRepository) ExistsByNameAndCategory(ctx context.Context, name string, categoryID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("name = ? AND category_id = ?", name, categoryID).
		Count(&count)

	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// Update обновляет товар
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Model(product).Where("id = ?", product.ID).Updates(map[string]interface{}{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"amount":      product.Amount,
		"category_id": product.CategoryID,
		"image":       product.Image,
	})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// SetLike сохраняет флаг избранного
func (r *productRepository) SetLike(ctx context.Context, id uuid.UUID, like bool) error {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).Where("id = ?", id).Update("like", like)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete удаляет товар
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func toProductWithCategory(product entity.Product) *entity.ProductWithCategory {
	pwc := &entity.ProductWithCategory{
		Product: product,
	}
	if product.Category != nil {
		pwc.Category = *product.Category
	}
	pwc.Product.Category = nil

	return pwc
}
