package repository

import (
	"context"
	"errors"

	"makonmed/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryInUse    = errors.New("category is referenced by products")
	ErrProductExists    = errors.New("product with this name already exists in category")
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetAll(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// Delete отказывает с ErrCategoryInUse пока на категорию ссылаются товары
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetWithCategory(ctx context.Context, id uuid.UUID) (*entity.ProductWithCategory, error)
	GetAllWithCategories(ctx context.Context) ([]entity.ProductWithCategory, error)
	// Search выполняет поиск по подстроке имени без учета регистра
	Search(ctx context.Context, query string) ([]entity.ProductWithCategory, error)
	// ExistsByNameAndCategory проверяет дубликат пары (name, category_id)
	ExistsByNameAndCategory(ctx context.Context, name string, categoryID uuid.UUID) (bool, error)
	Update(ctx context.Context, product *entity.Product) error
	// SetLike переключает и сохраняет флаг избранного
	SetLike(ctx context.Context, id uuid.UUID, like bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}
