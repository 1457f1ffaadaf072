package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"makonmed/catalog-service/internal/app/catalog/entity"
	"makonmed/catalog-service/internal/app/catalog/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCatalogService мок для CatalogServiceInterface в тестах handler
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCatalogService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.ProductWithCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductWithCategory), args.Error(1)
}

func (m *MockCatalogService) GetAllProducts(ctx context.Context) ([]entity.ProductWithCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ProductWithCategory), args.Error(1)
}

func (m *MockCatalogService) SearchProducts(ctx context.Context, query string) ([]entity.ProductWithCategory, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ProductWithCategory), args.Error(1)
}

func (m *MockCatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogService) ToggleLike(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) ImportPriceList(ctx context.Context, req *entity.ImportPriceListRequest) (*entity.ImportResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ImportResult), args.Error(1)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// ===================== Category Handler Tests =====================

func TestGetAllCategoriesHandler_Success(t *testing.T) {
	router := setupTestRouter()
	svc := new(MockCatalogService)
	h := NewCatalogHandler(svc)
	router.GET("/categories", h.GetAllCategories)

	categories := []entity.Category{
		{ID: uuid.New(), Title: "Diagnostics", Status: entity.CategoryStatusPublished},
	}
	svc.On("GetAllCategories", mock.Anything).Return(categories, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.CategoryListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "Diagnostics", resp.Categories[0].Title)
}

func TestCreateCategoryHandler_ValidationError(t *testing.T) {
	router := setupTestRouter()
	svc := new(MockCatalogService)
	h := NewCatalogHandler(svc)
	router.POST("/categories", h.CreateCategory)

	// Недопустимый статус
	body := `{"title":"Laboratory","status":"Archived"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
}

func TestDeleteCategoryHandler_InUse(t *testing.T) {
	router := setupTestRouter()
	svc := new(MockCatalogService)
	h := NewCatalogHandler(svc)
	router.DELETE("/categories/:id", h.DeleteCategory)

	id := uuid.New()
	svc.On("DeleteCategory", mock.Anything, id).Return(service.ErrCategoryInUse)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/categories/"+id.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

// ===================== Product Handler Tests =====================

func TestCreateProductHandler_Duplicate(t *testing.T) {
	router := setupTestRouter()
	svc := new(MockCatalogService)
	h := NewCatalogHandler(svc)
	router.POST("/products", h.CreateProduct)

	svc.On("CreateProduct", mock.Anything, mock.AnythingOfType("*entity.CreateProductRequest")).
		Return(nil, service.ErrProductExists)

	body, _ := json.Marshal(entity.CreateProductRequest{
		Name:       "Digital thermometer",
		Price:      120.0,
		CategoryID: uuid.New(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetAllProductsHandler_SearchQueryPassed(t *testing.T) {
	router := setupTestRouter()
	svc := new(MockCatalogService)
	h := NewCatalogHandler(svc)
	router.GET("/products", h.GetAllProducts)

	svc.On("SearchProducts", mock.Anything, "thermo").Return([]entity.ProductWithCategory{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?search=thermo", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestToggleLikeHandler_Success(t *testing.T) {
	router := setupTestRouter()
	svc := new(MockCatalogService)
	h := NewCatalogHandler(svc)
	router.PATCH("/products/:id/like", h.ToggleLike)

	product := &entity.Product{ID: uuid.New(), Name: "Digital thermometer", Like: true}
	svc.On("ToggleLike", mock.Anything, product.ID).Return(product, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/products/"+product.ID.String()+"/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Like)
}

func TestToggleLikeHandler_NotFound(t *testing.T) {
	router := setupTestRouter()
	svc := new(MockCatalogService)
	h := NewCatalogHandler(svc)
	router.PATCH("/products/:id/like", h.ToggleLike)

	id := uuid.New()
	svc.On("ToggleLike", mock.Anything, id).Return(nil, service.ErrProductNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/products/"+id.String()+"/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProductHandler_InvalidID(t *testing.T) {
	router := setupTestRouter()
	svc := new(MockCatalogService)
	h := NewCatalogHandler(svc)
	router.GET("/products/:id", h.GetProduct)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportPriceListHandler_Success(t *testing.T) {
	router := setupTestRouter()
	svc := new(MockCatalogService)
	h := NewCatalogHandler(svc)
	router.POST("/products/import", h.ImportPriceList)

	svc.On("ImportPriceList", mock.Anything, mock.AnythingOfType("*entity.ImportPriceListRequest")).
		Return(&entity.ImportResult{Created: 3, Skipped: 1}, nil)

	body, _ := json.Marshal(entity.ImportPriceListRequest{
		CategoryID: uuid.New(),
		Data:       "header\ndata",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products/import", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
