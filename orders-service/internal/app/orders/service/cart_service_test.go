package service

import (
	"context"
	"testing"

	"makonmed/orders-service/internal/app/orders/entity"
	"makonmed/orders-service/internal/app/orders/infrastructure"
	"makonmed/orders-service/internal/app/orders/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCartService() (*CartService, *mocks.MockCartRepository, *mocks.MockCatalogClient) {
	cartRepo := new(mocks.MockCartRepository)
	catalogClient := new(mocks.MockCatalogClient)
	svc := NewCartService(cartRepo, catalogClient)
	return svc, cartRepo, catalogClient
}

func TestGetCart_TotalIsSumOfItemTotals(t *testing.T) {
	svc, cartRepo, catalogClient := newTestCartService()

	productA := &entity.Product{ID: uuid.New(), Name: "Bandage", Price: 50.0}
	productB := &entity.Product{ID: uuid.New(), Name: "Thermometer", Price: 110.0}

	cartRepo.On("Get", mock.Anything, "cart-1").Return(&entity.Cart{
		ID: "cart-1",
		Items: map[uuid.UUID]int{
			productA.ID: 4,
			productB.ID: 2,
		},
	}, nil)
	catalogClient.On("GetProducts", mock.Anything, mock.Anything).Return(map[uuid.UUID]*entity.Product{
		productA.ID: productA,
		productB.ID: productB,
	}, nil)

	cart, err := svc.GetCart(context.Background(), "cart-1")
	require.NoError(t, err)

	// 4*50 + 2*110
	assert.InDelta(t, 420.0, cart.Total, 0.001)
	assert.Len(t, cart.Items, 2)
}

func TestGetCart_SkipsProductsMissingFromCatalog(t *testing.T) {
	svc, cartRepo, catalogClient := newTestCartService()

	product := &entity.Product{ID: uuid.New(), Name: "Bandage", Price: 50.0}
	removed := uuid.New()

	cartRepo.On("Get", mock.Anything, "cart-1").Return(&entity.Cart{
		ID: "cart-1",
		Items: map[uuid.UUID]int{
			product.ID: 1,
			removed:    3,
		},
	}, nil)
	catalogClient.On("GetProducts", mock.Anything, mock.Anything).Return(map[uuid.UUID]*entity.Product{
		product.ID: product,
	}, nil)

	cart, err := svc.GetCart(context.Background(), "cart-1")
	require.NoError(t, err)

	assert.Len(t, cart.Items, 1)
	assert.InDelta(t, 50.0, cart.Total, 0.001)
}

func TestAddItem_ProductMustExist(t *testing.T) {
	svc, cartRepo, catalogClient := newTestCartService()

	productID := uuid.New()
	catalogClient.On("GetProduct", mock.Anything, productID).Return(nil, infrastructure.ErrProductNotFound)

	_, err := svc.AddItem(context.Background(), "cart-1", productID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	cartRepo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddItem_Success(t *testing.T) {
	svc, cartRepo, catalogClient := newTestCartService()

	product := &entity.Product{ID: uuid.New(), Name: "Bandage", Price: 50.0}
	catalogClient.On("GetProduct", mock.Anything, product.ID).Return(product, nil)
	cartRepo.On("AddItem", mock.Anything, "cart-1", product.ID).Return(3, nil)

	quantity, err := svc.AddItem(context.Background(), "cart-1", product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, quantity)
}

func TestRemoveItem_DelegatesToRepo(t *testing.T) {
	svc, cartRepo, _ := newTestCartService()

	productID := uuid.New()
	cartRepo.On("RemoveItem", mock.Anything, "cart-1", productID).Return(0, nil)

	quantity, err := svc.RemoveItem(context.Background(), "cart-1", productID)
	require.NoError(t, err)
	assert.Equal(t, 0, quantity)
}
