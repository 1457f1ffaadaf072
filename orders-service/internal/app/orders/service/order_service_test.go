package service

import (
	"context"
	"encoding/json"
	"testing"

	"makonmed/orders-service/internal/app/orders/entity"
	"makonmed/orders-service/internal/app/orders/repository"
	"makonmed/orders-service/internal/app/orders/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestOrderService() (*OrderService, *mocks.MockOrderRepository, *mocks.MockCatalogClient, *mocks.MockMessagePublisher) {
	orderRepo := new(mocks.MockOrderRepository)
	catalogClient := new(mocks.MockCatalogClient)
	publisher := new(mocks.MockMessagePublisher)
	svc := NewOrderService(orderRepo, catalogClient, publisher)
	return svc, orderRepo, catalogClient, publisher
}

func TestSubmitOrder_Success(t *testing.T) {
	svc, orderRepo, catalogClient, publisher := newTestOrderService()

	productA := &entity.Product{ID: uuid.New(), Name: "Digital thermometer", Price: 110.0}
	productB := &entity.Product{ID: uuid.New(), Name: "Blood pressure monitor", Price: 2500.0}

	catalogClient.On("GetProducts", mock.Anything, mock.Anything).Return(map[uuid.UUID]*entity.Product{
		productA.ID: productA,
		productB.ID: productB,
	}, nil)
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).Return(nil)
	publisher.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	req := &entity.SubmitOrderRequest{
		Customer: entity.CustomerInfoRequest{
			Name:  "Ivan Petrov",
			Phone: "901234567", // Без "+", должен нормализоваться
		},
		Items: []entity.OrderItemRequest{
			{ProductID: productA.ID, Quantity: 3},
			{ProductID: productB.ID, Quantity: 1},
		},
	}

	order, err := svc.SubmitOrder(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "+901234567", order.Customer.Phone)
	assert.Equal(t, entity.OrderStatusNew, order.Status)
	assert.Greater(t, order.OrderNumber, int64(0))

	// Сумма пересчитывается по ценам каталога: 3*110 + 1*2500
	assert.InDelta(t, 2830.0, order.TotalPrice, 0.001)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Digital thermometer", order.Items[0].Name)
	assert.InDelta(t, 330.0, order.Items[0].TotalItemPrice, 0.001)

	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSubmitOrder_PhoneAlreadyNormalized(t *testing.T) {
	svc, orderRepo, catalogClient, publisher := newTestOrderService()

	product := &entity.Product{ID: uuid.New(), Name: "Gauze bandage", Price: 50.0}
	catalogClient.On("GetProducts", mock.Anything, mock.Anything).Return(map[uuid.UUID]*entity.Product{
		product.ID: product,
	}, nil)
	orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	req := &entity.SubmitOrderRequest{
		Customer: entity.CustomerInfoRequest{Name: "Anna", Phone: "+998901234567"},
		Items:    []entity.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
	}

	order, err := svc.SubmitOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "+998901234567", order.Customer.Phone)
}

func TestSubmitOrder_UnknownProduct(t *testing.T) {
	svc, orderRepo, catalogClient, _ := newTestOrderService()

	known := &entity.Product{ID: uuid.New(), Name: "Syringe", Price: 10.0}
	unknown := uuid.New()

	// Каталог вернул только один из двух товаров
	catalogClient.On("GetProducts", mock.Anything, mock.Anything).Return(map[uuid.UUID]*entity.Product{
		known.ID: known,
	}, nil)

	req := &entity.SubmitOrderRequest{
		Customer: entity.CustomerInfoRequest{Name: "Ivan", Phone: "+998900000000"},
		Items: []entity.OrderItemRequest{
			{ProductID: known.ID, Quantity: 1},
			{ProductID: unknown, Quantity: 2},
		},
	}

	_, err := svc.SubmitOrder(context.Background(), req)
	assert.ErrorIs(t, err, ErrProductNotFound)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitOrder_KafkaFailureDoesNotFailSubmission(t *testing.T) {
	svc, orderRepo, catalogClient, publisher := newTestOrderService()

	product := &entity.Product{ID: uuid.New(), Name: "Thermometer", Price: 100.0}
	catalogClient.On("GetProducts", mock.Anything, mock.Anything).Return(map[uuid.UUID]*entity.Product{
		product.ID: product,
	}, nil)
	orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	req := &entity.SubmitOrderRequest{
		Customer: entity.CustomerInfoRequest{Name: "Ivan", Phone: "+998900000000"},
		Items:    []entity.OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
	}

	order, err := svc.SubmitOrder(context.Background(), req)
	require.NoError(t, err)
	assert.NotNil(t, order)
}

func TestUpdateOrderStatus_NewToProcessing(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrderService()

	order := &entity.Order{ID: uuid.New(), Status: entity.OrderStatusNew}
	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("UpdateStatus", mock.Anything, order.ID, entity.OrderStatusProcessing).Return(nil)

	updated, err := svc.UpdateOrderStatus(context.Background(), order.ID, entity.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, updated.Status)
}

func TestUpdateOrderStatus_NewToCompletedRejected(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrderService()

	order := &entity.Order{ID: uuid.New(), Status: entity.OrderStatusNew}
	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.UpdateOrderStatus(context.Background(), order.ID, entity.OrderStatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_CompletedPublishesEventWithItems(t *testing.T) {
	svc, orderRepo, _, publisher := newTestOrderService()

	productID := uuid.New()
	order := &entity.Order{
		ID:     uuid.New(),
		Status: entity.OrderStatusProcessing,
		Items: []entity.OrderItem{
			{ProductID: productID, Quantity: 2},
		},
	}

	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	orderRepo.On("UpdateStatus", mock.Anything, order.ID, entity.OrderStatusCompleted).Return(nil)

	var published entity.OrderEvent
	publisher.On("PublishMessage", mock.Anything, order.ID.String(), mock.Anything).
		Run(func(args mock.Arguments) {
			require.NoError(t, json.Unmarshal(args.Get(2).([]byte), &published))
		}).
		Return(nil)

	_, err := svc.UpdateOrderStatus(context.Background(), order.ID, entity.OrderStatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, "ORDER_COMPLETED", published.EventType)
	require.Len(t, published.Items, 1)
	assert.Equal(t, productID, published.Items[0].ProductID)
	assert.Equal(t, 2, published.Items[0].Quantity)
}

func TestUpdateOrderStatus_FinalStatusRejected(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrderService()

	order := &entity.Order{ID: uuid.New(), Status: entity.OrderStatusCompleted}
	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.UpdateOrderStatus(context.Background(), order.ID, entity.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrderService()

	id := uuid.New()
	orderRepo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrOrderNotFound)

	_, err := svc.UpdateOrderStatus(context.Background(), id, entity.OrderStatusProcessing)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDeleteOrder_NotFound(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrderService()

	id := uuid.New()
	orderRepo.On("Delete", mock.Anything, id).Return(repository.ErrOrderNotFound)

	err := svc.DeleteOrder(context.Background(), id)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrderStats(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrderService()

	orderRepo.On("CountByStatus", mock.Anything).Return(map[entity.OrderStatus]int64{
		entity.OrderStatusNew:       3,
		entity.OrderStatusCompleted: 7,
	}, nil)

	stats, err := svc.GetOrderStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.New)
	assert.Equal(t, int64(0), stats.Processing)
	assert.Equal(t, int64(7), stats.Completed)
	assert.Equal(t, int64(10), stats.Total)
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"without plus", "901234567", "+901234567"},
		{"with plus", "+998901234567", "+998901234567"},
		{"with spaces", "  901234567  ", "+901234567"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizePhone(tt.input))
		})
	}
}

func TestIsValidStatusTransition(t *testing.T) {
	tests := []struct {
		from  entity.OrderStatus
		to    entity.OrderStatus
		valid bool
	}{
		{entity.OrderStatusNew, entity.OrderStatusProcessing, true},
		{entity.OrderStatusNew, entity.OrderStatusCancelled, true},
		{entity.OrderStatusNew, entity.OrderStatusCompleted, false},
		{entity.OrderStatusProcessing, entity.OrderStatusCompleted, true},
		{entity.OrderStatusProcessing, entity.OrderStatusCancelled, true},
		{entity.OrderStatusProcessing, entity.OrderStatusNew, false},
		{entity.OrderStatusCompleted, entity.OrderStatusCancelled, false},
		{entity.OrderStatusCancelled, entity.OrderStatusNew, false},
	}

	for _, tt := range tests {
		got := isValidStatusTransition(tt.from, tt.to)
		assert.Equal(t, tt.valid, got, "%s -> %s", tt.from, tt.to)
	}
}
