package service

import (
	"context"
	"testing"
	"time"

	"makonmed/stock-worker-service/internal/app/stock-worker/entity"
	"makonmed/stock-worker-service/internal/app/stock-worker/repository"
	"makonmed/stock-worker-service/internal/app/stock-worker/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestReconciliationService() (*ReconciliationService, *mocks.MockOrderRepository, *mocks.MockProductRepository, *mocks.MockAuditRepository, *mocks.MockCheckpointRepository) {
	orderRepo := new(mocks.MockOrderRepository)
	productRepo := new(mocks.MockProductRepository)
	auditRepo := new(mocks.MockAuditRepository)
	checkpointRepo := new(mocks.MockCheckpointRepository)
	svc := NewReconciliationService(orderRepo, productRepo, auditRepo, checkpointRepo)
	return svc, orderRepo, productRepo, auditRepo, checkpointRepo
}

func TestReconcile_RepairsMissedOrder(t *testing.T) {
	svc, orderRepo, productRepo, auditRepo, checkpointRepo := newTestReconciliationService()
	ctx := context.Background()

	checkpoint := time.Now().Add(-2 * time.Hour)
	productID := uuid.New()
	missed := entity.CompletedOrder{
		ID:          uuid.New(),
		OrderNumber: 1717171717000,
		Status:      "completed",
		CreatedAt:   time.Now().Add(-time.Hour),
		UpdatedAt:   time.Now().Add(-30 * time.Minute),
		Items: []entity.CompletedOrderItem{
			{ID: uuid.New(), ProductID: productID, Quantity: 2},
		},
	}

	checkpointRepo.On("Get", ctx).Return(checkpoint, nil)
	orderRepo.On("GetCompletedSince", ctx, checkpoint).Return([]entity.CompletedOrder{missed}, nil)
	auditRepo.On("HasOrderAudit", ctx, missed.ID).Return(false, nil)

	var claimed *entity.StockAudit
	auditRepo.On("Create", ctx, mock.AnythingOfType("*entity.StockAudit")).
		Run(func(args mock.Arguments) {
			claimed = args.Get(1).(*entity.StockAudit)
		}).
		Return(nil)
	productRepo.On("DecrementStock", ctx, []entity.StockDecrementRequest{
		{ProductID: productID, Quantity: 2},
	}).Return([]entity.StockDecrementResult{
		{ProductID: productID, Requested: 2, OldAmount: 5, NewAmount: 3, Outcome: entity.DecrementOutcomeApplied},
	}, nil)

	var written []entity.StockAuditItem
	auditRepo.On("SetResults", ctx, missed.ID, mock.AnythingOfType("[]entity.StockAuditItem")).
		Run(func(args mock.Arguments) {
			written = args.Get(2).([]entity.StockAuditItem)
		}).
		Return(nil)
	checkpointRepo.On("Set", ctx, mock.AnythingOfType("time.Time")).Return(nil)

	err := svc.Reconcile(ctx)

	assert.NoError(t, err)
	assert.NotNil(t, claimed)
	assert.Equal(t, entity.AuditSourceReconciliation, claimed.Source)
	assert.Len(t, written, 1)
	assert.Equal(t, entity.DecrementOutcomeApplied, written[0].Outcome)
	checkpointRepo.AssertCalled(t, "Set", ctx, mock.AnythingOfType("time.Time"))
}

func TestReconcile_AlreadyAuditedOrderNotTouched(t *testing.T) {
	svc, orderRepo, productRepo, auditRepo, checkpointRepo := newTestReconciliationService()
	ctx := context.Background()

	checkpoint := time.Now().Add(-2 * time.Hour)
	order := entity.CompletedOrder{
		ID:     uuid.New(),
		Status: "completed",
		Items: []entity.CompletedOrderItem{
			{ID: uuid.New(), ProductID: uuid.New(), Quantity: 1},
		},
	}

	checkpointRepo.On("Get", ctx).Return(checkpoint, nil)
	orderRepo.On("GetCompletedSince", ctx, checkpoint).Return([]entity.CompletedOrder{order}, nil)
	auditRepo.On("HasOrderAudit", ctx, order.ID).Return(true, nil)
	checkpointRepo.On("Set", ctx, mock.AnythingOfType("time.Time")).Return(nil)

	err := svc.Reconcile(ctx)

	assert.NoError(t, err)
	productRepo.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything)
}

func TestReconcile_ConsumerWinsRaceOrderNotDecrementedTwice(t *testing.T) {
	svc, orderRepo, productRepo, auditRepo, checkpointRepo := newTestReconciliationService()
	ctx := context.Background()

	checkpoint := time.Now().Add(-2 * time.Hour)
	order := entity.CompletedOrder{
		ID:     uuid.New(),
		Status: "completed",
		Items: []entity.CompletedOrderItem{
			{ID: uuid.New(), ProductID: uuid.New(), Quantity: 1},
		},
	}

	checkpointRepo.On("Get", ctx).Return(checkpoint, nil)
	orderRepo.On("GetCompletedSince", ctx, checkpoint).Return([]entity.CompletedOrder{order}, nil)
	// Consumer обработал событие после проверки, но до захвата заказа сверкой
	auditRepo.On("HasOrderAudit", ctx, order.ID).Return(false, nil)
	auditRepo.On("Create", ctx, mock.AnythingOfType("*entity.StockAudit")).
		Return(repository.ErrAuditExists)
	checkpointRepo.On("Set", ctx, mock.AnythingOfType("time.Time")).Return(nil)

	err := svc.Reconcile(ctx)

	assert.NoError(t, err)
	productRepo.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything)
}

func TestReconcile_NoCheckpointUsesLookbackWindow(t *testing.T) {
	svc, orderRepo, _, _, checkpointRepo := newTestReconciliationService()
	ctx := context.Background()

	checkpointRepo.On("Get", ctx).Return(time.Time{}, nil)

	var since time.Time
	orderRepo.On("GetCompletedSince", ctx, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			since = args.Get(1).(time.Time)
		}).
		Return([]entity.CompletedOrder{}, nil)
	checkpointRepo.On("Set", ctx, mock.AnythingOfType("time.Time")).Return(nil)

	err := svc.Reconcile(ctx)

	assert.NoError(t, err)
	// Без чекпоинта окно сверки ограничено сутками
	assert.WithinDuration(t, time.Now().Add(-defaultLookback), since, time.Minute)
}

func TestReconcile_DecrementFailureKeepsCheckpoint(t *testing.T) {
	svc, orderRepo, productRepo, auditRepo, checkpointRepo := newTestReconciliationService()
	ctx := context.Background()

	checkpoint := time.Now().Add(-2 * time.Hour)
	order := entity.CompletedOrder{
		ID:     uuid.New(),
		Status: "completed",
		Items: []entity.CompletedOrderItem{
			{ID: uuid.New(), ProductID: uuid.New(), Quantity: 1},
		},
	}

	checkpointRepo.On("Get", ctx).Return(checkpoint, nil)
	orderRepo.On("GetCompletedSince", ctx, checkpoint).Return([]entity.CompletedOrder{order}, nil)
	auditRepo.On("HasOrderAudit", ctx, order.ID).Return(false, nil)
	auditRepo.On("Create", ctx, mock.AnythingOfType("*entity.StockAudit")).Return(nil)
	productRepo.On("DecrementStock", ctx, mock.Anything).Return(nil, assert.AnError)
	auditRepo.On("Delete", ctx, order.ID).Return(nil)

	err := svc.Reconcile(ctx)

	// Чекпоинт не двигается, следующий прогон попробует снова
	assert.Error(t, err)
	checkpointRepo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	auditRepo.AssertCalled(t, "Delete", ctx, order.ID)
}
