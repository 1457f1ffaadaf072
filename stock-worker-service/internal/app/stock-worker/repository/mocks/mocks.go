package mocks

import (
	"context"
	"time"

	"makonmed/stock-worker-service/internal/app/stock-worker/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository мок для ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, items []entity.StockDecrementRequest) ([]entity.StockDecrementResult, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.StockDecrementResult), args.Error(1)
}

func (m *MockProductRepository) GetAmount(ctx context.Context, productID uuid.UUID) (int, error) {
	args := m.Called(ctx, productID)
	return args.Int(0), args.Error(1)
}

// MockOrderRepository мок для OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetCompletedSince(ctx context.Context, since time.Time) ([]entity.CompletedOrder, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CompletedOrder), args.Error(1)
}

// MockAuditRepository мок для AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, audit *entity.StockAudit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

func (m *MockAuditRepository) SetResults(ctx context.Context, orderID uuid.UUID, items []entity.StockAuditItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *MockAuditRepository) Delete(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockAuditRepository) HasOrderAudit(ctx context.Context, orderID uuid.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

// MockCheckpointRepository мок для CheckpointRepository
type MockCheckpointRepository struct {
	mock.Mock
}

func (m *MockCheckpointRepository) Get(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockCheckpointRepository) Set(ctx context.Context, t time.Time) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
