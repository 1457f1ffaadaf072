package service

import (
	"context"

	"makonmed/stock-worker-service/internal/app/stock-worker/entity"
)

// StockServiceInterface определяет интерфейс обработки событий заказов
type StockServiceInterface interface {
	// ProcessOrderEvent обрабатывает событие заказа из Kafka
	ProcessOrderEvent(ctx context.Context, event *entity.OrderEvent) error
}

// ReconciliationServiceInterface определяет интерфейс сверки остатков
type ReconciliationServiceInterface interface {
	// Reconcile досписывает остатки по завершенным заказам, пропущенным consumer-ом
	Reconcile(ctx context.Context) error
}
