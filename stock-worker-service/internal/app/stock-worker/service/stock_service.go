package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"makonmed/stock-worker-service/internal/app/stock-worker/entity"
	"makonmed/stock-worker-service/internal/app/stock-worker/repository"
	"makonmed/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// StockService списывает остатки товаров по завершенным заказам
type StockService struct {
	productRepo repository.ProductRepository
	auditRepo   repository.AuditRepository
}

// NewStockService создает новый сервис списания остатков
func NewStockService(
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
) *StockService {
	return &StockService{
		productRepo: productRepo,
		auditRepo:   auditRepo,
	}
}

// ProcessOrderEvent обрабатывает событие заказа из Kafka
// Остатки списываются только по ORDER_COMPLETED, остальные события пропускаются
func (s *StockService) ProcessOrderEvent(ctx context.Context, event *entity.OrderEvent) error {
	switch event.EventType {
	case entity.EventTypeOrderCompleted:
		return s.ProcessOrderCompleted(ctx, event)
	case entity.EventTypeOrderCreated:
		// Резервирования на этапе создания заказа нет
		metrics.WorkerOrdersProcessed.WithLabelValues("skipped").Inc()
		return nil
	default:
		log.Printf("Unknown event type: %s for order %s, skipping", event.EventType, event.OrderID)
		metrics.WorkerOrdersProcessed.WithLabelValues("skipped").Inc()
		return nil
	}
}

// ProcessOrderCompleted списывает остатки по позициям завершенного заказа
// Повторная доставка того же события из Kafka не списывает остатки дважды
func (s *StockService) ProcessOrderCompleted(ctx context.Context, event *entity.OrderEvent) error {
	timer := prometheus.NewTimer(metrics.WorkerProcessingDuration)
	defer timer.ObserveDuration()

	if len(event.Items) == 0 {
		log.Printf("ORDER_COMPLETED for order %s carries no items, nothing to decrement", event.OrderID)
		metrics.WorkerOrdersProcessed.WithLabelValues("skipped").Inc()
		return nil
	}

	// Заказ сначала занимается записью аудита без результатов. Уникальный
	// индекс по order_id отсекает и дубликат события, и параллельную сверку.
	claim := buildAudit(event.OrderID.String(), event.OrderNumber, entity.AuditSourceEvent, nil)
	if err := s.auditRepo.Create(ctx, claim); err != nil {
		if errors.Is(err, repository.ErrAuditExists) {
			log.Printf("Order %s already processed, skipping duplicate event", event.OrderID)
			metrics.WorkerOrdersProcessed.WithLabelValues("skipped").Inc()
			return nil
		}
		metrics.WorkerOrdersProcessed.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to claim order %s for processing: %w", event.OrderID, err)
	}

	requests := make([]entity.StockDecrementRequest, 0, len(event.Items))
	for _, item := range event.Items {
		requests = append(requests, entity.StockDecrementRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	results, err := s.productRepo.DecrementStock(ctx, requests)
	if err != nil {
		// Списания не было, заказ освобождается для повторной доставки
		if delErr := s.auditRepo.Delete(ctx, event.OrderID); delErr != nil {
			log.Printf("Failed to release audit claim for order %s: %v", event.OrderID, delErr)
		}
		metrics.WorkerOrdersProcessed.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to decrement stock for order %s: %w", event.OrderID, err)
	}

	for _, res := range results {
		metrics.RecordStockDecrement(res.Outcome)
		if res.Outcome != entity.DecrementOutcomeApplied {
			log.Printf("Stock decrement for product %s in order %s: %s (requested %d, had %d)",
				res.ProductID, event.OrderID, res.Outcome, res.Requested, res.OldAmount)
		}
	}

	if err := s.auditRepo.SetResults(ctx, event.OrderID, buildAuditItems(results)); err != nil {
		// Остатки уже списаны, запись аудита остается без деталей.
		// Повторная обработка упрется в ErrAuditExists и не спишет второй раз.
		metrics.WorkerOrdersProcessed.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to write audit results for order %s: %w", event.OrderID, err)
	}

	metrics.WorkerOrdersProcessed.WithLabelValues("success").Inc()
	log.Printf("Processed ORDER_COMPLETED for order %s: %d items decremented", event.OrderID, len(results))

	return nil
}

// buildAudit собирает запись аудита из результатов списания
func buildAudit(orderID string, orderNumber int64, source string, results []entity.StockDecrementResult) *entity.StockAudit {
	return &entity.StockAudit{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		Source:      source,
		Items:       buildAuditItems(results),
		ProcessedAt: time.Now(),
	}
}

// buildAuditItems переводит результаты списания в позиции аудита
func buildAuditItems(results []entity.StockDecrementResult) []entity.StockAuditItem {
	items := make([]entity.StockAuditItem, 0, len(results))
	for _, res := range results {
		items = append(items, entity.StockAuditItem{
			ProductID: res.ProductID.String(),
			Requested: res.Requested,
			OldAmount: res.OldAmount,
			NewAmount: res.NewAmount,
			Outcome:   res.Outcome,
		})
	}
	return items
}
