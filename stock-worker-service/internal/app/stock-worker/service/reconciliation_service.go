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
)

// При первом запуске чекпоинта нет: смотрим не дальше суток назад,
// более старый дрейф чинится руками через каталог
const defaultLookback = 24 * time.Hour

// ReconciliationService досписывает остатки по заказам, события которых потерялись
type ReconciliationService struct {
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	auditRepo      repository.AuditRepository
	checkpointRepo repository.CheckpointRepository
}

// NewReconciliationService создает новый сервис сверки остатков
func NewReconciliationService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
	checkpointRepo repository.CheckpointRepository,
) *ReconciliationService {
	return &ReconciliationService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		auditRepo:      auditRepo,
		checkpointRepo: checkpointRepo,
	}
}

// Reconcile находит завершенные заказы без записи аудита и списывает по ним остатки
// Чекпоинт двигается вперед только после успешного прохода
func (s *ReconciliationService) Reconcile(ctx context.Context) error {
	runStarted := time.Now()

	since, err := s.checkpointRepo.Get(ctx)
	if err != nil {
		metrics.StockReconciliations.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to get reconciliation checkpoint: %w", err)
	}
	if since.IsZero() {
		since = runStarted.Add(-defaultLookback)
	}

	orders, err := s.orderRepo.GetCompletedSince(ctx, since)
	if err != nil {
		metrics.StockReconciliations.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to get completed orders since %s: %w", since, err)
	}

	repaired := 0
	for _, order := range orders {
		// Дешевый предфильтр; от гонки с consumer-ом защищает захват
		// заказа внутри repairOrder
		processed, err := s.auditRepo.HasOrderAudit(ctx, order.ID)
		if err != nil {
			metrics.StockReconciliations.WithLabelValues("failed").Inc()
			return fmt.Errorf("failed to check audit for order %s: %w", order.ID, err)
		}
		if processed {
			continue
		}

		if err := s.repairOrder(ctx, &order); err != nil {
			metrics.StockReconciliations.WithLabelValues("failed").Inc()
			return err
		}
		repaired++
	}

	if err := s.checkpointRepo.Set(ctx, runStarted); err != nil {
		metrics.StockReconciliations.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to advance reconciliation checkpoint: %w", err)
	}

	metrics.StockReconciliations.WithLabelValues("success").Inc()
	log.Printf("Reconciliation completed: %d orders checked, %d repaired", len(orders), repaired)

	return nil
}

// repairOrder списывает остатки по заказу, пропущенному consumer-ом
func (s *ReconciliationService) repairOrder(ctx context.Context, order *entity.CompletedOrder) error {
	// Заказ занимается записью аудита до списания. Если consumer успел
	// обработать событие между проверкой и этим моментом, вставка вернет
	// ErrAuditExists и заказ пропускается без второго списания.
	claim := buildAudit(order.ID.String(), order.OrderNumber, entity.AuditSourceReconciliation, nil)
	if err := s.auditRepo.Create(ctx, claim); err != nil {
		if errors.Is(err, repository.ErrAuditExists) {
			return nil
		}
		return fmt.Errorf("failed to claim order %s for repair: %w", order.ID, err)
	}

	log.Printf("Reconciliation: order %s (number %d) completed but never decremented, repairing",
		order.ID, order.OrderNumber)

	requests := make([]entity.StockDecrementRequest, 0, len(order.Items))
	for _, item := range order.Items {
		requests = append(requests, entity.StockDecrementRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	results, err := s.productRepo.DecrementStock(ctx, requests)
	if err != nil {
		if delErr := s.auditRepo.Delete(ctx, order.ID); delErr != nil {
			log.Printf("Failed to release repair claim for order %s: %v", order.ID, delErr)
		}
		return fmt.Errorf("failed to repair stock for order %s: %w", order.ID, err)
	}

	for _, res := range results {
		metrics.RecordStockDecrement(res.Outcome)
	}

	if err := s.auditRepo.SetResults(ctx, order.ID, buildAuditItems(results)); err != nil {
		return fmt.Errorf("failed to write repair audit for order %s: %w", order.ID, err)
	}

	return nil
}
