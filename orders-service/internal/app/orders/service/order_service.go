package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"makonmed/orders-service/internal/app/orders/entity"
	"makonmed/orders-service/internal/app/orders/infrastructure"
	"makonmed/orders-service/internal/app/orders/repository"
	"makonmed/pkg/logger"
	"makonmed/pkg/metrics"

	"github.com/google/uuid"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrOrderNotFound      = errors.New("order not found")
	ErrProductNotFound    = errors.New("product not found in catalog")
	ErrInvalidOrderStatus = errors.New("invalid order status transition")
)

const (
	eventOrderCreated   = "ORDER_CREATED"
	eventOrderCompleted = "ORDER_COMPLETED"
)

// OrderService обрабатывает бизнес-логику заказов
// Координирует репозиторий, Catalog Service и Kafka
type OrderService struct {
	orderRepo     repository.OrderRepository
	catalogClient infrastructure.CatalogServiceClient
	kafkaProducer infrastructure.MessagePublisher
}

// NewOrderService создает новый сервис заказов с внедрением зависимостей
func NewOrderService(
	orderRepo repository.OrderRepository,
	catalogClient infrastructure.CatalogServiceClient,
	kafkaProducer infrastructure.MessagePublisher,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		catalogClient: catalogClient,
		kafkaProducer: kafkaProducer,
	}
}

// SubmitOrder оформляет заказ с витрины
// 1. Актуализирует цены позиций по данным Catalog Service
// 2. Нормализует телефон покупателя
// 3. Сохраняет заказ с позициями, статус "new"
// 4. Отправляет ORDER_CREATED в Kafka
// Ответ клиенту уходит только после успешной записи заказа
func (s *OrderService) SubmitOrder(ctx context.Context, req *entity.SubmitOrderRequest) (*entity.Order, error) {
	productIDs := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.catalogClient.GetProducts(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get products from catalog: %w", err)
	}

	// Заказ с неизвестным товаром не оформляется
	for _, productID := range productIDs {
		if _, exists := products[productID]; !exists {
			return nil, ErrProductNotFound
		}
	}

	now := time.Now()
	order := &entity.Order{
		ID:          uuid.New(),
		OrderNumber: now.UnixMilli(),
		Customer: entity.CustomerInfo{
			Name:    strings.TrimSpace(req.Customer.Name),
			Phone:   normalizePhone(req.Customer.Phone),
			Comment: strings.TrimSpace(req.Customer.Comment),
		},
		Status:    entity.OrderStatusNew,
		CreatedAt: now,
	}

	if req.Location != nil {
		order.Location = entity.Location{
			IP:      req.Location.IP,
			City:    req.Location.City,
			Region:  req.Location.Region,
			Country: req.Location.Country,
			Lat:     req.Location.Lat,
			Lng:     req.Location.Lng,
		}
	}

	// Цена за единицу берется из каталога на момент оформления
	var totalPrice float64
	items := make([]entity.OrderItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		product := products[itemReq.ProductID]

		item := entity.OrderItem{
			ID:             uuid.New(),
			OrderID:        order.ID,
			ProductID:      itemReq.ProductID,
			Name:           product.Name,
			Quantity:       itemReq.Quantity,
			UnitPrice:      product.Price,
			TotalItemPrice: product.Price * float64(itemReq.Quantity),
		}

		items = append(items, item)
		totalPrice += item.TotalItemPrice
	}

	order.TotalPrice = totalPrice
	order.Items = items

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	metrics.RecordOrderSubmitted(order.TotalPrice)

	event := entity.OrderEvent{
		EventType:   eventOrderCreated,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		TotalPrice:  order.TotalPrice,
		Status:      order.Status,
		Timestamp:   now,
	}

	if err := s.publishOrderEvent(ctx, event); err != nil {
		// Заказ уже сохранен, проблемы с Kafka не прерывают оформление
		logger.Error().Err(err).
			Str("order_id", order.ID.String()).
			Msg("Failed to publish order created event")
	}

	return order, nil
}

// GetOrder получает заказ по ID
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// GetAllOrders получает все заказы для админки, новые первыми
func (s *OrderService) GetAllOrders(ctx context.Context) ([]entity.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	return orders, nil
}

// UpdateOrderStatus меняет статус заказа с проверкой допустимости перехода
// Переход в "completed" публикует ORDER_COMPLETED с позициями,
// по которому worker списывает остатки
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus entity.OrderStatus) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if !isValidStatusTransition(order.Status, newStatus) {
		return nil, ErrInvalidOrderStatus
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = newStatus

	if newStatus == entity.OrderStatusCompleted {
		itemEvents := make([]entity.OrderItemEvent, 0, len(order.Items))
		for _, item := range order.Items {
			itemEvents = append(itemEvents, entity.OrderItemEvent{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		event := entity.OrderEvent{
			EventType:   eventOrderCompleted,
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			TotalPrice:  order.TotalPrice,
			Status:      order.Status,
			Items:       itemEvents,
			Timestamp:   time.Now(),
		}

		if err := s.publishOrderEvent(ctx, event); err != nil {
			logger.Error().Err(err).
				Str("order_id", order.ID.String()).
				Msg("Failed to publish order completed event")
		}
	}

	return order, nil
}

// DeleteOrder удаляет заказ из админки
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return nil
}

// GetOrderStats возвращает количество заказов по статусам для дашборда
func (s *OrderService) GetOrderStats(ctx context.Context) (*entity.OrderStats, error) {
	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	stats := &entity.OrderStats{
		New:        counts[entity.OrderStatusNew],
		Processing: counts[entity.OrderStatusProcessing],
		Completed:  counts[entity.OrderStatusCompleted],
		Cancelled:  counts[entity.OrderStatusCancelled],
	}
	stats.Total = stats.New + stats.Processing + stats.Completed + stats.Cancelled

	metrics.OrdersByStatus.WithLabelValues(string(entity.OrderStatusNew)).Set(float64(stats.New))
	metrics.OrdersByStatus.WithLabelValues(string(entity.OrderStatusProcessing)).Set(float64(stats.Processing))
	metrics.OrdersByStatus.WithLabelValues(string(entity.OrderStatusCompleted)).Set(float64(stats.Completed))
	metrics.OrdersByStatus.WithLabelValues(string(entity.OrderStatusCancelled)).Set(float64(stats.Cancelled))

	return stats, nil
}

// publishOrderEvent отправляет событие о заказе в Kafka
// Ключ сообщения = OrderID для партиционирования
func (s *OrderService) publishOrderEvent(ctx context.Context, event entity.OrderEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	if err := s.kafkaProducer.PublishMessage(ctx, event.OrderID.String(), eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}

// normalizePhone приводит телефон к виду с ведущим "+"
func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return phone
	}
	if !strings.HasPrefix(phone, "+") {
		return "+" + phone
	}
	return phone
}

// isValidStatusTransition проверяет допустимость смены статуса заказа
// Отмена возможна из любого неконечного статуса
func isValidStatusTransition(from, to entity.OrderStatus) bool {
	validTransitions := map[entity.OrderStatus][]entity.OrderStatus{
		entity.OrderStatusNew: {
			entity.OrderStatusProcessing,
			entity.OrderStatusCancelled,
		},
		entity.OrderStatusProcessing: {
			entity.OrderStatusCompleted,
			entity.OrderStatusCancelled,
		},
		entity.OrderStatusCompleted: {}, // Финальный статус
		entity.OrderStatusCancelled: {}, // Финальный статус
	}

	allowedStatuses, exists := validTransitions[from]
	if !exists {
		return false
	}

	for _, status := range allowedStatuses {
		if status == to {
			return true
		}
	}

	return false
}
