package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"makonmed/stock-worker-service/internal/app/stock-worker/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// auditRepository хранит журнал списаний остатков в MongoDB
type auditRepository struct {
	collection *mongo.Collection
}

// NewAuditRepository создает новый репозиторий аудита
// Автоматически создает уникальный индекс по order_id: именно он
// гарантирует одно списание на заказ при гонке consumer и сверки
func NewAuditRepository(db *mongo.Database) AuditRepository {
	collection := db.Collection("stock_audit")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "order_id", Value: 1},
		},
		Options: options.Index().SetName("order_id_idx").SetUnique(true),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// Индекс может уже существовать, работу не прерываем
		log.Printf("Warning: failed to create index on order_id: %v", err)
	}

	return &auditRepository{
		collection: collection,
	}
}

// Create пишет запись аудита списания
// Повторная вставка по тому же order_id возвращает ErrAuditExists
func (r *auditRepository) Create(ctx context.Context, audit *entity.StockAudit) error {
	if audit.ProcessedAt.IsZero() {
		audit.ProcessedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, audit)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAuditExists
		}
		return fmt.Errorf("failed to create stock audit: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		audit.ID = oid
	}

	return nil
}

// SetResults дописывает результаты списания в запись аудита
func (r *auditRepository) SetResults(ctx context.Context, orderID uuid.UUID, items []entity.StockAuditItem) error {
	filter := bson.M{"order_id": orderID.String()}
	update := bson.M{"$set": bson.M{
		"items":        items,
		"processed_at": time.Now(),
	}}

	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to update stock audit: %w", err)
	}

	return nil
}

// Delete удаляет запись аудита по заказу
func (r *auditRepository) Delete(ctx context.Context, orderID uuid.UUID) error {
	filter := bson.M{"order_id": orderID.String()}

	if _, err := r.collection.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete stock audit: %w", err)
	}

	return nil
}

// HasOrderAudit проверяет, было ли уже списание по заказу
func (r *auditRepository) HasOrderAudit(ctx context.Context, orderID uuid.UUID) (bool, error) {
	filter := bson.M{"order_id": orderID.String()}

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check stock audit: %w", err)
	}

	return count > 0, nil
}
