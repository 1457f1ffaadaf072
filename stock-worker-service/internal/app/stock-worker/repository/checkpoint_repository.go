package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"makonmed/stock-worker-service/internal/app/stock-worker/entity"

	"github.com/redis/go-redis/v9"
)

// checkpointRepository хранит чекпоинт сверки остатков в Redis
type checkpointRepository struct {
	client *redis.Client
}

// NewCheckpointRepository создает новый репозиторий чекпоинта
func NewCheckpointRepository(client *redis.Client) CheckpointRepository {
	return &checkpointRepository{client: client}
}

// Get возвращает время последней сверки; нулевое время, если чекпоинта нет
func (r *checkpointRepository) Get(ctx context.Context) (time.Time, error) {
	val, err := r.client.Get(ctx, entity.ReconciliationCheckpointKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to get reconciliation checkpoint: %w", err)
	}

	unixSec, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reconciliation checkpoint value %q: %w", val, err)
	}

	return time.Unix(unixSec, 0), nil
}

// Set сохраняет время последней сверки
func (r *checkpointRepository) Set(ctx context.Context, t time.Time) error {
	val := strconv.FormatInt(t.Unix(), 10)

	// Чекпоинт без TTL: потеря означает лишний проход сверки, а не потерю данных
	if err := r.client.Set(ctx, entity.ReconciliationCheckpointKey, val, 0).Err(); err != nil {
		return fmt.Errorf("failed to set reconciliation checkpoint: %w", err)
	}

	return nil
}
