package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"makonmed/orders-service/internal/app/orders/entity"
	"makonmed/pkg/metrics"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	cartKeyPrefix = "cart:"
	cartTTL       = 30 * 24 * time.Hour
)

type cartRepository struct {
	client *redis.Client
}

// NewCartRepository создает репозиторий корзин на Redis
// Корзина хранится как hash: ID товара -> количество
func NewCartRepository(client *redis.Client) CartRepository {
	return &cartRepository{client: client}
}

func cartKey(cartID string) string {
	return cartKeyPrefix + cartID
}

// Get возвращает содержимое корзины
// Несуществующая корзина считается пустой
func (r *cartRepository) Get(ctx context.Context, cartID string) (*entity.Cart, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpHGet)
	defer timer.ObserveDuration()

	raw, err := r.client.HGetAll(ctx, cartKey(cartID)).Result()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpHGet)
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	items := make(map[uuid.UUID]int, len(raw))
	for field, value := range raw {
		productID, err := uuid.Parse(field)
		if err != nil {
			continue // Битый ключ пропускаем
		}
		quantity, err := strconv.Atoi(value)
		if err != nil || quantity <= 0 {
			continue
		}
		items[productID] = quantity
	}

	return &entity.Cart{ID: cartID, Items: items}, nil
}

// AddItem увеличивает количество товара на единицу и возвращает новое количество
func (r *cartRepository) AddItem(ctx context.Context, cartID string, productID uuid.UUID) (int, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpHSet)
	defer timer.ObserveDuration()

	key := cartKey(cartID)
	quantity, err := r.client.HIncrBy(ctx, key, productID.String(), 1).Result()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpHSet)
		return 0, fmt.Errorf("failed to add cart item: %w", err)
	}

	r.client.Expire(ctx, key, cartTTL)

	return int(quantity), nil
}

// RemoveItem уменьшает количество товара на единицу
// При достижении нуля позиция удаляется из корзины
func (r *cartRepository) RemoveItem(ctx context.Context, cartID string, productID uuid.UUID) (int, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpHSet)
	defer timer.ObserveDuration()

	key := cartKey(cartID)
	quantity, err := r.client.HIncrBy(ctx, key, productID.String(), -1).Result()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpHSet)
		return 0, fmt.Errorf("failed to remove cart item: %w", err)
	}

	if quantity <= 0 {
		if err := r.client.HDel(ctx, key, productID.String()).Err(); err != nil {
			metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
			return 0, fmt.Errorf("failed to delete cart item: %w", err)
		}
		return 0, nil
	}

	return int(quantity), nil
}

// SetItem задает количество товара явно, минимум единица
func (r *cartRepository) SetItem(ctx context.Context, cartID string, productID uuid.UUID, quantity int) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpHSet)
	defer timer.ObserveDuration()

	if quantity < 1 {
		quantity = 1
	}

	key := cartKey(cartID)
	if err := r.client.HSet(ctx, key, productID.String(), quantity).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpHSet)
		return fmt.Errorf("failed to set cart item: %w", err)
	}

	r.client.Expire(ctx, key, cartTTL)

	return nil
}

// Clear удаляет корзину целиком (после оформления заказа)
func (r *cartRepository) Clear(ctx context.Context, cartID string) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := r.client.Del(ctx, cartKey(cartID)).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
