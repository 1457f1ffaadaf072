package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartRepo(t *testing.T) (CartRepository, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCartRepository(client), mr
}

func TestCartRepository_AddAccumulates(t *testing.T) {
	repo, _ := setupCartRepo(t)
	ctx := context.Background()
	productID := uuid.New()

	for i := 1; i <= 3; i++ {
		quantity, err := repo.AddItem(ctx, "cart-1", productID)
		require.NoError(t, err)
		assert.Equal(t, i, quantity)
	}

	cart, err := repo.Get(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[productID])
}

func TestCartRepository_RemoveDeletesKeyAtZero(t *testing.T) {
	repo, mr := setupCartRepo(t)
	ctx := context.Background()
	productID := uuid.New()

	_, err := repo.AddItem(ctx, "cart-1", productID)
	require.NoError(t, err)

	quantity, err := repo.RemoveItem(ctx, "cart-1", productID)
	require.NoError(t, err)
	assert.Equal(t, 0, quantity)

	// Позиция должна исчезнуть из hash, а не остаться нулем
	assert.Equal(t, "", mr.HGet("cart:cart-1", productID.String()))

	cart, err := repo.Get(ctx, "cart-1")
	require.NoError(t, err)
	_, exists := cart.Items[productID]
	assert.False(t, exists)
}

func TestCartRepository_RemoveBelowZeroStaysAbsent(t *testing.T) {
	repo, _ := setupCartRepo(t)
	ctx := context.Background()
	productID := uuid.New()

	// Удаление из пустой корзины не создает позицию
	quantity, err := repo.RemoveItem(ctx, "cart-1", productID)
	require.NoError(t, err)
	assert.Equal(t, 0, quantity)

	cart, err := repo.Get(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartRepository_SetClampsToOne(t *testing.T) {
	repo, _ := setupCartRepo(t)
	ctx := context.Background()
	productID := uuid.New()

	require.NoError(t, repo.SetItem(ctx, "cart-1", productID, 0))

	cart, err := repo.Get(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[productID])

	require.NoError(t, repo.SetItem(ctx, "cart-1", productID, 5))

	cart, err = repo.Get(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[productID])
}

func TestCartRepository_Clear(t *testing.T) {
	repo, mr := setupCartRepo(t)
	ctx := context.Background()

	_, err := repo.AddItem(ctx, "cart-1", uuid.New())
	require.NoError(t, err)

	require.NoError(t, repo.Clear(ctx, "cart-1"))
	assert.False(t, mr.Exists("cart:cart-1"))
}

func TestCartRepository_GetMissingCartIsEmpty(t *testing.T) {
	repo, _ := setupCartRepo(t)

	cart, err := repo.Get(context.Background(), "no-such-cart")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
