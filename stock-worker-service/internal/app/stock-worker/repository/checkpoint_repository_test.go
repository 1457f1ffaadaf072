package repository

import (
	"context"
	"testing"
	"time"

	"makonmed/stock-worker-service/internal/app/stock-worker/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCheckpointRepo(t *testing.T) (CheckpointRepository, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCheckpointRepository(client), mr
}

func TestCheckpoint_GetMissingReturnsZeroTime(t *testing.T) {
	repo, _ := setupCheckpointRepo(t)

	got, err := repo.Get(context.Background())

	assert.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestCheckpoint_SetThenGetRoundTrips(t *testing.T) {
	repo, _ := setupCheckpointRepo(t)
	ctx := context.Background()

	want := time.Date(2026, 8, 30, 2, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Set(ctx, want))

	got, err := repo.Get(ctx)

	assert.NoError(t, err)
	// Чекпоинт хранится с точностью до секунды
	assert.Equal(t, want.Unix(), got.Unix())
}

func TestCheckpoint_GarbageValueReturnsError(t *testing.T) {
	repo, mr := setupCheckpointRepo(t)

	mr.Set(entity.ReconciliationCheckpointKey, "not-a-timestamp")

	_, err := repo.Get(context.Background())

	assert.Error(t, err)
}
