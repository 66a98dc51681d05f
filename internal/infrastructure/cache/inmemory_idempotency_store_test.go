package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fieldops/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*InMemoryIdempotencyStore, *time.Time) {
	t.Helper()
	store := NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	return store, &now
}

func TestInMemoryIdempotencyStore_Claim(t *testing.T) {
	ctx := context.Background()

	t.Run("first claim wins and later claims see pending", func(t *testing.T) {
		store, _ := newTestStore(t)

		claimed, existing, err := store.Claim(ctx, "pay-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, claimed)
		assert.Empty(t, existing)

		claimed, existing, err = store.Claim(ctx, "pay-1", time.Minute)
		require.NoError(t, err)
		assert.False(t, claimed)
		assert.Empty(t, existing)
	})

	t.Run("completed key returns recorded value", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, _, err := store.Claim(ctx, "pay-2", time.Minute)
		require.NoError(t, err)
		require.NoError(t, store.Complete(ctx, "pay-2", "payment-id-42", time.Hour))

		claimed, existing, err := store.Claim(ctx, "pay-2", time.Minute)
		require.NoError(t, err)
		assert.False(t, claimed)
		assert.Equal(t, "payment-id-42", existing)
	})

	t.Run("released key can be claimed again", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, _, _ = store.Claim(ctx, "pay-3", time.Minute)
		require.NoError(t, store.Release(ctx, "pay-3"))

		claimed, _, err := store.Claim(ctx, "pay-3", time.Minute)
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("expired key can be claimed again", func(t *testing.T) {
		store, now := newTestStore(t)

		_, _, _ = store.Claim(ctx, "pay-4", time.Minute)
		*now = now.Add(2 * time.Minute)

		claimed, _, err := store.Claim(ctx, "pay-4", time.Minute)
		require.NoError(t, err)
		assert.True(t, claimed)
	})
}

func TestInMemoryIdempotencyStore_ConcurrentClaims(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if claimed, _, err := store.Claim(context.Background(), "same-key", time.Minute); err == nil && claimed {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store, now := newTestStore(t)
	ctx := context.Background()

	_, _, _ = store.Claim(ctx, "short", time.Second)
	_, _, _ = store.Claim(ctx, "long", time.Hour)
	require.Equal(t, 2, store.Size())

	*now = now.Add(time.Minute)
	store.cleanup()
	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_CloseIsIdempotent(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestIdempotencyStoreFactory(t *testing.T) {
	unreachable := config.RedisConfig{Host: "127.0.0.1", Port: 1}

	t.Run("falls back to memory when allowed", func(t *testing.T) {
		f := NewIdempotencyStoreFactory(unreachable, WithInMemoryFallback(true), WithLogger(zap.NewNop()))
		store, err := f.CreateStore(context.Background())
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
	})

	t.Run("fails when fallback is not allowed", func(t *testing.T) {
		f := NewIdempotencyStoreFactory(unreachable)
		_, err := f.CreateStore(context.Background())
		assert.Error(t, err)
	})
}
