//go:build unit

package revocation_test

import (
	"context"
	"testing"
	"time"

	"slotbook/internal/infra/revocation"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/usecase"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ usecase.RevocationStore = (*revocation.MemoryStore)(nil)
	_ usecase.RevocationStore = (*revocation.RedisStore)(nil)
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	store := revocation.NewMemoryStore(clk)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Hour))

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	clk.Add(time.Hour)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entry outlives its token")
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := revocation.NewRedisStore(client)

	require.NoError(t, store.Revoke(ctx, "jti-1", 30*time.Minute))

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, 30*time.Minute, mr.TTL("slotbook:revoked:jti-1"))

	mr.FastForward(31 * time.Minute)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	t.Run("unreachable server", func(t *testing.T) {
		mr.Close()
		_, err := store.IsRevoked(ctx, "jti-1")
		assert.Error(t, err)
	})
}
