package ratelimiter_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/ratelimiter"
)

// Runs against a real server when REDIS_TEST_URL is set, e.g. redis://localhost:6379/15.
func redisClient(t *testing.T) *redis.Client {
	t.Helper()

	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return client
}

func TestRedisStore(t *testing.T) {
	client := redisClient(t)
	clock := newFakeClock()
	prefix := fmt.Sprintf("folio-test:%d:", time.Now().UnixNano())

	store := ratelimiter.NewRedisStore(client, ratelimiter.WithKeyPrefix(prefix), ratelimiter.WithRedisClock(clock.Now))
	b, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Minute})
	require.NoError(t, err)
	ctx := context.Background()
	t.Cleanup(func() { _ = b.Reset(ctx, "ip") })

	res, err := b.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Remaining)

	res, err = b.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Remaining)

	res, err = b.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, clock.Now().Add(time.Minute).UnixMilli(), res.ResetAt.UnixMilli())

	ttl, err := client.PTTL(ctx, prefix+"ip").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	clock.Advance(time.Minute)
	res, err = b.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed())

	require.NoError(t, b.Reset(ctx, "ip"))
	exists, err := client.Exists(ctx, prefix+"ip").Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}

func TestRedisStore_Unavailable(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 50 * time.Millisecond})
	defer client.Close()

	store := ratelimiter.NewRedisStore(client)
	_, _, err := store.ConsumeTokens(context.Background(), "k", 1, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)
	assert.ErrorIs(t, store.Reset(context.Background(), "k"), ratelimiter.ErrStoreUnavailable)
}
