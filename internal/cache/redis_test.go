package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jwebster45206/creature-barn/pkg/statblock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := NewRedisCache("redis://"+mr.Addr(), ttl, logger)
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create cache: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
		mr.Close()
	})
	return c, mr
}

func sampleRecord() statblock.Record {
	return statblock.Extract("Goblin Warrior CR 1/2\nXP 200\nNE Small humanoid (goblinoid)\n")
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := setupTestRedis(t, time.Hour)
	ctx := context.Background()
	rec := sampleRecord()

	require.NoError(t, c.Set(ctx, "abc", rec))
	assert.True(t, mr.Exists("statblock:abc"))

	got, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := setupTestRedis(t, time.Hour)

	got, err := c.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_Expiry(t *testing.T) {
	c, mr := setupTestRedis(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "abc", sampleRecord()))

	assert.Equal(t, time.Minute, mr.TTL("statblock:abc"))
	mr.FastForward(2 * time.Minute)

	got, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_CorruptValueIsMiss(t *testing.T) {
	c, mr := setupTestRedis(t, time.Hour)
	require.NoError(t, mr.Set("statblock:bad", "{not json"))
	require.NoError(t, mr.Set("statblock:partial", `{"Name":"x"}`))

	got, err := c.Get(context.Background(), "bad")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = c.Get(context.Background(), "partial")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_Delete(t *testing.T) {
	c, mr := setupTestRedis(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "abc", sampleRecord()))

	require.NoError(t, c.Delete(ctx, "abc"))
	assert.False(t, mr.Exists("statblock:abc"))
	assert.NoError(t, c.Delete(ctx, "abc"))
}

// unreachableCache points at an address where Redis used to be.
func unreachableCache(t *testing.T) *RedisCache {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	c, err := NewRedisCache("redis://"+addr, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedisCache_ServerDown(t *testing.T) {
	c := unreachableCache(t)

	_, err := c.Get(context.Background(), "abc")
	assert.Error(t, err)
	assert.Error(t, c.Ping(context.Background()))
}

func TestRedisCache_WaitForConnection(t *testing.T) {
	c, _ := setupTestRedis(t, time.Hour)
	assert.NoError(t, c.WaitForConnection(context.Background(), 3, time.Millisecond))
}

func TestRedisCache_WaitForConnectionCancelled(t *testing.T) {
	c := unreachableCache(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.WaitForConnection(ctx, 5, time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRedisCache_BadURL(t *testing.T) {
	_, err := NewRedisCache("not a url", time.Hour, nil)
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "statblock:123", Key("123"))
}
