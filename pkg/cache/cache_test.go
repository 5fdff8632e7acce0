package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fnhttp/pkg/cache"
	"github.com/dmitrymomot/fnhttp/pkg/params"
)

func TestMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "a", "1", 0))
		v, err := c.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "1", v)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		defer c.Close()

		_, err := c.Get(ctx, "nope")
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("expired entry is gone", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "a", "1", time.Millisecond))
		time.Sleep(5 * time.Millisecond)
		_, err := c.Get(ctx, "a")
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("negative ttl never expires", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](cache.WithCleanupInterval(0), cache.WithDefaultTTL(time.Millisecond))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "a", "1", -1))
		time.Sleep(5 * time.Millisecond)
		_, err := c.Get(ctx, "a")
		assert.NoError(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "a", "1", 0))
		require.NoError(t, c.Delete(ctx, "a"))
		_, err := c.Get(ctx, "a")
		assert.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("max entries drops the soonest to expire", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](cache.WithCleanupInterval(0), cache.WithMaxEntries(2))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "forever", "1", -1))
		require.NoError(t, c.Set(ctx, "short", "2", time.Minute))
		require.NoError(t, c.Set(ctx, "long", "3", time.Hour))

		assert.Equal(t, 2, c.Len())
		_, err := c.Get(ctx, "short")
		assert.ErrorIs(t, err, cache.ErrNotFound)
		_, err = c.Get(ctx, "forever")
		assert.NoError(t, err)
	})

	t.Run("overwrite does not evict", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](cache.WithCleanupInterval(0), cache.WithMaxEntries(1))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "a", "1", 0))
		require.NoError(t, c.Set(ctx, "a", "2", 0))
		v, err := c.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "2", v)
	})

	t.Run("purge loop removes expired entries", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string](cache.WithCleanupInterval(5 * time.Millisecond))
		defer c.Close()

		require.NoError(t, c.Set(ctx, "a", "1", time.Millisecond))
		assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("closed cache", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[string]()
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())

		assert.ErrorIs(t, c.Set(ctx, "a", "1", 0), cache.ErrClosed)
		_, err := c.Get(ctx, "a")
		assert.ErrorIs(t, err, cache.ErrClosed)
		assert.ErrorIs(t, c.Delete(ctx, "a"), cache.ErrClosed)
	})
}

func newRedis(t *testing.T) (*miniredis.Miniredis, goredis.UniversalClient) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedis(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("keeps object key order", func(t *testing.T) {
		t.Parallel()
		mr, client := newRedis(t)
		c := cache.NewRedis[*params.Object](client, nil, cache.WithPrefix("session"))

		obj := params.ObjectOf("z", 1, "a", "x")
		require.NoError(t, c.Set(ctx, "id", obj, time.Minute))

		raw, err := mr.Get("session:id")
		require.NoError(t, err)
		assert.JSONEq(t, `{"z":1,"a":"x"}`, raw)

		got, err := c.Get(ctx, "id")
		require.NoError(t, err)
		assert.Equal(t, []string{"z", "a"}, got.Keys())
		assert.Equal(t, time.Minute, mr.TTL("session:id"))
	})

	t.Run("default and negative ttl", func(t *testing.T) {
		t.Parallel()
		mr, client := newRedis(t)
		c := cache.NewRedis[string](client, nil, cache.WithRedisDefaultTTL(10*time.Minute))

		require.NoError(t, c.Set(ctx, "a", "1", 0))
		require.NoError(t, c.Set(ctx, "b", "2", -1))
		assert.Equal(t, 10*time.Minute, mr.TTL("a"))
		assert.Zero(t, mr.TTL("b"))
	})

	t.Run("missing and deleted keys", func(t *testing.T) {
		t.Parallel()
		_, client := newRedis(t)
		c := cache.NewRedis[string](client, nil)

		_, err := c.Get(ctx, "a")
		assert.ErrorIs(t, err, cache.ErrNotFound)

		require.NoError(t, c.Set(ctx, "a", "1", 0))
		require.NoError(t, c.Delete(ctx, "a"))
		_, err = c.Get(ctx, "a")
		assert.ErrorIs(t, err, cache.ErrNotFound)
		assert.NoError(t, c.Close())
	})

	t.Run("bad payload", func(t *testing.T) {
		t.Parallel()
		mr, client := newRedis(t)
		c := cache.NewRedis[*params.Object](client, nil)

		require.NoError(t, mr.Set("a", "[1,2]"))
		_, err := c.Get(ctx, "a")
		assert.ErrorIs(t, err, cache.ErrUnmarshal)
	})
}
