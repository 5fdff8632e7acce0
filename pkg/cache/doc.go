// Package cache provides a small generic key-value cache with an in-memory
// and a Redis backend. Session stores are built on it.
//
// TTL semantics for Set: a positive duration expires the entry after that
// duration, zero uses the cache default and a negative duration never expires.
//
//	c := cache.NewMemory[*params.Object](
//		cache.WithDefaultTTL(30*time.Minute),
//		cache.WithMaxEntries(10000),
//	)
//	defer c.Close()
//
// The Redis backend serializes values with a [Marshaler], JSON by default:
//
//	c := cache.NewRedis[*params.Object](client, nil, cache.WithPrefix("session"))
//
// Misses return [ErrNotFound].
package cache
