package cache

import (
	"context"
	"errors"
	"time"

	json "github.com/goccy/go-json"
)

// Cache is a key-value store with per-entry lifetimes.
//
// TTL semantics for Set:
//   - Positive duration: the entry expires after this duration
//   - Zero: the cache's default TTL is used
//   - Negative: the entry never expires
type Cache[V any] interface {
	// Get returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Close releases background resources. It does not close shared clients.
	Close() error
}

// Marshaler converts values for byte-oriented backends.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

// JSON returns a Marshaler using JSON. Types implementing json.Marshaler
// and json.Unmarshaler (such as *params.Object) keep their own encoding.
func JSON[V any]() Marshaler[V] {
	return jsonMarshaler[V]{}
}

type jsonMarshaler[V any] struct{}

func (jsonMarshaler[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (jsonMarshaler[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

// expiry resolves a TTL against the default. The zero time means no expiry.
func expiry(now time.Time, ttl, def time.Duration) time.Time {
	if ttl == 0 {
		ttl = def
	}
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}
