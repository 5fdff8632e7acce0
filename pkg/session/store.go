package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/fnhttp/pkg/cache"
	"github.com/dmitrymomot/fnhttp/pkg/params"
)

// StoreCodec keeps session content server side. The cookie only carries
// an opaque id. Every Encode stores the content under a fresh id.
type StoreCodec struct {
	store cache.Cache[*params.Object]
	ttl   time.Duration
	newID func() string
}

// StoreOption configures a StoreCodec.
type StoreOption func(*StoreCodec)

// WithTTL sets how long stored content lives. Zero uses the cache default.
func WithTTL(ttl time.Duration) StoreOption {
	return func(c *StoreCodec) {
		c.ttl = ttl
	}
}

// WithIDGenerator replaces the uuid v4 id generator.
func WithIDGenerator(fn func() string) StoreOption {
	return func(c *StoreCodec) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// NewStoreCodec creates a codec backed by store.
//
// Example:
//
//	client := redis.MustOpen(ctx, os.Getenv("REDIS_URL"))
//	codec := session.NewStoreCodec(
//	    cache.NewRedis[*params.Object](client, nil, cache.WithPrefix("session")),
//	    session.WithTTL(24*time.Hour),
//	)
func NewStoreCodec(store cache.Cache[*params.Object], opts ...StoreOption) *StoreCodec {
	c := &StoreCodec{
		store: store,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode stores a copy of content and returns its id.
func (c *StoreCodec) Encode(ctx context.Context, content *params.Object) (string, error) {
	if content == nil {
		content = params.NewObject()
	}
	id := c.newID()
	if err := c.store.Set(ctx, id, content.Clone(), c.ttl); err != nil {
		return "", err
	}
	return id, nil
}

// Decode loads the content stored under id.
func (c *StoreCodec) Decode(ctx context.Context, id string) (*params.Object, error) {
	content, err := c.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, errors.Join(ErrNotFound, err)
		}
		return nil, err
	}
	if content == nil {
		return params.NewObject(), nil
	}
	return content.Clone(), nil
}

// Destroy removes the content stored under id.
func (c *StoreCodec) Destroy(ctx context.Context, id string) error {
	return c.store.Delete(ctx, id)
}
