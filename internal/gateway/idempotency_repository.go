package gateway

import (
	"context"
	"time"
)

// CachedResponse is a replayable HTTP response for an idempotency key.
type CachedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

type IdempotencyRepository interface {
	// Get returns nil, nil on a cache miss.
	Get(ctx context.Context, key string) (*CachedResponse, error)
	Save(ctx context.Context, key string, response CachedResponse, ttl time.Duration) error
}
