package cache

import (
	"context"
	"errors"
	"time"
)

// DefaultTTL is how long a cached catalog response stays servable.
const DefaultTTL = 60 * time.Second

var ErrCacheMiss = errors.New("cache miss")

// Store is a byte-payload cache with a fixed TTL. Entries are overwritten
// on Set and expire on their own; there is no explicit invalidation.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte) error
	Close() error
}
