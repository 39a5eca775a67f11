// Package cache stores small JSON-encodable values with a TTL.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	// Get decodes the value at key into result and reports whether it was found.
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}
