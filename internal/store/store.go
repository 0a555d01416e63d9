// Package store holds the key-value storage used for chat history and pending
// login codes. Values expire after the TTL given to Set; a zero TTL keeps them.
package store

import (
	"context"
	"time"

	"github.com/gofiber/storage/redis/v3"
)

// Storage is the subset of fiber.Storage the services use. Get returns nil,
// nil for missing or expired keys.
type Storage interface {
	GetWithContext(ctx context.Context, key string) ([]byte, error)
	SetWithContext(ctx context.Context, key string, val []byte, exp time.Duration) error
	DeleteWithContext(ctx context.Context, key string) error
}

var (
	_ Storage = (*Memory)(nil)
	_ Storage = (*redis.Storage)(nil)
)

// NewRedis connects to Redis using a redis:// URL. The returned storage also
// satisfies fiber.Storage, so it can back the session middleware.
func NewRedis(url string) *redis.Storage {
	return redis.New(redis.Config{
		URL: url,
	})
}
