package cache

import (
	"context"
	"time"
)

// Cache định nghĩa contract cho cache layer.
// Cho phép swap implementation (Redis, in-memory) khi test.
type Cache interface {
	// Get lấy data từ cache và unmarshal vào dest.
	// found = false nghĩa là cache miss, dest không bị thay đổi.
	Get(ctx context.Context, key string, dest any) (found bool, err error)

	// Set lưu data vào cache với TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete xóa các keys khỏi cache.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern xóa mọi key match glob pattern (list caches).
	DeletePattern(ctx context.Context, pattern string) error

	// Ping kiểm tra connection.
	Ping(ctx context.Context) error
}
