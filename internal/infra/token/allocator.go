package token

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Allocator hands out the sequential token numbers printed on pickup
// tickets. Uniqueness under concurrent submissions is delegated to an
// atomic backend sequence, never computed client-side.
type Allocator interface {
	Next(ctx context.Context) (int64, error)
}

const keyPrefix = "canteen:token_seq:"

// RedisAllocator implements the sequence with an INCR on a
// per-serving-day key, so token numbers restart each day and stay
// unique within the active serving window.
type RedisAllocator struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisAllocator(client *redis.Client) *RedisAllocator {
	return &RedisAllocator{client: client, now: time.Now}
}

func (a *RedisAllocator) Next(ctx context.Context) (int64, error) {
	key := keyPrefix + a.now().Format("2006-01-02")
	n, err := a.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// First token of the day also sets the key to expire once the
	// serving window is long over.
	if n == 1 {
		a.client.Expire(ctx, key, 48*time.Hour)
	}
	return n, nil
}

var _ Allocator = (*RedisAllocator)(nil)
