package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vendorhub/backend/internal/domain/ledger"
)

// DefaultOrderSequenceKey is the Redis key of the order counter
const DefaultOrderSequenceKey = "vendorhub:seq:orders"

// seedScript raises the counter to ARGV[1] unless it is already higher
var seedScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local target = tonumber(ARGV[1])
if current < target then
  redis.call('SET', KEYS[1], target)
  return target
end
return current
`)

// RedisOrderSequence hands out order numbers with INCR. Numbers drawn by a
// transaction that later rolls back are not reused.
type RedisOrderSequence struct {
	client redis.Cmdable
	key    string
}

// NewRedisOrderSequence creates a sequence on key
func NewRedisOrderSequence(client redis.Cmdable, key string) *RedisOrderSequence {
	if key == "" {
		key = DefaultOrderSequenceKey
	}
	return &RedisOrderSequence{client: client, key: key}
}

// Next increments the counter and returns the new value
func (s *RedisOrderSequence) Next(ctx context.Context) (int64, error) {
	n, err := s.client.Incr(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to draw order number: %w", err)
	}
	return n, nil
}

// Seed raises the counter to at least value, typically the highest order
// number already stored, and returns the resulting counter value.
func (s *RedisOrderSequence) Seed(ctx context.Context, value int64) (int64, error) {
	n, err := seedScript.Run(ctx, s.client, []string{s.key}, value).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to seed order sequence: %w", err)
	}
	return n, nil
}

var _ ledger.OrderNumberSequence = (*RedisOrderSequence)(nil)
