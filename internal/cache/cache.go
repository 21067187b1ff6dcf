package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/segyhp/growvest-engine/internal/domain"
)

const plansKey = "plans:all"

var (
	// ErrCacheMiss is returned when a key is not cached
	ErrCacheMiss = errors.New("cache miss")

	// ErrLockHeld is returned when another holder owns the lock
	ErrLockHeld = errors.New("lock is held by another process")
)

// Only the holder that set the token may delete the lock
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisCache keeps the plan list and distributed run locks in Redis
type RedisCache struct {
	client  *redis.Client
	planTTL time.Duration
}

func NewRedisCache(client *redis.Client, planTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:  client,
		planTTL: planTTL,
	}
}

// GetPlans returns the cached plan list or ErrCacheMiss
func (c *RedisCache) GetPlans(ctx context.Context) ([]*domain.Plan, error) {
	data, err := c.client.Get(ctx, plansKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var plans []*domain.Plan
	if err := json.Unmarshal(data, &plans); err != nil {
		return nil, fmt.Errorf("decode cached plans: %w", err)
	}

	return plans, nil
}

// SetPlans caches the plan list for the configured TTL
func (c *RedisCache) SetPlans(ctx context.Context, plans []*domain.Plan) error {
	data, err := json.Marshal(plans)
	if err != nil {
		return fmt.Errorf("encode plans: %w", err)
	}

	return c.client.Set(ctx, plansKey, data, c.planTTL).Err()
}

// AcquireLock sets key if absent and returns a function that releases it.
// The lock expires after ttl even if never released.
func (c *RedisCache) AcquireLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	token := uuid.NewString()

	ok, err := c.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockHeld
	}

	release := func(ctx context.Context) error {
		return releaseScript.Run(ctx, c.client, []string{key}, token).Err()
	}

	return release, nil
}

// Ping checks connectivity
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
