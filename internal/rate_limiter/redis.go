package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/config"
	"github.com/redis/go-redis/v9"
)

// KEYS[1] window key, ARGV[1] window ms, ARGV[2] hits, ARGV[3] limit.
// Replies {count, pttl, taken}.
var takeWindowScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
local n = tonumber(ARGV[2])
if current + n > tonumber(ARGV[3]) then
	local ttl = redis.call("PTTL", KEYS[1])
	if ttl < 0 then
		ttl = tonumber(ARGV[1])
	end
	return {current, ttl, 0}
end
local count = redis.call("INCRBY", KEYS[1], n)
if count == n then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {count, redis.call("PTTL", KEYS[1]), 1}
`)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.ADDR,
		Password:     cfg.PASSWORD,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect redis: %w", err)
	}

	return client, nil
}

func (r *RedisStore) Take(ctx context.Context, key string, n, limit int64, window time.Duration) (int64, time.Duration, bool, error) {
	vals, err := takeWindowScript.Run(ctx, r.client, []string{key}, window.Milliseconds(), n, limit).Int64Slice()
	if err != nil {
		return 0, 0, false, err
	}
	if len(vals) != 3 {
		return 0, 0, false, fmt.Errorf("unexpected rate limit script reply: %v", vals)
	}

	return vals[0], time.Duration(vals[1]) * time.Millisecond, vals[2] == 1, nil
}
