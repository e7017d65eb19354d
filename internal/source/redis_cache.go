package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix Redis 中行缓存的键前缀
const redisKeyPrefix = "shopchinh:rows:"

// RedisCache 多实例共享的行缓存，值为 JSON 编码的二维数组
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache 创建 Redis 缓存
func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([][]string, bool, error) {
	raw, err := r.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached rows: %w", err)
	}
	var rows [][]string
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached rows: %w", err)
	}
	return rows, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, rows [][]string) error {
	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}
	if err := r.rdb.Set(ctx, redisKeyPrefix+key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache rows: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = redisKeyPrefix + k
	}
	if err := r.rdb.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached rows: %w", err)
	}
	return nil
}
