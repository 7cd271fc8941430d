package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache 把缓存放到 Redis，多个进程（API 与 collect 命令）共享同一份结果。
// key 的 TTL 只用于回收，新鲜度仍由 StoredAt 决定。
type RedisCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, channelID string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		key:    KeyForChannel(channelID),
		ttl:    ttl,
	}
}

// KeyForChannel 使用 {...} 以便 Redis Cluster 下同一频道落在同一个 slot
func KeyForChannel(channelID string) string {
	return fmt.Sprintf("creatorhub:content:recent:{%s}", channelID)
}

func (r *RedisCache) Get(ctx context.Context) (Entry, bool, error) {
	bs, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("redis GET %s: %w", r.key, err)
	}
	var e Entry
	if err := json.Unmarshal(bs, &e); err != nil {
		return Entry{}, false, fmt.Errorf("decode cache entry %s: %w", r.key, err)
	}
	return e, true, nil
}

func (r *RedisCache) Set(ctx context.Context, entry Entry) error {
	bs, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := r.client.Set(ctx, r.key, bs, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", r.key, err)
	}
	return nil
}

func (r *RedisCache) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis DEL %s: %w", r.key, err)
	}
	return nil
}
