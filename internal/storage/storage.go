package storage

import (
	"context"
	"log"
	"time"

	"github.com/LJTian/CreatorHub/internal/collector"
	"github.com/redis/go-redis/v9"
)

// Entry 最近一次成功抓取的结果及其写入时间
type Entry struct {
	Result   collector.ContentResult `json:"result"`
	StoredAt time.Time               `json:"storedAt"`
}

// ContentCache 进程内（或共享）的最近内容缓存。是否过期由调用方按 StoredAt 判断。
type ContentCache interface {
	// Get 未命中时返回 ok=false
	Get(ctx context.Context) (entry Entry, ok bool, err error)
	Set(ctx context.Context, entry Entry) error
	Clear(ctx context.Context) error
}

// NewRedisClient 创建 Redis 客户端；ping 失败只打印警告，与缓存降级策略保持一致
func NewRedisClient(addr, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("warn: redis ping failed: %v", err)
	}
	return rdb
}
