package main

import (
	"testing"
	"time"

	"github.com/LJTian/CreatorHub/internal/config"
	"github.com/LJTian/CreatorHub/internal/storage"
	"github.com/alicebob/miniredis/v2"
)

func TestRunWithoutYouTubeReturnsZero(t *testing.T) {
	cfg := &config.Config{CacheBackend: "memory", CacheTTL: 15 * time.Minute}
	if code := run(cfg, false); code != 0 {
		t.Fatalf("exit code = %d, want 0 for the unconfigured fallback", code)
	}
}

func TestRunClearsSharedRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	key := storage.KeyForChannel("UC123")
	if err := mr.Set(key, `{"result":{"regularVideos":[],"liveStreams":[]}}`); err != nil {
		t.Fatalf("seed redis: %v", err)
	}

	cfg := &config.Config{
		ChannelID:    "UC123",
		CacheBackend: "redis",
		CacheTTL:     15 * time.Minute,
		RedisAddr:    mr.Addr(),
	}
	if code := run(cfg, true); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if mr.Exists(key) {
		t.Fatalf("cache key should be cleared by -clear-cache")
	}
}

func TestRunClearCacheFailureReturnsOne(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := &config.Config{
		ChannelID:    "UC123",
		CacheBackend: "redis",
		CacheTTL:     15 * time.Minute,
		RedisAddr:    addr,
	}
	if code := run(cfg, true); code != 1 {
		t.Fatalf("exit code = %d, want 1 when the cache cannot be cleared", code)
	}
}
