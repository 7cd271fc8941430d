package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/LJTian/CreatorHub/internal/collector"
	"github.com/LJTian/CreatorHub/internal/config"
	"github.com/LJTian/CreatorHub/internal/content"
	"github.com/LJTian/CreatorHub/internal/storage"
)

// 一个仅执行一次抓取的命令行入口：适合手动刷新缓存或排查配额问题
func main() {
	clearCache := flag.Bool("clear-cache", false, "clear the cached recent content before fetching")
	flag.Parse()

	os.Exit(run(config.Load(), *clearCache))
}

// run 返回进程退出码；所有 defer 都在 os.Exit 之前执行
func run(cfg *config.Config, clearCache bool) int {
	var source collector.Source
	if cfg.YouTubeConfigured() {
		yt, err := collector.NewYouTubeClient(context.Background(), collector.YouTubeOptions{
			APIKey:  cfg.YouTubeAPIKey,
			BaseURL: cfg.YouTubeBaseURL,
			Timeout: cfg.YouTubeTimeout,
		})
		if err != nil {
			log.Printf("init youtube client failed: %v", err)
			return 1
		}
		source = yt
	}

	// 与 cmd/api 共用 Redis 时，这里的刷新结果 API 进程也能读到
	var cache storage.ContentCache = storage.NewMemoryCache()
	if cfg.CacheBackend == "redis" {
		rdb := storage.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		defer rdb.Close()
		cache = storage.NewRedisCache(rdb, cfg.ChannelID, cfg.CacheTTL)
	}

	fetcher := content.NewFetcher(source, cache, content.Settings{
		ChannelID:     cfg.ChannelID,
		APIKey:        cfg.YouTubeAPIKey,
		CacheDuration: cfg.CacheTTL,
	})

	ctx := context.Background()
	if clearCache {
		if err := fetcher.ClearCache(ctx); err != nil {
			log.Printf("clear cache failed: %v", err)
			return 1
		}
	}

	res := fetcher.Resolve(ctx)
	log.Printf("collect done: outcome=%s videos=%d streams=%d",
		res.Outcome, len(res.Result.RegularVideos), len(res.Result.LiveStreams))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Result); err != nil {
		log.Printf("encode result failed: %v", err)
		return 1
	}
	if res.Err != nil {
		return 1
	}
	return 0
}
