package main

import (
	"context"
	"log"
	"time"

	"github.com/LJTian/CreatorHub/internal/api"
	"github.com/LJTian/CreatorHub/internal/catalog"
	"github.com/LJTian/CreatorHub/internal/collector"
	"github.com/LJTian/CreatorHub/internal/config"
	"github.com/LJTian/CreatorHub/internal/content"
	"github.com/LJTian/CreatorHub/internal/scheduler"
	"github.com/LJTian/CreatorHub/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		log.Fatalf("load catalog failed: %v", err)
	}

	fetcher := content.NewFetcher(newSource(cfg), newCache(cfg), content.Settings{
		ChannelID:     cfg.ChannelID,
		APIKey:        cfg.YouTubeAPIKey,
		CacheDuration: cfg.CacheTTL,
	})

	// 未配置 YouTube 时不启动预热，避免每轮只打印一条兜底日志
	if cfg.YouTubeConfigured() {
		s, err := scheduler.New(cfg.RefreshCronSpec, cfg.YouTubeTimeout*2, fetcher)
		if err != nil {
			log.Fatalf("init scheduler failed: %v", err)
		}
		s.Start()
		defer s.Stop()
		log.Printf("scheduler: warm job %q, next run at %s", cfg.RefreshCronSpec, s.NextRun().Format(time.RFC3339))
	}

	// API
	r := gin.Default()
	// 若配置了全局访问密码，则启用 Basic Auth 保护（/health 仍然免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(api.BasicAuthMiddleware(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}

	apiServer := api.NewServer(fetcher, cat, cfg)
	apiServer.RegisterRoutes(r)

	// 若配置了前端目录，则托管 SPA 静态文件并做 fallback
	if cfg.WebRoot != "" {
		api.ServeSPA(r, cfg.WebRoot)
	}
	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}

// newSource 未配置 API key 时返回 nil，Fetcher 会直接走兜底
func newSource(cfg *config.Config) collector.Source {
	if !cfg.YouTubeConfigured() {
		log.Printf("youtube: YOUTUBE_API_KEY or CHANNEL_ID not set, recent content disabled")
		return nil
	}
	yt, err := collector.NewYouTubeClient(context.Background(), collector.YouTubeOptions{
		APIKey:  cfg.YouTubeAPIKey,
		BaseURL: cfg.YouTubeBaseURL,
		Timeout: cfg.YouTubeTimeout,
	})
	if err != nil {
		log.Printf("warn: init youtube client: %v", err)
		return nil
	}
	return yt
}

func newCache(cfg *config.Config) storage.ContentCache {
	switch cfg.CacheBackend {
	case "redis":
		rdb := storage.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		return storage.NewRedisCache(rdb, cfg.ChannelID, cfg.CacheTTL)
	case "memory", "":
		return storage.NewMemoryCache()
	default:
		log.Printf("warn: unknown CACHE_BACKEND=%q, using memory", cfg.CacheBackend)
		return storage.NewMemoryCache()
	}
}
