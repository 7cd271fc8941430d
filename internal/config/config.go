package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// YouTube Data API v3；任一为空时内容接口直接返回兜底数据，不访问网络
	YouTubeAPIKey  string
	ChannelID      string
	YouTubeBaseURL string
	YouTubeTimeout time.Duration

	// CacheBackend: memory(默认) / redis
	CacheBackend  string
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string

	RefreshCronSpec string

	BasicAuthUser string
	BasicAuthPass string
	AdminUser     string
	AdminPass     string

	WebRoot     string
	CatalogFile string
}

func Load() *Config {
	loadDotEnv()

	cfg := &Config{
		AppPort:         getEnv("APP_PORT", "9000"),
		YouTubeAPIKey:   strings.TrimSpace(os.Getenv("YOUTUBE_API_KEY")),
		ChannelID:       strings.TrimSpace(os.Getenv("CHANNEL_ID")),
		YouTubeBaseURL:  getEnv("YOUTUBE_BASE_URL", "https://youtube.googleapis.com/"),
		YouTubeTimeout:  getDuration("YOUTUBE_TIMEOUT", 20*time.Second),
		CacheBackend:    strings.ToLower(getEnv("CACHE_BACKEND", "memory")),
		CacheTTL:        getDuration("CONTENT_CACHE_TTL", 15*time.Minute),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6380"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RefreshCronSpec: getEnv("REFRESH_CRON", "*/15 * * * *"),
		BasicAuthUser:   os.Getenv("APP_BASIC_USER"),
		BasicAuthPass:   os.Getenv("APP_BASIC_PASS"),
		AdminUser:       os.Getenv("ADMIN_USER"),
		AdminPass:       os.Getenv("ADMIN_PASS"),
		WebRoot:         os.Getenv("WEB_ROOT"),
		CatalogFile:     os.Getenv("CATALOG_FILE"),
	}

	log.Printf("config loaded: port=%s cache=%s ttl=%s refresh=%s youtube=%t",
		cfg.AppPort, cfg.CacheBackend, cfg.CacheTTL, cfg.RefreshCronSpec, cfg.YouTubeConfigured())
	return cfg
}

// YouTubeConfigured 报告 API key 与频道 ID 是否都已配置（不输出 key 本身）
func (c *Config) YouTubeConfigured() bool {
	return c.YouTubeAPIKey != "" && c.ChannelID != ""
}

// loadDotEnv 自动加载 .env（若存在），真实环境变量优先；ENV_FILE 指定的文件则覆盖环境变量
func loadDotEnv() {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Overload(envFile); err != nil {
			log.Printf("env: failed to load ENV_FILE=%q: %v", envFile, err)
		} else {
			log.Printf("env: loaded %s", envFile)
		}
		return
	}
	if err := godotenv.Load(); err == nil {
		log.Printf("env: loaded .env")
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("warn: invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

// Now returns current time, 方便后续做可测试封装
func Now() time.Time {
	return time.Now()
}
