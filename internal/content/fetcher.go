// Package content 提供首页“最近视频 / 直播”区块的数据：
// 先查缓存，未命中时调用上游 search + videos，合并、分类、截断后写回缓存。
// 任何失败都降级为兜底结果，不把错误抛给展示层。
package content

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/LJTian/CreatorHub/internal/collector"
	"github.com/LJTian/CreatorHub/internal/processor"
	"github.com/LJTian/CreatorHub/internal/storage"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultCacheDuration = 15 * time.Minute
	SearchMaxResults     = 20
	// DefaultFetchTimeout 一次上游刷新（search + videos）的总时限
	DefaultFetchTimeout = 45 * time.Second
)

// Outcome 标记一次 Resolve 走的是哪条路径，仅用于日志与运维，不进入展示层契约
type Outcome string

const (
	OutcomeCached          Outcome = "cached"
	OutcomeFresh           Outcome = "fresh"
	OutcomeConfigMissing   Outcome = "config_missing"
	OutcomeQuotaExceeded   Outcome = "quota_exceeded"
	OutcomeEmptyUpstream   Outcome = "empty_upstream"
	OutcomeUpstreamFailure Outcome = "upstream_failure"
)

// Resolution 结果 + 路径；Err 只在失败路径上非空
type Resolution struct {
	Result  collector.ContentResult
	Outcome Outcome
	Err     error
}

// Fallback 兜底结果：两组都是空列表（非 nil，JSON 输出为 []）
func Fallback() collector.ContentResult {
	return collector.ContentResult{
		RegularVideos: []collector.ContentItem{},
		LiveStreams:   []collector.ContentItem{},
	}
}

type Settings struct {
	ChannelID string
	// APIKey 只用来判断是否已配置，请求时由 Source 自己携带
	APIKey        string
	CacheDuration time.Duration
	SearchLimit   int
	BucketLimit   int
	FetchTimeout  time.Duration
}

type Option func(*Fetcher)

// WithClock 注入时钟，测试用来推进时间
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// Fetcher 单一频道的最近内容获取器，可被多个请求并发调用
type Fetcher struct {
	source   collector.Source
	cache    storage.ContentCache
	settings Settings
	now      func() time.Time
	logger   *log.Logger
	group    singleflight.Group
}

// NewFetcher source 可以为 nil（未配置 API key 时），此时总是返回兜底结果
func NewFetcher(source collector.Source, cache storage.ContentCache, settings Settings, opts ...Option) *Fetcher {
	if settings.CacheDuration <= 0 {
		settings.CacheDuration = DefaultCacheDuration
	}
	if settings.SearchLimit <= 0 {
		settings.SearchLimit = SearchMaxResults
	}
	if settings.BucketLimit <= 0 {
		settings.BucketLimit = processor.BucketLimit
	}
	if settings.FetchTimeout <= 0 {
		settings.FetchTimeout = DefaultFetchTimeout
	}
	if cache == nil {
		cache = storage.NewMemoryCache()
	}
	f := &Fetcher{
		source:   source,
		cache:    cache,
		settings: settings,
		now:      time.Now,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetRecentContent 返回最近的视频与直播，永不返回错误
func (f *Fetcher) GetRecentContent(ctx context.Context) collector.ContentResult {
	return f.Resolve(ctx).Result
}

// ClearCache 丢弃缓存，下一次调用会重新请求上游（或走未配置兜底）
func (f *Fetcher) ClearCache(ctx context.Context) error {
	if err := f.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear content cache: %w", err)
	}
	f.logger.Printf("content: cache cleared")
	return nil
}

// Name 与 Warm 供 scheduler 定时预热缓存
func (f *Fetcher) Name() string {
	return "recent_content"
}

func (f *Fetcher) Warm(ctx context.Context) {
	res := f.Resolve(ctx)
	f.logger.Printf("content: warm done outcome=%s videos=%d streams=%d",
		res.Outcome, len(res.Result.RegularVideos), len(res.Result.LiveStreams))
}

func (f *Fetcher) Resolve(ctx context.Context) Resolution {
	if entry, ok := f.freshEntry(ctx); ok {
		return Resolution{Result: entry.Result, Outcome: OutcomeCached}
	}

	if !f.configured() {
		f.logger.Printf("content: youtube api key or channel id not configured, returning empty data")
		return Resolution{Result: Fallback(), Outcome: OutcomeConfigMissing}
	}

	// 同一时刻的多个未命中请求只打一次上游。
	// 刷新不继承任何一个调用方的取消，每个调用方只在自己的 ctx 结束时提前返回兜底。
	ch := f.group.DoChan(f.settings.ChannelID, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.settings.FetchTimeout)
		defer cancel()
		if entry, ok := f.freshEntry(fctx); ok {
			return Resolution{Result: entry.Result, Outcome: OutcomeCached}, nil
		}
		return f.refresh(fctx), nil
	})
	select {
	case r := <-ch:
		return r.Val.(Resolution)
	case <-ctx.Done():
		f.logger.Printf("content: caller gave up waiting for refresh: %v, returning empty data", ctx.Err())
		return Resolution{Result: Fallback(), Outcome: OutcomeUpstreamFailure, Err: ctx.Err()}
	}
}

func (f *Fetcher) configured() bool {
	return f.source != nil && f.settings.APIKey != "" && f.settings.ChannelID != ""
}

func (f *Fetcher) freshEntry(ctx context.Context) (storage.Entry, bool) {
	entry, ok, err := f.cache.Get(ctx)
	if err != nil {
		f.logger.Printf("warn: content: read cache: %v", err)
		return storage.Entry{}, false
	}
	if !ok || f.now().Sub(entry.StoredAt) >= f.settings.CacheDuration {
		return storage.Entry{}, false
	}
	return entry, true
}

func (f *Fetcher) refresh(ctx context.Context) Resolution {
	channelID := f.settings.ChannelID
	f.logger.Printf("content: fetching fresh data from %s channel=%s", f.source.Name(), channelID)

	found, err := f.source.Search(ctx, channelID, f.settings.SearchLimit)
	if err != nil {
		if errors.Is(err, collector.ErrQuotaExceeded) {
			f.logger.Printf("content: api quota exceeded, returning empty data: %v", err)
			return Resolution{Result: Fallback(), Outcome: OutcomeQuotaExceeded, Err: err}
		}
		return f.fail(err)
	}

	search := make([]collector.SearchRecord, 0, len(found))
	ids := make([]string, 0, len(found))
	for _, s := range found {
		if s.VideoID == "" {
			continue
		}
		search = append(search, s)
		ids = append(ids, s.VideoID)
	}
	if len(search) == 0 {
		f.logger.Printf("content: no videos found for channel=%s, returning empty data", channelID)
		return Resolution{Result: Fallback(), Outcome: OutcomeEmptyUpstream}
	}

	details, err := f.source.Details(ctx, ids)
	if err != nil {
		return f.fail(err)
	}

	items := processor.Merge(search, details)
	result := processor.Partition(items, f.settings.BucketLimit)

	if err := f.cache.Set(ctx, storage.Entry{Result: result, StoredAt: f.now()}); err != nil {
		f.logger.Printf("warn: content: write cache: %v", err)
	}
	f.logger.Printf("content: fetched %d videos and %d streams (search=%d details=%d)",
		len(result.RegularVideos), len(result.LiveStreams), len(search), len(details))
	return Resolution{Result: result, Outcome: OutcomeFresh}
}

func (f *Fetcher) fail(err error) Resolution {
	f.logger.Printf("content: fetch recent videos error: %v, returning empty data", err)
	return Resolution{Result: Fallback(), Outcome: OutcomeUpstreamFailure, Err: err}
}
