package processor

import (
	"github.com/LJTian/CreatorHub/internal/collector"
)

const (
	// ZeroDuration 上游用 P0D 表示没有时长（直播中或预告），按直播归类
	ZeroDuration = "P0D"
	// DefaultDuration contentDetails 缺失时的占位时长，不参与直播判定
	DefaultDuration = "PT0M0S"
	// BucketLimit 每组最多保留的条数
	BucketLimit = 8
)

var zeroStatistics = collector.Statistics{ViewCount: "0", LikeCount: "0", CommentCount: "0"}

// Merge 按 search 的顺序把 search 与 videos 两次结果合并成 ContentItem。
// 找不到详情的条目直接丢弃；重复 ID 只保留第一次出现的。
func Merge(search []collector.SearchRecord, details []collector.DetailRecord) []collector.ContentItem {
	byID := make(map[string]collector.DetailRecord, len(details))
	for _, d := range details {
		if _, ok := byID[d.VideoID]; ok {
			continue
		}
		byID[d.VideoID] = d
	}

	out := make([]collector.ContentItem, 0, len(search))
	seen := make(map[string]struct{}, len(search))
	for _, s := range search {
		if _, ok := seen[s.VideoID]; ok {
			continue
		}
		d, ok := byID[s.VideoID]
		if !ok {
			continue
		}
		seen[s.VideoID] = struct{}{}

		stats := zeroStatistics
		if d.Statistics != nil {
			stats = normalizeStatistics(*d.Statistics)
		}
		duration := DefaultDuration
		if d.Duration != nil && *d.Duration != "" {
			duration = *d.Duration
		}

		out = append(out, collector.ContentItem{
			ID:                  s.VideoID,
			Title:               s.Title,
			ThumbnailURL:        s.ThumbnailURL,
			PublishedAt:         s.PublishedAt,
			ChannelName:         s.ChannelTitle,
			LiveBroadcastState:  d.BroadcastState,
			ViewCount:           stats.ViewCount,
			LikeCount:           stats.LikeCount,
			CommentCount:        stats.CommentCount,
			Duration:            duration,
			LiveStreamingWindow: d.StreamingWindow,
		})
	}
	return out
}

// IsLive 判断是否归为直播：直播状态为 live/upcoming/completed、带直播时间窗，或时长为 P0D
func IsLive(it collector.ContentItem) bool {
	switch it.LiveBroadcastState {
	case collector.BroadcastLive, collector.BroadcastUpcoming, collector.BroadcastCompleted:
		return true
	}
	return it.LiveStreamingWindow != nil || it.Duration == ZeroDuration
}

// Partition 保持原有顺序拆成两组，每组截断到 limit 条
func Partition(items []collector.ContentItem, limit int) collector.ContentResult {
	if limit <= 0 {
		limit = BucketLimit
	}
	res := collector.ContentResult{
		RegularVideos: make([]collector.ContentItem, 0, min(limit, len(items))),
		LiveStreams:   make([]collector.ContentItem, 0, min(limit, len(items))),
	}
	for _, it := range items {
		if IsLive(it) {
			if len(res.LiveStreams) < limit {
				res.LiveStreams = append(res.LiveStreams, it)
			}
			continue
		}
		if len(res.RegularVideos) < limit {
			res.RegularVideos = append(res.RegularVideos, it)
		}
	}
	return res
}

func normalizeStatistics(s collector.Statistics) collector.Statistics {
	if s.ViewCount == "" {
		s.ViewCount = "0"
	}
	if s.LikeCount == "" {
		s.LikeCount = "0"
	}
	if s.CommentCount == "" {
		s.CommentCount = "0"
	}
	return s
}
