package collector

import (
	"context"
	"time"
)

// BroadcastState 对应 videos.list 返回的 snippet.liveBroadcastContent
type BroadcastState string

const (
	BroadcastNone      BroadcastState = "none"
	BroadcastLive      BroadcastState = "live"
	BroadcastUpcoming  BroadcastState = "upcoming"
	BroadcastCompleted BroadcastState = "completed"
)

// StreamingWindow 直播时间窗，字段为上游原始 RFC3339 字符串，缺失时为空
type StreamingWindow struct {
	ActualStartTime    string `json:"actualStartTime,omitempty"`
	ActualEndTime      string `json:"actualEndTime,omitempty"`
	ScheduledStartTime string `json:"scheduledStartTime,omitempty"`
}

// ContentItem 一条视频或直播，合并自 search 与 videos 两次调用
type ContentItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	PublishedAt  time.Time `json:"publishedAt"`
	ChannelName  string    `json:"channelName"`

	LiveBroadcastState BroadcastState `json:"liveBroadcastState,omitempty"`

	// 计数保持上游的十进制字符串，仅用于展示
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
	CommentCount string `json:"commentCount"`

	Duration            string           `json:"duration"`
	LiveStreamingWindow *StreamingWindow `json:"liveStreamingWindow,omitempty"`
}

// ContentResult 展示层消费的结果：普通视频与直播两组，均按发布时间倒序
type ContentResult struct {
	RegularVideos []ContentItem `json:"regularVideos"`
	LiveStreams   []ContentItem `json:"liveStreams"`
}

// All 返回普通视频在前、直播在后的合并列表
func (r ContentResult) All() []ContentItem {
	out := make([]ContentItem, 0, len(r.RegularVideos)+len(r.LiveStreams))
	out = append(out, r.RegularVideos...)
	return append(out, r.LiveStreams...)
}

// SearchRecord search.list 中我们关心的字段
type SearchRecord struct {
	VideoID      string
	Title        string
	ThumbnailURL string
	PublishedAt  time.Time
	ChannelTitle string
}

// Statistics videos.list statistics 部分
type Statistics struct {
	ViewCount    string
	LikeCount    string
	CommentCount string
}

// DetailRecord videos.list 中我们关心的字段；指针为 nil 表示上游未返回该部分
type DetailRecord struct {
	VideoID         string
	BroadcastState  BroadcastState
	Statistics      *Statistics
	Duration        *string
	StreamingWindow *StreamingWindow
}

// Source 抽象上游视频平台
type Source interface {
	Name() string
	// Search 按发布时间倒序返回频道最近的视频，已过滤掉没有 videoId 的条目
	Search(ctx context.Context, channelID string, maxResults int) ([]SearchRecord, error)
	// Details 按 ID 批量获取统计、时长与直播信息；ids 为空时不发请求
	Details(ctx context.Context, ids []string) ([]DetailRecord, error)
}
