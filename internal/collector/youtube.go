package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	ytDefaultBaseURL   = "https://youtube.googleapis.com/"
	ytClientTimeout    = 20 * time.Second
	ytMaxIDsPerRequest = 50 // videos.list 单次最多 50 个 id
)

var (
	ytSearchParts = []string{"snippet", "id"}
	ytDetailParts = []string{"snippet", "statistics", "contentDetails", "liveStreamingDetails"}
)

// ErrQuotaExceeded 上游因配额耗尽拒绝请求
var ErrQuotaExceeded = errors.New("youtube: quota exceeded")

// YouTubeOptions 构造 YouTubeClient 的参数；BaseURL 主要用于测试指向本地 httptest 服务
type YouTubeOptions struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// YouTubeClient 基于 YouTube Data API v3 的 Source 实现
type YouTubeClient struct {
	svc *youtube.Service
}

func NewYouTubeClient(ctx context.Context, opts YouTubeOptions) (*YouTubeClient, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("youtube: missing api key")
	}
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = ytDefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = ytClientTimeout
	}

	// 自带 http.Client 时 option.WithAPIKey 不生效，key 由 transport.APIKey 追加到每个请求
	hc := &http.Client{
		Timeout:   timeout,
		Transport: &transport.APIKey{Key: opts.APIKey},
	}
	svc, err := youtube.NewService(ctx, option.WithHTTPClient(hc), option.WithEndpoint(base))
	if err != nil {
		return nil, fmt.Errorf("youtube: create service: %w", err)
	}
	return &YouTubeClient{svc: svc}, nil
}

func (c *YouTubeClient) Name() string {
	return "youtube"
}

func (c *YouTubeClient) Search(ctx context.Context, channelID string, maxResults int) ([]SearchRecord, error) {
	resp, err := c.svc.Search.List(ytSearchParts).
		ChannelId(channelID).
		Order("date").
		MaxResults(int64(maxResults)).
		Type("video").
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapAPIError("search.list", err)
	}

	out := make([]SearchRecord, 0, len(resp.Items))
	for _, it := range resp.Items {
		if it == nil || it.Id == nil || it.Id.VideoId == "" {
			continue
		}
		rec := SearchRecord{VideoID: it.Id.VideoId}
		var published string
		if sn := it.Snippet; sn != nil {
			rec.Title = sn.Title
			rec.ChannelTitle = sn.ChannelTitle
			rec.ThumbnailURL = pickThumb(sn.Thumbnails)
			published = sn.PublishedAt
		}
		t, err := time.Parse(time.RFC3339, published)
		if err != nil {
			return nil, fmt.Errorf("youtube search.list: item %s: parse publishedAt %q: %w", rec.VideoID, published, err)
		}
		rec.PublishedAt = t.UTC()
		out = append(out, rec)
	}
	return out, nil
}

func (c *YouTubeClient) Details(ctx context.Context, ids []string) ([]DetailRecord, error) {
	if len(ids) == 0 {
		return []DetailRecord{}, nil
	}
	if len(ids) > ytMaxIDsPerRequest {
		ids = ids[:ytMaxIDsPerRequest]
	}

	resp, err := c.svc.Videos.List(ytDetailParts).
		Id(strings.Join(ids, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapAPIError("videos.list", err)
	}

	out := make([]DetailRecord, 0, len(resp.Items))
	for _, v := range resp.Items {
		if v == nil || v.Id == "" {
			continue
		}
		rec := DetailRecord{VideoID: v.Id}
		if v.Snippet != nil {
			rec.BroadcastState = BroadcastState(v.Snippet.LiveBroadcastContent)
		}
		// 客户端把计数解析成 uint64，这里再格式化回十进制字符串；
		// 上游的规范写法（无前导零、无符号）经过往返后不变
		if st := v.Statistics; st != nil {
			rec.Statistics = &Statistics{
				ViewCount:    strconv.FormatUint(st.ViewCount, 10),
				LikeCount:    strconv.FormatUint(st.LikeCount, 10),
				CommentCount: strconv.FormatUint(st.CommentCount, 10),
			}
		}
		// duration 为空与整个 contentDetails 缺失同样处理，由 processor 填默认值
		if cd := v.ContentDetails; cd != nil && cd.Duration != "" {
			d := cd.Duration
			rec.Duration = &d
		}
		if ls := v.LiveStreamingDetails; ls != nil {
			rec.StreamingWindow = &StreamingWindow{
				ActualStartTime:    ls.ActualStartTime,
				ActualEndTime:      ls.ActualEndTime,
				ScheduledStartTime: ls.ScheduledStartTime,
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// IsQuotaError 判断是否为配额类错误（尽力而为：403、消息含 quota 或已知 reason）
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuotaExceeded) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == http.StatusForbidden {
			return true
		}
		if strings.Contains(strings.ToLower(gerr.Message), "quota") {
			return true
		}
		for _, item := range gerr.Errors {
			switch item.Reason {
			case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded":
				return true
			}
		}
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "quota")
}

func wrapAPIError(op string, err error) error {
	if IsQuotaError(err) {
		return fmt.Errorf("youtube %s: %w: %v", op, ErrQuotaExceeded, err)
	}
	return fmt.Errorf("youtube %s: %w", op, err)
}

// pickThumb 优先 medium，缺失时依次退到 high / default
func pickThumb(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*youtube.Thumbnail{t.Medium, t.High, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}
