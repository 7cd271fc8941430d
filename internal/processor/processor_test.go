package processor

import (
	"fmt"
	"testing"
	"time"

	"github.com/LJTian/CreatorHub/internal/collector"
)

func strPtr(s string) *string { return &s }

func TestMergeDropsUnmatchedAndKeepsSearchOrder(t *testing.T) {
	now := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	search := []collector.SearchRecord{
		{VideoID: "a", Title: "A", PublishedAt: now, ChannelTitle: "Tynite", ThumbnailURL: "https://img/a"},
		{VideoID: "b", Title: "B", PublishedAt: now.Add(-time.Hour)},
		{VideoID: "c", Title: "C", PublishedAt: now.Add(-2 * time.Hour)},
		{VideoID: "a", Title: "A duplicate", PublishedAt: now.Add(-3 * time.Hour)},
	}
	// 详情顺序与 search 不同，c 没有详情
	details := []collector.DetailRecord{
		{VideoID: "b", Duration: strPtr("PT5M")},
		{VideoID: "a", Duration: strPtr("PT10M"), Statistics: &collector.Statistics{ViewCount: "10", LikeCount: "2", CommentCount: "1"}},
	}

	out := Merge(search, details)
	if len(out) != 2 {
		t.Fatalf("expected 2 merged items, got %d", len(out))
	}
	if out[0].ID != "a" || out[1].ID != "b" {
		t.Fatalf("merge should follow search order, got %q, %q", out[0].ID, out[1].ID)
	}
	if out[0].Title != "A" || out[0].ChannelName != "Tynite" || out[0].ThumbnailURL != "https://img/a" {
		t.Fatalf("search fields not carried over: %+v", out[0])
	}
	if out[0].ViewCount != "10" || out[0].LikeCount != "2" || out[0].CommentCount != "1" {
		t.Fatalf("statistics not copied verbatim: %+v", out[0])
	}
}

func TestMergeAppliesDefaults(t *testing.T) {
	search := []collector.SearchRecord{{VideoID: "x", PublishedAt: time.Now()}}
	details := []collector.DetailRecord{
		{VideoID: "x", Statistics: &collector.Statistics{ViewCount: "5"}},
	}

	out := Merge(search, details)
	if len(out) != 1 {
		t.Fatalf("expected 1 item, got %d", len(out))
	}
	it := out[0]
	if it.ViewCount != "5" || it.LikeCount != "0" || it.CommentCount != "0" {
		t.Fatalf("missing counts should normalise to \"0\": %+v", it)
	}
	if it.Duration != DefaultDuration {
		t.Fatalf("Duration = %q, want %q", it.Duration, DefaultDuration)
	}

	out = Merge(search, []collector.DetailRecord{{VideoID: "x"}})
	if out[0].ViewCount != "0" || out[0].LikeCount != "0" || out[0].CommentCount != "0" {
		t.Fatalf("absent statistics should default to zero triple: %+v", out[0])
	}

	out = Merge(search, []collector.DetailRecord{{VideoID: "x", Duration: strPtr("")}})
	if out[0].Duration != DefaultDuration {
		t.Fatalf("empty duration should default to %q, got %q", DefaultDuration, out[0].Duration)
	}
}

func TestIsLiveRules(t *testing.T) {
	cases := []struct {
		name string
		item collector.ContentItem
		want bool
	}{
		{"plain video", collector.ContentItem{Duration: "PT10M", LiveBroadcastState: collector.BroadcastNone}, false},
		{"unknown state", collector.ContentItem{Duration: "PT4M13S"}, false},
		{"default duration is not live", collector.ContentItem{Duration: DefaultDuration}, false},
		{"live", collector.ContentItem{Duration: "PT0S", LiveBroadcastState: collector.BroadcastLive}, true},
		{"upcoming", collector.ContentItem{LiveBroadcastState: collector.BroadcastUpcoming}, true},
		{"completed", collector.ContentItem{LiveBroadcastState: collector.BroadcastCompleted}, true},
		{"streaming window", collector.ContentItem{Duration: "PT2H", LiveStreamingWindow: &collector.StreamingWindow{}}, true},
		{"zero duration", collector.ContentItem{Duration: ZeroDuration}, true},
	}
	for _, c := range cases {
		if got := IsLive(c.item); got != c.want {
			t.Fatalf("%s: IsLive = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestPartitionIsTotalAndExclusive(t *testing.T) {
	items := []collector.ContentItem{
		{ID: "v1", Duration: "PT1M"},
		{ID: "s1", LiveBroadcastState: collector.BroadcastLive},
		{ID: "v2", Duration: "PT2M"},
		{ID: "s2", Duration: ZeroDuration},
	}

	res := Partition(items, BucketLimit)
	if len(res.RegularVideos)+len(res.LiveStreams) != len(items) {
		t.Fatalf("partition lost items: %d + %d != %d", len(res.RegularVideos), len(res.LiveStreams), len(items))
	}
	seen := map[string]int{}
	for _, it := range res.RegularVideos {
		if IsLive(it) {
			t.Fatalf("live item %q in regular videos", it.ID)
		}
		seen[it.ID]++
	}
	for _, it := range res.LiveStreams {
		if !IsLive(it) {
			t.Fatalf("regular item %q in live streams", it.ID)
		}
		seen[it.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("item %q appears %d times", id, n)
		}
	}
	if res.RegularVideos[0].ID != "v1" || res.RegularVideos[1].ID != "v2" {
		t.Fatalf("regular order changed: %+v", res.RegularVideos)
	}
}

func TestPartitionTruncatesToFirstEight(t *testing.T) {
	items := make([]collector.ContentItem, 0, 20)
	for i := 0; i < 12; i++ {
		items = append(items, collector.ContentItem{ID: fmt.Sprintf("v%02d", i), Duration: "PT3M"})
	}
	for i := 0; i < 3; i++ {
		items = append(items, collector.ContentItem{ID: fmt.Sprintf("s%02d", i), Duration: ZeroDuration})
	}

	res := Partition(items, BucketLimit)
	if len(res.RegularVideos) != BucketLimit {
		t.Fatalf("expected %d regular videos, got %d", BucketLimit, len(res.RegularVideos))
	}
	for i, it := range res.RegularVideos {
		if want := fmt.Sprintf("v%02d", i); it.ID != want {
			t.Fatalf("RegularVideos[%d] = %q, want %q", i, it.ID, want)
		}
	}
	if len(res.LiveStreams) != 3 {
		t.Fatalf("expected 3 live streams, got %d", len(res.LiveStreams))
	}
}

func TestPartitionEmptyInputGivesEmptyBuckets(t *testing.T) {
	res := Partition(nil, 0)
	if res.RegularVideos == nil || res.LiveStreams == nil {
		t.Fatalf("buckets should be non-nil so JSON renders []")
	}
	if len(res.RegularVideos) != 0 || len(res.LiveStreams) != 0 {
		t.Fatalf("expected empty buckets, got %+v", res)
	}
}
