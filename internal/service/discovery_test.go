package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spler/influencer-hub/internal/domain"
	"github.com/spler/influencer-hub/pkg/apperr"
)

type fakeSearcher struct {
	platform string
	outcome  Outcome
	calls    int
}

func (f *fakeSearcher) Platform() string { return f.platform }

func (f *fakeSearcher) Search(ctx context.Context, query string, limit int64) Outcome {
	f.calls++
	return f.outcome
}

func candidates(names ...string) []domain.Candidate {
	var out []domain.Candidate
	for _, name := range names {
		out = append(out, domain.Candidate{Name: name})
	}
	return out
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in   int64
		want int64
	}{
		{0, DefaultDiscoverLimit},
		{-3, MinDiscoverLimit},
		{1, 1},
		{10, 10},
		{25, 25},
		{26, MaxDiscoverLimit},
		{1000, MaxDiscoverLimit},
	}
	for _, tt := range tests {
		if got := ClampLimit(tt.in); got != tt.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDiscoverBlankQuery(t *testing.T) {
	yt := &fakeSearcher{platform: domain.PlatformYouTube}
	ds := NewDiscoveryService([]Searcher{yt}, nil, zap.NewNop())

	results, errs := ds.Discover(context.Background(), "", "", 10)
	if results != nil || errs != nil {
		t.Errorf("blank query should return nothing, got %v / %v", results, errs)
	}
	if yt.calls != 0 {
		t.Errorf("adapter called %d times for blank query", yt.calls)
	}
}

func TestDiscoverMergesAllPlatforms(t *testing.T) {
	yt := &fakeSearcher{platform: domain.PlatformYouTube, outcome: Outcome{Items: candidates("yt1", "yt2")}}
	ig := &fakeSearcher{platform: domain.PlatformInstagram, outcome: Outcome{Items: candidates("ig1")}}
	ds := NewDiscoveryService([]Searcher{yt, ig}, nil, zap.NewNop())

	results, errs := ds.Discover(context.Background(), "kim", "", 10)
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if yt.calls != 1 || ig.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", yt.calls, ig.calls)
	}
}

func TestDiscoverPlatformFilter(t *testing.T) {
	yt := &fakeSearcher{platform: domain.PlatformYouTube, outcome: Outcome{Items: candidates("yt1")}}
	ig := &fakeSearcher{platform: domain.PlatformInstagram, outcome: Outcome{Items: candidates("ig1")}}
	ds := NewDiscoveryService([]Searcher{yt, ig}, nil, zap.NewNop())

	results, errs := ds.Discover(context.Background(), "kim", domain.PlatformInstagram, 10)
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
	if len(results) != 1 || results[0].Name != "ig1" {
		t.Errorf("results = %+v, want just ig1", results)
	}
	if yt.calls != 0 {
		t.Error("filtered-out adapter was called")
	}
}

func TestDiscoverFailureDoesNotBlockOthers(t *testing.T) {
	yt := &fakeSearcher{
		platform: domain.PlatformYouTube,
		outcome:  Outcome{Err: apperr.NewConfigError("youtube api key not set", "YouTube search requires YOUTUBE_API_KEY.", "YOUTUBE_API_KEY")},
	}
	ig := &fakeSearcher{platform: domain.PlatformInstagram, outcome: Outcome{Items: candidates("ig1")}}
	ds := NewDiscoveryService([]Searcher{yt, ig}, nil, zap.NewNop())

	results, errs := ds.Discover(context.Background(), "kim", "", 10)
	if len(results) != 1 || results[0].Name != "ig1" {
		t.Errorf("successful adapter's items lost: %+v", results)
	}
	if len(errs) != 1 {
		t.Fatalf("got %d error messages, want 1", len(errs))
	}
	if errs[0] == "" {
		t.Error("error message is empty")
	}
}

func TestFlashMessage(t *testing.T) {
	cfgErr := apperr.NewConfigError("serp api key not set", "Instagram search requires SERPAPI_KEY.", "SERPAPI_KEY")
	if got := flashMessage(cfgErr); got != "Instagram search requires SERPAPI_KEY." {
		t.Errorf("flashMessage = %q, want user message", got)
	}
	plain := context.DeadlineExceeded
	if got := flashMessage(plain); got != plain.Error() {
		t.Errorf("flashMessage fallback = %q", got)
	}
}
