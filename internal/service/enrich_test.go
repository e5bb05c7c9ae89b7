package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestExtractYouTubeThumbnail(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "watch url",
			url:  "https://www.youtube.com/watch?v=abc123",
			want: "https://img.youtube.com/vi/abc123/hqdefault.jpg",
		},
		{
			name: "watch url with extra params",
			url:  "https://www.youtube.com/watch?v=abc123&t=42s",
			want: "https://img.youtube.com/vi/abc123/hqdefault.jpg",
		},
		{
			name: "short link",
			url:  "https://youtu.be/xyz789",
			want: "https://img.youtube.com/vi/xyz789/hqdefault.jpg",
		},
		{
			name: "short link with query",
			url:  "https://youtu.be/xyz789?si=share",
			want: "https://img.youtube.com/vi/xyz789/hqdefault.jpg",
		},
		{
			name: "shorts url",
			url:  "https://www.youtube.com/shorts/sh0rt",
			want: "https://img.youtube.com/vi/sh0rt/hqdefault.jpg",
		},
		{
			name: "channel url is not a video",
			url:  "https://www.youtube.com/channel/UCabc",
			want: "",
		},
		{
			name: "non-youtube url",
			url:  "https://example.com/watch",
			want: "",
		},
		{
			name: "empty",
			url:  "",
			want: "",
		},
		{
			name: "marker with empty id",
			url:  "https://www.youtube.com/watch?v=",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractYouTubeThumbnail(tt.url); got != tt.want {
				t.Errorf("ExtractYouTubeThumbnail(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestExtractInstagramUsername(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "plain profile",
			url:  "https://instagram.com/jdoe",
			want: "jdoe",
		},
		{
			name: "www with trailing slash",
			url:  "https://www.instagram.com/jdoe/",
			want: "jdoe",
		},
		{
			name: "query string stripped",
			url:  "https://instagram.com/jdoe?hl=ko",
			want: "jdoe",
		},
		{
			name: "deep path keeps first segment",
			url:  "https://instagram.com/jdoe/tagged/",
			want: "jdoe",
		},
		{
			name: "post link rejected",
			url:  "https://instagram.com/p/Cxyz",
			want: "",
		},
		{
			name: "reel link rejected",
			url:  "https://instagram.com/reel/Cxyz",
			want: "",
		},
		{
			name: "tv link rejected",
			url:  "https://instagram.com/tv/Cxyz",
			want: "",
		},
		{
			name: "stories link rejected",
			url:  "https://instagram.com/stories/jdoe/123",
			want: "",
		},
		{
			name: "explore link rejected",
			url:  "https://instagram.com/explore/tags/food",
			want: "",
		},
		{
			name: "not instagram",
			url:  "https://example.com/jdoe",
			want: "",
		},
		{
			name: "bare domain",
			url:  "https://instagram.com/",
			want: "",
		},
		{
			name: "empty",
			url:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractInstagramUsername(tt.url); got != tt.want {
				t.Errorf("ExtractInstagramUsername(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestFetchThumbnailURLOpenGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="og:title" content="A page">
			<meta property="og:image" content=" https://cdn.example.com/thumb.jpg ">
		</head><body></body></html>`))
	}))
	defer srv.Close()

	e := NewEnricher(zap.NewNop())
	got := e.FetchThumbnailURL(context.Background(), srv.URL)
	if want := "https://cdn.example.com/thumb.jpg"; got != want {
		t.Errorf("FetchThumbnailURL = %q, want %q", got, want)
	}
}

func TestFetchThumbnailURLYouTubeShortcut(t *testing.T) {
	// A YouTube video link must resolve without any network call.
	e := NewEnricher(zap.NewNop())
	got := e.FetchThumbnailURL(context.Background(), "https://youtu.be/abc")
	if want := "https://img.youtube.com/vi/abc/hqdefault.jpg"; got != want {
		t.Errorf("FetchThumbnailURL = %q, want %q", got, want)
	}
}

func TestFetchThumbnailURLFailSoft(t *testing.T) {
	noTag := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><head><title>nothing here</title></head></html>`))
	}))
	defer noTag.Close()

	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer notFound.Close()

	e := NewEnricher(zap.NewNop())

	if got := e.FetchThumbnailURL(context.Background(), noTag.URL); got != "" {
		t.Errorf("missing og:image: got %q, want empty", got)
	}
	if got := e.FetchThumbnailURL(context.Background(), notFound.URL); got != "" {
		t.Errorf("non-200 response: got %q, want empty", got)
	}
	if got := e.FetchThumbnailURL(context.Background(), ""); got != "" {
		t.Errorf("empty url: got %q, want empty", got)
	}
}
