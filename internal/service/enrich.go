package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	fetchTimeout   = 5 * time.Second
	fetchUserAgent = "Mozilla/5.0"
)

// Enricher derives instagram handles and thumbnail URLs from profile links.
// The extractors are pure; only FetchThumbnailURL touches the network, and
// it never returns an error — any failure yields an empty string.
type Enricher struct {
	httpClient *http.Client
	logger     *zap.Logger
}

func NewEnricher(logger *zap.Logger) *Enricher {
	return &Enricher{
		httpClient: &http.Client{Timeout: fetchTimeout},
		logger:     logger,
	}
}

// youtubeThumbPatterns are the recognized video-URL shapes: a start marker
// and the character that terminates the video id.
var youtubeThumbPatterns = []struct {
	marker string
	ender  string
}{
	{"watch?v=", "&"},
	{"youtu.be/", "?"},
	{"/shorts/", "?"},
}

// ExtractYouTubeThumbnail builds the conventional hqdefault thumbnail URL
// from a YouTube video link. Returns "" for anything that is not a
// recognized video URL.
func ExtractYouTubeThumbnail(url string) string {
	if url == "" {
		return ""
	}
	for _, p := range youtubeThumbPatterns {
		_, rest, found := strings.Cut(url, p.marker)
		if !found {
			continue
		}
		videoID, _, _ := strings.Cut(rest, p.ender)
		if videoID != "" {
			return "https://img.youtube.com/vi/" + videoID + "/hqdefault.jpg"
		}
	}
	return ""
}

// instagramReservedSegments are first path components that are site features
// rather than usernames.
var instagramReservedSegments = map[string]bool{
	"p":       true,
	"reel":    true,
	"tv":      true,
	"stories": true,
	"explore": true,
}

// ExtractInstagramUsername pulls the handle out of an instagram.com profile
// URL. Post/reel/story links and non-Instagram URLs yield "".
func ExtractInstagramUsername(url string) string {
	if url == "" {
		return ""
	}
	_, rest, found := strings.Cut(url, "instagram.com/")
	if !found {
		return ""
	}
	rest, _, _ = strings.Cut(rest, "?")
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return ""
	}
	first, _, _ := strings.Cut(rest, "/")
	if instagramReservedSegments[first] {
		return ""
	}
	return first
}

// FetchThumbnailURL resolves a thumbnail for a profile URL: YouTube links
// shortcut to the video thumbnail, everything else is fetched and its
// og:image meta tag extracted.
func (e *Enricher) FetchThumbnailURL(ctx context.Context, url string) string {
	if url == "" {
		return ""
	}
	if thumb := ExtractYouTubeThumbnail(url); thumb != "" {
		return thumb
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		e.logger.Debug("Thumbnail fetch failed", zap.String("url", url), zap.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e.logger.Debug("Thumbnail fetch non-200",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return ""
	}
	content, exists := doc.Find(`meta[property="og:image"]`).First().Attr("content")
	if !exists {
		return ""
	}
	return strings.TrimSpace(content)
}
