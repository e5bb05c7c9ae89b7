package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/spler/influencer-hub/internal/domain"
	"github.com/spler/influencer-hub/pkg/apperr"
)

// YouTubeSearcher discovers candidate channels through the YouTube Data API.
// When no API key is configured the searcher still constructs; every search
// then reports a configuration outcome instead of results.
type YouTubeSearcher struct {
	service *youtube.Service
	logger  *zap.Logger
}

func NewYouTubeSearcher(ctx context.Context, apiKey string, logger *zap.Logger) *YouTubeSearcher {
	ys := &YouTubeSearcher{logger: logger}
	if apiKey == "" {
		logger.Warn("YouTube search disabled: no API key configured")
		return ys
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		// Treated like a missing key: discovery degrades, the app runs.
		logger.Error("Failed to create YouTube service", zap.Error(err))
		return ys
	}
	ys.service = service
	return ys
}

func (ys *YouTubeSearcher) Platform() string {
	return domain.PlatformYouTube
}

// Search looks up channels matching the query, then batches a statistics
// request for subscriber counts. A failed statistics call degrades to
// results without follower counts; a failed search is an ExternalError
// outcome, never a propagated error.
func (ys *YouTubeSearcher) Search(ctx context.Context, query string, limit int64) Outcome {
	if ys.service == nil {
		return Outcome{Err: apperr.NewConfigError(
			"youtube api key not configured",
			"YouTube search requires YOUTUBE_API_KEY.",
			"YOUTUBE_API_KEY",
		)}
	}

	call := ys.service.Search.List([]string{"snippet"}).
		Type("channel").
		Q(query).
		MaxResults(limit)

	response, err := call.Context(ctx).Do()
	if err != nil {
		ys.logger.Error("YouTube channel search failed",
			zap.String("query", query),
			zap.Error(err))
		return Outcome{Err: apperr.NewExternalError(
			"youtube channel search failed",
			"YouTube search failed. Check the API key and query.",
			"youtube", err,
		)}
	}

	var channelIDs []string
	for _, item := range response.Items {
		if item.Id != nil && item.Id.Kind == "youtube#channel" && item.Snippet != nil {
			channelIDs = append(channelIDs, item.Snippet.ChannelId)
		}
	}

	stats := ys.channelStatistics(ctx, channelIDs)

	items := make([]domain.Candidate, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet == nil {
			continue
		}
		snippet := item.Snippet
		candidate := domain.Candidate{
			Platform:    domain.PlatformYouTube,
			Name:        snippet.ChannelTitle,
			URL:         fmt.Sprintf("https://www.youtube.com/channel/%s", snippet.ChannelId),
			Description: snippet.Description,
		}
		if snippet.Thumbnails != nil && snippet.Thumbnails.Default != nil {
			candidate.Thumbnail = snippet.Thumbnails.Default.Url
		}
		if count, ok := stats[snippet.ChannelId]; ok {
			candidate.Followers = &count
		}
		items = append(items, candidate)
	}

	ys.logger.Debug("YouTube search completed",
		zap.String("query", query),
		zap.Int("items", len(items)))
	return Outcome{Items: items}
}

// channelStatistics fetches subscriber counts for a batch of channel ids.
// Failures yield an empty map; the search result simply loses counts.
func (ys *YouTubeSearcher) channelStatistics(ctx context.Context, channelIDs []string) map[string]int64 {
	stats := make(map[string]int64)
	if len(channelIDs) == 0 {
		return stats
	}

	call := ys.service.Channels.List([]string{"statistics"}).Id(channelIDs...)
	response, err := call.Context(ctx).Do()
	if err != nil {
		ys.logger.Warn("Failed to get channel statistics",
			zap.Int("channels", len(channelIDs)),
			zap.Error(err))
		return stats
	}

	for _, item := range response.Items {
		if item.Statistics == nil || item.Statistics.HiddenSubscriberCount {
			continue
		}
		stats[item.Id] = int64(item.Statistics.SubscriberCount)
	}
	return stats
}
