package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/spler/influencer-hub/internal/domain"
	"github.com/spler/influencer-hub/pkg/apperr"
)

const (
	serpBaseURL = "https://serpapi.com/search.json"
	serpTimeout = 10 * time.Second
)

// SerpSearcher discovers Instagram profiles through a Google SERP API,
// scoped to instagram.com. Results whose link does not resolve to a real
// handle are discarded.
type SerpSearcher struct {
	httpClient *http.Client
	apiKey     string
	logger     *zap.Logger
	baseURL    string
}

func NewSerpSearcher(apiKey string, logger *zap.Logger) *SerpSearcher {
	if apiKey == "" {
		logger.Warn("Instagram search disabled: no SERP API key configured")
	}
	return &SerpSearcher{
		httpClient: &http.Client{Timeout: serpTimeout},
		apiKey:     apiKey,
		logger:     logger,
		baseURL:    serpBaseURL,
	}
}

func (ss *SerpSearcher) Platform() string {
	return domain.PlatformInstagram
}

type serpResponse struct {
	OrganicResults []struct {
		Title     string `json:"title"`
		Link      string `json:"link"`
		Snippet   string `json:"snippet"`
		Thumbnail string `json:"thumbnail"`
	} `json:"organic_results"`
}

// Search queries the SERP API with a site:instagram.com scope. Same
// fail-soft contract as the YouTube adapter.
func (ss *SerpSearcher) Search(ctx context.Context, query string, limit int64) Outcome {
	if ss.apiKey == "" {
		return Outcome{Err: apperr.NewConfigError(
			"serp api key not configured",
			"Instagram search requires SERPAPI_KEY.",
			"SERPAPI_KEY",
		)}
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", "site:instagram.com "+query)
	params.Set("num", strconv.FormatInt(limit, 10))
	params.Set("api_key", ss.apiKey)

	failed := func(cause error) Outcome {
		ss.logger.Error("Instagram SERP search failed",
			zap.String("query", query),
			zap.Error(cause))
		return Outcome{Err: apperr.NewExternalError(
			"serp search failed",
			"Instagram search failed. Check SERPAPI_KEY.",
			"serpapi", cause,
		)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ss.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return failed(err)
	}

	resp, err := ss.httpClient.Do(req)
	if err != nil {
		return failed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return failed(fmt.Errorf("serp returned %s", resp.Status))
	}

	var data serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return failed(err)
	}

	items := make([]domain.Candidate, 0, len(data.OrganicResults))
	for _, result := range data.OrganicResults {
		username := ExtractInstagramUsername(result.Link)
		if username == "" {
			continue
		}
		items = append(items, domain.Candidate{
			Platform:          domain.PlatformInstagram,
			Name:              result.Title,
			URL:               result.Link,
			Thumbnail:         result.Thumbnail,
			Description:       result.Snippet,
			InstagramUsername: username,
		})
	}

	ss.logger.Debug("Instagram search completed",
		zap.String("query", query),
		zap.Int("items", len(items)))
	return Outcome{Items: items}
}
