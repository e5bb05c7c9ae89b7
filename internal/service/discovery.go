package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/spler/influencer-hub/internal/domain"
)

const (
	// Discover limit bounds; requests outside the range are clamped.
	DefaultDiscoverLimit = 10
	MinDiscoverLimit     = 1
	MaxDiscoverLimit     = 25

	discoveryCacheTTL = 30 * time.Minute
)

// Outcome is an explicit adapter result: either items or a reason the
// adapter produced none. Adapters never return a bare error.
type Outcome struct {
	Items []domain.Candidate
	Err   error
}

// Searcher is one external discovery source.
type Searcher interface {
	// Platform names the source; "" or a matching discover filter selects it.
	Platform() string
	Search(ctx context.Context, query string, limit int64) Outcome
}

// DiscoveryService fans a query out to every applicable search adapter and
// merges the results. One adapter failing never blocks another's items.
type DiscoveryService struct {
	searchers []Searcher
	cache     *SearchCache
	logger    *zap.Logger
}

func NewDiscoveryService(searchers []Searcher, cache *SearchCache, logger *zap.Logger) *DiscoveryService {
	return &DiscoveryService{
		searchers: searchers,
		cache:     cache,
		logger:    logger,
	}
}

// ClampLimit normalizes a requested result limit into the allowed range.
func ClampLimit(limit int64) int64 {
	if limit < MinDiscoverLimit {
		if limit == 0 {
			return DefaultDiscoverLimit
		}
		return MinDiscoverLimit
	}
	if limit > MaxDiscoverLimit {
		return MaxDiscoverLimit
	}
	return limit
}

// Discover runs the adapters whose platform matches the filter (all of them
// when the filter is empty), concatenates their items, and collects the
// user-facing message of every failed adapter. A blank query runs nothing.
func (ds *DiscoveryService) Discover(ctx context.Context, query, platform string, limit int64) ([]domain.Candidate, []string) {
	if query == "" {
		return nil, nil
	}
	limit = ClampLimit(limit)

	var selected []Searcher
	for _, s := range ds.searchers {
		if platform == "" || platform == s.Platform() {
			selected = append(selected, s)
		}
	}

	outcomes := make([]Outcome, len(selected))
	var wg conc.WaitGroup
	for i, s := range selected {
		wg.Go(func() {
			outcomes[i] = ds.search(ctx, s, query, limit)
		})
	}
	wg.Wait()

	var results []domain.Candidate
	var errs []string
	for _, outcome := range outcomes {
		results = append(results, outcome.Items...)
		if outcome.Err != nil {
			errs = append(errs, flashMessage(outcome.Err))
		}
	}

	ds.logger.Info("Discovery completed",
		zap.String("query", query),
		zap.String("platform", platform),
		zap.Int("results", len(results)),
		zap.Int("errors", len(errs)))
	return results, errs
}

// search wraps one adapter call with the outcome cache. Only successful
// outcomes are cached; errors always retry live.
func (ds *DiscoveryService) search(ctx context.Context, s Searcher, query string, limit int64) Outcome {
	key := fmt.Sprintf("discover:%s:%d:%s", s.Platform(), limit, query)

	var cached []domain.Candidate
	if ds.cache.Get(ctx, key, &cached) {
		ds.logger.Debug("Discovery cache hit", zap.String("key", key))
		return Outcome{Items: cached}
	}

	outcome := s.Search(ctx, query, limit)
	if outcome.Err == nil {
		ds.cache.Set(ctx, key, outcome.Items, discoveryCacheTTL)
	}
	return outcome
}

// flashMessage extracts the operator-facing text from an adapter error.
// apperr types all expose Flash; anything else falls back to Error.
func flashMessage(err error) string {
	type flasher interface{ Flash() string }
	if f, ok := err.(flasher); ok {
		return f.Flash()
	}
	return err.Error()
}
