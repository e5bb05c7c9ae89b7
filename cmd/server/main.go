package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/spler/influencer-hub/internal/config"
	"github.com/spler/influencer-hub/internal/excel"
	"github.com/spler/influencer-hub/internal/service"
	"github.com/spler/influencer-hub/internal/store"
	"github.com/spler/influencer-hub/internal/util"
	"github.com/spler/influencer-hub/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Influencer Hub starting...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Logging.Level),
	)

	st, err := store.Open(cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to open store", zap.Error(err))
		os.Exit(1)
	}
	defer st.Close()

	// Optional Redis cache for external-search results; absent config means
	// discovery always hits the live APIs.
	var cache *service.SearchCache
	if cfg.Redis.Addr != "" {
		cache, err = service.NewSearchCache(service.CacheConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			logger.Warn("Redis unavailable, discovery cache disabled", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	buildCtx, buildCancel := context.WithTimeout(context.Background(), 30*time.Second)
	youtubeSearcher := service.NewYouTubeSearcher(buildCtx, cfg.YouTube.APIKey, logger)
	buildCancel()
	serpSearcher := service.NewSerpSearcher(cfg.Serp.APIKey, logger)
	discovery := service.NewDiscoveryService(
		[]service.Searcher{youtubeSearcher, serpSearcher},
		cache,
		logger,
	)

	enricher := service.NewEnricher(logger)
	importer := excel.NewImporter(st, enricher, logger)

	server, err := web.NewServer(st, discovery, enricher, importer, cfg.Session.Secret, logger)
	if err != nil {
		logger.Error("Failed to build server", zap.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("Server error", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
