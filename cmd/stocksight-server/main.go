package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stocksight/internal/catalog"
	"stocksight/internal/config"
	"stocksight/internal/dashboard"
	"stocksight/internal/httpapi"
	"stocksight/internal/marketdata"
	"stocksight/internal/predict"
	"stocksight/internal/sentiment"
	"stocksight/internal/util"
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfgPath := "config/stocksight.yaml"
	if p := os.Getenv("STOCKSIGHT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	svc, err := buildService(cfg, logger)
	if err != nil {
		log.Fatalf("wiring service: %v", err)
	}

	api := httpapi.NewServer(svc, logger)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: api.Handler(),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		logger.Info("stocksight server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// buildService wires the catalog, market data client, sentiment aggregator,
// and predictor into a dashboard service per the config.
func buildService(cfg *config.Config, logger *slog.Logger) (*dashboard.Service, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if cfg.Catalog.SQLitePath != "" {
		cat, err = catalog.LoadSQLite(cfg.Catalog.SQLitePath)
	} else {
		cat, err = catalog.Load(cfg.Catalog.CSVPath)
	}
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	logger.Info("catalog loaded", "stocks", cat.Len(), "sectors", len(cat.Sectors()))

	var provider marketdata.Provider
	switch cfg.MarketData.Provider {
	case "parquet":
		provider = marketdata.NewParquetProvider(cfg.MarketData.DataDir)
	default:
		provider = marketdata.NewAlpacaProvider(
			cfg.MarketData.Alpaca.APIKey,
			cfg.MarketData.Alpaca.APISecret,
			cfg.MarketData.Alpaca.DataURL,
		)
	}
	market := marketdata.NewClient(provider, cfg.MarketData.CacheSize)
	logger.Info("market data provider ready", "provider", provider.Name())

	limiter := util.NewRateLimiter(cfg.Sentiment.RateLimitPerMin)
	agg := sentiment.NewAggregator(
		sentiment.NewNewsFetcher(cfg.Sentiment.NewsBaseURL, cfg.Sentiment.NewsAPIKey, limiter),
		sentiment.NewTrendsClient(cfg.Sentiment.TrendsBaseURL, limiter),
		sentiment.NewPipelines(),
	)

	registry, err := predict.NewRegistry(cfg.Models.Dir)
	if err != nil {
		return nil, fmt.Errorf("scanning model dir: %w", err)
	}
	logger.Info("model registry ready", "trained", len(registry.Trained()))

	return dashboard.NewService(
		cat,
		market,
		agg,
		predict.NewPredictor(registry),
		nil,
		cfg.MarketData.DefaultPeriod,
		cfg.MarketData.DefaultInterval,
	), nil
}
