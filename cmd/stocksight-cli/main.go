package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"stocksight/internal/catalog"
	"stocksight/internal/config"
	"stocksight/internal/dashboard"
	"stocksight/internal/marketdata"
	"stocksight/internal/predict"
	"stocksight/internal/sentiment"
	"stocksight/internal/util"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: stocksight-cli <command> [args]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  sectors           List catalog sectors\n")
		fmt.Fprintf(os.Stderr, "  stocks [sector]   List stocks, optionally filtered by sector\n")
		fmt.Fprintf(os.Stderr, "  show <ticker>     Render the dashboard for one stock\n")
		fmt.Fprintf(os.Stderr, "\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	cfgPath := "config/stocksight.yaml"
	if p := os.Getenv("STOCKSIGHT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// Keep stdout clean for the rendered output.
	logger := util.NewLogger("warn", cfg.Logging.Format)
	slog.SetDefault(logger)

	svc, err := buildService(cfg)
	if err != nil {
		log.Fatalf("wiring service: %v", err)
	}

	ctx := context.Background()

	switch flag.Arg(0) {
	case "sectors":
		for _, s := range svc.Sectors() {
			fmt.Println(s)
		}

	case "stocks":
		for _, rec := range svc.Stocks(flag.Arg(1)) {
			fmt.Printf("%-8s %-10s %s\n", rec.Ticker, rec.Sector, rec.Name)
		}

	case "show":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "show requires a ticker")
			os.Exit(1)
		}
		snap, err := svc.Render(ctx, strings.ToUpper(flag.Arg(1)))
		if err != nil {
			log.Fatalf("rendering dashboard: %v", err)
		}
		fmt.Print(snap.Text())

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}

func buildService(cfg *config.Config) (*dashboard.Service, error) {
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

	return dashboard.NewService(
		cat,
		marketdata.NewClient(provider, cfg.MarketData.CacheSize),
		agg,
		predict.NewPredictor(registry),
		nil,
		cfg.MarketData.DefaultPeriod,
		cfg.MarketData.DefaultInterval,
	), nil
}
