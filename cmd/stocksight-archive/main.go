// Command stocksight-archive backfills the local Parquet bar archive from
// Alpaca so the dashboard can run with the offline "parquet" provider.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"stocksight/internal/catalog"
	"stocksight/internal/config"
	"stocksight/internal/domain"
	"stocksight/internal/marketdata"
	"stocksight/internal/util"
)

func main() {
	period := flag.String("period", "2y", "lookback period to archive (1mo, 3mo, 6mo, 1y, 2y)")
	tickers := flag.String("tickers", "", "comma-separated tickers; default is the whole catalog")
	flag.Parse()

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

	var symbols []string
	if *tickers != "" {
		for _, t := range strings.Split(*tickers, ",") {
			if t = strings.TrimSpace(t); t != "" {
				symbols = append(symbols, strings.ToUpper(t))
			}
		}
	} else {
		var cat *catalog.Catalog
		if cfg.Catalog.SQLitePath != "" {
			cat, err = catalog.LoadSQLite(cfg.Catalog.SQLitePath)
		} else {
			cat, err = catalog.Load(cfg.Catalog.CSVPath)
		}
		if err != nil {
			log.Fatalf("loading catalog: %v", err)
		}
		for _, rec := range cat.List("") {
			symbols = append(symbols, rec.Ticker)
		}
	}
	if len(symbols) == 0 {
		log.Fatal("no tickers to archive")
	}

	source := marketdata.NewAlpacaProvider(
		cfg.MarketData.Alpaca.APIKey,
		cfg.MarketData.Alpaca.APISecret,
		cfg.MarketData.Alpaca.DataURL,
	)
	archive := marketdata.NewParquetProvider(cfg.MarketData.DataDir)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("archiving daily bars", "tickers", len(symbols), "period", *period, "dir", cfg.MarketData.DataDir)

	var failed int
	for _, sym := range symbols {
		if ctx.Err() != nil {
			logger.Warn("interrupted", "remaining", len(symbols)-failed)
			break
		}
		bars, err := source.HistoricalBars(ctx, sym, *period, "1d")
		if err != nil {
			logger.Warn("fetching bars", "ticker", sym, "error", err)
			failed++
			continue
		}
		if err := writeByYear(archive, sym, bars); err != nil {
			logger.Warn("writing archive", "ticker", sym, "error", err)
			failed++
			continue
		}
		logger.Info("archived", "ticker", sym, "bars", len(bars))
	}

	if failed > 0 {
		logger.Warn("archive finished with failures", "failed", failed, "total", len(symbols))
		os.Exit(1)
	}
	logger.Info("archive complete", "tickers", len(symbols))
}

// writeByYear splits bars into per-year groups matching the archive layout.
func writeByYear(archive *marketdata.ParquetProvider, ticker string, bars []domain.PricePoint) error {
	byYear := make(map[int][]domain.PricePoint)
	for _, b := range bars {
		y := b.Date.UTC().Year()
		byYear[y] = append(byYear[y], b)
	}
	for year, points := range byYear {
		if err := archive.WriteFixture(ticker, year, points); err != nil {
			return err
		}
	}
	return nil
}
