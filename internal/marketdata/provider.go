// Package marketdata fetches historical OHLCV series and latest prices from
// an external provider, memoizing recent results in a bounded LRU cache.
// Every public method degrades to an empty or absent result instead of
// returning an error, so a provider outage never blocks a dashboard render.
package marketdata

import (
	"context"
	"time"

	"stocksight/internal/domain"
)

// Provider fetches raw price data for a ticker. Implementations return
// errors; the caching Client is responsible for degrading them.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// HistoricalBars returns daily (or weekly) bars covering the lookback
	// period, in chronological order.
	HistoricalBars(ctx context.Context, ticker, period, interval string) ([]domain.PricePoint, error)

	// LatestClose returns the most recent close price for the ticker.
	LatestClose(ctx context.Context, ticker string) (float64, error)
}

// periodStart maps a lookback period string to its start time relative to
// now. Unrecognized periods fall back to six months.
func periodStart(now time.Time, period string) time.Time {
	switch period {
	case "1mo":
		return now.AddDate(0, -1, 0)
	case "3mo":
		return now.AddDate(0, -3, 0)
	case "6mo":
		return now.AddDate(0, -6, 0)
	case "1y":
		return now.AddDate(-1, 0, 0)
	case "2y":
		return now.AddDate(-2, 0, 0)
	default:
		return now.AddDate(0, -6, 0)
	}
}
