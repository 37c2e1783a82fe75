package marketdata

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"stocksight/internal/domain"
	"stocksight/internal/util"
)

// Historical fetches get one retry before degrading; the latest price is a
// single attempt since it refreshes on the next render anyway.
const (
	fetchAttempts  = 2
	fetchBaseDelay = 250 * time.Millisecond
)

// Client wraps a Provider with result caching and failure degradation.
// Historical series are memoized in a bounded LRU keyed by
// (ticker, period, interval); entries live for the process lifetime.
type Client struct {
	provider Provider
	cache    *lruCache[[]domain.PricePoint]
	log      *slog.Logger
}

// NewClient creates a Client over the given provider with an LRU cache of
// the given capacity.
func NewClient(provider Provider, cacheSize int) *Client {
	return &Client{
		provider: provider,
		cache:    newLRUCache[[]domain.PricePoint](cacheSize),
		log:      slog.Default().With("component", "marketdata", "provider", provider.Name()),
	}
}

func cacheKey(ticker, period, interval string) string {
	return fmt.Sprintf("%s|%s|%s", strings.ToUpper(ticker), period, interval)
}

// HistoricalPrices returns the historical price series for a ticker. On any
// provider failure it logs and returns an empty slice, never an error, so
// the dashboard can always render. Successful results are cached; failed
// lookups are not, allowing a later render to retry.
func (c *Client) HistoricalPrices(ctx context.Context, ticker, period, interval string) []domain.PricePoint {
	key := cacheKey(ticker, period, interval)
	if points, ok := c.cache.get(key); ok {
		return points
	}

	var points []domain.PricePoint
	err := util.Retry(ctx, fetchAttempts, fetchBaseDelay, func() error {
		var ferr error
		points, ferr = c.provider.HistoricalBars(ctx, ticker, period, interval)
		return ferr
	})
	if err != nil {
		c.log.Warn("historical prices fetch failed",
			"ticker", ticker, "period", period, "interval", interval, "err", err)
		return []domain.PricePoint{}
	}

	c.cache.put(key, points)
	return points
}

// LatestPrice returns the most recent close for a ticker. The second return
// is false when the provider call fails; the failure is logged and never
// surfaced as an error. Latest prices are not cached so the headline number
// stays current across renders.
func (c *Client) LatestPrice(ctx context.Context, ticker string) (float64, bool) {
	price, err := c.provider.LatestClose(ctx, ticker)
	if err != nil {
		c.log.Warn("latest price fetch failed", "ticker", ticker, "err", err)
		return 0, false
	}
	return round2(price), true
}

// round2 rounds to two decimal places, the display precision used across
// the dashboard.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
