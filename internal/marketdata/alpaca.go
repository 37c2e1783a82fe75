package marketdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"stocksight/internal/domain"
)

// Compile-time interface check.
var _ Provider = (*AlpacaProvider)(nil)

// AlpacaProvider serves price data from the Alpaca market-data API.
type AlpacaProvider struct {
	client *marketdata.Client
}

// NewAlpacaProvider creates an AlpacaProvider with the given credentials.
// dataURL overrides the default API endpoint when non-empty.
func NewAlpacaProvider(apiKey, apiSecret, dataURL string) *AlpacaProvider {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	return &AlpacaProvider{client: marketdata.NewClient(opts)}
}

// Name returns "alpaca".
func (p *AlpacaProvider) Name() string { return "alpaca" }

// HistoricalBars fetches bars for the ticker over the lookback period.
func (p *AlpacaProvider) HistoricalBars(ctx context.Context, ticker, period, interval string) ([]domain.PricePoint, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	now := time.Now().UTC()
	tf := marketdata.NewTimeFrame(1, marketdata.Day)
	if interval == "1wk" {
		tf = marketdata.NewTimeFrame(1, marketdata.Week)
	}

	bars, err := p.client.GetBars(strings.ToUpper(ticker), marketdata.GetBarsRequest{
		TimeFrame: tf,
		Start:     periodStart(now, period),
		End:       now,
		Feed:      "iex",
	})
	if err != nil {
		return nil, fmt.Errorf("GetBars %s: %w", ticker, err)
	}

	points := make([]domain.PricePoint, 0, len(bars))
	for _, b := range bars {
		points = append(points, domain.PricePoint{
			Date:   b.Timestamp,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: int64(b.Volume),
		})
	}
	return points, nil
}

// LatestClose fetches the close of the most recent bar for the ticker.
func (p *AlpacaProvider) LatestClose(ctx context.Context, ticker string) (float64, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}

	bar, err := p.client.GetLatestBar(strings.ToUpper(ticker), marketdata.GetLatestBarRequest{
		Feed: "iex",
	})
	if err != nil {
		return 0, fmt.Errorf("GetLatestBar %s: %w", ticker, err)
	}
	if bar == nil {
		return 0, fmt.Errorf("GetLatestBar %s: no bar", ticker)
	}
	return bar.Close, nil
}
