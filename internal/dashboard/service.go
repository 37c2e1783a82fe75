package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"stocksight/internal/catalog"
	"stocksight/internal/domain"
	"stocksight/internal/feature"
	"stocksight/internal/marketdata"
	"stocksight/internal/predict"
	"stocksight/internal/sentiment"
)

// ErrUnknownTicker is returned by Render when the ticker is not in the
// catalog. It is the only error Render can return; every downstream
// failure degrades into the snapshot instead.
var ErrUnknownTicker = fmt.Errorf("unknown ticker")

// SocialSource supplies pre-fetched social posts for a ticker. Post
// acquisition is external to stocksight; the default source returns none.
type SocialSource interface {
	Posts(ctx context.Context, ticker string) []domain.SocialPost
}

// NoSocialSource is the default SocialSource: no posts.
type NoSocialSource struct{}

// Posts returns nil.
func (NoSocialSource) Posts(context.Context, string) []domain.SocialPost { return nil }

// Snapshot is one full dashboard render for a ticker. Degraded fetches
// appear as empty panels or a missing latest price, never as an error.
type Snapshot struct {
	Stock          domain.StockRecord   `json:"stock"`
	LatestPrice    float64              `json:"latest_price"`
	HasLatestPrice bool                 `json:"has_latest_price"`
	Prediction     domain.Prediction    `json:"prediction"`
	Suggestion     Suggestion           `json:"suggestion"`
	History        []domain.PricePoint  `json:"history"`
	News           []domain.NewsItem    `json:"news"`
	Social         []domain.SocialScore `json:"social"`
	Trends         []domain.TrendPoint  `json:"trends"`
}

// Service orchestrates a dashboard render across the catalog, market data,
// sentiment, feature, and prediction components.
type Service struct {
	catalog   *catalog.Catalog
	market    *marketdata.Client
	sentiment *sentiment.Aggregator
	predictor *predict.Predictor
	social    SocialSource
	period    string
	interval  string
	log       *slog.Logger
}

// NewService wires a Service. social may be nil, in which case no social
// posts are scored.
func NewService(
	cat *catalog.Catalog,
	market *marketdata.Client,
	agg *sentiment.Aggregator,
	predictor *predict.Predictor,
	social SocialSource,
	period, interval string,
) *Service {
	if social == nil {
		social = NoSocialSource{}
	}
	return &Service{
		catalog:   cat,
		market:    market,
		sentiment: agg,
		predictor: predictor,
		social:    social,
		period:    period,
		interval:  interval,
		log:       slog.Default().With("component", "dashboard"),
	}
}

// Sectors returns the catalog's distinct sectors.
func (s *Service) Sectors() []string { return s.catalog.Sectors() }

// Stocks returns the catalog records matching the sector filter.
func (s *Service) Stocks(sectorFilter string) []domain.StockRecord {
	return s.catalog.List(sectorFilter)
}

// Render produces a full snapshot for the ticker. Only an unknown ticker is
// an error; every fetch, feature, or inference failure degrades to a
// partial snapshot so the dashboard always has something to show.
func (s *Service) Render(ctx context.Context, ticker string) (*Snapshot, error) {
	stock, ok := s.catalog.Get(ticker)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTicker, ticker)
	}

	history := s.market.HistoricalPrices(ctx, stock.Ticker, s.period, s.interval)
	latest, haveLatest := s.market.LatestPrice(ctx, stock.Ticker)

	news := s.sentiment.NewsSentiment(ctx, stock.Ticker)
	social := s.sentiment.SocialSentiment(s.social.Posts(ctx, stock.Ticker))
	trends := s.sentiment.TrendSentiment(ctx, stock.Ticker, stock.Name)

	features := feature.Build(history, news, social, trends)
	prediction := s.predictor.Predict(stock.Ticker, features)

	havePrediction := prediction.Source != ""
	snap := &Snapshot{
		Stock:          stock,
		LatestPrice:    latest,
		HasLatestPrice: haveLatest,
		Prediction:     prediction,
		Suggestion:     DeriveSuggestion(latest, prediction.Price, haveLatest, havePrediction),
		History:        history,
		News:           news,
		Social:         social,
		Trends:         trends,
	}

	s.log.Info("rendered",
		"ticker", stock.Ticker,
		"bars", len(history),
		"news", len(news),
		"social", len(social),
		"trends", len(trends),
		"prediction_source", prediction.Source,
		"suggestion", snap.Suggestion,
	)
	return snap, nil
}
