// Package domain defines the core data types shared across the stocksight
// platform: catalog records, price bars, sentiment scores, engineered
// features, and predictions.
package domain

import "time"

// StockRecord is a single instrument from the static stock catalog.
// Identity is the ticker.
type StockRecord struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// PricePoint is one daily OHLCV bar for a ticker.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// SentimentPoint is a dated sentiment score in [0,1] from a single signal
// source. Dates need not align with price dates or across sources.
type SentimentPoint struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
}

// NewsItem is a scored news article: sentiment point plus the headline it
// was derived from.
type NewsItem struct {
	Date  time.Time `json:"date"`
	Title string    `json:"title"`
	Score float64   `json:"score"`
}

// SocialPost is a raw, pre-fetched social media post. Acquisition of posts
// is external; stocksight only scores them.
type SocialPost struct {
	Date time.Time `json:"date"`
	Text string    `json:"text"`
}

// SocialScore is a scored social post.
type SocialScore struct {
	Date  time.Time `json:"date"`
	Text  string    `json:"text"`
	Score float64   `json:"score"`
}

// TrendPoint is one day of search-interest volume for a keyword.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Value int       `json:"value"`
}

// FeatureRow holds the engineered features for a single price date. Every
// field is always populated: rolling statistics with insufficient history
// are 0, sentiment fields without a matching date are 0.5 (neutral).
type FeatureRow struct {
	Date       time.Time `json:"date"`
	Close      float64   `json:"close"`
	MA10       float64   `json:"ma10"`
	MA50       float64   `json:"ma50"`
	PctChange  float64   `json:"pct_change"`
	Volatility float64   `json:"volatility"`
	News       float64   `json:"news_sentiment"`
	Social     float64   `json:"social_sentiment"`
	Trend      float64   `json:"trend_score"`
}

// PredictionSource identifies how a predicted price was produced.
type PredictionSource string

const (
	// SourceModel means the price came from the per-ticker sequence model.
	SourceModel PredictionSource = "model"

	// SourceFallbackLastClose means no model was available (or inference
	// failed) and the last close price was used instead.
	SourceFallbackLastClose PredictionSource = "fallback_last_close"
)

// Prediction is a next-day price prediction. A zero-value Prediction
// (Price 0, empty Source) means no prediction could be made at all.
type Prediction struct {
	Price  float64          `json:"price"`
	Source PredictionSource `json:"source"`
}

// DateKey normalizes a timestamp to its calendar date string, the join key
// used when attaching sentiment series to price dates.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
