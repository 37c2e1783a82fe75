package feature

import (
	"stocksight/internal/domain"
)

// Rolling window lengths for the engineered indicators.
const (
	shortWindow      = 10
	longWindow       = 50
	volatilityWindow = 10
)

// neutralSentiment is attached to price dates with no sentiment signal, so
// signal-free days bias the model toward neither buy nor sell.
const neutralSentiment = 0.5

// Build derives one FeatureRow per price point: rolling indicators over the
// close series plus the three sentiment signals attached by exact calendar
// date. Output preserves the length and chronological order of prices, and
// every field of every row is populated — undefined rolling values become
// 0, absent sentiment dates become 0.5.
func Build(prices []domain.PricePoint, news []domain.NewsItem, social []domain.SocialScore, trend []domain.TrendPoint) []domain.FeatureRow {
	if len(prices) == 0 {
		return []domain.FeatureRow{}
	}

	closes := make([]float64, len(prices))
	for i, p := range prices {
		closes[i] = p.Close
	}

	ma10 := rollingMean(closes, shortWindow)
	ma50 := rollingMean(closes, longWindow)
	change := pctChange(closes)
	vol := rollingStd(closes, volatilityWindow)

	newsByDate := newsLookup(news)
	socialByDate := socialLookup(social)
	trendByDate := trendLookup(trend)

	rows := make([]domain.FeatureRow, len(prices))
	for i, p := range prices {
		key := domain.DateKey(p.Date)
		rows[i] = domain.FeatureRow{
			Date:       p.Date,
			Close:      p.Close,
			MA10:       zeroIfNaN(ma10[i]),
			MA50:       zeroIfNaN(ma50[i]),
			PctChange:  zeroIfNaN(change[i]),
			Volatility: zeroIfNaN(vol[i]),
			News:       lookupOrNeutral(newsByDate, key),
			Social:     lookupOrNeutral(socialByDate, key),
			Trend:      lookupOrNeutral(trendByDate, key),
		}
	}
	return rows
}

// lookupOrNeutral returns the score for a date key, or the neutral prior
// when the source has no value for that date.
func lookupOrNeutral(m map[string]float64, key string) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return neutralSentiment
}

// The lookup builders reduce each source to dated scores keyed by calendar
// date. Later entries win on duplicate dates within a source.

func newsLookup(items []domain.NewsItem) map[string]float64 {
	points := make([]domain.SentimentPoint, len(items))
	for i, it := range items {
		points[i] = domain.SentimentPoint{Date: it.Date, Score: it.Score}
	}
	return sentimentLookup(points)
}

func socialLookup(scores []domain.SocialScore) map[string]float64 {
	points := make([]domain.SentimentPoint, len(scores))
	for i, s := range scores {
		points[i] = domain.SentimentPoint{Date: s.Date, Score: s.Score}
	}
	return sentimentLookup(points)
}

func trendLookup(trend []domain.TrendPoint) map[string]float64 {
	points := make([]domain.SentimentPoint, len(trend))
	for i, p := range trend {
		points[i] = domain.SentimentPoint{Date: p.Date, Score: float64(p.Value)}
	}
	return sentimentLookup(points)
}

func sentimentLookup(points []domain.SentimentPoint) map[string]float64 {
	m := make(map[string]float64, len(points))
	for _, p := range points {
		m[domain.DateKey(p.Date)] = p.Score
	}
	return m
}
