package sentiment

import (
	"context"
	"log/slog"
	"strings"

	"stocksight/internal/domain"
)

// Aggregator runs the three sentiment sub-fetchers. Each degrades to an
// empty slice on any failure — missing credentials, network errors, empty
// responses — and logs the cause; no error ever reaches the caller.
type Aggregator struct {
	news   *NewsFetcher
	trends *TrendsClient
	pipes  *Pipelines
	log    *slog.Logger
}

// NewAggregator wires the fetchers and the injected NLP pipelines.
func NewAggregator(news *NewsFetcher, trends *TrendsClient, pipes *Pipelines) *Aggregator {
	return &Aggregator{
		news:   news,
		trends: trends,
		pipes:  pipes,
		log:    slog.Default().With("component", "sentiment"),
	}
}

// NewsSentiment fetches recent articles about the ticker and scores each
// headline+description with the finance-tone classifier. Articles with no
// text are skipped.
func (a *Aggregator) NewsSentiment(ctx context.Context, ticker string) []domain.NewsItem {
	articles, err := a.news.Fetch(ctx, ticker)
	if err != nil {
		a.log.Warn("news sentiment unavailable", "ticker", ticker, "err", err)
		return []domain.NewsItem{}
	}

	items := make([]domain.NewsItem, 0, len(articles))
	for _, art := range articles {
		text := strings.TrimSpace(art.Title + ". " + art.Description)
		if text == "." || text == "" {
			continue
		}
		date, ok := publishedDate(art.PublishedAt)
		if !ok {
			continue
		}
		items = append(items, domain.NewsItem{
			Date:  date,
			Title: art.Title,
			Score: a.pipes.Tone.Classify(text).Score(),
		})
	}
	return items
}

// SocialSentiment scores pre-fetched social posts with the lexicon
// analyzer, rescaling the compound score from [-1,1] to [0,1]. Post
// acquisition is external; this only attaches scores.
func (a *Aggregator) SocialSentiment(posts []domain.SocialPost) []domain.SocialScore {
	scores := make([]domain.SocialScore, 0, len(posts))
	for _, p := range posts {
		compound := a.pipes.Lexicon.Compound(p.Text)
		scores = append(scores, domain.SocialScore{
			Date:  p.Date,
			Text:  p.Text,
			Score: (compound + 1) / 2,
		})
	}
	return scores
}

// TrendSentiment fetches the past week of search interest using the
// display name when available, otherwise the ticker.
func (a *Aggregator) TrendSentiment(ctx context.Context, ticker, displayName string) []domain.TrendPoint {
	keyword := displayName
	if keyword == "" {
		keyword = ticker
	}

	points, err := a.trends.InterestOverTime(ctx, keyword)
	if err != nil {
		a.log.Warn("trend sentiment unavailable", "ticker", ticker, "keyword", keyword, "err", err)
		return []domain.TrendPoint{}
	}
	if points == nil {
		points = []domain.TrendPoint{}
	}
	return points
}
