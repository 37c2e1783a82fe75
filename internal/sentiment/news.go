package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"stocksight/internal/util"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// newsResponse mirrors the news-search API's /v2/everything payload.
type newsResponse struct {
	Status   string        `json:"status"`
	Message  string        `json:"message"`
	Articles []newsArticle `json:"articles"`
}

type newsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt"`
}

// NewsFetcher queries a news-search API for recent articles about a ticker.
type NewsFetcher struct {
	baseURL  string
	apiKey   string
	pageSize int
	limiter  *util.RateLimiter
}

// NewNewsFetcher creates a NewsFetcher. The API key may be empty; fetches
// then fail and the aggregator degrades to an empty result.
func NewNewsFetcher(baseURL, apiKey string, limiter *util.RateLimiter) *NewsFetcher {
	return &NewsFetcher{
		baseURL:  baseURL,
		apiKey:   apiKey,
		pageSize: 10,
		limiter:  limiter,
	}
}

// Fetch returns up to pageSize of the most recently published articles
// mentioning the ticker.
func (f *NewsFetcher) Fetch(ctx context.Context, ticker string) ([]newsArticle, error) {
	if f.apiKey == "" {
		return nil, fmt.Errorf("news api key not configured")
	}
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	q := url.Values{}
	q.Set("q", ticker)
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", strconv.Itoa(f.pageSize))
	q.Set("apiKey", f.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var nr newsResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		return nil, fmt.Errorf("decoding news response: %w", err)
	}
	if nr.Status != "ok" {
		return nil, fmt.Errorf("news api status %q: %s", nr.Status, nr.Message)
	}
	return nr.Articles, nil
}

// publishedDate parses an article timestamp down to its calendar date.
func publishedDate(publishedAt string) (time.Time, bool) {
	if len(publishedAt) < 10 {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", publishedAt[:10])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
