package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stocksight/internal/domain"
	"stocksight/internal/util"
)

// TrendsClient fetches search-interest-over-time series from the trends
// widget API. The protocol is two-step: an explore call returns a widget
// token, which authorizes the timeline data call. Both responses carry an
// anti-hijacking prefix before the JSON body.
type TrendsClient struct {
	baseURL string
	limiter *util.RateLimiter
}

// NewTrendsClient creates a TrendsClient rooted at baseURL (the path up to
// and including "/trends/api").
func NewTrendsClient(baseURL string, limiter *util.RateLimiter) *TrendsClient {
	return &TrendsClient{baseURL: baseURL, limiter: limiter}
}

// trendsTimeframe is the fixed lookback window: the past 7 days.
const trendsTimeframe = "now 7-d"

type exploreResponse struct {
	Widgets []struct {
		ID      string          `json:"id"`
		Token   string          `json:"token"`
		Request json.RawMessage `json:"request"`
	} `json:"widgets"`
}

type multilineResponse struct {
	Default struct {
		TimelineData []struct {
			Time  string `json:"time"` // Unix seconds
			Value []int  `json:"value"`
		} `json:"timelineData"`
	} `json:"default"`
}

// InterestOverTime returns daily search-interest values for the keyword
// over the past 7 days. An empty series with a nil error means the provider
// had no data.
func (c *TrendsClient) InterestOverTime(ctx context.Context, keyword string) ([]domain.TrendPoint, error) {
	token, widgetReq, err := c.explore(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return c.timeline(ctx, token, widgetReq)
}

// explore requests widget metadata for the keyword and extracts the
// timeseries widget's token and request payload.
func (c *TrendsClient) explore(ctx context.Context, keyword string) (string, json.RawMessage, error) {
	exploreReq := map[string]any{
		"comparisonItem": []map[string]any{
			{"keyword": keyword, "geo": "", "time": trendsTimeframe},
		},
		"category": 0,
		"property": "",
	}
	reqJSON, err := json.Marshal(exploreReq)
	if err != nil {
		return "", nil, err
	}

	q := url.Values{}
	q.Set("hl", "en-US")
	q.Set("tz", "0")
	q.Set("req", string(reqJSON))

	body, err := c.get(ctx, c.baseURL+"/explore?"+q.Encode())
	if err != nil {
		return "", nil, err
	}

	var er exploreResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return "", nil, fmt.Errorf("decoding explore response: %w", err)
	}
	for _, w := range er.Widgets {
		if w.ID == "TIMESERIES" {
			return w.Token, w.Request, nil
		}
	}
	return "", nil, fmt.Errorf("explore response has no timeseries widget")
}

// timeline fetches the interest-over-time values authorized by the widget
// token.
func (c *TrendsClient) timeline(ctx context.Context, token string, widgetReq json.RawMessage) ([]domain.TrendPoint, error) {
	q := url.Values{}
	q.Set("hl", "en-US")
	q.Set("tz", "0")
	q.Set("token", token)
	q.Set("req", string(widgetReq))

	body, err := c.get(ctx, c.baseURL+"/widgetdata/multiline?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var mr multilineResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return nil, fmt.Errorf("decoding timeline response: %w", err)
	}

	var points []domain.TrendPoint
	for _, td := range mr.Default.TimelineData {
		if len(td.Value) == 0 {
			continue
		}
		secs, err := strconv.ParseInt(td.Time, 10, 64)
		if err != nil {
			continue
		}
		points = append(points, domain.TrendPoint{
			Date:  time.Unix(secs, 0).UTC(),
			Value: td.Value[0],
		})
	}
	return points, nil
}

// get performs a rate-limited GET and strips the anti-hijacking prefix
// (")]}'" plus an optional comma) from the response body.
func (c *TrendsClient) get(ctx context.Context, u string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trends api status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	s := string(body)
	if idx := strings.Index(s, "\n"); idx >= 0 && strings.HasPrefix(s, ")]}'") {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, ")]}',")
		s = strings.TrimPrefix(s, ")]}'")
	}
	return []byte(s), nil
}
