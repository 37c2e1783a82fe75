package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"stocksight/internal/domain"
)

// stubProvider counts calls and can be switched into a failing mode.
type stubProvider struct {
	bars      []domain.PricePoint
	latest    float64
	fail      bool
	barCalls  int
	lateCalls int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) HistoricalBars(_ context.Context, _, _, _ string) ([]domain.PricePoint, error) {
	s.barCalls++
	if s.fail {
		return nil, errors.New("provider down")
	}
	return s.bars, nil
}

func (s *stubProvider) LatestClose(_ context.Context, _ string) (float64, error) {
	s.lateCalls++
	if s.fail {
		return 0, errors.New("provider down")
	}
	return s.latest, nil
}

func someBars(n int) []domain.PricePoint {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.PricePoint, n)
	for i := range bars {
		bars[i] = domain.PricePoint{
			Date:  base.AddDate(0, 0, i),
			Close: 100 + float64(i),
		}
	}
	return bars
}

func TestHistoricalPricesCached(t *testing.T) {
	p := &stubProvider{bars: someBars(3)}
	c := NewClient(p, 10)
	ctx := context.Background()

	first := c.HistoricalPrices(ctx, "AAPL", "6mo", "1d")
	second := c.HistoricalPrices(ctx, "AAPL", "6mo", "1d")

	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("lengths = %d, %d, want 3, 3", len(first), len(second))
	}
	if p.barCalls != 1 {
		t.Errorf("provider called %d times, want 1 (second call cached)", p.barCalls)
	}

	// A different key misses the cache.
	c.HistoricalPrices(ctx, "AAPL", "1y", "1d")
	if p.barCalls != 2 {
		t.Errorf("provider called %d times after new key, want 2", p.barCalls)
	}
}

func TestHistoricalPricesDegradesToEmpty(t *testing.T) {
	p := &stubProvider{fail: true}
	c := NewClient(p, 10)

	got := c.HistoricalPrices(context.Background(), "AAPL", "6mo", "1d")
	if got == nil {
		t.Fatal("expected non-nil empty slice on failure")
	}
	if len(got) != 0 {
		t.Errorf("got %d points on failure, want 0", len(got))
	}
}

func TestFailedFetchNotCached(t *testing.T) {
	p := &stubProvider{fail: true}
	c := NewClient(p, 10)
	ctx := context.Background()

	c.HistoricalPrices(ctx, "AAPL", "6mo", "1d")
	failedCalls := p.barCalls
	if failedCalls < 2 {
		t.Errorf("provider called %d times while failing, want retries", failedCalls)
	}

	// Provider recovers; the next render must refetch, not serve the failure.
	p.fail = false
	p.bars = someBars(2)
	got := c.HistoricalPrices(ctx, "AAPL", "6mo", "1d")
	if len(got) != 2 {
		t.Errorf("got %d points after recovery, want 2", len(got))
	}
	if p.barCalls != failedCalls+1 {
		t.Errorf("provider called %d times, want %d", p.barCalls, failedCalls+1)
	}
}

func TestLatestPrice(t *testing.T) {
	p := &stubProvider{latest: 123.456}
	c := NewClient(p, 10)

	price, ok := c.LatestPrice(context.Background(), "AAPL")
	if !ok {
		t.Fatal("LatestPrice returned ok=false")
	}
	if price != 123.46 {
		t.Errorf("price = %v, want 123.46", price)
	}

	p.fail = true
	if _, ok := c.LatestPrice(context.Background(), "AAPL"); ok {
		t.Error("LatestPrice returned ok=true under failing provider")
	}
}

func TestLRUEviction(t *testing.T) {
	cache := newLRUCache[int](2)
	cache.put("a", 1)
	cache.put("b", 2)

	// Touch "a" so "b" becomes least recently used.
	if _, ok := cache.get("a"); !ok {
		t.Fatal("expected a present")
	}

	cache.put("c", 3)
	if _, ok := cache.get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := cache.get("a"); !ok {
		t.Error("a should have survived eviction")
	}
	if _, ok := cache.get("c"); !ok {
		t.Error("c should be present")
	}
	if cache.len() != 2 {
		t.Errorf("len = %d, want 2", cache.len())
	}
}

func TestLRUUpdateExisting(t *testing.T) {
	cache := newLRUCache[int](2)
	cache.put("a", 1)
	cache.put("a", 5)

	got, ok := cache.get("a")
	if !ok || got != 5 {
		t.Errorf("get(a) = %d,%v, want 5,true", got, ok)
	}
	if cache.len() != 1 {
		t.Errorf("len = %d, want 1", cache.len())
	}
}

func TestParquetProviderRoundTrip(t *testing.T) {
	p := NewParquetProvider(t.TempDir())
	year := time.Now().UTC().Year()

	// Bars dated relative to now so the 6mo window covers them.
	now := time.Now().UTC()
	bars := []domain.PricePoint{
		{Date: now.AddDate(0, 0, -3), Open: 10, High: 12, Low: 9, Close: 11, Volume: 1000},
		{Date: now.AddDate(0, 0, -2), Open: 11, High: 13, Low: 10, Close: 12, Volume: 1100},
		{Date: now.AddDate(0, 0, -1), Open: 12, High: 14, Low: 11, Close: 13, Volume: 1200},
	}
	if err := p.WriteFixture("AAPL", year, bars); err != nil {
		t.Fatalf("WriteFixture: %v", err)
	}
	// Bars from the previous day may land in last year's file near Jan 1.
	if prevYear := now.AddDate(0, 0, -3).Year(); prevYear != year {
		t.Skip("fixture spans a year boundary")
	}

	got, err := p.HistoricalBars(context.Background(), "aapl", "6mo", "1d")
	if err != nil {
		t.Fatalf("HistoricalBars: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d bars, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.Before(got[i-1].Date) {
			t.Fatal("bars out of chronological order")
		}
	}

	latest, err := p.LatestClose(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("LatestClose: %v", err)
	}
	if latest != 13 {
		t.Errorf("latest = %v, want 13", latest)
	}
}

func TestParquetProviderMissingSymbol(t *testing.T) {
	p := NewParquetProvider(t.TempDir())

	if _, err := p.HistoricalBars(context.Background(), "ZZZZ", "6mo", "1d"); err == nil {
		t.Error("expected error for missing symbol")
	}
	if _, err := p.LatestClose(context.Background(), "ZZZZ"); err == nil {
		t.Error("expected error for missing symbol")
	}
}
