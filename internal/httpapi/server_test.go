package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stocksight/internal/catalog"
	"stocksight/internal/dashboard"
	"stocksight/internal/domain"
	"stocksight/internal/marketdata"
	"stocksight/internal/predict"
	"stocksight/internal/sentiment"
)

type cannedProvider struct {
	bars   []domain.PricePoint
	latest float64
}

func (p *cannedProvider) Name() string { return "canned" }

func (p *cannedProvider) HistoricalBars(context.Context, string, string, string) ([]domain.PricePoint, error) {
	return p.bars, nil
}

func (p *cannedProvider) LatestClose(context.Context, string) (float64, error) {
	return p.latest, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	csv := "Ticker,Name,Sector\n" +
		"ACME,Acme Corporation,Industrials\n" +
		"GLOBX,Globex Inc,Technology\n" +
		"INITECH,Initech LLC,Technology\n"
	csvPath := filepath.Join(dir, "stocks.csv")
	if err := os.WriteFile(csvPath, []byte(csv), 0o644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}
	cat, err := catalog.Load(csvPath)
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	bars := make([]domain.PricePoint, 12)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = domain.PricePoint{Date: base.AddDate(0, 0, i), Close: 50 + float64(i)}
	}

	reg, err := predict.NewRegistry(filepath.Join(dir, "models"))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	agg := sentiment.NewAggregator(
		sentiment.NewNewsFetcher("http://127.0.0.1:0", "", nil),
		sentiment.NewTrendsClient("http://127.0.0.1:0/trends/api", nil),
		sentiment.NewPipelines(),
	)

	svc := dashboard.NewService(
		cat,
		marketdata.NewClient(&cannedProvider{bars: bars, latest: 61.0}, 10),
		agg,
		predict.NewPredictor(reg),
		nil,
		"6mo", "1d",
	)

	srv := httptest.NewServer(NewServer(svc, slog.Default()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decoding %s: %v", url, err)
	}
	return resp.StatusCode
}

func TestSectors(t *testing.T) {
	srv := newTestServer(t)

	var got SectorsResponse
	if code := getJSON(t, srv.URL+"/api/sectors", &got); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	want := []string{"Industrials", "Technology"}
	if len(got.Sectors) != len(want) {
		t.Fatalf("sectors = %v, want %v", got.Sectors, want)
	}
	for i := range want {
		if got.Sectors[i] != want[i] {
			t.Errorf("sectors[%d] = %s, want %s", i, got.Sectors[i], want[i])
		}
	}
}

func TestStocksFiltered(t *testing.T) {
	srv := newTestServer(t)

	var all StocksResponse
	getJSON(t, srv.URL+"/api/stocks", &all)
	if len(all.Stocks) != 3 {
		t.Errorf("unfiltered stocks = %d, want 3", len(all.Stocks))
	}

	var tech StocksResponse
	getJSON(t, srv.URL+"/api/stocks?sector=Technology", &tech)
	if len(tech.Stocks) != 2 {
		t.Fatalf("Technology stocks = %d, want 2", len(tech.Stocks))
	}
	for _, s := range tech.Stocks {
		if s.Sector != "Technology" {
			t.Errorf("stock %s has sector %s", s.Ticker, s.Sector)
		}
	}

	var none StocksResponse
	getJSON(t, srv.URL+"/api/stocks?sector=Utilities", &none)
	if len(none.Stocks) != 0 {
		t.Errorf("Utilities stocks = %d, want 0", len(none.Stocks))
	}
}

func TestDashboardSnapshot(t *testing.T) {
	srv := newTestServer(t)

	var snap dashboard.Snapshot
	if code := getJSON(t, srv.URL+"/api/dashboard/acme", &snap); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if snap.Stock.Ticker != "ACME" {
		t.Errorf("ticker = %s, want ACME", snap.Stock.Ticker)
	}
	if !snap.HasLatestPrice || snap.LatestPrice != 61.0 {
		t.Errorf("latest = %v,%v, want 61,true", snap.LatestPrice, snap.HasLatestPrice)
	}
	if snap.Prediction.Source != domain.SourceFallbackLastClose {
		t.Errorf("prediction source = %s, want fallback", snap.Prediction.Source)
	}
	if len(snap.History) != 12 {
		t.Errorf("history = %d bars, want 12", len(snap.History))
	}
}

func TestDashboardUnknownTicker(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]string
	if code := getJSON(t, srv.URL+"/api/dashboard/ZZZZ", &body); code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
	if body["error"] == "" {
		t.Error("expected error message in body")
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/sectors", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS allow-origin header")
	}
}
