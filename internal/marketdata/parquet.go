package marketdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"stocksight/internal/domain"
)

// Compile-time interface check.
var _ Provider = (*ParquetProvider)(nil)

// ParquetProvider serves price data from a local read-only Parquet bar
// archive, letting the dashboard run without network access. Files are laid
// out one per symbol and year:
//
//	<DataDir>/daily/<SYMBOL>/<YYYY>.parquet
type ParquetProvider struct {
	DataDir string
}

// NewParquetProvider creates a ParquetProvider rooted at dataDir.
func NewParquetProvider(dataDir string) *ParquetProvider {
	return &ParquetProvider{DataDir: dataDir}
}

// barRecord is the on-disk Parquet schema for daily bars.
type barRecord struct {
	Symbol    string  `parquet:"symbol"`
	Timestamp int64   `parquet:"timestamp,timestamp(millisecond)"` // Unix ms
	Open      float64 `parquet:"open"`
	High      float64 `parquet:"high"`
	Low       float64 `parquet:"low"`
	Close     float64 `parquet:"close"`
	Volume    int64   `parquet:"volume"`
}

// Name returns "parquet".
func (p *ParquetProvider) Name() string { return "parquet" }

func (p *ParquetProvider) barPath(ticker string, year int) string {
	return filepath.Join(p.DataDir, "daily", strings.ToUpper(ticker), fmt.Sprintf("%d.parquet", year))
}

// HistoricalBars reads bars for the lookback period from the year files
// covering it. The interval parameter is ignored; the archive stores daily
// bars only.
func (p *ParquetProvider) HistoricalBars(ctx context.Context, ticker, period, _ string) ([]domain.PricePoint, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	now := time.Now().UTC()
	start := periodStart(now, period)

	var points []domain.PricePoint
	for year := start.Year(); year <= now.Year(); year++ {
		records, err := parquet.ReadFile[barRecord](p.barPath(ticker, year))
		if err != nil {
			// Year file absent — the archive may simply not cover it.
			continue
		}
		for _, r := range records {
			ts := time.UnixMilli(r.Timestamp).UTC()
			if ts.Before(start) || ts.After(now) {
				continue
			}
			points = append(points, domain.PricePoint{
				Date:   ts,
				Open:   r.Open,
				High:   r.High,
				Low:    r.Low,
				Close:  r.Close,
				Volume: r.Volume,
			})
		}
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	if len(points) == 0 {
		return nil, fmt.Errorf("no archived bars for %s", ticker)
	}
	return points, nil
}

// LatestClose returns the close of the newest archived bar for the ticker,
// looking back up to two year files.
func (p *ParquetProvider) LatestClose(ctx context.Context, ticker string) (float64, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}

	year := time.Now().UTC().Year()
	for _, y := range []int{year, year - 1} {
		records, err := parquet.ReadFile[barRecord](p.barPath(ticker, y))
		if err != nil || len(records) == 0 {
			continue
		}
		latest := records[0]
		for _, r := range records[1:] {
			if r.Timestamp > latest.Timestamp {
				latest = r
			}
		}
		return latest.Close, nil
	}
	return 0, fmt.Errorf("no archived bars for %s", ticker)
}

// WriteFixture writes bars to the archive location for a ticker and year.
// It exists for building local archives and test fixtures; the dashboard
// itself only reads.
func (p *ParquetProvider) WriteFixture(ticker string, year int, points []domain.PricePoint) error {
	records := make([]barRecord, 0, len(points))
	for _, pt := range points {
		records = append(records, barRecord{
			Symbol:    strings.ToUpper(ticker),
			Timestamp: pt.Date.UnixMilli(),
			Open:      pt.Open,
			High:      pt.High,
			Low:       pt.Low,
			Close:     pt.Close,
			Volume:    pt.Volume,
		})
	}

	path := p.barPath(ticker, year)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}
