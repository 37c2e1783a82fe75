// Package catalog loads the static stock list and answers sector-filtered
// lookups. The catalog is the only component whose load failure is fatal:
// without a stock list there is nothing to render.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"stocksight/internal/domain"
)

// LoadError indicates the catalog source is missing or malformed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading stock catalog from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Catalog holds the immutable stock list, loaded once at startup.
type Catalog struct {
	records []domain.StockRecord
}

// Load reads a CSV catalog with header Ticker,Name,Sector.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	records, err := parseCSV(f)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return &Catalog{records: records}, nil
}

func parseCSV(r io.Reader) ([]domain.StockRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"ticker", "name", "sector"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var records []domain.StockRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		rec := domain.StockRecord{
			Ticker: strings.TrimSpace(row[col["ticker"]]),
			Name:   strings.TrimSpace(row[col["name"]]),
			Sector: strings.TrimSpace(row[col["sector"]]),
		}
		if rec.Ticker == "" {
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog contains no records")
	}
	return records, nil
}

// List returns the records whose sector matches sectorFilter
// (case-insensitive). An empty filter or "All" returns every record.
func (c *Catalog) List(sectorFilter string) []domain.StockRecord {
	if sectorFilter == "" || strings.EqualFold(sectorFilter, "All") {
		out := make([]domain.StockRecord, len(c.records))
		copy(out, c.records)
		return out
	}

	var out []domain.StockRecord
	for _, rec := range c.records {
		if strings.EqualFold(rec.Sector, sectorFilter) {
			out = append(out, rec)
		}
	}
	return out
}

// Get returns the record for a ticker (case-insensitive), if present.
func (c *Catalog) Get(ticker string) (domain.StockRecord, bool) {
	for _, rec := range c.records {
		if strings.EqualFold(rec.Ticker, ticker) {
			return rec, true
		}
	}
	return domain.StockRecord{}, false
}

// Sectors returns the distinct sector names in first-seen order.
func (c *Catalog) Sectors() []string {
	seen := make(map[string]bool)
	var sectors []string
	for _, rec := range c.records {
		key := strings.ToLower(rec.Sector)
		if rec.Sector == "" || seen[key] {
			continue
		}
		seen[key] = true
		sectors = append(sectors, rec.Sector)
	}
	return sectors
}

// Len returns the number of records in the catalog.
func (c *Catalog) Len() int { return len(c.records) }
