package catalog

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

const testCSV = `Ticker,Name,Sector
AAPL,Apple Inc.,Technology
MSFT,Microsoft Corporation,Technology
JPM,JPMorgan Chase,Financials
XOM,Exxon Mobil,Energy
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stock_list.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing catalog fixture: %v", err)
	}
	return path
}

func TestLoadAndList(t *testing.T) {
	c, err := Load(writeCatalog(t, testCSV))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if c.Len() != 4 {
		t.Fatalf("Len = %d, want 4", c.Len())
	}

	tests := []struct {
		filter string
		want   int
	}{
		{"", 4},
		{"All", 4},
		{"all", 4},
		{"Technology", 2},
		{"technology", 2},
		{"TECHNOLOGY", 2},
		{"Energy", 1},
		{"Utilities", 0},
	}
	for _, tt := range tests {
		got := c.List(tt.filter)
		if len(got) != tt.want {
			t.Errorf("List(%q) returned %d records, want %d", tt.filter, len(got), tt.want)
		}
	}
}

func TestListPreservesOrder(t *testing.T) {
	c, err := Load(writeCatalog(t, testCSV))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	got := c.List("Technology")
	if got[0].Ticker != "AAPL" || got[1].Ticker != "MSFT" {
		t.Errorf("List order = %s,%s, want AAPL,MSFT", got[0].Ticker, got[1].Ticker)
	}
}

func TestGet(t *testing.T) {
	c, err := Load(writeCatalog(t, testCSV))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	rec, ok := c.Get("jpm")
	if !ok {
		t.Fatal("Get(jpm) not found")
	}
	if rec.Name != "JPMorgan Chase" {
		t.Errorf("Get(jpm).Name = %q, want JPMorgan Chase", rec.Name)
	}

	if _, ok := c.Get("ZZZZ"); ok {
		t.Error("Get(ZZZZ) found, want missing")
	}
}

func TestSectors(t *testing.T) {
	c, err := Load(writeCatalog(t, testCSV))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	sectors := c.Sectors()
	want := []string{"Technology", "Financials", "Energy"}
	if len(sectors) != len(want) {
		t.Fatalf("Sectors = %v, want %v", sectors, want)
	}
	for i := range want {
		if sectors[i] != want[i] {
			t.Errorf("Sectors[%d] = %q, want %q", i, sectors[i], want[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Load returned %v, want *LoadError", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing column", "Ticker,Name\nAAPL,Apple\n"},
		{"empty body", "Ticker,Name,Sector\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCatalog(t, tt.content))
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("Load returned %v, want *LoadError", err)
			}
		})
	}
}

func TestLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening fixture db: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE stocks (ticker TEXT, name TEXT, sector TEXT)`); err != nil {
		t.Fatalf("creating table: %v", err)
	}
	if _, err := db.Exec(
		`INSERT INTO stocks VALUES ('AAPL','Apple Inc.','Technology'), ('XOM','Exxon Mobil','Energy')`,
	); err != nil {
		t.Fatalf("inserting rows: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("closing fixture db: %v", err)
	}

	c, err := LoadSQLite(path)
	if err != nil {
		t.Fatalf("LoadSQLite returned error: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if got := c.List("energy"); len(got) != 1 || got[0].Ticker != "XOM" {
		t.Errorf("List(energy) = %v, want [XOM]", got)
	}
}

func TestLoadSQLiteMissing(t *testing.T) {
	_, err := LoadSQLite(filepath.Join(t.TempDir(), "missing.db"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("LoadSQLite returned %v, want *LoadError", err)
	}
}
