package catalog

import (
	"database/sql"
	"fmt"

	"stocksight/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// LoadSQLite reads the catalog from the `stocks` table of a SQLite database.
// The table must have ticker, name, and sector columns. The database is
// opened read-only and closed before returning; the catalog never writes.
func LoadSQLite(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer db.Close()

	rows, err := db.Query(`SELECT ticker, name, sector FROM stocks ORDER BY rowid`)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer rows.Close()

	var records []domain.StockRecord
	for rows.Next() {
		var rec domain.StockRecord
		if err := rows.Scan(&rec.Ticker, &rec.Name, &rec.Sector); err != nil {
			return nil, &LoadError{Source: path, Err: err}
		}
		if rec.Ticker == "" {
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	if len(records) == 0 {
		return nil, &LoadError{Source: path, Err: fmt.Errorf("stocks table contains no records")}
	}

	return &Catalog{records: records}, nil
}
