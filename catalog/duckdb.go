// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
)

// LoadTabular reads a CSV or Parquet catalog through an in-memory DuckDB.
func LoadTabular(path string, mode Mode) ([]*Galaxy, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}
	defer db.Close()

	return LoadDuckDB(db, path, mode)
}

// LoadDuckDB reads the catalog at path using db. Column names are resolved
// with the same aliases as the ASCII header.
func LoadDuckDB(db *sql.DB, path string, mode Mode) ([]*Galaxy, error) {
	reader := "read_csv_auto"
	if strings.HasSuffix(strings.ToLower(path), ".parquet") {
		reader = "read_parquet"
	}

	// #nosec G201 - path is provided by the user and quoted
	query := fmt.Sprintf("SELECT * FROM %s('%s')", reader, strings.ReplaceAll(path, "'", "''"))

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying catalog %s: %w", path, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading catalog columns: %w", err)
	}

	cols, ok, err := columnsFromHeader(names, mode)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	if !ok {
		return nil, fmt.Errorf("catalog %s: %w: ra/dec", path, errMissingColumn)
	}

	values := make([]any, len(names))
	ptrs := make([]any, len(names))

	for i := range values {
		ptrs[i] = &values[i]
	}

	// CSV rows start after the header line; parquet rows are counted from 1.
	firstLine := 1
	if reader == "read_csv_auto" {
		firstLine = 2
	}

	var galaxies []*Galaxy

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}

		g, err := galaxyFromValues(values, cols, mode, len(galaxies))
		if err != nil {
			return nil, &LineError{Line: firstLine + len(galaxies), Err: err}
		}

		galaxies = append(galaxies, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog rows: %w", err)
	}

	return galaxies, nil
}

func galaxyFromValues(values []any, cols Columns, mode Mode, num int) (*Galaxy, error) {
	id, ok := anyToUint64(values[cols.ID])
	if !ok {
		return nil, fmt.Errorf("invalid id %v", values[cols.ID])
	}

	fields := []struct {
		name string
		col  int
		dst  *float64
	}{
		{"ra", cols.RA, new(float64)},
		{"dec", cols.Dec, new(float64)},
		{"z", cols.Z, new(float64)},
		{"dz", cols.DZ, new(float64)},
	}

	for _, f := range fields {
		if f.name == "dz" && mode != Photometric {
			continue
		}

		v, ok := anyToFloat64(values[f.col])
		if !ok {
			return nil, fmt.Errorf("invalid %s %v", f.name, values[f.col])
		}

		*f.dst = v
	}

	return New(mode, num, id, *fields[0].dst, *fields[1].dst, *fields[2].dst, *fields[3].dst)
}

// anyToFloat64 converts a scanned DuckDB value to float64.
func anyToFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case int16:
		return float64(x), true
	case int8:
		return float64(x), true
	case uint64:
		return float64(x), true
	case uint32:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)

		return f, err == nil
	default:
		return 0, false
	}
}

// anyToUint64 converts a scanned DuckDB value to a catalog identifier.
func anyToUint64(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint64:
		return x, true
	case uint32:
		return uint64(x), true
	case int64:
		return uint64(x), x >= 0
	case int32:
		return uint64(x), x >= 0
	case int16:
		return uint64(x), x >= 0
	case int8:
		return uint64(x), x >= 0
	case string:
		u, err := strconv.ParseUint(strings.TrimSpace(x), 10, 64)

		return u, err == nil
	default:
		return 0, false
	}
}
