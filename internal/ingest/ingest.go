// Package ingest loads spatial reference columns from CSV and Parquet
// files through DuckDB.
package ingest

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
)

var (
	instance *sql.DB
	once     sync.Once
	initErr  error
)

// db returns the singleton in-memory DuckDB connection.
func db() (*sql.DB, error) {
	once.Do(func() {
		instance, initErr = sql.Open("duckdb", "")
		if initErr != nil {
			return
		}
		// Parquet support ships as an extension.
		if _, err := instance.Exec("INSTALL parquet; LOAD parquet;"); err != nil {
			// Already installed on most builds.
		}
	})
	return instance, initErr
}

// Close closes the database connection.
func Close() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}

// Columns is the result of reading a file: one designated column of
// spatial references plus every other column as metadata.
type Columns struct {
	Refs []any
	Meta map[string][]any
}

// readerFor maps a file extension to the DuckDB table function reading it.
func readerFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "read_csv_auto", nil
	case ".parquet", ".geoparquet":
		return "read_parquet", nil
	default:
		return "", fmt.Errorf("unsupported file type %q (want .csv or .parquet)", filepath.Ext(path))
	}
}

// ReadColumn loads a file and splits it into the named reference column
// and the remaining metadata columns.
func ReadColumn(path, refColumn string) (*Columns, error) {
	conn, err := db()
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	reader, err := readerFor(path)
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(fmt.Sprintf("SELECT * FROM %s(?)", reader), path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	refIdx := -1
	for i, name := range names {
		if name == refColumn {
			refIdx = i
		}
	}
	if refIdx < 0 {
		return nil, fmt.Errorf("column %q not in %s (have %v)", refColumn, path, names)
	}

	out := &Columns{Meta: make(map[string][]any)}
	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
		for i, name := range names {
			if i == refIdx {
				out.Refs = append(out.Refs, normalizeCell(values[i]))
				continue
			}
			out.Meta[name] = append(out.Meta[name], normalizeCell(values[i]))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(out.Refs) == 0 {
		return nil, fmt.Errorf("%s holds no rows", path)
	}
	return out, nil
}

// normalizeCell widens driver-specific cell types to the kinds the rest of
// the pipeline understands.
func normalizeCell(v any) any {
	switch n := v.(type) {
	case []byte:
		return string(n)
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return int(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}
