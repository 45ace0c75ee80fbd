// Package sqlite provides the pure-Go SQLite backend for the compliance store.
package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/de-tools/maturity-atlas/pkg/store/schema"
	_ "modernc.org/sqlite"
)

const (
	memoryPath      = ":memory:"
	timeFormatParam = "_time_format=sqlite"
)

type Settings struct {
	DbPath string
}

// NewDB opens a SQLite database and applies the schema boot queries.
func NewDB(settings Settings) (*sql.DB, error) {
	path := strings.TrimSpace(settings.DbPath)
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	// Bound time.Time values are written in SQLite's own text format.
	dsn := memoryPath + "?" + timeFormatParam
	if path != memoryPath {
		dsn = filepath.Clean(path) + "?" + timeFormatParam + "&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == memoryPath {
		// An in-memory database lives on a single connection.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	for _, query := range schema.BootQueries {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return db, nil
}
