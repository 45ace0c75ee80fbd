// Package database opens the embedded compliance database selected by configuration.
package database

import (
	"database/sql"
	"fmt"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
	"github.com/de-tools/maturity-atlas/pkg/store/duckdb"
	"github.com/de-tools/maturity-atlas/pkg/store/sqlite"
)

type Settings struct {
	Driver domain.StorageDriver
	Path   string
}

func Open(settings Settings) (*sql.DB, error) {
	switch settings.Driver {
	case domain.StorageDriverDuckDB:
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: settings.Path})
		if err != nil {
			return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		return db, nil
	case domain.StorageDriverSQLite:
		db, err := sqlite.NewDB(sqlite.Settings{DbPath: settings.Path})
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite instance: %w", err)
		}
		return db, nil
	default:
		return nil, domain.InvalidField("storage.driver", settings.Driver)
	}
}

// SettingsFromProfile maps a named storage profile to open settings.
func SettingsFromProfile(profile domain.StorageProfile) Settings {
	return Settings{Driver: profile.Driver, Path: profile.Path}
}
