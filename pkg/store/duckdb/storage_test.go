package duckdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_BootsSchema(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "duckdb-test-*")
	require.NoError(t, err)

	defer func() {
		err := os.RemoveAll(tmpDir)
		if err != nil {
			t.Errorf("failed to cleanup test directory: %v", err)
		}
	}()

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := NewDB(Settings{
		DbPath: dbPath,
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO projects (id, name, target_maturity) VALUES (?, ?, ?)`,
		"project-001", "ISMS 2025", 3,
	)
	require.NoError(t, err)

	_, err = db.Exec(
		`INSERT INTO soa_entries (id, project_id, control_id, applicable) VALUES (?, ?, ?, ?)`,
		"soa-001", "project-001", "A.5.1", true,
	)
	require.NoError(t, err)

	_, err = db.Exec(
		`INSERT INTO soa_entries (id, project_id, control_id, applicable) VALUES (?, ?, ?, ?)`,
		"soa-002", "project-001", "A.5.1", false,
	)
	assert.Error(t, err, "one entry per (project, control)")

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM projects WHERE id = ?", "project-001").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
