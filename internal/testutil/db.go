package testutil

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/padelyzer/bracket-engine/internal/config"
	"github.com/padelyzer/bracket-engine/internal/db"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.InitDB(config.DatabaseConfig{
		Filename:      filepath.Join(t.TempDir(), "test.db"),
		BusyTimeoutMS: 5000,
	})
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}
