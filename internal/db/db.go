package db

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/padelyzer/bracket-engine/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// InitDB opens the sqlite database described by cfg and applies the embedded migrations.
func InitDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if dir := filepath.Dir(cfg.Filename); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	database, err := sqlx.Connect("sqlite3", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := RunMigrations(database.DB); err != nil {
		database.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	log.Info("Database connected", "path", cfg.Filename)
	return database, nil
}

// DSN enables foreign keys, WAL and a busy timeout, and makes every transaction start with
// BEGIN IMMEDIATE so a writer holds the database lock from its first read.
func DSN(cfg config.DatabaseConfig) string {
	params := []string{"_fk=1", "_txlock=immediate", "_journal_mode=WAL"}
	if cfg.BusyTimeoutMS > 0 {
		params = append(params, fmt.Sprintf("_busy_timeout=%d", cfg.BusyTimeoutMS))
	}

	sep := "?"
	if strings.Contains(cfg.Filename, "?") {
		sep = "&"
	}
	return cfg.Filename + sep + strings.Join(params, "&")
}

// RunMigrations applies the embedded migrations. ErrNoChange is not an error.
func RunMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("could not create migrate driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not create source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}
