package db

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/pressly/goose/v3"
)

// dialectMap maps database drivers to Goose dialect names
var dialectMap = map[string]string{
	"sqlite": "sqlite3",
	"pgx":    "postgres",
}

// addedColumns are columns introduced after the first cameras schema shipped.
// Databases created by older builds (or seeded from an old file) may lack them.
var addedColumns = []struct {
	name       string
	definition string
}{
	{name: "photo", definition: "TEXT DEFAULT NULL"},
	{name: "description", definition: "TEXT DEFAULT ''"},
}

// getDialect returns the Goose dialect for the given driver
func getDialect(driver string) string {
	dialect, ok := dialectMap[driver]
	if ok {
		return dialect
	}
	return driver // fallback to driver name
}

// setupGoose configures Goose with the correct dialect and migration directory
func setupGoose(driver string) error {
	dialect := getDialect(driver)

	err := goose.SetDialect(dialect)
	if err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	dir := "migrations/sqlite"
	if dialect == "postgres" {
		dir = "migrations/postgres"
	}

	migrationsDir, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("failed to get migrations directory: %w", err)
	}

	goose.SetBaseFS(migrationsDir)
	return nil
}

// RunMigrations applies pending goose migrations, then makes sure columns
// added after the initial schema exist.
func RunMigrations(db *sql.DB, driver string) error {
	err := setupGoose(driver)
	if err != nil {
		return err
	}

	err = goose.Up(db, ".")
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	err = EnsureColumns(db)
	if err != nil {
		return err
	}

	slog.Info("migrations completed successfully")
	return nil
}

// EnsureColumns adds each late column to cameras. A column that already
// exists is logged and skipped.
func EnsureColumns(db *sql.DB) error {
	for _, col := range addedColumns {
		_, err := db.Exec(fmt.Sprintf("ALTER TABLE cameras ADD COLUMN %s %s", col.name, col.definition))
		if err == nil {
			slog.Info("column added", "table", "cameras", "column", col.name)
			continue
		}
		if isDuplicateColumn(err) {
			slog.Info("column already exists", "table", "cameras", "column", col.name)
			continue
		}
		return fmt.Errorf("failed to add column %s: %w", col.name, err)
	}
	return nil
}

// isDuplicateColumn matches sqlite ("duplicate column name") and postgres
// ("column ... already exists") errors.
func isDuplicateColumn(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate column") || strings.Contains(msg, "already exists")
}

func MigrateDown(db *sql.DB, driver string) error {
	err := setupGoose(driver)
	if err != nil {
		return err
	}

	err = goose.Down(db, ".")
	if err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	slog.Info("rolled back one migration")
	return nil
}

func MigrationStatus(db *sql.DB, driver string) error {
	err := setupGoose(driver)
	if err != nil {
		return err
	}

	err = goose.Status(db, ".")
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	return nil
}
