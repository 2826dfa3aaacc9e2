// Package sqlstore implementa los repositorios sobre database/sql con sqlx.
// El mismo código sirve a SQLite y a Postgres: los placeholders se
// reescriben según el driver con Rebind.
package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// Migrate aplica las migraciones pendientes del dialecto de db.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	dialect, err := dialectOf(db)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS _migrations (
			name TEXT PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	var applied []string
	if err := db.SelectContext(ctx, &applied, `SELECT name FROM _migrations`); err != nil {
		return fmt.Errorf("getting applied migrations: %w", err)
	}
	done := make(map[string]bool, len(applied))
	for _, name := range applied {
		done[name] = true
	}

	dir := path.Join("migrations", dialect)
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("reading migration files: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") || done[e.Name()] {
			continue
		}
		content, err := migrationsFS.ReadFile(path.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		if err := applyMigration(ctx, db, e.Name(), string(content)); err != nil {
			return fmt.Errorf("applying migration %s: %w", e.Name(), err)
		}
	}
	return nil
}

func applyMigration(ctx context.Context, db *sqlx.DB, name, content string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Una sentencia por Exec: pgx con argumentos no acepta varias.
	for _, stmt := range strings.Split(content, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing SQL: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO _migrations (name) VALUES (?)`), name); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}
	return tx.Commit()
}

func dialectOf(db *sqlx.DB) (string, error) {
	switch db.DriverName() {
	case "sqlite3":
		return "sqlite", nil
	case "pgx", "postgres":
		return "postgres", nil
	}
	return "", fmt.Errorf("unsupported driver %q", db.DriverName())
}
