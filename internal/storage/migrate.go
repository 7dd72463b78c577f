package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const versionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
)`

type migration struct {
	version int
	file    string
}

// MigrateUp applies every embedded migration not yet recorded, oldest first.
func MigrateUp(db *sql.DB) error {
	pending, applied, err := loadMigrations(db, ".up.sql")
	if err != nil {
		return err
	}
	for _, m := range pending {
		if applied[m.version] {
			continue
		}
		if err := runMigration(db, m, "INSERT INTO schema_migrations(version) VALUES (?)"); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown reverts every recorded migration, newest first.
func MigrateDown(db *sql.DB) error {
	pending, applied, err := loadMigrations(db, ".down.sql")
	if err != nil {
		return err
	}
	for i := len(pending) - 1; i >= 0; i-- {
		m := pending[i]
		if !applied[m.version] {
			continue
		}
		if err := runMigration(db, m, "DELETE FROM schema_migrations WHERE version = ?"); err != nil {
			return err
		}
	}
	return nil
}

func loadMigrations(db *sql.DB, suffix string) ([]migration, map[int]bool, error) {
	if _, err := db.Exec(versionTable); err != nil {
		return nil, nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	entries, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return nil, nil, fmt.Errorf("glob migrations: %w", err)
	}
	out := make([]migration, 0, len(entries))
	for _, name := range entries {
		prefix, _, _ := strings.Cut(path.Base(name), "_")
		v, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, nil, fmt.Errorf("migration %s: version prefix: %w", name, err)
		}
		out = append(out, migration{version: v, file: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })

	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()
	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, nil, err
		}
		applied[v] = true
	}
	return out, applied, rows.Err()
}

func runMigration(db *sql.DB, m migration, record string) error {
	sqlBytes, err := migrationFiles.ReadFile(m.file)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", m.file, err)
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(string(sqlBytes)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply migration %s: %w", m.file, err)
	}
	if _, err := tx.Exec(record, m.version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %s: %w", m.file, err)
	}
	return tx.Commit()
}
