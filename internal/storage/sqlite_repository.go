package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Open creates the parent directory if needed, opens the database and
// applies the up migrations.
func Open(path string) (*SQLiteRepository, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("storage: empty database path")
	}
	if dir := filepath.Dir(trimmed); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	repo, err := OpenSQLite(trimmed)
	if err != nil {
		return nil, err
	}
	if err := MigrateUp(repo.db); err != nil {
		_ = repo.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) PutCredential(ctx context.Context, in Credential) error {
	if strings.TrimSpace(in.Key) == "" {
		return errors.New("storage: credential key is required")
	}
	updated := in.UpdatedAt
	if updated.IsZero() {
		updated = r.now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		in.Key, in.Value, mustTime(updated),
	)
	return err
}

// Credential returns the stored value for key, or ErrNotFound.
func (r *SQLiteRepository) Credential(ctx context.Context, key string) (string, error) {
	c, err := r.GetCredential(ctx, key)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

func (r *SQLiteRepository) GetCredential(ctx context.Context, key string) (Credential, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM credentials WHERE key = ?`, key)
	c, err := scanCredential(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Credential{}, ErrNotFound
		}
		return Credential{}, err
	}
	return c, nil
}

func (r *SQLiteRepository) DeleteCredential(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCredential(s scanner) (Credential, error) {
	var out Credential
	var updated string
	if err := s.Scan(&out.Key, &out.Value, &updated); err != nil {
		return Credential{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return Credential{}, err
	}
	out.UpdatedAt = updatedAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repository = (*SQLiteRepository)(nil)
