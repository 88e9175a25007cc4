package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/passkeep/passkeep/internal/storage/migrations"
	"github.com/passkeep/passkeep/internal/vault"
)

// SQLiteBackend keeps the collection as one JSON blob in a single row of the
// vaults table, keyed by namespace. The schema is managed by embedded goose
// migrations.
type SQLiteBackend struct {
	db        *sql.DB
	namespace string
}

// NewSQLiteBackend opens (or creates) the database at dsn and runs migrations.
func NewSQLiteBackend(ctx context.Context, dsn, namespace string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "sqlite"); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &SQLiteBackend{db: db, namespace: namespace}, nil
}

func (b *SQLiteBackend) Load(ctx context.Context) ([]vault.Plain, error) {
	var data []byte
	query := `SELECT data FROM vaults WHERE namespace = ?`
	err := b.db.QueryRowContext(ctx, query, b.namespace).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return []vault.Plain{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("selecting vault row: %w", err)
	}

	var records []vault.Plain
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing vault data: %w", err)
	}
	if records == nil {
		records = []vault.Plain{}
	}
	return records, nil
}

func (b *SQLiteBackend) SaveAll(ctx context.Context, records []vault.Plain) error {
	if records == nil {
		records = []vault.Plain{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding vault: %w", err)
	}

	query := `INSERT INTO vaults (namespace, data) VALUES (?, ?)
		ON CONFLICT(namespace) DO UPDATE SET data = excluded.data`
	if _, err := b.db.ExecContext(ctx, query, b.namespace, data); err != nil {
		return fmt.Errorf("upserting vault row: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Clear(ctx context.Context) error {
	query := `DELETE FROM vaults WHERE namespace = ?`
	if _, err := b.db.ExecContext(ctx, query, b.namespace); err != nil {
		return fmt.Errorf("deleting vault row: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
