package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/passkeep/passkeep/internal/storage/migrations"
	"github.com/passkeep/passkeep/internal/vault"
)

// PostgresBackend stores the collection under the same one-row-per-namespace
// contract as SQLiteBackend, for deployments where the authoritative copy
// lives behind a server.
type PostgresBackend struct {
	db        *sql.DB
	namespace string
}

// NewPostgresBackend connects to dsn via the pgx stdlib driver and runs
// migrations.
func NewPostgresBackend(ctx context.Context, dsn, namespace string) (*PostgresBackend, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "postgres"); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &PostgresBackend{db: db, namespace: namespace}, nil
}

func (b *PostgresBackend) Load(ctx context.Context) ([]vault.Plain, error) {
	var data []byte
	query := `SELECT data FROM vaults WHERE namespace = $1`
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

func (b *PostgresBackend) SaveAll(ctx context.Context, records []vault.Plain) error {
	if records == nil {
		records = []vault.Plain{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding vault: %w", err)
	}

	query := `INSERT INTO vaults (namespace, data) VALUES ($1, $2)
		ON CONFLICT (namespace) DO UPDATE SET data = EXCLUDED.data`
	if _, err := b.db.ExecContext(ctx, query, b.namespace, data); err != nil {
		return fmt.Errorf("upserting vault row: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Clear(ctx context.Context) error {
	query := `DELETE FROM vaults WHERE namespace = $1`
	if _, err := b.db.ExecContext(ctx, query, b.namespace); err != nil {
		return fmt.Errorf("deleting vault row: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (b *PostgresBackend) Close() error {
	return b.db.Close()
}
