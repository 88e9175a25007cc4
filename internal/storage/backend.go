// Package storage provides the durable backends a vault.Store can flush to.
// Every backend stores the full record collection as a single JSON array
// under one namespaced key (a file, a table row, or an object), so a partial
// write can never leave a half-updated collection behind.
package storage

import (
	"context"
	"fmt"

	"github.com/passkeep/passkeep/internal/vault"
)

// Kind names a concrete backend implementation.
type Kind string

const (
	KindMemory   Kind = "memory"
	KindFile     Kind = "file"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindS3       Kind = "s3"
)

// DefaultNamespace is the key the collection is stored under when the
// configuration does not name one.
const DefaultNamespace = "passkeep.vault"

// Config selects and parameterizes a backend. Exactly one backend is chosen
// per deployment at startup; callers never dispatch on Kind afterwards.
type Config struct {
	Kind      Kind
	Namespace string

	// File backend.
	Path string

	// SQLite / Postgres backends.
	DSN string

	// S3 backend.
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Open builds the backend described by cfg.
func Open(ctx context.Context, cfg Config) (vault.Backend, error) {
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}

	switch cfg.Kind {
	case KindMemory:
		return NewMemoryBackend(), nil
	case KindFile:
		return NewFileBackend(cfg.Path), nil
	case KindSQLite:
		return NewSQLiteBackend(ctx, cfg.DSN, cfg.Namespace)
	case KindPostgres:
		return NewPostgresBackend(ctx, cfg.DSN, cfg.Namespace)
	case KindS3:
		return NewS3Backend(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Kind)
	}
}
