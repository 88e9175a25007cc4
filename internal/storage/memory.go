package storage

import (
	"context"

	"github.com/passkeep/passkeep/internal/vault"
)

// MemoryBackend keeps the durable copy in process memory. Useful for tests
// and for an explicitly ephemeral vault.
type MemoryBackend struct {
	records []vault.Plain
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Load(ctx context.Context) ([]vault.Plain, error) {
	out := make([]vault.Plain, len(b.records))
	copy(out, b.records)
	return out, nil
}

func (b *MemoryBackend) SaveAll(ctx context.Context, records []vault.Plain) error {
	b.records = make([]vault.Plain, len(records))
	copy(b.records, records)
	return nil
}

func (b *MemoryBackend) Clear(ctx context.Context) error {
	b.records = nil
	return nil
}
