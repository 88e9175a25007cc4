package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/passkeep/passkeep/internal/vault"
)

// FileBackend stores the collection as a JSON array in a single file.
// Saves go through a temp file plus rename so a crash mid-write leaves the
// previous copy intact.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Load(ctx context.Context) ([]vault.Plain, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []vault.Plain{}, nil
		}
		return nil, fmt.Errorf("reading vault file: %w", err)
	}

	var records []vault.Plain
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing vault file: %w", err)
	}
	if records == nil {
		records = []vault.Plain{}
	}
	return records, nil
}

func (b *FileBackend) SaveAll(ctx context.Context, records []vault.Plain) error {
	if records == nil {
		records = []vault.Plain{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding vault: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating vault dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".vault-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing vault file: %w", err)
	}
	return nil
}

func (b *FileBackend) Clear(ctx context.Context) error {
	if err := os.Remove(b.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing vault file: %w", err)
	}
	return nil
}
