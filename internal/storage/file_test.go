package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/passkeep/passkeep/internal/vault"
)

func testRecords() []vault.Plain {
	a := vault.NewRecord(vault.Draft{Website: "github.com", Username: "alice", Password: "pw1"})
	b := vault.NewRecord(vault.Draft{Website: "example.org", Username: "bob", Password: "pw2", Notes: "note"})
	return []vault.Plain{a.Snapshot(), b.Snapshot()}
}

func TestFileBackend_LoadMissingFileReturnsEmpty(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "vault.json"))

	records, err := b.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
	require.NotNil(t, records)
}

func TestFileBackend_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := NewFileBackend(filepath.Join(t.TempDir(), "vault.json"))

	want := testRecords()
	require.NoError(t, b.SaveAll(ctx, want))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestFileBackend_SaveAllReplacesWholeCopy(t *testing.T) {
	ctx := context.Background()
	b := NewFileBackend(filepath.Join(t.TempDir(), "vault.json"))

	require.NoError(t, b.SaveAll(ctx, testRecords()))
	require.NoError(t, b.SaveAll(ctx, nil))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFileBackend_CreatesParentDir(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "vault.json")
	b := NewFileBackend(path)

	require.NoError(t, b.SaveAll(ctx, testRecords()))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestFileBackend_Clear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vault.json")
	b := NewFileBackend(path)

	require.NoError(t, b.SaveAll(ctx, testRecords()))
	require.NoError(t, b.Clear(ctx))

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))

	// Clearing an already-absent file is fine.
	require.NoError(t, b.Clear(ctx))
}

func TestFileBackend_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileBackend(path).Load(context.Background())
	require.Error(t, err)
}
