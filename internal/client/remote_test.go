package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passkeep/passkeep/internal/common"
	"github.com/passkeep/passkeep/internal/logging"
	"github.com/passkeep/passkeep/internal/server/auth"
	"github.com/passkeep/passkeep/internal/server/config"
	"github.com/passkeep/passkeep/internal/server/httpapi"
	"github.com/passkeep/passkeep/internal/storage"
	"github.com/passkeep/passkeep/internal/vault"
)

const testMasterPassword = "master-password"

// startServer runs a real API server over a memory backend so the remote
// store is exercised end to end.
func startServer(t *testing.T) *httptest.Server {
	t.Helper()

	hash, err := auth.HashPassword(testMasterPassword)
	require.NoError(t, err)

	cfg := &config.Config{
		SecretKey:           "test-secret",
		AccessTokenValidity: time.Minute,
		MasterPasswordHash:  hash,
	}

	logger := logging.NewJSON(io.Discard)
	store := vault.NewStore(context.Background(), storage.NewMemoryBackend(), logger)
	ts := httptest.NewServer(httpapi.NewServer(cfg, logger, store).Router())
	t.Cleanup(ts.Close)
	return ts
}

func loggedInRemote(t *testing.T) *Remote {
	t.Helper()
	ts := startServer(t)
	r := NewRemote(ts.URL)
	require.NoError(t, r.Login(context.Background(), testMasterPassword))
	return r
}

func TestRemote_LoginWrongPassword(t *testing.T) {
	ts := startServer(t)
	r := NewRemote(ts.URL)

	err := r.Login(context.Background(), "wrong")
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestRemote_OperationsRequireLogin(t *testing.T) {
	ts := startServer(t)
	r := NewRemote(ts.URL)

	_, err := r.List(context.Background())
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestRemote_CRUDFlow(t *testing.T) {
	ctx := context.Background()
	r := loggedInRemote(t)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	created, err := r.Add(ctx, vault.Draft{Website: "GitHub", Username: "alice", Password: "pw"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := r.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, fetched)

	username := "alice2"
	updated, err := r.Update(ctx, created.ID, vault.Patch{Username: &username})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, "GitHub", updated.Website)

	removed, err := r.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, removed)

	_, err = r.Get(ctx, created.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestRemote_DeleteMissReportsFalse(t *testing.T) {
	r := loggedInRemote(t)

	removed, err := r.Delete(context.Background(), "missing")
	require.NoError(t, err)
	require.False(t, removed)
}

func TestRemote_Search(t *testing.T) {
	ctx := context.Background()
	r := loggedInRemote(t)

	_, err := r.Add(ctx, vault.Draft{Website: "GitHub", Username: "alice", Password: "pw"})
	require.NoError(t, err)
	_, err = r.Add(ctx, vault.Draft{Website: "example.org", Username: "bob", Password: "pw"})
	require.NoError(t, err)

	matches, err := r.Search(ctx, "hub")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "GitHub", matches[0].Website)

	// Empty term lists everything, like the local store.
	all, err := r.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestRemote_ClearAll(t *testing.T) {
	ctx := context.Background()
	r := loggedInRemote(t)

	_, err := r.Add(ctx, vault.Draft{Website: "w", Username: "u", Password: "p"})
	require.NoError(t, err)

	require.NoError(t, r.ClearAll(ctx))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestRemote_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)

	r := NewRemote(ts.URL)
	_, err := r.List(context.Background())
	require.ErrorIs(t, err, common.ErrTransport)

	// Unreachable server surfaces as a transport failure too.
	dead := NewRemote("http://127.0.0.1:1")
	_, err = dead.List(context.Background())
	require.ErrorIs(t, err, common.ErrTransport)
}
