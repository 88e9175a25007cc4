// Package cli implements the interactive passkeep shell. It drives either
// the local credential store or a remote server through one Keeper
// interface, so commands do not care where the vault lives.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/passkeep/passkeep/internal/client"
	"github.com/passkeep/passkeep/internal/client/config"
	"github.com/passkeep/passkeep/internal/logging"
	"github.com/passkeep/passkeep/internal/storage"
	"github.com/passkeep/passkeep/internal/vault"
)

// Keeper is the command surface the shell needs from a vault, local or
// remote. Remote operations may fail with transport errors; local ones only
// with not-found.
type Keeper interface {
	List(ctx context.Context) ([]vault.Plain, error)
	Search(ctx context.Context, term string) ([]vault.Plain, error)
	Get(ctx context.Context, id string) (vault.Plain, error)
	Add(ctx context.Context, d vault.Draft) (vault.Plain, error)
	Update(ctx context.Context, id string, p vault.Patch) (vault.Plain, error)
	Delete(ctx context.Context, id string) (bool, error)
	ClearAll(ctx context.Context) error
}

// Mode tells the prompt whether the vault is local or behind a server.
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

type App struct {
	config   *config.Config
	keeper   Keeper
	remote   *client.Remote
	Mode     Mode
	loggedIn bool
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp wires the shell according to the config: remote mode when a server
// address is set, otherwise a store over the configured local backend.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	if cfg.ServerAddr != "" {
		a.Mode = ModeRemote
		a.remote = client.NewRemote(cfg.ServerAddr)
		a.keeper = a.remote
		return a, nil
	}

	backend, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("error initializing storage: %w", err)
	}

	logger := logging.NewJSON(io.Discard)
	a.Mode = ModeLocal
	a.loggedIn = true // local vault needs no session
	a.keeper = &localKeeper{store: vault.NewStore(ctx, backend, logger)}
	return a, nil
}

// localKeeper adapts *vault.Store to the Keeper interface. The store's
// mutations are success-shaped; only lookups can fail.
type localKeeper struct {
	store *vault.Store
}

func (l *localKeeper) List(ctx context.Context) ([]vault.Plain, error) {
	return snapshots(l.store.GetAll(ctx)), nil
}

func (l *localKeeper) Search(ctx context.Context, term string) ([]vault.Plain, error) {
	return snapshots(l.store.Search(ctx, term)), nil
}

func (l *localKeeper) Get(ctx context.Context, id string) (vault.Plain, error) {
	r, err := l.store.GetByID(ctx, id)
	if err != nil {
		return vault.Plain{}, err
	}
	return r.Snapshot(), nil
}

func (l *localKeeper) Add(ctx context.Context, d vault.Draft) (vault.Plain, error) {
	return l.store.Add(ctx, d).Snapshot(), nil
}

func (l *localKeeper) Update(ctx context.Context, id string, p vault.Patch) (vault.Plain, error) {
	r, err := l.store.Update(ctx, id, p)
	if err != nil {
		return vault.Plain{}, err
	}
	return r.Snapshot(), nil
}

func (l *localKeeper) Delete(ctx context.Context, id string) (bool, error) {
	return l.store.Delete(ctx, id), nil
}

func (l *localKeeper) ClearAll(ctx context.Context) error {
	l.store.ClearAll(ctx)
	return nil
}

func snapshots(records []vault.Record) []vault.Plain {
	out := make([]vault.Plain, 0, len(records))
	for _, r := range records {
		out = append(out, r.Snapshot())
	}
	return out
}
