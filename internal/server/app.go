// Package server initializes and runs the passkeep server: it opens the
// configured persistence backend, builds the credential store over it and
// serves the HTTP API until a termination signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/passkeep/passkeep/internal/logging"
	"github.com/passkeep/passkeep/internal/server/config"
	"github.com/passkeep/passkeep/internal/server/httpapi"
	"github.com/passkeep/passkeep/internal/storage"
	"github.com/passkeep/passkeep/internal/vault"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout)

	backend, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	store := vault.NewStore(ctx, backend, logger)
	srv := httpapi.NewServer(cfg, logger, store)

	return &App{config: cfg, logger: logger, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app",
		"addr", app.config.EndpointAddr, "backend", string(app.config.Storage.Kind))

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	app.logger.Info(ctx, "app stopped")
}
