// Package httpapi exposes the credential store over HTTP. Every store
// operation maps one-to-one onto a request: list is GET, add is POST,
// update is PUT, delete is DELETE, search is a query parameter. The store's
// semantics do not change because a network sits in front of it.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/passkeep/passkeep/internal/logging"
	"github.com/passkeep/passkeep/internal/server/config"
	"github.com/passkeep/passkeep/internal/vault"
)

// Vault is the slice of the credential store the API serves. *vault.Store
// satisfies it.
type Vault interface {
	GetAll(ctx context.Context) []vault.Record
	GetByID(ctx context.Context, id string) (vault.Record, error)
	Add(ctx context.Context, d vault.Draft) vault.Record
	Update(ctx context.Context, id string, p vault.Patch) (vault.Record, error)
	Delete(ctx context.Context, id string) bool
	Search(ctx context.Context, term string) []vault.Record
	ClearAll(ctx context.Context)
}

// Server wires the router, the store and the auth settings.
type Server struct {
	config *config.Config
	logger logging.Logger
	store  Vault
	http   *http.Server
}

func NewServer(cfg *config.Config, logger logging.Logger, store Vault) *Server {
	s := &Server{
		config: cfg,
		logger: logger.With("component", "httpapi"),
		store:  store,
	}
	s.http = &http.Server{
		Addr:              cfg.EndpointAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Router builds the chi router. Exported so handler tests can exercise the
// full middleware chain without binding a socket.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireToken)

			r.Get("/records", s.handleList)
			r.Post("/records", s.handleAdd)
			r.Delete("/records", s.handleClearAll)
			r.Get("/records/{id}", s.handleGet)
			r.Put("/records/{id}", s.handleUpdate)
			r.Delete("/records/{id}", s.handleDelete)

			r.Post("/passwords/generate", s.handleGenerate)
			r.Post("/passwords/score", s.handleScore)
		})
	})

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.config.EndpointAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
