package vault

import (
	"context"
	"strings"

	"github.com/passkeep/passkeep/internal/logging"
)

// Backend is the durable-storage collaborator the store depends on. It owns
// the durable copy of the collection and stores it as a unit. Implementations
// live in internal/storage; any of them is substitutable without changing
// store behavior.
type Backend interface {
	// Load returns the full persisted collection, or an empty slice when
	// nothing is stored.
	Load(ctx context.Context) ([]Plain, error)

	// SaveAll replaces the entire durable copy.
	SaveAll(ctx context.Context, records []Plain) error

	// Clear erases the durable copy.
	Clear(ctx context.Context) error
}

// Store owns the authoritative in-memory collection of credential records.
//
// It loads the collection from its backend exactly once, at construction;
// afterwards every read is served from memory and every mutation re-flushes
// the whole collection. Persistence is best-effort: a failed flush is logged
// and remembered but never fails the mutation; in-memory state stays
// authoritative for the rest of the process lifetime.
//
// The store is written for the single-writer model: callers must not invoke
// mutations concurrently.
type Store struct {
	backend  Backend
	logger   logging.Logger
	records  []Record
	flushErr error
}

// NewStore builds a Store over backend and performs the single initial load.
// A load failure is logged and the store starts empty.
func NewStore(ctx context.Context, backend Backend, logger logging.Logger) *Store {
	s := &Store{backend: backend, logger: logger.With("component", "vault.store")}

	plains, err := backend.Load(ctx)
	if err != nil {
		s.logger.Error(ctx, "initial load failed, starting empty", "error", err.Error())
		return s
	}

	s.records = make([]Record, 0, len(plains))
	for _, p := range plains {
		s.records = append(s.records, FromPlain(p))
	}
	return s
}

// GetAll returns a protective copy of the collection in insertion order.
func (s *Store) GetAll(ctx context.Context) []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// GetByID returns the record with the given id, or common.ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id string) (Record, error) {
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return Record{}, errNotFound(id)
}

// Add constructs a record from the draft, appends it and flushes. The new
// record is returned regardless of flush outcome.
func (s *Store) Add(ctx context.Context, d Draft) Record {
	r := NewRecord(d)
	s.records = append(s.records, r)
	s.flush(ctx)
	return r
}

// Update applies the patch to the record with the given id and flushes.
// Returns common.ErrNotFound without touching storage when the id is absent.
func (s *Store) Update(ctx context.Context, id string, p Patch) (Record, error) {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Apply(p)
			s.flush(ctx)
			return s.records[i], nil
		}
	}
	return Record{}, errNotFound(id)
}

// Delete removes the record with the given id. It reports whether anything
// was removed; no flush happens on a miss. Ids are unique by construction,
// but if duplicates ever exist all of them go.
func (s *Store) Delete(ctx context.Context, id string) bool {
	kept := s.records[:0]
	removed := false
	for _, r := range s.records {
		if r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return false
	}
	s.records = kept
	s.flush(ctx)
	return true
}

// Search returns every record whose website or username contains term as a
// case-insensitive substring. An empty or whitespace-only term returns the
// full collection, same as GetAll.
func (s *Store) Search(ctx context.Context, term string) []Record {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.GetAll(ctx)
	}

	needle := strings.ToLower(term)
	out := make([]Record, 0)
	for _, r := range s.records {
		if strings.Contains(strings.ToLower(r.Website), needle) ||
			strings.Contains(strings.ToLower(r.Username), needle) {
			out = append(out, r)
		}
	}
	return out
}

// ClearAll empties the in-memory collection and erases the durable copy.
// Irreversible.
func (s *Store) ClearAll(ctx context.Context) {
	s.records = nil
	if err := s.backend.Clear(ctx); err != nil {
		s.logger.Error(ctx, "clear failed", "error", err.Error())
		s.flushErr = err
		return
	}
	s.flushErr = nil
}

// FlushErr reports the error from the most recent flush, or nil if it
// succeeded. It lets callers surface a durability warning without any
// mutation having failed.
func (s *Store) FlushErr() error {
	return s.flushErr
}

// flush writes the entire collection to the backend. Errors are logged and
// remembered, not returned: durability is best-effort per write.
func (s *Store) flush(ctx context.Context) {
	plains := make([]Plain, 0, len(s.records))
	for _, r := range s.records {
		plains = append(plains, r.Snapshot())
	}

	if err := s.backend.SaveAll(ctx, plains); err != nil {
		s.logger.Error(ctx, "flush failed, in-memory state remains authoritative",
			"error", err.Error(), "records", len(plains))
		s.flushErr = err
		return
	}
	s.flushErr = nil
}
