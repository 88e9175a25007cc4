package vault

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passkeep/passkeep/internal/common"
	"github.com/passkeep/passkeep/internal/logging"
)

// fakeBackend records calls and can be told to fail.
type fakeBackend struct {
	records   []Plain
	loadErr   error
	saveErr   error
	clearErr  error
	saveCalls int
	cleared   bool
}

func (b *fakeBackend) Load(ctx context.Context) ([]Plain, error) {
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	out := make([]Plain, len(b.records))
	copy(out, b.records)
	return out, nil
}

func (b *fakeBackend) SaveAll(ctx context.Context, records []Plain) error {
	b.saveCalls++
	if b.saveErr != nil {
		return b.saveErr
	}
	b.records = make([]Plain, len(records))
	copy(b.records, records)
	return nil
}

func (b *fakeBackend) Clear(ctx context.Context) error {
	if b.clearErr != nil {
		return b.clearErr
	}
	b.cleared = true
	b.records = nil
	return nil
}

func newTestStore(t *testing.T, backend Backend) *Store {
	t.Helper()
	return NewStore(context.Background(), backend, logging.NewJSON(io.Discard))
}

func TestNewStore_LoadsOnceFromBackend(t *testing.T) {
	ctx := context.Background()
	seed := NewRecord(Draft{Website: "github.com", Username: "alice", Password: "pw"})
	backend := &fakeBackend{records: []Plain{seed.Snapshot()}}

	s := newTestStore(t, backend)

	all := s.GetAll(ctx)
	require.Len(t, all, 1)
	require.Equal(t, seed, all[0])
}

func TestNewStore_LoadFailureStartsEmpty(t *testing.T) {
	backend := &fakeBackend{loadErr: errors.New("medium unavailable")}
	s := newTestStore(t, backend)
	require.Empty(t, s.GetAll(context.Background()))
}

func TestAdd_ThenGetByIDReturnsEqualRecord(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	s := newTestStore(t, backend)

	added := s.Add(ctx, Draft{Website: "github.com", Username: "alice", Password: "pw"})

	got, err := s.GetByID(ctx, added.ID)
	require.NoError(t, err)
	require.Equal(t, added, got)

	// Add flushes the whole collection.
	require.Equal(t, 1, backend.saveCalls)
	require.Len(t, backend.records, 1)
}

func TestGetByID_AbsentIdIsNotFound(t *testing.T) {
	s := newTestStore(t, &fakeBackend{})
	_, err := s.GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetAll_ReturnsProtectiveCopy(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, &fakeBackend{})
	s.Add(ctx, Draft{Website: "a.example", Username: "u", Password: "p"})

	out := s.GetAll(ctx)
	out[0].Website = "mutated"

	require.Equal(t, "a.example", s.GetAll(ctx)[0].Website)
}

func TestUpdate_AppliesPatchAndFlushes(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	s := newTestStore(t, backend)

	added := s.Add(ctx, Draft{Website: "a.example", Username: "u", Password: "p"})
	backend.saveCalls = 0

	username := "u2"
	updated, err := s.Update(ctx, added.ID, Patch{Username: &username})
	require.NoError(t, err)
	require.Equal(t, "u2", updated.Username)
	require.Equal(t, "a.example", updated.Website)
	require.Equal(t, 1, backend.saveCalls)

	got, err := s.GetByID(ctx, added.ID)
	require.NoError(t, err)
	require.Equal(t, updated, got)
}

func TestUpdate_AbsentIdDoesNotTouchStorage(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	s := newTestStore(t, backend)
	s.Add(ctx, Draft{Website: "w", Username: "u", Password: "p"})
	backend.saveCalls = 0

	username := "u2"
	_, err := s.Update(ctx, "missing", Patch{Username: &username})
	require.ErrorIs(t, err, common.ErrNotFound)
	require.Zero(t, backend.saveCalls)
}

func TestDelete_PresentAndAbsent(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	s := newTestStore(t, backend)

	a := s.Add(ctx, Draft{Website: "a.example", Username: "u", Password: "p"})
	b := s.Add(ctx, Draft{Website: "b.example", Username: "u", Password: "p"})
	backend.saveCalls = 0

	require.True(t, s.Delete(ctx, a.ID))
	require.Equal(t, 1, backend.saveCalls)

	_, err := s.GetByID(ctx, a.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	// A miss removes nothing and does not flush.
	before := s.GetAll(ctx)
	require.False(t, s.Delete(ctx, "missing"))
	require.Equal(t, 1, backend.saveCalls)
	require.Equal(t, before, s.GetAll(ctx))

	require.Equal(t, []Record{b}, s.GetAll(ctx))
}

func TestSearch_EmptyAndWhitespaceEqualGetAll(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, &fakeBackend{})
	s.Add(ctx, Draft{Website: "GitHub", Username: "alice", Password: "p"})
	s.Add(ctx, Draft{Website: "gitlab.com", Username: "bob", Password: "p"})

	all := s.GetAll(ctx)
	require.Equal(t, all, s.Search(ctx, ""))
	require.Equal(t, all, s.Search(ctx, "   "))
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, &fakeBackend{})
	rec := s.Add(ctx, Draft{Website: "GitHub", Username: "alice", Password: "p"})
	s.Add(ctx, Draft{Website: "example.org", Username: "bob", Password: "p"})

	for _, term := range []string{"git", "GIT", "Hub"} {
		result := s.Search(ctx, term)
		require.Len(t, result, 1, "term %q", term)
		assert.Equal(t, rec.ID, result[0].ID)
	}

	require.Empty(t, s.Search(ctx, "xyz"))

	// Username matches too.
	byUser := s.Search(ctx, "BOB")
	require.Len(t, byUser, 1)
	assert.Equal(t, "example.org", byUser[0].Website)
}

func TestClearAll_EmptiesMemoryAndBackend(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	s := newTestStore(t, backend)
	s.Add(ctx, Draft{Website: "w", Username: "u", Password: "p"})

	s.ClearAll(ctx)

	require.Empty(t, s.GetAll(ctx))
	require.True(t, backend.cleared)
}

func TestFlushFailure_InMemoryStateStaysAuthoritative(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{saveErr: errors.New("quota exceeded")}
	s := newTestStore(t, backend)

	added := s.Add(ctx, Draft{Website: "w", Username: "u", Password: "p"})

	// The mutation applied in memory even though the flush failed.
	got, err := s.GetByID(ctx, added.ID)
	require.NoError(t, err)
	require.Equal(t, added, got)
	require.Error(t, s.FlushErr())

	// A later successful flush resets the durability warning.
	backend.saveErr = nil
	s.Add(ctx, Draft{Website: "w2", Username: "u", Password: "p"})
	require.NoError(t, s.FlushErr())
	require.Len(t, backend.records, 2)
}
