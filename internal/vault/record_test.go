package vault

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewRecord_AssignsIdAndTimestamps(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	orig := timeNow
	timeNow = fixedClock(now)
	defer func() { timeNow = orig }()

	r := NewRecord(Draft{Website: "github.com", Username: "alice", Password: "s3cret", Notes: "work"})

	require.NotEmpty(t, r.ID)
	require.Equal(t, "github.com", r.Website)
	require.Equal(t, "alice", r.Username)
	require.Equal(t, "s3cret", r.Password)
	require.Equal(t, "work", r.Notes)
	require.Equal(t, now, r.CreatedAt)
	require.Equal(t, now, r.UpdatedAt)

	other := NewRecord(Draft{Website: "github.com", Username: "alice", Password: "s3cret"})
	require.NotEqual(t, r.ID, other.ID)
}

func TestApply_EmptyPatchStillBumpsUpdatedAt(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Minute)
	orig := timeNow
	defer func() { timeNow = orig }()

	timeNow = fixedClock(t0)
	r := NewRecord(Draft{Website: "w", Username: "u", Password: "p"})

	timeNow = fixedClock(t1)
	r.Apply(Patch{})

	require.Equal(t, "w", r.Website)
	require.Equal(t, "u", r.Username)
	require.Equal(t, "p", r.Password)
	require.Equal(t, t0, r.CreatedAt)
	require.Equal(t, t1, r.UpdatedAt)
}

func TestApply_PartialLeavesOtherFieldsAlone(t *testing.T) {
	r := NewRecord(Draft{Website: "old.example", Username: "u", Password: "p", Notes: "n"})

	website := "new.example"
	r.Apply(Patch{Website: &website})

	require.Equal(t, "new.example", r.Website)
	require.Equal(t, "u", r.Username)
	require.Equal(t, "p", r.Password)
	require.Equal(t, "n", r.Notes)
}

func TestApply_PresentEmptyStringOverwrites(t *testing.T) {
	r := NewRecord(Draft{Website: "w", Username: "u", Password: "p", Notes: "n"})

	empty := ""
	r.Apply(Patch{Notes: &empty})

	require.Equal(t, "", r.Notes)
	require.Equal(t, "w", r.Website)
}

func TestApply_UpdatedAtNeverDecreases(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	orig := timeNow
	defer func() { timeNow = orig }()

	timeNow = fixedClock(t0)
	r := NewRecord(Draft{Website: "w", Username: "u", Password: "p"})

	// Clock stepping backwards must not move UpdatedAt back.
	timeNow = fixedClock(t0.Add(-time.Hour))
	r.Apply(Patch{})

	require.Equal(t, t0, r.UpdatedAt)
	require.False(t, r.UpdatedAt.Before(r.CreatedAt))
}

func TestSnapshotFromPlain_RoundTrip(t *testing.T) {
	r := NewRecord(Draft{Website: "GitHub", Username: "alice", Password: "pw", Notes: "note"})

	got := FromPlain(r.Snapshot())
	require.Equal(t, r, got)
}

func TestPlain_JSONRoundTripPreservesTimestamps(t *testing.T) {
	r := NewRecord(Draft{Website: "w", Username: "u", Password: "p"})
	p := r.Snapshot()

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded Plain
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, p, decoded)
	require.Equal(t, r, FromPlain(decoded))
}

func TestPatch_JSONDistinguishesAbsentFromEmpty(t *testing.T) {
	var p Patch
	require.NoError(t, json.Unmarshal([]byte(`{"notes":""}`), &p))
	require.Nil(t, p.Website)
	require.NotNil(t, p.Notes)
	require.Equal(t, "", *p.Notes)
}
