// Package vault implements the credential store: the record type, the
// authoritative in-memory collection and its persistence-flush discipline.
package vault

import (
	"time"

	"github.com/google/uuid"
)

// timeNow is a test seam for the clock. Always returns UTC so timestamps
// round-trip through JSON without a monotonic component.
var timeNow = func() time.Time { return time.Now().UTC() }

// Record is a single credential entry. ID and CreatedAt are assigned once at
// construction and never change; UpdatedAt advances on every edit.
type Record struct {
	ID        string
	Website   string
	Username  string
	Password  string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Plain is the wire/durable representation of a Record. Timestamps serialize
// as RFC 3339 strings.
type Plain struct {
	ID        string    `json:"id"`
	Website   string    `json:"website"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Draft carries the caller-supplied content fields for a new record.
// Identity and timestamps are assigned by the store, never by the caller.
type Draft struct {
	Website  string `json:"website"`
	Username string `json:"username"`
	Password string `json:"password"`
	Notes    string `json:"notes,omitempty"`
}

// Patch is a partial update. A nil field leaves the current value alone; a
// non-nil field overwrites it, even with an empty string.
type Patch struct {
	Website  *string `json:"website,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// NewRecord constructs a Record from a draft, assigning a fresh id and
// setting both timestamps to now. No validation happens here; callers own
// input checking.
func NewRecord(d Draft) Record {
	now := timeNow()
	return Record{
		ID:        uuid.NewString(),
		Website:   d.Website,
		Username:  d.Username,
		Password:  d.Password,
		Notes:     d.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply overwrites the fields present in p and refreshes UpdatedAt. An empty
// patch still refreshes the timestamp: an attempted edit counts as an edit.
// UpdatedAt never moves backwards.
func (r *Record) Apply(p Patch) {
	if p.Website != nil {
		r.Website = *p.Website
	}
	if p.Username != nil {
		r.Username = *p.Username
	}
	if p.Password != nil {
		r.Password = *p.Password
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	if now := timeNow(); now.After(r.UpdatedAt) {
		r.UpdatedAt = now
	}
}

// Snapshot returns the plain representation of r.
func (r Record) Snapshot() Plain {
	return Plain{
		ID:        r.ID,
		Website:   r.Website,
		Username:  r.Username,
		Password:  r.Password,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// FromPlain reconstructs a Record from persisted data, preserving the
// original id and both timestamps verbatim.
func FromPlain(p Plain) Record {
	return Record{
		ID:        p.ID,
		Website:   p.Website,
		Username:  p.Username,
		Password:  p.Password,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
