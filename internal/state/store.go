// Package state persists snapshots of introspected tables in SQLite so that
// later introspections can be compared against them.
package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// ErrSnapshotNotFound is returned when no snapshot matches a lookup.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is a stored copy of a table and the DDL generated for it.
type Snapshot struct {
	ID          string      `json:"id"`
	Driver      string      `json:"driver"`
	Table       *core.Table `json:"table"`
	DDL         string      `json:"ddl"`
	Fingerprint string      `json:"fingerprint"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Fingerprint hashes generated DDL. Equal DDL yields equal fingerprints.
func Fingerprint(ddl string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(ddl))
}

// ChangeKind classifies a column difference.
type ChangeKind string

// Column change kinds.
const (
	ColumnAdded   ChangeKind = "added"
	ColumnRemoved ChangeKind = "removed"
	ColumnChanged ChangeKind = "changed"
)

// ColumnChange describes one column that differs between a snapshot and the
// current table.
type ColumnChange struct {
	Kind   ChangeKind   `json:"kind"`
	Name   string       `json:"name"`
	Before *core.Column `json:"before,omitempty"`
	After  *core.Column `json:"after,omitempty"`
}

// Drift compares a table against its latest snapshot.
type Drift struct {
	Snapshot    *Snapshot      `json:"snapshot"`
	Fingerprint string         `json:"fingerprint"`
	Changes     []ColumnChange `json:"changes"`
}

// Drifted reports whether the generated DDL differs from the snapshot.
func (d *Drift) Drifted() bool {
	return d.Snapshot.Fingerprint != d.Fingerprint
}

// DiffColumns compares columns by name. Removed and changed columns follow
// the order of before; added columns follow the order of after.
func DiffColumns(before, after []core.Column) []ColumnChange {
	current := make(map[string]core.Column, len(after))
	for _, c := range after {
		current[c.Name] = c
	}
	previous := make(map[string]bool, len(before))

	var changes []ColumnChange
	for _, b := range before {
		previous[b.Name] = true
		a, ok := current[b.Name]
		switch {
		case !ok:
			changes = append(changes, ColumnChange{Kind: ColumnRemoved, Name: b.Name, Before: &b})
		case !sameDefinition(b, a):
			changes = append(changes, ColumnChange{Kind: ColumnChanged, Name: b.Name, Before: &b, After: &a})
		}
	}
	for _, a := range after {
		if !previous[a.Name] {
			changes = append(changes, ColumnChange{Kind: ColumnAdded, Name: a.Name, After: &a})
		}
	}
	return changes
}

// sameDefinition ignores Position so reordering alone is not a change.
func sameDefinition(a, b core.Column) bool {
	a.Position, b.Position = 0, 0
	return a == b
}
