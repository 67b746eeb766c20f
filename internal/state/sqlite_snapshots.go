package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
)

// Save stores t and the DDL drv generates for it as a new snapshot.
func (s *SQLiteStore) Save(ctx context.Context, drv driver.Driver, t *core.Table) (*Snapshot, error) {
	if s.db == nil {
		return nil, errNotOpen
	}

	ddl := drv.CreateTableSQL(t)
	snap := &Snapshot{
		ID:          generateID(),
		Driver:      drv.Type(),
		Table:       t,
		DDL:         ddl,
		Fingerprint: Fingerprint(ddl),
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, driver, schema_name, table_name, table_type, comment, ddl, fingerprint, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.Driver, t.Schema, t.Name, t.Type, t.Comment, snap.DDL, snap.Fingerprint, snap.CreatedAt.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_columns
		(snapshot_id, position, name, type, length, precision, scale, nullable, default_value, comment, primary_key, auto_increment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, c := range t.Columns {
		if _, err := stmt.ExecContext(ctx, snap.ID, i+1, c.Name, c.Type, c.Length, c.Precision, c.Scale,
			c.Nullable, c.DefaultValue, c.Comment, c.PrimaryKey, c.AutoIncrement); err != nil {
			return nil, fmt.Errorf("insert snapshot column %s: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Debug("snapshot saved", "id", snap.ID, "table", t.QualifiedName(), "fingerprint", snap.Fingerprint)
	return snap, nil
}

// Get loads a snapshot with its columns.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	if s.db == nil {
		return nil, errNotOpen
	}

	row := s.db.QueryRowContext(ctx, selectSnapshot+` WHERE id = ?`, id)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	if err := s.loadColumns(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Latest returns the most recent snapshot of a table, with columns.
func (s *SQLiteStore) Latest(ctx context.Context, driverType, schema, table string) (*Snapshot, error) {
	if s.db == nil {
		return nil, errNotOpen
	}

	row := s.db.QueryRowContext(ctx, selectSnapshot+`
		WHERE driver = ? AND schema_name = ? AND table_name = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, driverType, schema, table)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s %s.%s", ErrSnapshotNotFound, driverType, schema, table)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}

	if err := s.loadColumns(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// ListFilter narrows List. Empty fields match everything.
type ListFilter struct {
	Driver string
	Schema string
	Table  string
}

// List returns snapshots newest first, without columns.
func (s *SQLiteStore) List(ctx context.Context, f ListFilter) ([]*Snapshot, error) {
	if s.db == nil {
		return nil, errNotOpen
	}

	rows, err := s.db.QueryContext(ctx, selectSnapshot+`
		WHERE (? = '' OR driver = ?) AND (? = '' OR schema_name = ?) AND (? = '' OR table_name = ?)
		ORDER BY created_at DESC, rowid DESC
	`, f.Driver, f.Driver, f.Schema, f.Schema, f.Table, f.Table)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snaps []*Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}
	return snaps, nil
}

// Drift compares t against its latest snapshot for drv.
func (s *SQLiteStore) Drift(ctx context.Context, drv driver.Driver, t *core.Table) (*Drift, error) {
	snap, err := s.Latest(ctx, drv.Type(), t.Schema, t.Name)
	if err != nil {
		return nil, err
	}
	return &Drift{
		Snapshot:    snap,
		Fingerprint: Fingerprint(drv.CreateTableSQL(t)),
		Changes:     DiffColumns(snap.Table.Columns, t.Columns),
	}, nil
}

const selectSnapshot = `
	SELECT id, driver, schema_name, table_name, table_type, comment, ddl, fingerprint, created_at
	FROM snapshots`

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*Snapshot, error) {
	snap := &Snapshot{Table: &core.Table{}}
	var createdAt int64
	if err := row.Scan(&snap.ID, &snap.Driver, &snap.Table.Schema, &snap.Table.Name, &snap.Table.Type,
		&snap.Table.Comment, &snap.DDL, &snap.Fingerprint, &createdAt); err != nil {
		return nil, err
	}
	snap.CreatedAt = time.Unix(0, createdAt).UTC()
	return snap, nil
}

func (s *SQLiteStore) loadColumns(ctx context.Context, snap *Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, name, type, length, precision, scale, nullable, default_value, comment, primary_key, auto_increment
		FROM snapshot_columns
		WHERE snapshot_id = ?
		ORDER BY position
	`, snap.ID)
	if err != nil {
		return fmt.Errorf("failed to query snapshot columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var c core.Column
		if err := rows.Scan(&c.Position, &c.Name, &c.Type, &c.Length, &c.Precision, &c.Scale,
			&c.Nullable, &c.DefaultValue, &c.Comment, &c.PrimaryKey, &c.AutoIncrement); err != nil {
			return fmt.Errorf("failed to scan snapshot column: %w", err)
		}
		snap.Table.Columns = append(snap.Table.Columns, c)
	}
	return rows.Err()
}
