package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapmeta/internal/testutil"
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/drivers/mysql"
	"github.com/leapstack-labs/leapmeta/pkg/drivers/postgres"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	if err := store.Open(context.Background(), ":memory:"); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_OpenClose(t *testing.T) {
	store := NewSQLiteStore(nil)
	path := filepath.Join(t.TempDir(), "state.db")

	require.NoError(t, store.Open(context.Background(), path))

	version, err := store.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	// reopening applies no further migrations
	require.NoError(t, store.Open(context.Background(), path))
	require.NoError(t, store.Close())
}

func TestSQLiteStore_NotOpen(t *testing.T) {
	store := NewSQLiteStore(nil)
	ctx := context.Background()

	_, err := store.Save(ctx, postgres.New(), testutil.OrdersTable())
	assert.ErrorIs(t, err, errNotOpen)
	_, err = store.Get(ctx, "x")
	assert.ErrorIs(t, err, errNotOpen)
	_, err = store.List(ctx, ListFilter{})
	assert.ErrorIs(t, err, errNotOpen)
}

func TestSQLiteStore_SaveGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	drv := postgres.New()
	tbl := testutil.OrdersTable()

	saved, err := store.Save(ctx, drv, tbl)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, drv.CreateTableSQL(tbl), saved.DDL)
	assert.Equal(t, Fingerprint(saved.DDL), saved.Fingerprint)

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "PostgreSql", got.Driver)
	assert.Equal(t, tbl, got.Table)
	assert.Equal(t, saved.DDL, got.DDL)
	assert.WithinDuration(t, saved.CreatedAt, got.CreatedAt, 0)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSQLiteStore_ListLatest(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, postgres.New(), testutil.OrdersTable())
	require.NoError(t, err)

	changed := testutil.OrdersTable()
	changed.Columns = changed.Columns[:3]
	second, err := store.Save(ctx, postgres.New(), changed)
	require.NoError(t, err)

	_, err = store.Save(ctx, mysql.New(), testutil.OrdersTable())
	require.NoError(t, err)

	all, err := store.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pg, err := store.List(ctx, ListFilter{Driver: "PostgreSql", Table: "orders"})
	require.NoError(t, err)
	require.Len(t, pg, 2)
	assert.Equal(t, second.ID, pg[0].ID)
	assert.Equal(t, first.ID, pg[1].ID)
	assert.Empty(t, pg[0].Table.Columns)

	latest, err := store.Latest(ctx, "PostgreSql", "sales", "orders")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Len(t, latest.Table.Columns, 3)

	_, err = store.Latest(ctx, "SQLite", "sales", "orders")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSQLiteStore_Drift(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	drv := postgres.New()

	_, err := store.Drift(ctx, drv, testutil.OrdersTable())
	require.ErrorIs(t, err, ErrSnapshotNotFound)

	_, err = store.Save(ctx, drv, testutil.OrdersTable())
	require.NoError(t, err)

	same, err := store.Drift(ctx, drv, testutil.OrdersTable())
	require.NoError(t, err)
	assert.False(t, same.Drifted())
	assert.Empty(t, same.Changes)

	current := testutil.OrdersTable()
	current.Columns[1].Length = 64
	current.Columns = append(current.Columns[:3], core.Column{Name: "shipped_at", Type: "timestamptz", Nullable: true})

	drift, err := store.Drift(ctx, drv, current)
	require.NoError(t, err)
	assert.True(t, drift.Drifted())
	require.Len(t, drift.Changes, 3)
	assert.Equal(t, ColumnChanged, drift.Changes[0].Kind)
	assert.Equal(t, "code", drift.Changes[0].Name)
	assert.Equal(t, 32, drift.Changes[0].Before.Length)
	assert.Equal(t, 64, drift.Changes[0].After.Length)
	assert.Equal(t, ColumnRemoved, drift.Changes[1].Kind)
	assert.Equal(t, "note", drift.Changes[1].Name)
	assert.Equal(t, ColumnAdded, drift.Changes[2].Kind)
	assert.Equal(t, "shipped_at", drift.Changes[2].Name)
}

func TestDiffColumns_IgnoresPosition(t *testing.T) {
	before := []core.Column{{Name: "a", Type: "int", Position: 1}, {Name: "b", Type: "int", Position: 2}}
	after := []core.Column{{Name: "b", Type: "int", Position: 1}, {Name: "a", Type: "int", Position: 2}}
	assert.Empty(t, DiffColumns(before, after))
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint("CREATE TABLE a"), Fingerprint("CREATE TABLE a"))
	assert.NotEqual(t, Fingerprint("CREATE TABLE a"), Fingerprint("CREATE TABLE b"))
	assert.Len(t, Fingerprint(""), 16)
}
