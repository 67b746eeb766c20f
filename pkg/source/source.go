// Package source reads catalog metadata and preview rows from a live
// database using a dialect driver's catalog queries.
package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
)

// DefaultConcurrency bounds parallel column loading in SchemaTables.
const DefaultConcurrency = 4

// ErrNotConnected is returned when a Source has no database handle.
var ErrNotConnected = errors.New("database connection not established")

// ErrTableNotFound is returned when the catalog reports no columns for a table.
var ErrTableNotFound = errors.New("table not found")

// Source pairs a database handle with the driver that describes it.
type Source struct {
	DB     *sql.DB
	Driver driver.Driver
	Cfg    core.DataSourceConfig
	Logger *slog.Logger

	// Concurrency bounds SchemaTables. Values < 1 use DefaultConcurrency.
	Concurrency int
}

// Open resolves cfg.Type in the registry, opens the database and pings it.
func Open(ctx context.Context, reg *driver.Registry, cfg core.DataSourceConfig, logger *slog.Logger) (*Source, error) {
	d, err := reg.Get(cfg.Type)
	if err != nil {
		return nil, err
	}

	cat := d.Catalog()
	db, err := sql.Open(cat.DriverName(), cat.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", d.Type(), err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", d.Type(), err)
	}

	s := New(db, d, cfg, logger)
	s.Logger.Debug("database connection established", "driver", d.Type(), "sql_driver", cat.DriverName())
	return s, nil
}

// New wraps an open database handle.
func New(db *sql.DB, d driver.Driver, cfg core.DataSourceConfig, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{DB: db, Driver: d, Cfg: cfg, Logger: logger}
}

// Close closes the database connection.
func (s *Source) Close() error {
	if s.DB == nil {
		return nil
	}
	s.Logger.Debug("closing database connection")
	return s.DB.Close()
}

// Exec executes a statement that returns no rows, such as generated DDL.
func (s *Source) Exec(ctx context.Context, stmt string) error {
	if s.DB == nil {
		return ErrNotConnected
	}
	if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// DefaultSchema is the configured schema, else the driver's default, else
// the configured database.
func (s *Source) DefaultSchema() string {
	switch {
	case s.Cfg.Schema != "":
		return s.Cfg.Schema
	case s.Driver.Catalog().DefaultSchema() != "":
		return s.Driver.Catalog().DefaultSchema()
	default:
		return s.Cfg.Database
	}
}

// Schemas lists the schema names visible to the connection.
func (s *Source) Schemas(ctx context.Context) ([]string, error) {
	if s.DB == nil {
		return nil, ErrNotConnected
	}

	rows, err := s.DB.QueryContext(ctx, s.Driver.Catalog().SchemasQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to query schemas: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var schemas []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan schema: %w", err)
		}
		schemas = append(schemas, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schemas: %w", err)
	}
	return schemas, nil
}

// Tables lists the tables and views of schema without their columns.
// An empty schema means DefaultSchema.
func (s *Source) Tables(ctx context.Context, schema string) ([]*core.Table, error) {
	if s.DB == nil {
		return nil, ErrNotConnected
	}
	if schema == "" {
		schema = s.DefaultSchema()
	}

	rows, err := s.DB.QueryContext(ctx, s.Driver.Catalog().TablesQuery(), schema)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables of %s: %w", schema, err)
	}
	defer func() { _ = rows.Close() }()

	var tables []*core.Table
	for rows.Next() {
		t := &core.Table{Schema: schema}
		var comment sql.NullString
		if err := rows.Scan(&t.Name, &t.Type, &comment); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		t.Comment = comment.String
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return tables, nil
}

// Table loads one table with its columns. ref may be "schema.table" or a
// bare name resolved against DefaultSchema.
func (s *Source) Table(ctx context.Context, ref string) (*core.Table, error) {
	schema, name := core.SplitQualifiedName(ref, s.DefaultSchema())

	tables, err := s.Tables(ctx, schema)
	if err != nil {
		return nil, err
	}

	t := &core.Table{Schema: schema, Name: name}
	for _, candidate := range tables {
		if candidate.Name == name {
			t = candidate
			break
		}
	}

	if err := s.loadColumns(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Source) loadColumns(ctx context.Context, t *core.Table) error {
	if s.DB == nil {
		return ErrNotConnected
	}

	rows, err := s.DB.QueryContext(ctx, s.Driver.Catalog().ColumnsQuery(), t.Schema, t.Name)
	if err != nil {
		return fmt.Errorf("failed to query columns of %s: %w", t.QualifiedName(), err)
	}
	defer func() { _ = rows.Close() }()

	var columns []core.Column
	for rows.Next() {
		var (
			col                      core.Column
			length, precision, scale sql.NullInt64
			nullable                 string
			def, comment             sql.NullString
			pk, autoInc              int
		)
		if err := rows.Scan(&col.Name, &col.Type, &length, &precision, &scale,
			&nullable, &def, &comment, &col.Position, &pk, &autoInc); err != nil {
			return fmt.Errorf("failed to scan column of %s: %w", t.QualifiedName(), err)
		}
		col.Length = int(length.Int64)
		col.Precision = int(precision.Int64)
		col.Scale = int(scale.Int64)
		col.Nullable = nullable == "YES"
		col.DefaultValue = def.String
		col.Comment = comment.String
		col.PrimaryKey = pk != 0
		col.AutoIncrement = autoInc != 0
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating columns of %s: %w", t.QualifiedName(), err)
	}

	if len(columns) == 0 {
		return fmt.Errorf("%w: %s", ErrTableNotFound, t.QualifiedName())
	}
	t.Columns = columns
	return nil
}
