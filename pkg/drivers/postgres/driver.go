// Package postgres provides the PostgreSQL dialect driver.
package postgres

import (
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
	"github.com/leapstack-labs/leapmeta/pkg/drivers/ansi"
)

// Type is the registry code of the PostgreSQL driver.
const Type = "PostgreSql"

// Driver implements driver.Driver for PostgreSQL.
type Driver struct {
	gen ansi.Generator
}

// New creates a PostgreSQL driver.
func New() *Driver {
	return &Driver{
		gen: ansi.Generator{
			Quote:             ansi.DoubleQuote,
			SequenceMarkers:   []string{"nextval"},
			CommentStatements: true,
		},
	}
}

// Type returns the registry code.
func (d *Driver) Type() string { return Type }

// Name returns the display name.
func (d *Driver) Name() string { return "PostgreSql Database" }

// Aliases returns the alternative codes.
func (d *Driver) Aliases() []string { return []string{"postgres", "postgresql", "pg"} }

// TypeConvert maps a PostgreSQL type name to its canonical type.
func (d *Driver) TypeConvert(nativeType string) core.ColumnType {
	return typeMap.Convert(nativeType)
}

// CreateSchemaSQL returns `CREATE SCHEMA <schema>`.
func (d *Driver) CreateSchemaSQL(schema string) (string, error) {
	return d.gen.CreateSchema(schema), nil
}

// SelectAllSQL lists every column of the table.
func (d *Driver) SelectAllSQL(t *core.Table) string {
	return d.gen.SelectAll(t)
}

// CreateTableSQL renders CREATE TABLE plus COMMENT ON statements.
// Defaults backed by sequences (nextval) are left out.
func (d *Driver) CreateTableSQL(t *core.Table) string {
	return d.gen.CreateTable(t)
}

// QueryDataSQL renders `select * from s.t [where] [order by] limit <end>`.
// Only the upper bound is emitted; the start bound is defaulted but unused.
func (d *Driver) QueryDataSQL(q core.QueryData) string {
	_, end := q.Option.Bounds()
	return ansi.SelectFrom(q) + " limit " + end
}

// Catalog returns the PostgreSQL catalog.
func (d *Driver) Catalog() driver.Catalog { return catalog{} }

// Ensure Driver implements driver.Driver interface
var _ driver.Driver = (*Driver)(nil)
