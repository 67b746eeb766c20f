// Package duckdb provides the DuckDB dialect driver.
package duckdb

import (
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
	"github.com/leapstack-labs/leapmeta/pkg/drivers/ansi"
)

// Type is the registry code of the DuckDB driver.
const Type = "DuckDB"

// Driver implements driver.Driver for DuckDB.
type Driver struct {
	gen ansi.Generator
}

// New creates a DuckDB driver.
func New() *Driver {
	return &Driver{
		gen: ansi.Generator{
			SequenceMarkers:   []string{"nextval"},
			CommentStatements: true,
			PrimaryKeyClause:  true,
		},
	}
}

// Type returns the registry code.
func (d *Driver) Type() string { return Type }

// Name returns the display name.
func (d *Driver) Name() string { return "DuckDB Database" }

// Aliases returns the alternative codes.
func (d *Driver) Aliases() []string { return []string{"duckdb", "duck"} }

// TypeConvert maps a DuckDB type name to its canonical type.
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

// CreateTableSQL renders CREATE TABLE followed by COMMENT ON statements.
func (d *Driver) CreateTableSQL(t *core.Table) string {
	return d.gen.CreateTable(t)
}

// QueryDataSQL renders `select * from s.t [where] [order by] limit <end> [offset <start>]`.
func (d *Driver) QueryDataSQL(q core.QueryData) string {
	return ansi.LimitOffset(q)
}

// Catalog returns the DuckDB catalog.
func (d *Driver) Catalog() driver.Catalog { return catalog{} }

var _ driver.Driver = (*Driver)(nil)
