// Package sqlite provides the SQLite dialect driver.
//
// SQLite has no CREATE SCHEMA and no comment storage: schema creation
// returns driver.ErrUnsupported and comments are left out of DDL.
package sqlite

import (
	"fmt"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
	"github.com/leapstack-labs/leapmeta/pkg/drivers/ansi"
)

// Type is the registry code of the SQLite driver.
const Type = "SQLite"

// Driver implements driver.Driver for SQLite.
type Driver struct {
	gen ansi.Generator
}

// New creates a SQLite driver.
func New() *Driver {
	return &Driver{gen: ansi.Generator{PrimaryKeyClause: true}}
}

// Type returns the registry code.
func (d *Driver) Type() string { return Type }

// Name returns the display name.
func (d *Driver) Name() string { return "SQLite Database" }

// Aliases returns the alternative codes.
func (d *Driver) Aliases() []string { return []string{"sqlite", "sqlite3"} }

// TypeConvert maps a SQLite declared type to its canonical type.
func (d *Driver) TypeConvert(nativeType string) core.ColumnType {
	return convertType(nativeType)
}

// CreateSchemaSQL is unsupported; attach a database file instead.
func (d *Driver) CreateSchemaSQL(string) (string, error) {
	return "", fmt.Errorf("sqlite: create schema: %w", driver.ErrUnsupported)
}

// SelectAllSQL lists every column of the table.
func (d *Driver) SelectAllSQL(t *core.Table) string {
	return d.gen.SelectAll(t)
}

// CreateTableSQL renders CREATE TABLE without comment statements.
func (d *Driver) CreateTableSQL(t *core.Table) string {
	return d.gen.CreateTable(t)
}

// QueryDataSQL renders `select * from s.t [where] [order by] limit <end> [offset <start>]`.
func (d *Driver) QueryDataSQL(q core.QueryData) string {
	return ansi.LimitOffset(q)
}

// Catalog returns the SQLite catalog.
func (d *Driver) Catalog() driver.Catalog { return catalog{} }

var _ driver.Driver = (*Driver)(nil)
