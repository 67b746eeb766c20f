// Package driver defines the dialect driver contract used to turn the
// vendor-neutral metadata model into vendor-correct SQL text.
//
// This package contains the public contract that every database vendor
// implements. Concrete drivers live in pkg/drivers/ subdirectories and are
// collected into a Registry at startup.
package driver

import (
	"errors"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// ErrUnsupported is returned when a driver cannot express an operation
// (e.g., CREATE SCHEMA on a database without schemas).
var ErrUnsupported = errors.New("operation not supported by driver")

// Driver generates SQL for one database vendor.
//
// All generation methods are pure: identical input yields byte-identical
// output, and the input model is never modified. Identifiers are inserted
// as given; callers validate user-supplied names before this boundary.
type Driver interface {
	// Type returns the registry code of the driver (e.g., "PostgreSql").
	Type() string

	// Name returns a human readable name.
	Name() string

	// Aliases returns additional codes the driver can be looked up by.
	Aliases() []string

	// TypeConvert maps a native type name to its canonical type.
	// Unmapped names return core.Unknown.
	TypeConvert(nativeType string) core.ColumnType

	// CreateSchemaSQL returns a CREATE SCHEMA statement, or ErrUnsupported.
	CreateSchemaSQL(schema string) (string, error)

	// SelectAllSQL returns a SELECT listing every column of the table.
	SelectAllSQL(t *core.Table) string

	// CreateTableSQL returns the DDL recreating the table, including comments
	// where the vendor supports them.
	CreateTableSQL(t *core.Table) string

	// QueryDataSQL returns a paginated preview query.
	QueryDataSQL(q core.QueryData) string

	// Catalog returns the introspection half of the driver.
	Catalog() Catalog
}

// Catalog describes how to connect to a vendor's database and read its
// metadata. Query text is static; parameters are bound by the caller.
type Catalog interface {
	// DriverName returns the database/sql driver name (e.g., "pgx").
	DriverName() string

	// DSN builds a connection string for database/sql.
	DSN(cfg core.DataSourceConfig) string

	// DefaultSchema is used when a table reference is unqualified.
	DefaultSchema() string

	// SchemasQuery lists schema names. It takes no parameters.
	SchemasQuery() string

	// TablesQuery lists tables of a schema as (name, type, comment).
	// It takes the schema name as its only parameter.
	TablesQuery() string

	// ColumnsQuery lists the columns of a table, ordered by position, as
	// (name, type, length, precision, scale, is_nullable, default, comment,
	// position, is_primary_key, is_auto_increment). It takes the schema and
	// table names as parameters, in that order.
	ColumnsQuery() string
}
