package duckdb

import "github.com/leapstack-labs/leapmeta/pkg/core"

type catalog struct{}

// DriverName returns the go-duckdb driver name.
func (catalog) DriverName() string { return "duckdb" }

func (catalog) DefaultSchema() string { return "main" }

// DSN returns the database path. An empty DSN opens an in-memory database.
func (catalog) DSN(cfg core.DataSourceConfig) string {
	return cfg.Path
}

func (catalog) SchemasQuery() string {
	return `
		SELECT DISTINCT schema_name
		FROM duckdb_schemas()
		WHERE NOT internal
		ORDER BY schema_name
	`
}

func (catalog) TablesQuery() string {
	return `
		SELECT table_name, 'BASE TABLE', COALESCE(comment, '')
		FROM duckdb_tables()
		WHERE schema_name = $1
		UNION ALL
		SELECT view_name, 'VIEW', COALESCE(comment, '')
		FROM duckdb_views()
		WHERE schema_name = $1 AND NOT internal
		ORDER BY 1
	`
}

// ColumnsQuery strips size arguments from data_type; they are reported in the
// length/precision/scale columns instead.
func (catalog) ColumnsQuery() string {
	return `
		SELECT
			c.column_name,
			regexp_replace(c.data_type, '\(.*\)', ''),
			c.character_maximum_length,
			CASE WHEN c.data_type LIKE 'DECIMAL%' THEN c.numeric_precision END,
			CASE WHEN c.data_type LIKE 'DECIMAL%' THEN c.numeric_scale END,
			CASE WHEN c.is_nullable THEN 'YES' ELSE 'NO' END,
			c.column_default,
			COALESCE(c.comment, ''),
			c.column_index,
			CASE WHEN EXISTS (
				SELECT 1 FROM duckdb_constraints() k
				WHERE k.schema_name = c.schema_name
					AND k.table_name = c.table_name
					AND k.constraint_type = 'PRIMARY KEY'
					AND list_contains(k.constraint_column_names, c.column_name)
			) THEN 1 ELSE 0 END,
			CASE WHEN c.column_default LIKE 'nextval(%' THEN 1 ELSE 0 END
		FROM duckdb_columns() c
		WHERE c.schema_name = $1 AND c.table_name = $2
		ORDER BY c.column_index
	`
}
