package sqlite

import "github.com/leapstack-labs/leapmeta/pkg/core"

type catalog struct{}

// DriverName returns the modernc.org/sqlite driver name.
func (catalog) DriverName() string { return "sqlite" }

func (catalog) DefaultSchema() string { return "main" }

// DSN returns the database path, or an in-memory database when unset.
func (catalog) DSN(cfg core.DataSourceConfig) string {
	if cfg.Path == "" {
		return ":memory:"
	}
	return cfg.Path
}

func (catalog) SchemasQuery() string {
	return `SELECT name FROM pragma_database_list ORDER BY seq`
}

func (catalog) TablesQuery() string {
	return `
		SELECT name, CASE type WHEN 'view' THEN 'VIEW' ELSE 'BASE TABLE' END, ''
		FROM pragma_table_list
		WHERE schema = ? AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`
}

// ColumnsQuery takes (schema, table). Declared types keep their size
// arguments, so length, precision and scale are reported as NULL.
func (catalog) ColumnsQuery() string {
	return `
		SELECT
			name,
			type,
			NULL,
			NULL,
			NULL,
			CASE WHEN "notnull" = 1 OR pk > 0 THEN 'NO' ELSE 'YES' END,
			dflt_value,
			'',
			cid + 1,
			CASE WHEN pk > 0 THEN 1 ELSE 0 END,
			0
		FROM pragma_table_info(?2, ?1)
		ORDER BY cid
	`
}
