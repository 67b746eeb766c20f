package postgres

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

type catalog struct{}

// DriverName returns the pgx stdlib driver name.
func (catalog) DriverName() string { return "pgx" }

func (catalog) DefaultSchema() string { return "public" }

// DSN builds a keyword/value connection string. Values are quoted when
// they are empty or contain spaces, quotes or backslashes.
func (catalog) DSN(cfg core.DataSourceConfig) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	parts := []string{
		"host=" + quoteValue(host),
		"port=" + strconv.Itoa(port),
		"dbname=" + quoteValue(cfg.Database),
		"sslmode=" + quoteValue(cfg.Option("sslmode", "disable")),
	}
	if cfg.Username != "" {
		parts = append(parts, "user="+quoteValue(cfg.Username))
	}
	if cfg.Password != "" {
		parts = append(parts, "password="+quoteValue(cfg.Password))
	}

	return strings.Join(parts, " ")
}

func quoteValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " \t\n\r\v\f'\\") {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

func (catalog) SchemasQuery() string {
	return `
		SELECT nspname
		FROM pg_catalog.pg_namespace
		WHERE nspname NOT LIKE 'pg\_%' AND nspname <> 'information_schema'
		ORDER BY nspname
	`
}

func (catalog) TablesQuery() string {
	return `
		SELECT
			c.relname,
			CASE c.relkind WHEN 'v' THEN 'VIEW' WHEN 'm' THEN 'VIEW' ELSE 'BASE TABLE' END,
			COALESCE(obj_description(c.oid, 'pg_class'), '')
		FROM pg_catalog.pg_class c
		JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relkind IN ('r', 'p', 'v', 'm')
		ORDER BY c.relname
	`
}

// ColumnsQuery reports array and user-defined types by their udt name so the
// type can be pasted back into DDL.
func (catalog) ColumnsQuery() string {
	return `
		SELECT
			c.column_name,
			CASE
				WHEN c.data_type = 'ARRAY' THEN substr(c.udt_name, 2) || '[]'
				WHEN c.data_type = 'USER-DEFINED' THEN c.udt_name
				ELSE c.data_type
			END,
			c.character_maximum_length,
			c.numeric_precision,
			c.numeric_scale,
			c.is_nullable,
			c.column_default,
			col_description(format('%I.%I', c.table_schema, c.table_name)::regclass, c.ordinal_position),
			c.ordinal_position,
			CASE WHEN pk.column_name IS NOT NULL THEN 1 ELSE 0 END,
			CASE WHEN c.column_default LIKE 'nextval(%' OR c.is_identity = 'YES' THEN 1 ELSE 0 END
		FROM information_schema.columns c
		LEFT JOIN (
			SELECT kcu.table_schema, kcu.table_name, kcu.column_name
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
				ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
			WHERE tc.constraint_type = 'PRIMARY KEY'
		) pk ON pk.table_schema = c.table_schema AND pk.table_name = c.table_name AND pk.column_name = c.column_name
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position
	`
}
