package mysql

import (
	"net"
	"strconv"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

type catalog struct{}

func (catalog) DriverName() string { return "mysql" }

// DefaultSchema is empty: MySQL schemas are databases and the connection's
// database is used when a reference is unqualified.
func (catalog) DefaultSchema() string { return "" }

// DSN formats a go-sql-driver DSN. Options become connection parameters.
func (catalog) DSN(cfg core.DataSourceConfig) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	mc := gomysql.NewConfig()
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	mc.DBName = cfg.Database
	mc.ParseTime = true
	if len(cfg.Options) > 0 {
		mc.Params = make(map[string]string, len(cfg.Options))
		for k, v := range cfg.Options {
			mc.Params[k] = v
		}
	}
	return mc.FormatDSN()
}

func (catalog) SchemasQuery() string {
	return `
		SELECT schema_name
		FROM information_schema.schemata
		WHERE schema_name NOT IN ('information_schema', 'mysql', 'performance_schema', 'sys')
		ORDER BY schema_name
	`
}

func (catalog) TablesQuery() string {
	return `
		SELECT table_name, table_type, COALESCE(table_comment, '')
		FROM information_schema.tables
		WHERE table_schema = ?
		ORDER BY table_name
	`
}

// ColumnsQuery reports lengths for character and binary types only, and
// precision/scale for fixed-point types only, so that regenerated DDL does
// not carry integer display widths.
func (catalog) ColumnsQuery() string {
	return `
		SELECT
			column_name,
			CASE WHEN column_type LIKE '%unsigned%' THEN CONCAT(data_type, ' unsigned') ELSE data_type END,
			CASE WHEN data_type IN ('char', 'varchar', 'binary', 'varbinary') THEN character_maximum_length END,
			CASE WHEN data_type IN ('decimal', 'numeric') THEN numeric_precision END,
			CASE WHEN data_type IN ('decimal', 'numeric') THEN numeric_scale END,
			is_nullable,
			column_default,
			column_comment,
			ordinal_position,
			CASE WHEN column_key = 'PRI' THEN 1 ELSE 0 END,
			CASE WHEN extra LIKE '%auto_increment%' THEN 1 ELSE 0 END
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position
	`
}
