package sqlserver

import (
	"net"
	"net/url"
	"strconv"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

type catalog struct{}

// DriverName returns the go-mssqldb driver name.
func (catalog) DriverName() string { return "sqlserver" }

func (catalog) DefaultSchema() string { return "dbo" }

// DSN builds a sqlserver:// URL. Options are added as query parameters.
func (catalog) DSN(cfg core.DataSourceConfig) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 1433
	}

	query := url.Values{}
	if cfg.Database != "" {
		query.Set("database", cfg.Database)
	}
	for k, v := range cfg.Options {
		query.Set(k, v)
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		Host:     net.JoinHostPort(host, strconv.Itoa(port)),
		RawQuery: query.Encode(),
	}
	if cfg.Username != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	}
	return u.String()
}

func (catalog) SchemasQuery() string {
	return `
		SELECT s.name
		FROM sys.schemas s
		WHERE s.principal_id = 1 OR s.name = 'dbo' OR s.schema_id BETWEEN 5 AND 16383
		ORDER BY s.name
	`
}

func (catalog) TablesQuery() string {
	return `
		SELECT
			o.name,
			CASE o.type WHEN 'V' THEN 'VIEW' ELSE 'BASE TABLE' END,
			COALESCE(CAST(ep.value AS nvarchar(4000)), '')
		FROM sys.objects o
		JOIN sys.schemas s ON s.schema_id = o.schema_id
		LEFT JOIN sys.extended_properties ep
			ON ep.major_id = o.object_id AND ep.minor_id = 0 AND ep.class = 1 AND ep.name = 'MS_Description'
		WHERE s.name = @p1 AND o.type IN ('U', 'V')
		ORDER BY o.name
	`
}

// ColumnsQuery reports character lengths in characters and -1 for (max).
func (catalog) ColumnsQuery() string {
	return `
		SELECT
			c.name,
			t.name,
			CASE
				WHEN c.max_length = -1 AND t.name IN ('varchar', 'nvarchar', 'varbinary') THEN -1
				WHEN t.name IN ('char', 'varchar', 'binary', 'varbinary') THEN c.max_length
				WHEN t.name IN ('nchar', 'nvarchar') THEN c.max_length / 2
			END,
			CASE WHEN t.name IN ('decimal', 'numeric') THEN c.precision END,
			CASE WHEN t.name IN ('decimal', 'numeric') THEN c.scale END,
			CASE WHEN c.is_nullable = 1 THEN 'YES' ELSE 'NO' END,
			OBJECT_DEFINITION(c.default_object_id),
			CAST(ep.value AS nvarchar(4000)),
			c.column_id,
			CASE WHEN EXISTS (
				SELECT 1
				FROM sys.index_columns ic
				JOIN sys.indexes i ON i.object_id = ic.object_id AND i.index_id = ic.index_id
				WHERE i.is_primary_key = 1 AND ic.object_id = c.object_id AND ic.column_id = c.column_id
			) THEN 1 ELSE 0 END,
			CAST(c.is_identity AS int)
		FROM sys.columns c
		JOIN sys.types t ON t.user_type_id = c.user_type_id
		JOIN sys.objects o ON o.object_id = c.object_id
		JOIN sys.schemas s ON s.schema_id = o.schema_id
		LEFT JOIN sys.extended_properties ep
			ON ep.major_id = c.object_id AND ep.minor_id = c.column_id AND ep.class = 1 AND ep.name = 'MS_Description'
		WHERE s.name = @p1 AND o.name = @p2
		ORDER BY c.column_id
	`
}
