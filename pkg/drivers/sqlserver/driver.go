// Package sqlserver provides the Microsoft SQL Server dialect driver.
package sqlserver

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
	"github.com/leapstack-labs/leapmeta/pkg/drivers/ansi"
)

// Type is the registry code of the SQL Server driver.
const Type = "SqlServer"

// Driver implements driver.Driver for SQL Server.
type Driver struct {
	gen ansi.Generator
}

// New creates a SQL Server driver.
func New() *Driver {
	return &Driver{gen: ansi.Generator{Quote: Quote}}
}

// Quote wraps an identifier in brackets, doubling closing brackets.
func Quote(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

// Type returns the registry code.
func (d *Driver) Type() string { return Type }

// Name returns the display name.
func (d *Driver) Name() string { return "SqlServer Database" }

// Aliases returns the alternative codes.
func (d *Driver) Aliases() []string { return []string{"sqlserver", "mssql"} }

// TypeConvert maps a SQL Server type name to its canonical type.
func (d *Driver) TypeConvert(nativeType string) core.ColumnType {
	return typeMap.Convert(nativeType)
}

// CreateSchemaSQL returns `CREATE SCHEMA <schema>`.
func (d *Driver) CreateSchemaSQL(schema string) (string, error) {
	return d.gen.CreateSchema(schema), nil
}

// SelectAllSQL lists every column of the table with bracket quoting.
func (d *Driver) SelectAllSQL(t *core.Table) string {
	return d.gen.SelectAll(t)
}

// CreateTableSQL renders CREATE TABLE followed by MS_Description extended
// properties for commented columns and the table.
func (d *Driver) CreateTableSQL(t *core.Table) string {
	lines := make([]string, 0, len(t.Columns)+1)
	for _, c := range t.Columns {
		lines = append(lines, "  "+d.columnDefinition(c))
	}
	if pk := d.gen.PrimaryKey(t); pk != "" {
		lines = append(lines, "  "+pk)
	}

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(d.gen.Qualified(t.Schema, t.Name))
	sb.WriteString(" (\n")
	sb.WriteString(strings.Join(lines, ",\n"))
	sb.WriteString("\n);\n")

	var props strings.Builder
	for _, c := range t.Columns {
		if c.Comment != "" {
			props.WriteString(description(c.Comment, t.Schema, t.Name, c.Name))
		}
	}
	if t.Comment != "" {
		props.WriteString(description(t.Comment, t.Schema, t.Name, ""))
	}
	if props.Len() > 0 {
		sb.WriteByte('\n')
		sb.WriteString(props.String())
	}
	return sb.String()
}

func (d *Driver) columnDefinition(c core.Column) string {
	var sb strings.Builder
	sb.WriteString(Quote(c.Name))
	sb.WriteByte(' ')
	sb.WriteString(typeWithSize(c))
	if c.AutoIncrement {
		sb.WriteString(" IDENTITY(1,1)")
	}
	if !c.Nullable {
		sb.WriteString(" NOT NULL")
	}
	if !c.AutoIncrement && d.gen.KeepDefault(c.DefaultValue) {
		sb.WriteString(" DEFAULT ")
		sb.WriteString(c.DefaultValue)
	}
	return sb.String()
}

// typeWithSize renders (max) for the -1 length SQL Server reports for
// varchar(max), nvarchar(max) and varbinary(max).
func typeWithSize(c core.Column) string {
	if c.Length < 0 {
		return c.Type + "(max)"
	}
	return driver.TypeWithSuffix(c)
}

func description(comment, schema, table, column string) string {
	var sb strings.Builder
	sb.WriteString("EXEC sp_addextendedproperty 'MS_Description', N'")
	sb.WriteString(driver.StripQuotes(comment))
	sb.WriteString("', 'SCHEMA', N'")
	sb.WriteString(schema)
	sb.WriteString("', 'TABLE', N'")
	sb.WriteString(table)
	sb.WriteByte('\'')
	if column != "" {
		sb.WriteString(", 'COLUMN', N'")
		sb.WriteString(column)
		sb.WriteByte('\'')
	}
	sb.WriteString(";\n")
	return sb.String()
}

// QueryDataSQL uses TOP for a first page without an ordering. Other pages
// use OFFSET/FETCH, which SQL Server only accepts after ORDER BY, so an
// unordered query is ordered by (select null).
func (d *Driver) QueryDataSQL(q core.QueryData) string {
	start, end := q.Option.Bounds()
	if _, err := strconv.Atoi(start); err != nil {
		start = core.DefaultLimitStart
	}
	if !q.Option.HasOrder() && start == core.DefaultLimitStart {
		var sb strings.Builder
		sb.WriteString("select top ")
		sb.WriteString(end)
		sb.WriteString(" * from ")
		sb.WriteString(q.SchemaName)
		sb.WriteByte('.')
		sb.WriteString(q.TableName)
		if q.Option.HasWhere() {
			sb.WriteString(" where ")
			sb.WriteString(q.Option.Where)
		}
		return sb.String()
	}
	sql := ansi.SelectFrom(q)
	if !q.Option.HasOrder() {
		sql += " order by (select null)"
	}
	return sql + " offset " + start + " rows fetch next " + end + " rows only"
}

// Catalog returns the SQL Server catalog.
func (d *Driver) Catalog() driver.Catalog { return catalog{} }

var _ driver.Driver = (*Driver)(nil)
