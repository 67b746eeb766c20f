// Package mysql provides the MySQL dialect driver.
package mysql

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
	"github.com/leapstack-labs/leapmeta/pkg/drivers/ansi"
)

// Type is the registry code of the MySQL driver.
const Type = "MySql"

// Driver implements driver.Driver for MySQL.
type Driver struct {
	gen ansi.Generator
}

// New creates a MySQL driver.
func New() *Driver {
	return &Driver{gen: ansi.Generator{Quote: Quote}}
}

// Quote wraps an identifier in backticks, doubling embedded backticks.
func Quote(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Type returns the registry code.
func (d *Driver) Type() string { return Type }

// Name returns the display name.
func (d *Driver) Name() string { return "MySql Database" }

// Aliases returns the alternative codes, including MariaDB.
func (d *Driver) Aliases() []string { return []string{"mysql", "mariadb"} }

// TypeConvert maps a MySQL column type to its canonical type. Display widths
// are ignored except for tinyint(1) and bit(1), which hold booleans.
func (d *Driver) TypeConvert(nativeType string) core.ColumnType {
	switch strings.ReplaceAll(strings.ToLower(nativeType), " ", "") {
	case "tinyint(1)", "bit(1)":
		return core.Boolean
	}
	return typeMap.Convert(nativeType)
}

// CreateSchemaSQL returns `CREATE SCHEMA <schema>`.
func (d *Driver) CreateSchemaSQL(schema string) (string, error) {
	return d.gen.CreateSchema(schema), nil
}

// SelectAllSQL lists every column of the table with backtick quoting.
func (d *Driver) SelectAllSQL(t *core.Table) string {
	return d.gen.SelectAll(t)
}

// CreateTableSQL renders CREATE TABLE with inline column and table comments.
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
	sb.WriteString("\n)")
	if t.Comment != "" {
		sb.WriteString(" COMMENT='")
		sb.WriteString(driver.StripQuotes(t.Comment))
		sb.WriteByte('\'')
	}
	sb.WriteString(";\n")
	return sb.String()
}

func (d *Driver) columnDefinition(c core.Column) string {
	var sb strings.Builder
	sb.WriteString(Quote(c.Name))
	sb.WriteByte(' ')
	sb.WriteString(driver.TypeWithSuffix(c))
	if !c.Nullable {
		sb.WriteString(" NOT NULL")
	}
	if c.AutoIncrement {
		sb.WriteString(" AUTO_INCREMENT")
	} else if d.gen.KeepDefault(c.DefaultValue) {
		sb.WriteString(" DEFAULT ")
		sb.WriteString(literalDefault(c.DefaultValue))
	}
	if c.Comment != "" {
		sb.WriteString(" COMMENT '")
		sb.WriteString(driver.StripQuotes(c.Comment))
		sb.WriteByte('\'')
	}
	return sb.String()
}

// literalDefault quotes a bare string default as reported by
// information_schema. Numbers, NULL, quoted literals and expressions such as
// CURRENT_TIMESTAMP or (uuid()) pass through.
func literalDefault(def string) string {
	v := strings.TrimSpace(def)
	upper := strings.ToUpper(v)
	switch {
	case upper == "NULL", strings.HasPrefix(upper, "CURRENT_"):
		return v
	case strings.HasPrefix(v, "'"), strings.HasPrefix(v, "("), strings.HasPrefix(v, "b'"):
		return v
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return v
	}
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// QueryDataSQL renders `select * from s.t [where] [order by] limit <start>,<end>`.
func (d *Driver) QueryDataSQL(q core.QueryData) string {
	start, end := q.Option.Bounds()
	return ansi.SelectFrom(q) + " limit " + start + "," + end
}

// Catalog returns the MySQL catalog.
func (d *Driver) Catalog() driver.Catalog { return catalog{} }

var _ driver.Driver = (*Driver)(nil)
