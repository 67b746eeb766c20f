// Package ansi renders the statement shapes shared by drivers whose SQL
// follows the standard closely: double-quoted identifiers, CREATE SCHEMA,
// COMMENT ON statements and LIMIT/OFFSET pagination.
//
// Vendor drivers embed a Generator configured for their quoting and comment
// support and override only what differs.
package ansi

import (
	"strings"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
)

// Generator builds SQL text from the metadata model.
// The zero value quotes with double quotes and emits no comment statements.
type Generator struct {
	// Quote wraps a single identifier. Defaults to DoubleQuote.
	Quote func(string) string

	// SequenceMarkers are substrings marking default expressions that come
	// from a sequence or identity and must not be copied into DDL.
	SequenceMarkers []string

	// CommentStatements enables COMMENT ON COLUMN/TABLE after CREATE TABLE.
	CommentStatements bool

	// PrimaryKeyClause appends a PRIMARY KEY constraint to CREATE TABLE.
	PrimaryKeyClause bool
}

// DoubleQuote wraps an identifier in double quotes without escaping.
func DoubleQuote(name string) string {
	return `"` + name + `"`
}

func (g Generator) quote(name string) string {
	if g.Quote == nil {
		return DoubleQuote(name)
	}
	return g.Quote(name)
}

// Qualified returns the quoted "schema"."name" reference.
func (g Generator) Qualified(schema, name string) string {
	return g.quote(schema) + "." + g.quote(name)
}

// CreateSchema returns CREATE SCHEMA with the name inserted verbatim.
func (g Generator) CreateSchema(schema string) string {
	return "CREATE SCHEMA " + schema
}

// SelectAll lists every column on its own line. The separator comma leads
// each column after the first; column comments trail as line comments.
func (g Generator) SelectAll(t *core.Table) string {
	var sb strings.Builder
	sb.WriteString("SELECT\n")
	for i, c := range t.Columns {
		sb.WriteString("    ")
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(g.quote(c.Name))
		if c.Comment != "" {
			sb.WriteString(" -- ")
			sb.WriteString(driver.StripQuotes(c.Comment))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(" FROM ")
	sb.WriteString(g.Qualified(t.Schema, t.Name))
	sb.WriteByte(';')
	if t.Comment != "" {
		sb.WriteString(" -- ")
		sb.WriteString(driver.StripQuotes(t.Comment))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// ColumnDefinition renders `"name" type[(size)][ NOT NULL][ DEFAULT expr]`.
func (g Generator) ColumnDefinition(c core.Column) string {
	var sb strings.Builder
	sb.WriteString(g.quote(c.Name))
	sb.WriteByte(' ')
	sb.WriteString(driver.TypeWithSuffix(c))
	if !c.Nullable {
		sb.WriteString(" NOT NULL")
	}
	if g.KeepDefault(c.DefaultValue) {
		sb.WriteString(" DEFAULT ")
		sb.WriteString(c.DefaultValue)
	}
	return sb.String()
}

// KeepDefault reports whether a default expression belongs in DDL.
func (g Generator) KeepDefault(def string) bool {
	return strings.TrimSpace(def) != "" && !driver.HasMarker(def, g.SequenceMarkers...)
}

// PrimaryKey renders the PRIMARY KEY constraint, or "" when t has no keys.
func (g Generator) PrimaryKey(t *core.Table) string {
	keys := t.PrimaryKeys()
	if len(keys) == 0 {
		return ""
	}
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = g.quote(k)
	}
	return "PRIMARY KEY (" + strings.Join(quoted, ", ") + ")"
}

// CreateTable renders the table body followed by comment statements.
func (g Generator) CreateTable(t *core.Table) string {
	lines := make([]string, 0, len(t.Columns)+1)
	for _, c := range t.Columns {
		lines = append(lines, "  "+g.ColumnDefinition(c))
	}
	if g.PrimaryKeyClause {
		if pk := g.PrimaryKey(t); pk != "" {
			lines = append(lines, "  "+pk)
		}
	}

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(g.Qualified(t.Schema, t.Name))
	sb.WriteString(" (\n")
	sb.WriteString(strings.Join(lines, ",\n"))
	sb.WriteString("\n);\n")

	if g.CommentStatements {
		if comments := g.Comments(t); comments != "" {
			sb.WriteByte('\n')
			sb.WriteString(comments)
		}
	}
	return sb.String()
}

// Comments renders one COMMENT ON COLUMN per commented column, in column
// order, then COMMENT ON TABLE when the table has a comment.
func (g Generator) Comments(t *core.Table) string {
	target := g.Qualified(t.Schema, t.Name)

	var sb strings.Builder
	for _, c := range t.Columns {
		if c.Comment == "" {
			continue
		}
		sb.WriteString("COMMENT ON COLUMN ")
		sb.WriteString(target)
		sb.WriteByte('.')
		sb.WriteString(g.quote(c.Name))
		sb.WriteString(" IS '")
		sb.WriteString(driver.StripQuotes(c.Comment))
		sb.WriteString("';\n")
	}
	if t.Comment != "" {
		sb.WriteString("COMMENT ON TABLE ")
		sb.WriteString(target)
		sb.WriteString(" IS '")
		sb.WriteString(driver.StripQuotes(t.Comment))
		sb.WriteString("';\n")
	}
	return sb.String()
}

// SelectFrom renders `select * from schema.table[ where ...][ order by ...]`.
// Names and clauses are inserted verbatim; vendors append their own limit.
func SelectFrom(q core.QueryData) string {
	var sb strings.Builder
	sb.WriteString("select * from ")
	sb.WriteString(q.SchemaName)
	sb.WriteByte('.')
	sb.WriteString(q.TableName)
	if q.Option.HasWhere() {
		sb.WriteString(" where ")
		sb.WriteString(q.Option.Where)
	}
	if q.Option.HasOrder() {
		sb.WriteString(" order by ")
		sb.WriteString(q.Option.Order)
	}
	return sb.String()
}

// LimitOffset appends `limit <end>` and, for a non-zero start, `offset <start>`.
func LimitOffset(q core.QueryData) string {
	start, end := q.Option.Bounds()
	s := SelectFrom(q) + " limit " + end
	if start != core.DefaultLimitStart {
		s += " offset " + start
	}
	return s
}
