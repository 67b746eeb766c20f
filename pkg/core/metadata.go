package core

import (
	"errors"
	"fmt"
	"strings"
)

// Column describes a single table column as reported by a database catalog.
//
// Length, Precision and Scale are considered set when greater than zero.
type Column struct {
	Name          string `json:"name" yaml:"name"`
	Type          string `json:"type" yaml:"type"`
	Length        int    `json:"length,omitempty" yaml:"length,omitempty"`
	Precision     int    `json:"precision,omitempty" yaml:"precision,omitempty"`
	Scale         int    `json:"scale,omitempty" yaml:"scale,omitempty"`
	Nullable      bool   `json:"nullable" yaml:"nullable"`
	DefaultValue  string `json:"default,omitempty" yaml:"default,omitempty"`
	Comment       string `json:"comment,omitempty" yaml:"comment,omitempty"`
	Position      int    `json:"position,omitempty" yaml:"position,omitempty"`
	PrimaryKey    bool   `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	AutoIncrement bool   `json:"auto_increment,omitempty" yaml:"auto_increment,omitempty"`
}

// Table describes a table and its ordered columns.
// Column order is significant: it is the order used in generated SQL.
type Table struct {
	Schema  string   `json:"schema" yaml:"schema"`
	Name    string   `json:"name" yaml:"name"`
	Type    string   `json:"type,omitempty" yaml:"type,omitempty"`
	Comment string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	Columns []Column `json:"columns" yaml:"columns"`
}

// Errors returned by Table.Validate.
var (
	ErrEmptyTableName  = errors.New("table name is required")
	ErrEmptySchemaName = errors.New("schema name is required")
	ErrNoColumns       = errors.New("table has no columns")
)

// QualifiedName returns "schema.name", or just the name when no schema is set.
func (t *Table) QualifiedName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// PrimaryKeys returns the names of primary key columns in column order.
func (t *Table) PrimaryKeys() []string {
	var keys []string
	for _, c := range t.Columns {
		if c.PrimaryKey {
			keys = append(keys, c.Name)
		}
	}
	return keys
}

// Validate checks the invariants generators rely on. Drivers never call it;
// it exists for surfaces that accept table descriptions from users.
func (t *Table) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyTableName
	}
	if strings.TrimSpace(t.Schema) == "" {
		return ErrEmptySchemaName
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("%s: %w", t.QualifiedName(), ErrNoColumns)
	}
	for i, c := range t.Columns {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%s: column %d has no name", t.QualifiedName(), i+1)
		}
		if strings.TrimSpace(c.Type) == "" {
			return fmt.Errorf("%s: column %s has no type", t.QualifiedName(), c.Name)
		}
	}
	return nil
}

// SplitQualifiedName splits "schema.table" into its parts.
// A bare name returns defaultSchema as the schema.
func SplitQualifiedName(ref, defaultSchema string) (schema, name string) {
	if parts := strings.SplitN(ref, ".", 2); len(parts) == 2 {
		return parts[0], parts[1]
	}
	return defaultSchema, ref
}
