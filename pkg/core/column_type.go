package core

import "fmt"

// ColumnType is the platform-neutral type a vendor-native type maps into.
type ColumnType int

const (
	// Unknown marks a native type with no canonical mapping.
	Unknown ColumnType = iota
	String
	Boolean
	Byte
	Short
	Int
	Long
	Float
	Double
	Decimal
	Date
	Time
	Timestamp
	Bytes
	JSON
	UUID
	Array
)

var columnTypeNames = [...]string{
	Unknown:   "unknown",
	String:    "string",
	Boolean:   "boolean",
	Byte:      "byte",
	Short:     "short",
	Int:       "int",
	Long:      "long",
	Float:     "float",
	Double:    "double",
	Decimal:   "decimal",
	Date:      "date",
	Time:      "time",
	Timestamp: "timestamp",
	Bytes:     "bytes",
	JSON:      "json",
	UUID:      "uuid",
	Array:     "array",
}

// flinkTypes maps canonical types to Flink SQL type names.
var flinkTypes = [...]string{
	Unknown:   "",
	String:    "STRING",
	Boolean:   "BOOLEAN",
	Byte:      "TINYINT",
	Short:     "SMALLINT",
	Int:       "INT",
	Long:      "BIGINT",
	Float:     "FLOAT",
	Double:    "DOUBLE",
	Decimal:   "DECIMAL",
	Date:      "DATE",
	Time:      "TIME",
	Timestamp: "TIMESTAMP",
	Bytes:     "BYTES",
	JSON:      "STRING",
	UUID:      "STRING",
	Array:     "ARRAY<STRING>",
}

// String returns the canonical type name.
func (t ColumnType) String() string {
	if t < 0 || int(t) >= len(columnTypeNames) {
		return columnTypeNames[Unknown]
	}
	return columnTypeNames[t]
}

// IsKnown reports whether t is a mapped canonical type.
func (t ColumnType) IsKnown() bool {
	return t > Unknown && int(t) < len(columnTypeNames)
}

// FlinkType returns the Flink SQL type for t, or "" for Unknown.
func (t ColumnType) FlinkType() string {
	if !t.IsKnown() {
		return ""
	}
	return flinkTypes[t]
}

// ParseColumnType parses a canonical type name as produced by String.
func ParseColumnType(s string) (ColumnType, error) {
	for i, name := range columnTypeNames {
		if name == s {
			return ColumnType(i), nil
		}
	}
	return Unknown, fmt.Errorf("unknown column type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t ColumnType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ColumnType) UnmarshalText(b []byte) error {
	parsed, err := ParseColumnType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
