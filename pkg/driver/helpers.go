package driver

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// StripQuotes removes single and double quote characters from comment text
// so it can be embedded in a literal or a line comment.
func StripQuotes(s string) string {
	if !strings.ContainsAny(s, `'"`) {
		return s
	}
	return strings.NewReplacer(`'`, "", `"`, "").Replace(s)
}

// TypeWithSuffix renders a column's native type with its size suffix:
// "(precision,scale)" when both are set, else "(length)" when length is set.
func TypeWithSuffix(c core.Column) string {
	switch {
	case c.Precision > 0 && c.Scale > 0:
		return c.Type + "(" + strconv.Itoa(c.Precision) + "," + strconv.Itoa(c.Scale) + ")"
	case c.Length > 0:
		return c.Type + "(" + strconv.Itoa(c.Length) + ")"
	default:
		return c.Type
	}
}

// HasMarker reports whether value contains any of the markers,
// case-insensitively. Used to spot sequence-backed default expressions.
func HasMarker(value string, markers ...string) bool {
	lower := strings.ToLower(value)
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// TypeMap maps normalized native type names to canonical types.
type TypeMap map[string]core.ColumnType

var (
	typeArgs   = regexp.MustCompile(`\([^)]*\)`)
	whitespace = regexp.MustCompile(`\s+`)
)

// NormalizeTypeName lowercases a native type, drops size arguments and
// collapses whitespace: "TIMESTAMP(6) WITH TIME ZONE" -> "timestamp with time zone".
// A trailing "[]" is removed and reported as an array.
func NormalizeTypeName(native string) (name string, isArray bool) {
	name = strings.ToLower(strings.TrimSpace(native))
	for strings.HasSuffix(name, "[]") {
		name = strings.TrimSpace(strings.TrimSuffix(name, "[]"))
		isArray = true
	}
	name = typeArgs.ReplaceAllString(name, "")
	name = whitespace.ReplaceAllString(strings.TrimSpace(name), " ")
	return name, isArray
}

// Convert looks up a native type. Array types map to core.Array, and names
// missing from the map return core.Unknown.
func (m TypeMap) Convert(native string) core.ColumnType {
	name, isArray := NormalizeTypeName(native)
	if name == "" {
		return core.Unknown
	}
	if isArray {
		return core.Array
	}
	if t, ok := m[name]; ok {
		return t
	}
	return core.Unknown
}
