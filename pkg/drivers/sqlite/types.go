package sqlite

import (
	"strings"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
)

var typeMap = driver.TypeMap{
	"boolean":   core.Boolean,
	"bool":      core.Boolean,
	"tinyint":   core.Byte,
	"smallint":  core.Short,
	"int":       core.Int,
	"integer":   core.Long,
	"bigint":    core.Long,
	"real":      core.Double,
	"float":     core.Double,
	"double":    core.Double,
	"decimal":   core.Decimal,
	"numeric":   core.Decimal,
	"text":      core.String,
	"varchar":   core.String,
	"char":      core.String,
	"clob":      core.String,
	"date":      core.Date,
	"time":      core.Time,
	"datetime":  core.Timestamp,
	"timestamp": core.Timestamp,
	"blob":      core.Bytes,
	"json":      core.JSON,
	"uuid":      core.UUID,
}

// convertType resolves declared types the map does not know with SQLite's
// column affinity rules.
func convertType(native string) core.ColumnType {
	if t := typeMap.Convert(native); t != core.Unknown {
		return t
	}
	name, isArray := driver.NormalizeTypeName(native)
	switch {
	case name == "" || isArray:
		return core.Unknown
	case strings.Contains(name, "int"):
		return core.Long
	case strings.Contains(name, "char"), strings.Contains(name, "clob"), strings.Contains(name, "text"):
		return core.String
	case strings.Contains(name, "blob"):
		return core.Bytes
	case strings.Contains(name, "real"), strings.Contains(name, "floa"), strings.Contains(name, "doub"):
		return core.Double
	}
	return core.Unknown
}
