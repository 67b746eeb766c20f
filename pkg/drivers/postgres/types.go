package postgres

import (
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
)

// typeMap covers both the SQL-standard names reported by information_schema
// and the internal udt names (int4, float8, ...).
var typeMap = driver.TypeMap{
	"smallint":    core.Short,
	"int2":        core.Short,
	"smallserial": core.Short,
	"serial2":     core.Short,

	"integer": core.Int,
	"int":     core.Int,
	"int4":    core.Int,
	"serial":  core.Int,
	"serial4": core.Int,

	"bigint":    core.Long,
	"int8":      core.Long,
	"bigserial": core.Long,
	"serial8":   core.Long,

	"real":             core.Float,
	"float4":           core.Float,
	"double precision": core.Double,
	"float8":           core.Double,
	"float":            core.Double,

	"numeric": core.Decimal,
	"decimal": core.Decimal,
	"money":   core.Decimal,

	"boolean": core.Boolean,
	"bool":    core.Boolean,

	"character":         core.String,
	"character varying": core.String,
	"char":              core.String,
	"varchar":           core.String,
	"bpchar":            core.String,
	"text":              core.String,
	"name":              core.String,
	"citext":            core.String,
	"inet":              core.String,
	"cidr":              core.String,
	"macaddr":           core.String,
	"xml":               core.String,

	"date": core.Date,

	"time":                   core.Time,
	"time without time zone": core.Time,
	"time with time zone":    core.Time,
	"timetz":                 core.Time,

	"timestamp":                   core.Timestamp,
	"timestamp without time zone": core.Timestamp,
	"timestamp with time zone":    core.Timestamp,
	"timestamptz":                 core.Timestamp,

	"bytea": core.Bytes,

	"json":  core.JSON,
	"jsonb": core.JSON,

	"uuid": core.UUID,

	"array": core.Array,
}
