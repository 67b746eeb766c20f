package duckdb

import (
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
)

var typeMap = driver.TypeMap{
	"boolean": core.Boolean,
	"bool":    core.Boolean,
	"logical": core.Boolean,

	"tinyint":   core.Byte,
	"int1":      core.Byte,
	"utinyint":  core.Short,
	"smallint":  core.Short,
	"int2":      core.Short,
	"short":     core.Short,
	"usmallint": core.Int,
	"integer":   core.Int,
	"int":       core.Int,
	"int4":      core.Int,
	"signed":    core.Int,
	"uinteger":  core.Long,
	"bigint":    core.Long,
	"int8":      core.Long,
	"long":      core.Long,
	"ubigint":   core.Decimal,
	"hugeint":   core.Decimal,
	"uhugeint":  core.Decimal,

	"float":   core.Float,
	"float4":  core.Float,
	"real":    core.Float,
	"double":  core.Double,
	"float8":  core.Double,
	"decimal": core.Decimal,
	"numeric": core.Decimal,

	"varchar": core.String,
	"char":    core.String,
	"bpchar":  core.String,
	"text":    core.String,
	"string":  core.String,
	"enum":    core.String,

	"date":                     core.Date,
	"time":                     core.Time,
	"timestamp":                core.Timestamp,
	"datetime":                 core.Timestamp,
	"timestamptz":              core.Timestamp,
	"timestamp with time zone": core.Timestamp,
	"timestamp_s":              core.Timestamp,
	"timestamp_ms":             core.Timestamp,
	"timestamp_ns":             core.Timestamp,

	"blob":      core.Bytes,
	"bytea":     core.Bytes,
	"binary":    core.Bytes,
	"varbinary": core.Bytes,

	"json": core.JSON,
	"uuid": core.UUID,
	"list": core.Array,
}
