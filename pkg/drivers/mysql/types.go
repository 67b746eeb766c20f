package mysql

import (
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
)

// Unsigned integers map to the next wider canonical type.
var typeMap = driver.TypeMap{
	"bool":    core.Boolean,
	"boolean": core.Boolean,

	"tinyint":            core.Byte,
	"tinyint unsigned":   core.Short,
	"smallint":           core.Short,
	"smallint unsigned":  core.Int,
	"mediumint":          core.Int,
	"mediumint unsigned": core.Int,
	"int":                core.Int,
	"integer":            core.Int,
	"int unsigned":       core.Long,
	"integer unsigned":   core.Long,
	"bigint":             core.Long,
	"bigint unsigned":    core.Decimal,
	"year":               core.Short,

	"float":            core.Float,
	"float unsigned":   core.Float,
	"double":           core.Double,
	"double precision": core.Double,
	"real":             core.Double,
	"decimal":          core.Decimal,
	"decimal unsigned": core.Decimal,
	"numeric":          core.Decimal,

	"char":       core.String,
	"varchar":    core.String,
	"tinytext":   core.String,
	"text":       core.String,
	"mediumtext": core.String,
	"longtext":   core.String,
	"enum":       core.String,
	"set":        core.String,

	"date":      core.Date,
	"time":      core.Time,
	"datetime":  core.Timestamp,
	"timestamp": core.Timestamp,

	"binary":     core.Bytes,
	"varbinary":  core.Bytes,
	"tinyblob":   core.Bytes,
	"blob":       core.Bytes,
	"mediumblob": core.Bytes,
	"longblob":   core.Bytes,
	"bit":        core.Bytes,

	"json": core.JSON,
}
