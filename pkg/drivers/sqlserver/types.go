package sqlserver

import (
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
)

// "timestamp" is a row version in SQL Server, not a point in time.
var typeMap = driver.TypeMap{
	"bit": core.Boolean,

	"tinyint":  core.Short,
	"smallint": core.Short,
	"int":      core.Int,
	"bigint":   core.Long,

	"real":       core.Float,
	"float":      core.Double,
	"decimal":    core.Decimal,
	"numeric":    core.Decimal,
	"money":      core.Decimal,
	"smallmoney": core.Decimal,

	"char":     core.String,
	"varchar":  core.String,
	"nchar":    core.String,
	"nvarchar": core.String,
	"text":     core.String,
	"ntext":    core.String,
	"xml":      core.String,
	"sysname":  core.String,

	"date":           core.Date,
	"time":           core.Time,
	"datetime":       core.Timestamp,
	"datetime2":      core.Timestamp,
	"smalldatetime":  core.Timestamp,
	"datetimeoffset": core.Timestamp,

	"binary":     core.Bytes,
	"varbinary":  core.Bytes,
	"image":      core.Bytes,
	"rowversion": core.Bytes,
	"timestamp":  core.Bytes,

	"uniqueidentifier": core.UUID,
}
