package sqlite

import (
	"testing"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver_CreateSchemaSQL_Unsupported(t *testing.T) {
	sql, err := New().CreateSchemaSQL("x")
	require.ErrorIs(t, err, driver.ErrUnsupported)
	assert.Empty(t, sql)
}

func TestDriver_CreateTableSQL(t *testing.T) {
	tbl := &core.Table{
		Schema:  "main",
		Name:    "events",
		Comment: "dropped",
		Columns: []core.Column{
			{Name: "id", Type: "INTEGER", PrimaryKey: true},
			{Name: "payload", Type: "TEXT", Nullable: true, Comment: "dropped too"},
			{Name: "score", Type: "REAL", DefaultValue: "0"},
		},
	}

	want := `CREATE TABLE "main"."events" (
  "id" INTEGER NOT NULL,
  "payload" TEXT,
  "score" REAL NOT NULL DEFAULT 0,
  PRIMARY KEY ("id")
);
`
	assert.Equal(t, want, New().CreateTableSQL(tbl))
}

func TestDriver_QueryDataSQL(t *testing.T) {
	d := New()
	assert.Equal(t, "select * from S.T limit 100", d.QueryDataSQL(core.QueryData{SchemaName: "S", TableName: "T"}))
	assert.Equal(t, "select * from S.T order by a limit 5 offset 10",
		d.QueryDataSQL(core.QueryData{SchemaName: "S", TableName: "T", Option: core.QueryOption{
			Order: "a", LimitStart: "10", LimitEnd: "5",
		}}))
}

func TestDriver_TypeConvert(t *testing.T) {
	tests := []struct {
		native string
		want   core.ColumnType
	}{
		{"INTEGER", core.Long},
		{"int", core.Int},
		{"UNSIGNED BIG INT", core.Long},
		{"VARCHAR(20)", core.String},
		{"NATIVE CHARACTER(70)", core.String},
		{"BLOB", core.Bytes},
		{"DOUBLE PRECISION", core.Double},
		{"DECIMAL(10,5)", core.Decimal},
		{"BOOLEAN", core.Boolean},
		{"DATETIME", core.Timestamp},
		{"", core.Unknown},
		{"geometry", core.Unknown},
	}

	d := New()
	for _, tt := range tests {
		t.Run(tt.native, func(t *testing.T) {
			assert.Equal(t, tt.want, d.TypeConvert(tt.native))
		})
	}
}

func TestCatalog_DSN(t *testing.T) {
	c := New().Catalog()
	assert.Equal(t, ":memory:", c.DSN(core.DataSourceConfig{}))
	assert.Equal(t, "/tmp/app.db", c.DSN(core.DataSourceConfig{Path: "/tmp/app.db"}))
	assert.Equal(t, "main", c.DefaultSchema())
}
