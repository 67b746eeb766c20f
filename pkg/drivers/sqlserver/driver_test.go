package sqlserver

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestDriver_CreateTableSQL(t *testing.T) {
	tbl := &core.Table{
		Schema:  "dbo",
		Name:    "customers",
		Comment: "crm 'customers'",
		Columns: []core.Column{
			{Name: "id", Type: "int", PrimaryKey: true, AutoIncrement: true},
			{Name: "name", Type: "nvarchar", Length: -1, Comment: "full name"},
			{Name: "rate", Type: "decimal", Precision: 5, Scale: 2, Nullable: true, DefaultValue: "((0))"},
		},
	}

	want := `CREATE TABLE [dbo].[customers] (
  [id] int IDENTITY(1,1) NOT NULL,
  [name] nvarchar(max) NOT NULL,
  [rate] decimal(5,2) DEFAULT ((0)),
  PRIMARY KEY ([id])
);

EXEC sp_addextendedproperty 'MS_Description', N'full name', 'SCHEMA', N'dbo', 'TABLE', N'customers', 'COLUMN', N'name';
EXEC sp_addextendedproperty 'MS_Description', N'crm customers', 'SCHEMA', N'dbo', 'TABLE', N'customers';
`
	got := New().CreateTableSQL(tbl)
	assert.Equal(t, want, got)
	assert.Equal(t, strings.Count(got, "("), strings.Count(got, ")"))
}

func TestDriver_SelectAllSQL(t *testing.T) {
	tbl := &core.Table{Schema: "s", Name: "t", Columns: []core.Column{{Name: "a]b"}, {Name: "c", Comment: "x"}}}
	assert.Equal(t, "SELECT\n    [a]]b]\n    ,[c] -- x\n FROM [s].[t];\n", New().SelectAllSQL(tbl))
}

func TestDriver_QueryDataSQL(t *testing.T) {
	tests := []struct {
		name string
		opt  core.QueryOption
		want string
	}{
		{"defaults", core.QueryOption{}, "select top 100 * from S.T"},
		{"where", core.QueryOption{Where: "id=1", LimitEnd: "5"}, "select top 5 * from S.T where id=1"},
		{
			"ordered",
			core.QueryOption{Order: "id desc", LimitStart: "20", LimitEnd: "10"},
			"select * from S.T order by id desc offset 20 rows fetch next 10 rows only",
		},
		{
			"unordered page",
			core.QueryOption{Where: "id>1", LimitStart: "20", LimitEnd: "10"},
			"select * from S.T where id>1 order by (select null) offset 20 rows fetch next 10 rows only",
		},
		{"unordered invalid start", core.QueryOption{LimitStart: "x", LimitEnd: "10"}, "select top 10 * from S.T"},
	}

	d := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.QueryDataSQL(core.QueryData{SchemaName: "S", TableName: "T", Option: tt.opt}))
		})
	}
}

func TestDriver_TypeConvert(t *testing.T) {
	d := New()
	assert.Equal(t, core.Boolean, d.TypeConvert("bit"))
	assert.Equal(t, core.UUID, d.TypeConvert("uniqueidentifier"))
	assert.Equal(t, core.String, d.TypeConvert("nvarchar(max)"))
	assert.Equal(t, core.Timestamp, d.TypeConvert("datetime2(7)"))
	assert.Equal(t, core.Bytes, d.TypeConvert("timestamp"))
	assert.Equal(t, core.Unknown, d.TypeConvert("geography"))
}

func TestCatalog_DSN(t *testing.T) {
	c := New().Catalog()
	assert.Equal(t, "sqlserver://sa:secret@db:1433?database=app",
		c.DSN(core.DataSourceConfig{Host: "db", Database: "app", Username: "sa", Password: "secret"}))
	assert.Equal(t, "sqlserver://localhost:1433", c.DSN(core.DataSourceConfig{}))
	assert.Equal(t, "dbo", c.DefaultSchema())
}
