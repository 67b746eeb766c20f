package postgres

import (
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ordersTable() *core.Table {
	return &core.Table{
		Schema:  "sales",
		Name:    "orders",
		Comment: `customer "orders"`,
		Columns: []core.Column{
			{Name: "id", Type: "int8", DefaultValue: "nextval('orders_id_seq'::regclass)", PrimaryKey: true},
			{Name: "code", Type: "varchar", Length: 32, Comment: "order's code"},
			{Name: "amount", Type: "numeric", Precision: 12, Scale: 2, Nullable: true, DefaultValue: "0"},
			{Name: "note", Type: "text", Nullable: true},
		},
	}
}

func TestDriver_Identity(t *testing.T) {
	d := New()
	assert.Equal(t, "PostgreSql", d.Type())
	assert.Equal(t, "PostgreSql Database", d.Name())
	assert.Contains(t, d.Aliases(), "postgres")
}

func TestDriver_CreateSchemaSQL(t *testing.T) {
	sql, err := New().CreateSchemaSQL("analytics")
	require.NoError(t, err)
	assert.Equal(t, "CREATE SCHEMA analytics", sql)
}

func TestDriver_CreateTableSQL(t *testing.T) {
	got := New().CreateTableSQL(ordersTable())

	want := `CREATE TABLE "sales"."orders" (
  "id" int8 NOT NULL,
  "code" varchar(32) NOT NULL,
  "amount" numeric(12,2) DEFAULT 0,
  "note" text
);

COMMENT ON COLUMN "sales"."orders"."code" IS 'orders code';
COMMENT ON TABLE "sales"."orders" IS 'customer orders';
`
	assert.Equal(t, want, got)
	assert.Equal(t, strings.Count(got, "("), strings.Count(got, ")"))
	assert.NotContains(t, got, "nextval")
}

func TestDriver_CreateTableSQL_CommentOrder(t *testing.T) {
	tbl := &core.Table{
		Schema: "s",
		Name:   "t",
		Columns: []core.Column{
			{Name: "b", Type: "text", Nullable: true, Comment: "second"},
			{Name: "a", Type: "text", Nullable: true},
			{Name: "c", Type: "text", Nullable: true, Comment: "third"},
		},
	}

	got := New().CreateTableSQL(tbl)

	first := strings.Index(got, `"t"."b" IS 'second'`)
	second := strings.Index(got, `"t"."c" IS 'third'`)
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
	assert.Equal(t, 2, strings.Count(got, "COMMENT ON COLUMN"))
	assert.NotContains(t, got, "COMMENT ON TABLE")
	assert.Less(t, strings.Index(got, ");"), first)
}

func TestDriver_SelectAllSQL(t *testing.T) {
	tbl := &core.Table{
		Schema: "s",
		Name:   "t",
		Columns: []core.Column{
			{Name: "a"},
			{Name: "b", Comment: "x"},
		},
	}

	got := New().SelectAllSQL(tbl)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "SELECT", lines[0])
	assert.Equal(t, `    "a"`, lines[1])
	assert.Equal(t, `    ,"b" -- x`, lines[2])
	assert.Equal(t, ` FROM "s"."t";`, lines[3])
}

func TestDriver_QueryDataSQL(t *testing.T) {
	tests := []struct {
		name string
		q    core.QueryData
		want string
	}{
		{
			name: "defaults",
			q:    core.QueryData{SchemaName: "S", TableName: "T"},
			want: "select * from S.T limit 100",
		},
		{
			name: "where and order",
			q: core.QueryData{SchemaName: "S", TableName: "T", Option: core.QueryOption{
				Where: "id=1", Order: "id desc", LimitEnd: "50",
			}},
			want: "select * from S.T where id=1 order by id desc limit 50",
		},
		{
			name: "start is not emitted",
			q: core.QueryData{SchemaName: "S", TableName: "T", Option: core.QueryOption{
				LimitStart: "20", LimitEnd: "10",
			}},
			want: "select * from S.T limit 10",
		},
		{
			name: "blank clauses are skipped",
			q: core.QueryData{SchemaName: "S", TableName: "T", Option: core.QueryOption{
				Where: "  ", Order: "",
			}},
			want: "select * from S.T limit 100",
		},
	}

	d := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.QueryDataSQL(tt.q))
		})
	}
}

func TestDriver_Idempotent(t *testing.T) {
	d := New()
	tbl := ordersTable()
	q := core.QueryData{SchemaName: "S", TableName: "T", Option: core.QueryOption{Where: "x > 1"}}

	assert.Equal(t, d.CreateTableSQL(tbl), d.CreateTableSQL(tbl))
	assert.Equal(t, d.SelectAllSQL(tbl), d.SelectAllSQL(tbl))
	assert.Equal(t, d.QueryDataSQL(q), d.QueryDataSQL(q))
	assert.Equal(t, ordersTable(), tbl)
}

func TestDriver_TypeConvert(t *testing.T) {
	tests := []struct {
		native string
		want   core.ColumnType
	}{
		{"integer", core.Int},
		{"INT4", core.Int},
		{"bigserial", core.Long},
		{"smallint", core.Short},
		{"double precision", core.Double},
		{"numeric(10,2)", core.Decimal},
		{"character varying(255)", core.String},
		{"bpchar", core.String},
		{"boolean", core.Boolean},
		{"timestamp with time zone", core.Timestamp},
		{"timestamptz", core.Timestamp},
		{"date", core.Date},
		{"bytea", core.Bytes},
		{"jsonb", core.JSON},
		{"uuid", core.UUID},
		{"text[]", core.Array},
		{"interval", core.Unknown},
		{"", core.Unknown},
	}

	d := New()
	for _, tt := range tests {
		t.Run(tt.native, func(t *testing.T) {
			assert.Equal(t, tt.want, d.TypeConvert(tt.native))
		})
	}
}

func TestCatalog_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  core.DataSourceConfig
		want string
	}{
		{
			name: "defaults",
			cfg:  core.DataSourceConfig{Database: "app"},
			want: "host=localhost port=5432 dbname=app sslmode=disable",
		},
		{
			name: "full",
			cfg: core.DataSourceConfig{
				Host: "db", Port: 6543, Database: "app", Username: "u", Password: "p",
				Options: map[string]string{"sslmode": "require"},
			},
			want: "host=db port=6543 dbname=app sslmode=require user=u password=p",
		},
	}

	c := New().Catalog()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.DSN(tt.cfg))
		})
	}
	assert.Equal(t, "pgx", c.DriverName())
	assert.Equal(t, "public", c.DefaultSchema())
	assert.Contains(t, c.ColumnsQuery(), "$2")
}

func TestCatalog_DSN_QuotedValues(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     string
	}{
		{name: "space", password: "p w", want: "password='p w'"},
		{name: "quote", password: `it's`, want: `password='it\'s'`},
		{name: "backslash", password: `a\b`, want: `password='a\\b'`},
		{name: "injected keyword", password: "x sslmode=require", want: "password='x sslmode=require'"},
	}

	c := New().Catalog()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := c.DSN(core.DataSourceConfig{Database: "app", Username: "u", Password: tt.password})
			assert.Contains(t, dsn, tt.want)

			cfg, err := pgx.ParseConfig(dsn)
			require.NoError(t, err)
			assert.Equal(t, tt.password, cfg.Password)
			assert.Equal(t, "u", cfg.User)
			assert.Equal(t, "app", cfg.Database)
			assert.Nil(t, cfg.TLSConfig)
		})
	}
}
