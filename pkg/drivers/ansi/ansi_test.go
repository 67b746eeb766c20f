package ansi

import (
	"testing"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestGenerator_ColumnDefinition(t *testing.T) {
	g := Generator{SequenceMarkers: []string{"nextval"}}

	tests := []struct {
		name string
		col  core.Column
		want string
	}{
		{
			name: "precision and scale",
			col:  core.Column{Name: "amount", Type: "numeric", Length: 9, Precision: 10, Scale: 2, Nullable: true},
			want: `"amount" numeric(10,2)`,
		},
		{
			name: "length only",
			col:  core.Column{Name: "code", Type: "varchar", Length: 20},
			want: `"code" varchar(20) NOT NULL`,
		},
		{
			name: "precision without scale falls back to length",
			col:  core.Column{Name: "n", Type: "numeric", Precision: 10, Nullable: true},
			want: `"n" numeric`,
		},
		{
			name: "default kept",
			col:  core.Column{Name: "status", Type: "text", Nullable: true, DefaultValue: "'new'::text"},
			want: `"status" text DEFAULT 'new'::text`,
		},
		{
			name: "sequence default dropped",
			col:  core.Column{Name: "id", Type: "int4", DefaultValue: "NEXTVAL('t_id_seq')"},
			want: `"id" int4 NOT NULL`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.ColumnDefinition(tt.col))
		})
	}
}

func TestGenerator_CreateTable_PrimaryKey(t *testing.T) {
	g := Generator{PrimaryKeyClause: true}
	tbl := &core.Table{
		Schema: "s",
		Name:   "t",
		Columns: []core.Column{
			{Name: "a", Type: "integer", PrimaryKey: true},
			{Name: "b", Type: "integer", PrimaryKey: true},
			{Name: "c", Type: "text", Nullable: true, Comment: "ignored"},
		},
	}

	want := `CREATE TABLE "s"."t" (
  "a" integer NOT NULL,
  "b" integer NOT NULL,
  "c" text,
  PRIMARY KEY ("a", "b")
);
`
	assert.Equal(t, want, g.CreateTable(tbl))
}

func TestGenerator_CustomQuote(t *testing.T) {
	g := Generator{Quote: func(s string) string { return "`" + s + "`" }}
	assert.Equal(t, "`s`.`t`", g.Qualified("s", "t"))
}

func TestGenerator_SelectAll_TableComment(t *testing.T) {
	tbl := &core.Table{
		Schema:  "s",
		Name:    "t",
		Comment: `it's "main"`,
		Columns: []core.Column{{Name: "a"}},
	}

	want := "SELECT\n    \"a\"\n FROM \"s\".\"t\"; -- its main\n"
	assert.Equal(t, want, Generator{}.SelectAll(tbl))
}

func TestLimitOffset(t *testing.T) {
	tests := []struct {
		name string
		opt  core.QueryOption
		want string
	}{
		{"defaults", core.QueryOption{}, "select * from s.t limit 100"},
		{"zero start", core.QueryOption{LimitStart: "0", LimitEnd: "10"}, "select * from s.t limit 10"},
		{"with start", core.QueryOption{LimitStart: "20", LimitEnd: "10"}, "select * from s.t limit 10 offset 20"},
		{"with where", core.QueryOption{Where: "a = 1"}, "select * from s.t where a = 1 limit 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := core.QueryData{SchemaName: "s", TableName: "t", Option: tt.opt}
			assert.Equal(t, tt.want, LimitOffset(q))
		})
	}
}
