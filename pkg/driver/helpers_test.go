package driver

import (
	"testing"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain comment", "plain comment"},
		{`user's "display" name`, "users display name"},
		{`''""`, ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := StripQuotes(tt.in)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, `'`)
			assert.NotContains(t, got, `"`)
		})
	}
}

func TestTypeWithSuffix(t *testing.T) {
	tests := []struct {
		name string
		col  core.Column
		want string
	}{
		{"precision and scale", core.Column{Type: "numeric", Length: 12, Precision: 10, Scale: 2}, "numeric(10,2)"},
		{"length only", core.Column{Type: "varchar", Length: 64}, "varchar(64)"},
		{"precision without scale falls back to length", core.Column{Type: "varchar", Precision: 10, Length: 20}, "varchar(20)"},
		{"precision without scale or length", core.Column{Type: "int4", Precision: 32}, "int4"},
		{"nothing", core.Column{Type: "text"}, "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeWithSuffix(tt.col))
		})
	}
}

func TestHasMarker(t *testing.T) {
	assert.True(t, HasMarker("nextval('users_id_seq'::regclass)", "nextval"))
	assert.True(t, HasMarker("NEXTVAL('s')", "nextval"))
	assert.False(t, HasMarker("'active'::character varying", "nextval"))
	assert.False(t, HasMarker("anything"))
}

func TestNormalizeTypeName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		isArray bool
	}{
		{"VARCHAR(255)", "varchar", false},
		{"timestamp(6)  with time zone", "timestamp with time zone", false},
		{"integer[]", "integer", true},
		{"text[][]", "text", true},
		{"  Numeric(10, 2) ", "numeric", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, isArray := NormalizeTypeName(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.isArray, isArray)
		})
	}
}

func TestTypeMap_Convert(t *testing.T) {
	m := TypeMap{"int4": core.Int, "varchar": core.String}

	assert.Equal(t, core.Int, m.Convert("INT4"))
	assert.Equal(t, core.String, m.Convert("varchar(20)"))
	assert.Equal(t, core.Array, m.Convert("int4[]"))
	assert.Equal(t, core.Unknown, m.Convert("geometry"))
	assert.Equal(t, core.Unknown, m.Convert(""))
}
