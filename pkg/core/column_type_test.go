package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnType_String(t *testing.T) {
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "long", Long.String())
	assert.Equal(t, "unknown", ColumnType(999).String())
}

func TestColumnType_FlinkType(t *testing.T) {
	tests := []struct {
		typ  ColumnType
		want string
	}{
		{String, "STRING"},
		{Short, "SMALLINT"},
		{Long, "BIGINT"},
		{Decimal, "DECIMAL"},
		{Timestamp, "TIMESTAMP"},
		{UUID, "STRING"},
		{Unknown, ""},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.FlinkType())
		})
	}
}

func TestParseColumnType(t *testing.T) {
	for typ := Unknown; typ <= Array; typ++ {
		parsed, err := ParseColumnType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}

	_, err := ParseColumnType("varchar")
	assert.Error(t, err)
}

func TestColumnType_JSON(t *testing.T) {
	out, err := json.Marshal(map[string]ColumnType{"type": Timestamp})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"timestamp"}`, string(out))

	var in struct {
		Type ColumnType `json:"type"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"type":"bytes"}`), &in))
	assert.Equal(t, Bytes, in.Type)
}
