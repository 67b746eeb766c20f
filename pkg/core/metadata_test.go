package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		table   Table
		wantErr error
		errMsg  string
	}{
		{
			name:  "valid",
			table: Table{Schema: "public", Name: "users", Columns: []Column{{Name: "id", Type: "int4"}}},
		},
		{
			name:    "missing name",
			table:   Table{Schema: "public", Columns: []Column{{Name: "id", Type: "int4"}}},
			wantErr: ErrEmptyTableName,
		},
		{
			name:    "missing schema",
			table:   Table{Name: "users", Columns: []Column{{Name: "id", Type: "int4"}}},
			wantErr: ErrEmptySchemaName,
		},
		{
			name:    "no columns",
			table:   Table{Schema: "public", Name: "users"},
			wantErr: ErrNoColumns,
		},
		{
			name:   "column without name",
			table:  Table{Schema: "public", Name: "users", Columns: []Column{{Type: "int4"}}},
			errMsg: "column 1 has no name",
		},
		{
			name:   "column without type",
			table:  Table{Schema: "public", Name: "users", Columns: []Column{{Name: "id"}}},
			errMsg: "column id has no type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestTable_PrimaryKeys(t *testing.T) {
	table := Table{Columns: []Column{
		{Name: "tenant_id", PrimaryKey: true},
		{Name: "name"},
		{Name: "id", PrimaryKey: true},
	}}
	assert.Equal(t, []string{"tenant_id", "id"}, table.PrimaryKeys())
	assert.Nil(t, (&Table{}).PrimaryKeys())
}

func TestTable_QualifiedName(t *testing.T) {
	assert.Equal(t, "public.users", (&Table{Schema: "public", Name: "users"}).QualifiedName())
	assert.Equal(t, "users", (&Table{Name: "users"}).QualifiedName())
}

func TestSplitQualifiedName(t *testing.T) {
	tests := []struct {
		ref, def, schema, name string
	}{
		{"public.users", "main", "public", "users"},
		{"users", "main", "main", "users"},
		{"a.b.c", "", "a", "b.c"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			schema, name := SplitQualifiedName(tt.ref, tt.def)
			assert.Equal(t, tt.schema, schema)
			assert.Equal(t, tt.name, name)
		})
	}
}
