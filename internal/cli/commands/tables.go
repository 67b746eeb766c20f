package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	var columns bool

	cmd := &cobra.Command{
		Use:   "tables [schema]",
		Short: "List tables of a datasource schema",
		Long: `List the tables and views of a schema in the configured datasource. The
schema defaults to the datasource schema, then the driver's default.

With --columns each table's columns are introspected as well and listed one
row per column.`,
		Example: `  leapmeta tables
  leapmeta tables sales --columns -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := GetEnv(cmd)
			ctx := cmd.Context()

			src, err := env.OpenSource(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			schema := src.DefaultSchema()
			if len(args) == 1 {
				schema = args[0]
			}

			if !columns {
				tables, err := src.Tables(ctx, schema)
				if err != nil {
					return err
				}
				rows := make([][]any, len(tables))
				for i, t := range tables {
					rows[i] = []any{t.Schema, t.Name, t.Type, t.Comment}
				}
				return env.Renderer.Table([]string{"schema", "name", "type", "comment"}, rows)
			}

			tables, err := src.SchemaTables(ctx, schema)
			if err != nil {
				return err
			}
			return env.Renderer.Table(columnHeaders, columnRows(src.Driver.TypeConvert, tables))
		},
	}

	cmd.Flags().BoolVar(&columns, "columns", false, "Introspect and list columns")
	return cmd
}

var columnHeaders = []string{"table", "position", "column", "type", "canonical", "nullable", "default", "primary_key", "comment"}

func columnRows(convert func(string) core.ColumnType, tables []*core.Table) [][]any {
	var rows [][]any
	for _, t := range tables {
		for _, c := range t.Columns {
			rows = append(rows, []any{
				t.QualifiedName(), c.Position, c.Name, c.Type, convert(c.Type).String(),
				c.Nullable, c.DefaultValue, c.PrimaryKey, c.Comment,
			})
		}
	}
	return rows
}
