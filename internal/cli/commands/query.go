package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	var (
		driverCode string
		opt        core.QueryOption
		execute    bool
	)

	cmd := &cobra.Command{
		Use:   "query <table>",
		Short: "Generate or run a paginated data preview query",
		Long: `Generate the paginated preview query a dialect uses to page through table
data. --where and --order are inserted verbatim. --start and --end default
to 0 and 100.

With --exec the query runs against the datasource and the rows are printed.`,
		Example: `  leapmeta query public.orders --where "status = 'open'" --order "id desc" --end 20
  leapmeta query orders --exec -o csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := GetEnv(cmd)
			d, err := env.Driver(driverCode)
			if err != nil {
				return err
			}
			if err := opt.Validate(); err != nil {
				return err
			}

			schema, name := core.SplitQualifiedName(args[0], env.DefaultSchema(d))
			q := core.QueryData{SchemaName: schema, TableName: name, Option: opt}

			if !execute {
				if schema == "" {
					return fmt.Errorf("table %q needs a schema for %s", args[0], d.Type())
				}
				return env.Renderer.SQL(d.QueryDataSQL(q))
			}

			src, err := env.openFor(cmd.Context(), d)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			p, err := src.Preview(cmd.Context(), q)
			if err != nil {
				return err
			}
			env.Logger.Debug("preview complete", "sql", p.SQL, "rows", len(p.Rows))
			return env.Renderer.Table(p.Columns, p.Rows)
		},
	}

	addDriverFlag(cmd, &driverCode)
	cmd.Flags().StringVar(&opt.Where, "where", "", "Filter predicate")
	cmd.Flags().StringVar(&opt.Order, "order", "", "Ordering expression")
	cmd.Flags().StringVar(&opt.LimitStart, "start", core.DefaultLimitStart, "First row bound")
	cmd.Flags().StringVar(&opt.LimitEnd, "end", core.DefaultLimitEnd, "Last row bound")
	cmd.Flags().BoolVar(&execute, "exec", false, "Run the query and print the rows")
	return cmd
}
