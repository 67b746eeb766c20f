package commands

import (
	"github.com/spf13/cobra"
)

// NewSchemaCommand creates the schema command group.
func NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Generate schema statements",
	}
	cmd.AddCommand(newSchemaCreateCommand())
	return cmd
}

func newSchemaCreateCommand() *cobra.Command {
	var (
		driverCode string
		execute    bool
	)

	cmd := &cobra.Command{
		Use:   "create <schema>",
		Short: "Generate a CREATE SCHEMA statement",
		Example: `  leapmeta schema create analytics --driver postgres
  leapmeta schema create analytics --exec`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := GetEnv(cmd)
			d, err := env.Driver(driverCode)
			if err != nil {
				return err
			}

			stmt, err := d.CreateSchemaSQL(args[0])
			if err != nil {
				return err
			}
			if !execute {
				return env.Renderer.SQL(stmt)
			}

			src, err := env.openFor(cmd.Context(), d)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			if err := src.Exec(cmd.Context(), stmt); err != nil {
				return err
			}
			env.Renderer.Infof("Created schema %s", args[0])
			return nil
		},
	}

	addDriverFlag(cmd, &driverCode)
	cmd.Flags().BoolVar(&execute, "exec", false, "Execute the statement against the datasource")
	return cmd
}
