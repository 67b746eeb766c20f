package commands

import (
	"github.com/spf13/cobra"
)

// NewTypesCommand creates the types command.
func NewTypesCommand() *cobra.Command {
	var driverCode string

	cmd := &cobra.Command{
		Use:   "types <native-type>...",
		Short: "Map native column types to canonical types",
		Long: `Show the canonical type, and the matching Flink SQL type, that a driver
maps each native type name to. Unmapped names report "unknown".`,
		Example: `  leapmeta types --driver postgres int8 "character varying" jsonb
  leapmeta types --driver mysql "tinyint(1)" "bigint unsigned"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := GetEnv(cmd)
			d, err := env.Driver(driverCode)
			if err != nil {
				return err
			}

			rows := make([][]any, len(args))
			for i, native := range args {
				ct := d.TypeConvert(native)
				rows[i] = []any{native, ct.String(), ct.FlinkType()}
			}
			return env.Renderer.Table([]string{"native", "canonical", "flink"}, rows)
		},
	}

	addDriverFlag(cmd, &driverCode)
	return cmd
}

// addDriverFlag registers --driver with completion over registered codes.
func addDriverFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "driver", "", "Driver code or alias (default: the datasource type)")
	_ = cmd.RegisterFlagCompletionFunc("driver", func(c *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return GetEnv(c).Registry.List(), cobra.ShellCompDirectiveNoFileComp
	})
}
