package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewDriversCommand creates the drivers command.
func NewDriversCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "List the available SQL dialect drivers",
		Long: `List every registered dialect driver with its lookup aliases, the
database/sql driver used to connect, and the default schema.`,
		Example: `  leapmeta drivers
  leapmeta drivers -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := GetEnv(cmd)

			var rows [][]any
			for _, d := range env.Registry.Drivers() {
				cat := d.Catalog()
				rows = append(rows, []any{d.Type(), d.Name(), strings.Join(d.Aliases(), ", "), cat.DriverName(), cat.DefaultSchema()})
			}
			return env.Renderer.Table([]string{"type", "name", "aliases", "sql_driver", "default_schema"}, rows)
		},
	}
}
