// Package cli provides the command-line interface for leapmeta.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapmeta/internal/cli/commands"
	"github.com/leapstack-labs/leapmeta/internal/cli/config"
	"github.com/leapstack-labs/leapmeta/internal/cli/output"
	"github.com/leapstack-labs/leapmeta/pkg/drivers"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "leapmeta",
		Short: "leapmeta - SQL dialect drivers for table metadata",
		Long: `leapmeta turns table metadata into vendor-correct SQL for PostgreSQL, MySQL,
SQLite, DuckDB and SQL Server.

It introspects live databases, generates DDL, SELECT and paginated preview
queries in any supported dialect, snapshots tables to detect drift, and
serves the same generation over HTTP.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			reg, err := drivers.NewRegistry()
			if err != nil {
				return err
			}

			if cfg.Verbose && cfg.ConfigFile != "" {
				logger.Debug("using config file", "path", cfg.ConfigFile)
			}

			ctx := config.WithLogger(cmd.Context(), logger)
			ctx = commands.WithEnv(ctx, &commands.Env{
				Config:   cfg,
				Registry: reg,
				Logger:   logger,
				Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
			})
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: leapmeta.yaml, searched upward)")
	rootCmd.PersistentFlags().StringP("datasource", "d", "", "Datasource name from the config file")
	rootCmd.PersistentFlags().String("state", "", "Path to the snapshot state database")
	rootCmd.PersistentFlags().String("defs-dir", "", "Path to YAML table definitions")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|table|markdown|json|csv)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "table", "markdown", "json", "csv"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(
		commands.NewVersionCommand(Version),
		commands.NewDriversCommand(),
		commands.NewTypesCommand(),
		commands.NewSchemaCommand(),
		commands.NewDDLCommand(),
		commands.NewSelectCommand(),
		commands.NewQueryCommand(),
		commands.NewTablesCommand(),
		commands.NewSnapshotCommand(),
		commands.NewServeCommand(),
		NewCompletionCommand(),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for leapmeta.

To load completions:

Bash:
  $ source <(leapmeta completion bash)

Zsh:
  $ leapmeta completion zsh > "${fpath[1]}/_leapmeta"

Fish:
  $ leapmeta completion fish | source

PowerShell:
  PS> leapmeta completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
