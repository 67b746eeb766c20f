package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapmeta/internal/api"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var driverCode string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the driver API over HTTP",
		Long: `Start an HTTP server exposing SQL generation for every registered driver
and the table definitions found in the definitions directory.

With --watch the definitions are reloaded when files change, and clients
subscribed to /api/events are notified.`,
		Example: `  leapmeta serve --port 8780
  leapmeta serve --defs-dir tables --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := GetEnv(cmd)

			defaultSchema := ""
			if d, err := env.Driver(driverCode); err == nil {
				defaultSchema = env.DefaultSchema(d)
			}

			defsDir := env.Config.DefsDir
			if !pathExists(defsDir) {
				env.Logger.Warn("table definitions directory not found, serving drivers only", "dir", defsDir)
				defsDir = ""
			}

			srv := api.NewServer(api.Config{
				Registry:      env.Registry,
				Logger:        env.Logger,
				Port:          env.Config.Server.Port,
				DefsDir:       defsDir,
				DefaultSchema: defaultSchema,
				Watch:         env.Config.Server.Watch,

				MaxConnections: env.Config.Server.MaxConnections,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			env.Renderer.Infof("Serving on http://localhost:%d (Ctrl+C to stop)", env.Config.Server.Port)
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().Int("port", 0, "Port to listen on (default from config, 8780)")
	cmd.Flags().Bool("watch", false, "Reload table definitions on change")
	addDriverFlag(cmd, &driverCode)
	return cmd
}
