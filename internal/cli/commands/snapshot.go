package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapmeta/internal/cli/output"
	"github.com/leapstack-labs/leapmeta/internal/state"
	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// NewSnapshotCommand creates the snapshot command group.
func NewSnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Record and compare table snapshots",
		Long: `Snapshots store an introspected table together with the DDL generated for
it in the state database. Comparing a live table against its latest snapshot
reports column drift.`,
	}

	cmd.AddCommand(
		newSnapshotSaveCommand(),
		newSnapshotListCommand(),
		newSnapshotShowCommand(),
		newSnapshotDiffCommand(),
	)
	return cmd
}

func newSnapshotSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "save <table>...",
		Short:   "Snapshot tables of the datasource",
		Example: `  leapmeta snapshot save public.orders public.customers`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := GetEnv(cmd)
			ctx := cmd.Context()

			d, err := env.Driver("")
			if err != nil {
				return err
			}
			tables, err := env.loadTables(ctx, d, "", args)
			if err != nil {
				return err
			}

			store, err := env.OpenStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snaps := make([]*state.Snapshot, 0, len(tables))
			for _, t := range tables {
				snap, err := store.Save(ctx, d, t)
				if err != nil {
					return err
				}
				env.Logger.Info("snapshot saved", "table", t.QualifiedName(), "id", snap.ID)
				snaps = append(snaps, snap)
			}
			return renderSnapshots(env.Renderer, snaps)
		},
	}
}

func newSnapshotListCommand() *cobra.Command {
	var filter state.ListFilter

	cmd := &cobra.Command{
		Use:   "list [table]",
		Short: "List stored snapshots, newest first",
		Example: `  leapmeta snapshot list
  leapmeta snapshot list sales.orders --driver PostgreSql`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := GetEnv(cmd)
			if len(args) == 1 {
				filter.Schema, filter.Table = core.SplitQualifiedName(args[0], "")
			}
			if filter.Driver != "" {
				d, err := env.Registry.Get(filter.Driver)
				if err != nil {
					return err
				}
				filter.Driver = d.Type()
			}

			store, err := env.OpenStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snaps, err := store.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return renderSnapshots(env.Renderer, snaps)
		},
	}

	cmd.Flags().StringVar(&filter.Driver, "driver", "", "Only snapshots taken with this driver")
	return cmd
}

func newSnapshotShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a snapshot's DDL",
		Long:  `Print the DDL stored with a snapshot. JSON output includes the stored columns.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := GetEnv(cmd)

			store, err := env.OpenStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			snap, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if env.Renderer.Mode() == output.ModeJSON {
				return env.Renderer.JSON(snap)
			}
			return env.Renderer.SQL(snap.DDL)
		},
	}
}

func newSnapshotDiffCommand() *cobra.Command {
	var failOnDrift bool

	cmd := &cobra.Command{
		Use:   "diff <table>...",
		Short: "Compare live tables against their latest snapshots",
		Example: `  leapmeta snapshot diff public.orders
  leapmeta snapshot diff public.orders --fail-on-drift`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := GetEnv(cmd)
			ctx := cmd.Context()

			d, err := env.Driver("")
			if err != nil {
				return err
			}
			tables, err := env.loadTables(ctx, d, "", args)
			if err != nil {
				return err
			}

			store, err := env.OpenStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var (
				rows    [][]any
				drifted []string
			)
			for _, t := range tables {
				drift, err := store.Drift(ctx, d, t)
				if err != nil {
					return fmt.Errorf("%s: %w", t.QualifiedName(), err)
				}
				if drift.Drifted() {
					drifted = append(drifted, t.QualifiedName())
				}
				for _, c := range drift.Changes {
					rows = append(rows, []any{t.QualifiedName(), string(c.Kind), c.Name, describeColumn(c.Before), describeColumn(c.After)})
				}
				if drift.Drifted() && len(drift.Changes) == 0 {
					rows = append(rows, []any{t.QualifiedName(), "table", "", drift.Snapshot.Fingerprint, drift.Fingerprint})
				}
			}

			if err := env.Renderer.Table([]string{"table", "change", "column", "before", "after"}, rows); err != nil {
				return err
			}
			if failOnDrift && len(drifted) > 0 {
				return fmt.Errorf("drift detected in %v", drifted)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failOnDrift, "fail-on-drift", false, "Exit with an error when any table drifted")
	return cmd
}

func renderSnapshots(r *output.Renderer, snaps []*state.Snapshot) error {
	rows := make([][]any, len(snaps))
	for i, s := range snaps {
		rows[i] = []any{s.ID, s.Driver, s.Table.QualifiedName(), s.Fingerprint, s.CreatedAt.Local().Format(time.DateTime)}
	}
	return r.Table([]string{"id", "driver", "table", "fingerprint", "created_at"}, rows)
}

// describeColumn renders a column definition on one line.
func describeColumn(c *core.Column) string {
	if c == nil {
		return ""
	}
	desc := c.Type
	switch {
	case c.Precision > 0 && c.Scale > 0:
		desc += fmt.Sprintf("(%d,%d)", c.Precision, c.Scale)
	case c.Length > 0:
		desc += fmt.Sprintf("(%d)", c.Length)
	}
	if !c.Nullable {
		desc += " NOT NULL"
	}
	if c.DefaultValue != "" {
		desc += " DEFAULT " + c.DefaultValue
	}
	if c.PrimaryKey {
		desc += " PRIMARY KEY"
	}
	return desc
}
