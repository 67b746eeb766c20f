package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
)

type generateOptions struct {
	driverCode string
	file       string
	execute    bool
}

// NewDDLCommand creates the ddl command.
func NewDDLCommand() *cobra.Command {
	return newGenerateCommand(generateCmd{
		use:   "ddl [table]...",
		short: "Generate CREATE TABLE statements",
		long: `Generate CREATE TABLE statements, including column and table comments
where the dialect supports them.

Tables come from the configured datasource, or from YAML table definitions
with --file. With --file and no table arguments every definition is used.`,
		example: `  # DDL for a live table, in the datasource's dialect
  leapmeta ddl public.orders

  # Translate a live table to another dialect
  leapmeta ddl public.orders --driver mysql

  # DDL for every table definition, created in the datasource
  leapmeta ddl --file tables/ --exec`,
		generate: func(d driver.Driver, t *core.Table) string { return d.CreateTableSQL(t) },
		canExec:  true,
	})
}

// NewSelectCommand creates the select command.
func NewSelectCommand() *cobra.Command {
	return newGenerateCommand(generateCmd{
		use:   "select [table]...",
		short: "Generate SELECT statements listing every column",
		long: `Generate a SELECT statement naming every column of a table, with column
and table comments as trailing SQL comments.`,
		example: `  leapmeta select public.orders
  leapmeta select --file tables/orders.yaml --driver sqlserver`,
		generate: func(d driver.Driver, t *core.Table) string { return d.SelectAllSQL(t) },
	})
}

type generateCmd struct {
	use, short, long, example string
	generate                  func(driver.Driver, *core.Table) string
	canExec                   bool
}

func newGenerateCommand(gc generateCmd) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:     gc.use,
		Short:   gc.short,
		Long:    gc.long,
		Example: gc.example,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), GetEnv(cmd), gc.generate, opts, args)
		},
	}

	addDriverFlag(cmd, &opts.driverCode)
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read tables from a YAML definition file or directory")
	if gc.canExec {
		cmd.Flags().BoolVar(&opts.execute, "exec", false, "Execute the statements against the datasource")
	}
	return cmd
}

func runGenerate(ctx context.Context, env *Env, generate func(driver.Driver, *core.Table) string, opts generateOptions, refs []string) error {
	d, err := env.Driver(opts.driverCode)
	if err != nil {
		return err
	}

	tables, err := env.loadTables(ctx, d, opts.file, refs)
	if err != nil {
		return err
	}

	stmts := make([]string, len(tables))
	for i, t := range tables {
		stmts[i] = generate(d, t)
	}

	if !opts.execute {
		return env.Renderer.SQL(strings.Join(stmts, "\n"))
	}

	src, err := env.openFor(ctx, d)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	for i, stmt := range stmts {
		if err := src.Exec(ctx, stmt); err != nil {
			return err
		}
		env.Renderer.Infof("Created %s", tables[i].QualifiedName())
	}
	return nil
}
