// Package commands implements the leapmeta subcommands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapmeta/internal/cli/config"
	"github.com/leapstack-labs/leapmeta/internal/cli/output"
	"github.com/leapstack-labs/leapmeta/internal/state"
	"github.com/leapstack-labs/leapmeta/internal/tabledef"
	"github.com/leapstack-labs/leapmeta/pkg/core"
	"github.com/leapstack-labs/leapmeta/pkg/driver"
	"github.com/leapstack-labs/leapmeta/pkg/drivers"
	"github.com/leapstack-labs/leapmeta/pkg/source"
)

// Env holds the dependencies shared by all commands.
type Env struct {
	Config   *config.Config
	Registry *driver.Registry
	Logger   *slog.Logger
	Renderer *output.Renderer
}

type envKey struct{}

// WithEnv returns a context carrying env.
func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// GetEnv returns the Env stored in the command context. Without one it
// falls back to default configuration, the built-in drivers and a renderer
// on the command's writers.
func GetEnv(cmd *cobra.Command) *Env {
	if env, ok := cmd.Context().Value(envKey{}).(*Env); ok && env != nil {
		return env
	}
	return &Env{
		Config: &config.Config{
			StatePath:    config.DefaultStateFile,
			DefsDir:      config.DefaultDefsDir,
			OutputFormat: config.DefaultOutput,
			Server:       config.ServerConfig{Port: config.DefaultPort},
		},
		Registry: drivers.MustRegistry(),
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeAuto),
	}
}

var errNoDriver = errors.New("no driver selected\nHint: pass --driver or configure a datasource")

// Driver resolves code, falling back to the type of the selected
// datasource when code is empty.
func (e *Env) Driver(code string) (driver.Driver, error) {
	if code != "" {
		return e.Registry.Get(code)
	}
	ds, err := e.Config.DataSource("")
	if err != nil {
		if errors.Is(err, config.ErrNoDatasource) {
			return nil, errNoDriver
		}
		return nil, err
	}
	return e.Registry.Get(ds.Type)
}

// DefaultSchema returns the schema used for unqualified table names:
// the datasource schema when set, else the driver's catalog default.
func (e *Env) DefaultSchema(d driver.Driver) string {
	if ds, err := e.Config.DataSource(""); err == nil && ds.Schema != "" {
		return ds.Schema
	}
	return d.Catalog().DefaultSchema()
}

// OpenSource connects to the selected datasource.
func (e *Env) OpenSource(ctx context.Context) (*source.Source, error) {
	ds, err := e.Config.DataSource("")
	if err != nil {
		return nil, err
	}
	return source.Open(ctx, e.Registry, ds, e.Logger)
}

// openFor connects to the datasource for executing SQL generated by d.
func (e *Env) openFor(ctx context.Context, d driver.Driver) (*source.Source, error) {
	src, err := e.OpenSource(ctx)
	if err != nil {
		return nil, err
	}
	if src.Driver.Type() != d.Type() {
		_ = src.Close()
		return nil, fmt.Errorf("cannot execute %s SQL against a %s datasource", d.Type(), src.Driver.Type())
	}
	return src, nil
}

// OpenStore opens the snapshot store, creating its directory if needed.
func (e *Env) OpenStore(ctx context.Context) (*state.SQLiteStore, error) {
	dir := filepath.Dir(e.Config.StatePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := state.NewSQLiteStore(e.Logger)
	if err := store.Open(ctx, e.Config.StatePath); err != nil {
		return nil, err
	}
	return store, nil
}

// loadTables returns the tables named by refs, read from a definition file
// or directory when fromFile is set and introspected from the datasource
// otherwise. With a file and no refs every definition is returned.
func (e *Env) loadTables(ctx context.Context, d driver.Driver, fromFile string, refs []string) ([]*core.Table, error) {
	defaultSchema := e.DefaultSchema(d)

	if fromFile != "" {
		tables, err := tabledef.Load(fromFile, defaultSchema)
		if err != nil {
			return nil, err
		}
		if len(refs) == 0 {
			return tables, nil
		}
		return selectTables(tables, refs, defaultSchema)
	}

	if len(refs) == 0 {
		return nil, errors.New("no tables given\nHint: name tables as arguments or pass --file")
	}

	src, err := e.OpenSource(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	tables := make([]*core.Table, 0, len(refs))
	for _, ref := range refs {
		t, err := src.Table(ctx, ref)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func selectTables(tables []*core.Table, refs []string, defaultSchema string) ([]*core.Table, error) {
	byName := make(map[string]*core.Table, len(tables))
	for _, t := range tables {
		byName[t.QualifiedName()] = t
	}

	out := make([]*core.Table, 0, len(refs))
	for _, ref := range refs {
		schema, name := core.SplitQualifiedName(ref, defaultSchema)
		t, ok := byName[(&core.Table{Schema: schema, Name: name}).QualifiedName()]
		if !ok {
			return nil, fmt.Errorf("table %q is not defined", ref)
		}
		out = append(out, t)
	}
	return out, nil
}
