package source

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// SchemaTables lists the tables of schema and loads their columns in
// parallel. The first failure cancels the remaining loads.
func (s *Source) SchemaTables(ctx context.Context, schema string) ([]*core.Table, error) {
	tables, err := s.Tables(ctx, schema)
	if err != nil {
		return nil, err
	}

	limit := s.Concurrency
	if limit < 1 {
		limit = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, t := range tables {
		g.Go(func() error {
			return s.loadColumns(gctx, t)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.Logger.Debug("loaded schema tables", "schema", schema, "tables", len(tables))
	return tables, nil
}
