package source

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/leapmeta/pkg/core"
)

// Preview is the result of a data preview query.
type Preview struct {
	SQL     string   `json:"sql"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Preview runs the driver's paginated query for q. Blank schema names use
// DefaultSchema. Byte slices are returned as strings.
func (s *Source) Preview(ctx context.Context, q core.QueryData) (*Preview, error) {
	if s.DB == nil {
		return nil, ErrNotConnected
	}
	if err := q.Option.Validate(); err != nil {
		return nil, err
	}
	if q.SchemaName == "" {
		q.SchemaName = s.DefaultSchema()
	}

	stmt := s.Driver.QueryDataSQL(q)
	s.Logger.Debug("running preview", "sql", stmt)

	rows, err := s.DB.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	p := &Preview{SQL: stmt, Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		p.Rows = append(p.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return p, nil
}
