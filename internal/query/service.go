package query

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/sift/internal/api/v1"
	"github.com/aevon-lab/sift/internal/core/logging"
	"github.com/aevon-lab/sift/internal/dataset"
)

// RecordSource resolves a dataset name to its decoded records.
// *dataset.Registry implements it.
type RecordSource interface {
	Records(ctx context.Context, name string) ([]any, *dataset.Dataset, error)
}

// Service runs queries against named datasets.
type Service struct {
	source RecordSource
	opts   Options
}

// NewService creates a new query service.
func NewService(source RecordSource, opts Options) *Service {
	return &Service{
		source: source,
		opts:   opts,
	}
}

// Query runs q against the named dataset.
func (s *Service) Query(ctx context.Context, name string, q v1.Query) (*v1.QueryResult, error) {
	records, ds, err := s.source.Records(ctx, name)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	logger := slog.Default().With("dataset", ds.Name, "op", q.Op)
	result, err := Execute(logging.WithLogger(ctx, logger), records, q, s.opts)
	if err != nil {
		return nil, err
	}
	result.Dataset = ds.Name

	logger.Info("Query executed",
		"path", q.Path,
		"records", len(records),
		"duration", time.Since(start))
	return result, nil
}

// Execute runs q over records. Engine log output goes to the logger carried
// by ctx.
func Execute(ctx context.Context, records []any, q v1.Query, opts Options) (*v1.QueryResult, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	op, ok := operators[q.Op]
	if !ok {
		return nil, fmt.Errorf("%w: unknown op %q (supported: %v)", ErrInvalidQuery, q.Op, Ops())
	}

	raw, err := op(ctx, records, q, opts)
	if err != nil {
		return nil, err
	}
	result, err := render(raw)
	if err != nil {
		return nil, fmt.Errorf("render %s result: %w", q.Op, err)
	}

	return &v1.QueryResult{
		Op:     q.Op,
		Count:  len(records),
		Result: result,
	}, nil
}
