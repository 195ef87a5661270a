package query

import (
	"context"
	"errors"
	"fmt"
	"slices"

	v1 "github.com/aevon-lab/sift/internal/api/v1"
	"github.com/aevon-lab/sift/internal/core/collection"
)

var (
	// ErrInvalidQuery marks request validation errors that should return HTTP 400.
	ErrInvalidQuery = errors.New("invalid query")
)

// Options carries the defaults applied when a query leaves a field unset.
type Options struct {
	Connector string
	Scale     int32
}

// DefaultOptions matches the engine defaults.
var DefaultOptions = Options{
	Connector: collection.DefaultConnector,
	Scale:     2,
}

// FindResult is the result of the "find" operation.
type FindResult struct {
	Found  bool `json:"found"`
	Record any  `json:"record"`
}

// JoinResult is the result of the "join" operation. Present is false when
// there was nothing to join, which is distinct from joining to "".
type JoinResult struct {
	Present bool   `json:"present"`
	Value   string `json:"value"`
}

type operator func(ctx context.Context, records []any, q v1.Query, opts Options) (any, error)

var operators = map[string]operator{
	"values": func(ctx context.Context, records []any, q v1.Query, _ Options) (any, error) {
		return collection.PropertyValueList[any](ctx, records, q.Path)
	},
	"unique_values": func(ctx context.Context, records []any, q v1.Query, _ Options) (any, error) {
		return collection.PropertyValueSet[any](ctx, records, q.Path)
	},
	"value_map": func(ctx context.Context, records []any, q v1.Query, _ Options) (any, error) {
		return collection.PropertyValueMap[any, any](ctx, records, q.Path, q.ValuePath)
	},
	"select": func(ctx context.Context, records []any, q v1.Query, _ Options) (any, error) {
		return collection.SelectIn(ctx, records, q.Path, q.Values...)
	},
	"reject": func(ctx context.Context, records []any, q v1.Query, _ Options) (any, error) {
		return collection.SelectRejected(ctx, records, q.Path, q.Values...)
	},
	"find":        find,
	"group":       group,
	"group_one":   groupOne,
	"group_count": groupCount,
	"sum":         sum,
	"avg":         avg,
	"join":        join,
}

// Ops returns the supported operation names in sorted order.
func Ops() []string {
	ops := make([]string, 0, len(operators))
	for name := range operators {
		ops = append(ops, name)
	}
	slices.Sort(ops)
	return ops
}

func find(ctx context.Context, records []any, q v1.Query, _ Options) (any, error) {
	if len(q.Values) != 1 {
		return nil, fmt.Errorf("%w: find takes exactly one value, got %d", ErrInvalidQuery, len(q.Values))
	}
	if q.Path == "" {
		return nil, fmt.Errorf("%w: path is required", ErrInvalidQuery)
	}
	record, ok, err := collection.Find(ctx, records, q.Path, q.Values[0])
	if err != nil {
		return nil, err
	}
	return FindResult{Found: ok, Record: record}, nil
}

func group(ctx context.Context, records []any, q v1.Query, _ Options) (any, error) {
	return collection.Group[any](ctx, records, q.Path)
}

func groupOne(ctx context.Context, records []any, q v1.Query, _ Options) (any, error) {
	return collection.GroupOne[any](ctx, records, q.Path)
}

func groupCount(ctx context.Context, records []any, q v1.Query, _ Options) (any, error) {
	return collection.GroupCount[any](ctx, records, q.Path)
}

func sum(ctx context.Context, records []any, q v1.Query, _ Options) (any, error) {
	sums, err := collection.Sum(ctx, records, q.Names...)
	if err != nil {
		return nil, err
	}
	out := collection.NewOrderedMap[string, string](sums.Len())
	for name, total := range sums.All() {
		out.Set(name, total.String())
	}
	return out, nil
}

// avg renders each average with exactly scale fractional digits, so 24 at
// scale 2 is "24.00".
func avg(ctx context.Context, records []any, q v1.Query, opts Options) (any, error) {
	scale := opts.Scale
	if q.Scale != nil {
		scale = *q.Scale
	}
	avgs, err := collection.Avg(ctx, records, scale, q.Names...)
	if err != nil {
		return nil, err
	}
	out := collection.NewOrderedMap[string, string](avgs.Len())
	for name, value := range avgs.All() {
		out.Set(name, value.StringFixed(scale))
	}
	return out, nil
}

// join joins the values at Path, or the records themselves when Path is empty.
func join(ctx context.Context, records []any, q v1.Query, opts Options) (any, error) {
	joinOpts := collection.JoinOptions{Connector: opts.Connector, SkipEmpty: q.SkipEmpty}
	if q.Connector != nil {
		joinOpts.Connector = *q.Connector
	}

	values := records
	if q.Path != "" {
		var err error
		values, err = collection.PropertyValueList[any](ctx, records, q.Path)
		if err != nil {
			return nil, err
		}
	}
	s, ok := collection.JoinWith(values, joinOpts)
	return JoinResult{Present: ok, Value: s}, nil
}
