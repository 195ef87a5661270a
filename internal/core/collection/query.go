package collection

import (
	"context"

	"github.com/aevon-lab/sift/internal/core/logging"
)

// Select returns, in input order, the records for which pred holds.
func Select[O any](ctx context.Context, records []O, pred Predicate[O]) ([]O, error) {
	if err := requireRecords(records); err != nil {
		return nil, err
	}
	if pred == nil {
		return nil, invalidArgf("predicate is nil")
	}
	return filter(ctx, records, pred)
}

// SelectIn returns the records whose value at p equals one of values.
func SelectIn[O any](ctx context.Context, records []O, p string, values ...any) ([]O, error) {
	if err := requireRecords(records); err != nil {
		return nil, err
	}
	if err := requirePath(p, "path"); err != nil {
		return nil, err
	}
	return filter(ctx, records, In[O](p, values...))
}

// SelectRejected returns the records SelectIn would leave out. Together the
// two partition records: disjoint, and nothing is dropped or duplicated.
func SelectRejected[O any](ctx context.Context, records []O, p string, values ...any) ([]O, error) {
	if err := requireRecords(records); err != nil {
		return nil, err
	}
	if err := requirePath(p, "path"); err != nil {
		return nil, err
	}
	return filter(ctx, records, Not(In[O](p, values...)))
}

func filter[O any](ctx context.Context, records []O, pred Predicate[O]) ([]O, error) {
	out := make([]O, 0, len(records))
	for i, r := range records {
		ok, err := pred(r)
		if err != nil {
			logging.FromContext(ctx).Debug("Predicate evaluation failed", "index", i, "error", err)
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// Find returns the first record whose value at p equals value. Unlike the
// other operations, nil or empty records simply report "not found".
func Find[O any](ctx context.Context, records []O, p string, value any) (O, bool, error) {
	return FindWhere(ctx, records, Equals[O](p, value))
}

// FindWhere returns the first record for which pred holds. A nil predicate or
// nil/empty records report "not found"; evaluation errors propagate.
func FindWhere[O any](ctx context.Context, records []O, pred Predicate[O]) (O, bool, error) {
	var zero O
	if len(records) == 0 || pred == nil {
		return zero, false, nil
	}
	for i, r := range records {
		ok, err := pred(r)
		if err != nil {
			logging.FromContext(ctx).Debug("Predicate evaluation failed", "index", i, "error", err)
			return zero, false, err
		}
		if ok {
			return r, true, nil
		}
	}
	return zero, false, nil
}
