package collection

import (
	"context"

	"github.com/aevon-lab/sift/internal/core/logging"
)

// CollectPropertyValues resolves p on each record in order and passes the
// value to add. Extraction is best effort: the first resolution failure, or
// the first error from add, stops the loop and is logged, and the function
// still returns nil. Only invalid arguments are reported as errors, so a nil
// error does not mean every record contributed a value.
func CollectPropertyValues[T any, O any](ctx context.Context, records []O, p string, add func(T) error) error {
	if err := requireRecords(records); err != nil {
		return err
	}
	if err := requirePath(p, "path"); err != nil {
		return err
	}
	if add == nil {
		return invalidArgf("add is nil")
	}

	for i, r := range records {
		v, err := resolveAs[T](ctx, r, p)
		if err == nil {
			err = add(v)
		}
		if err != nil {
			logging.FromContext(ctx).Error("Property extraction stopped early",
				"path", p,
				"index", i,
				"error", err)
			return nil
		}
	}
	return nil
}

// PropertyValueList returns the value at p for every record, duplicates
// included. See CollectPropertyValues for the fail-soft behaviour.
func PropertyValueList[T any, O any](ctx context.Context, records []O, p string) ([]T, error) {
	out := make([]T, 0, len(records))
	err := CollectPropertyValues(ctx, records, p, func(v T) error {
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PropertyValueSet returns the distinct values at p in first-occurrence
// order. NaN values collapse into one. See CollectPropertyValues for the
// fail-soft behaviour.
func PropertyValueSet[T comparable, O any](ctx context.Context, records []O, p string) ([]T, error) {
	seen := NewOrderedMap[T, struct{}](len(records))
	err := CollectPropertyValues(ctx, records, p, func(v T) error {
		if !hashable(v) {
			return incomparable(p, v)
		}
		if !seen.Has(v) {
			seen.Set(v, struct{}{})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seen.Keys(), nil
}

// PropertyValueMap maps the value at keyPath to the value at valuePath for
// every record. A repeated key keeps its first position and takes the later
// value. Any resolution failure is returned with no partial result.
func PropertyValueMap[K comparable, V any, O any](ctx context.Context, records []O, keyPath, valuePath string) (*OrderedMap[K, V], error) {
	if err := requireRecords(records); err != nil {
		return nil, err
	}
	if err := requirePath(keyPath, "key path"); err != nil {
		return nil, err
	}
	if err := requirePath(valuePath, "value path"); err != nil {
		return nil, err
	}

	out := NewOrderedMap[K, V](len(records))
	for _, r := range records {
		k, err := resolveAs[K](ctx, r, keyPath)
		if err != nil {
			return nil, err
		}
		if !hashable(k) {
			return nil, incomparable(keyPath, k)
		}
		v, err := resolveAs[V](ctx, r, valuePath)
		if err != nil {
			return nil, err
		}
		out.Set(k, v)
	}
	return out, nil
}
