package collection

import (
	"context"

	"github.com/aevon-lab/sift/internal/core/logging"
)

// Group buckets records by their value at p. Keys appear in first-occurrence
// order and each bucket keeps the input order of its records.
func Group[K comparable, O any](ctx context.Context, records []O, p string) (*OrderedMap[K, []O], error) {
	if err := requireRecords(records); err != nil {
		return nil, err
	}
	if err := requirePath(p, "path"); err != nil {
		return nil, err
	}

	out := NewOrderedMap[K, []O](len(records))
	for _, r := range records {
		k, err := groupKey[K](ctx, r, p)
		if err != nil {
			return nil, err
		}
		bucket, _ := out.Get(k)
		out.Set(k, append(bucket, r))
	}
	return out, nil
}

// GroupOne keeps only the first record for each value at p. Later records
// with the same key are dropped; each drop is logged at debug level and is
// otherwise invisible to the caller.
func GroupOne[K comparable, O any](ctx context.Context, records []O, p string) (*OrderedMap[K, O], error) {
	if err := requireRecords(records); err != nil {
		return nil, err
	}
	if err := requirePath(p, "path"); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	out := NewOrderedMap[K, O](len(records))
	for i, r := range records {
		k, err := groupKey[K](ctx, r, p)
		if err != nil {
			return nil, err
		}
		if out.Has(k) {
			log.Debug("Duplicate group key, keeping first record",
				"path", p,
				"key", k,
				"index", i)
			continue
		}
		out.Set(k, r)
	}
	return out, nil
}

// GroupCount counts records per value at p. The counts sum to len(records).
func GroupCount[K comparable, O any](ctx context.Context, records []O, p string) (*OrderedMap[K, int], error) {
	if err := requireRecords(records); err != nil {
		return nil, err
	}
	if err := requirePath(p, "path"); err != nil {
		return nil, err
	}

	out := NewOrderedMap[K, int](len(records))
	for _, r := range records {
		k, err := groupKey[K](ctx, r, p)
		if err != nil {
			return nil, err
		}
		n, _ := out.Get(k)
		out.Set(k, n+1)
	}
	return out, nil
}

func groupKey[K comparable](ctx context.Context, record any, p string) (K, error) {
	k, err := resolveAs[K](ctx, record, p)
	if err != nil {
		return k, err
	}
	if !hashable(k) {
		var zero K
		return zero, incomparable(p, k)
	}
	return k, nil
}
