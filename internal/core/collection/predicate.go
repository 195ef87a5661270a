package collection

import (
	"github.com/aevon-lab/sift/internal/core/path"
)

// Predicate decides whether a record matches. An error means the predicate
// could not be evaluated (typically a path resolution failure) and is never
// folded into false.
type Predicate[O any] func(record O) (bool, error)

// Equals matches records whose value at p is ValueEqual to value.
func Equals[O any](p string, value any) Predicate[O] {
	return func(record O) (bool, error) {
		v, err := path.Resolve(record, p)
		if err != nil {
			return false, err
		}
		return ValueEqual(v, value), nil
	}
}

// In matches records whose value at p is ValueEqual to any of values.
func In[O any](p string, values ...any) Predicate[O] {
	candidates := make([]any, len(values))
	copy(candidates, values)
	return func(record O) (bool, error) {
		v, err := path.Resolve(record, p)
		if err != nil {
			return false, err
		}
		for _, c := range candidates {
			if ValueEqual(v, c) {
				return true, nil
			}
		}
		return false, nil
	}
}

// Match lifts a plain boolean function into a Predicate.
func Match[O any](fn func(O) bool) Predicate[O] {
	return func(record O) (bool, error) {
		return fn(record), nil
	}
}

// Not negates pred. Errors pass through unchanged.
func Not[O any](pred Predicate[O]) Predicate[O] {
	return func(record O) (bool, error) {
		ok, err := pred(record)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
}

// And matches when every predicate matches, stopping at the first miss.
func And[O any](preds ...Predicate[O]) Predicate[O] {
	return func(record O) (bool, error) {
		for _, p := range preds {
			ok, err := p(record)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

// Or matches when any predicate matches, stopping at the first hit.
func Or[O any](preds ...Predicate[O]) Predicate[O] {
	return func(record O) (bool, error) {
		for _, p := range preds {
			ok, err := p(record)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
}
