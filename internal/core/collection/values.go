package collection

import (
	"context"
	"reflect"
	"strings"

	"github.com/aevon-lab/sift/internal/core/logging"
	"github.com/aevon-lab/sift/internal/core/path"
)

// resolveAs resolves p on record and asserts the result to T. A nil result is
// accepted for any T that can hold nil.
func resolveAs[T any](ctx context.Context, record any, p string) (T, error) {
	var zero T
	v, err := path.Resolve(record, p)
	if err != nil {
		logging.FromContext(ctx).Debug("Property resolution failed", "path", p, "error", err)
		return zero, err
	}
	return as[T](p, v)
}

func as[T any](p string, v any) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}
	var zero T
	if v == nil && nilable(reflect.TypeFor[T]()) {
		return zero, nil
	}
	return zero, path.Mismatch(p, reflect.TypeFor[T]().String(), v)
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// hashable reports whether v can be stored as a map key without panicking.
func hashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).Comparable()
}

// isNullOrEmpty treats nil, typed nil, blank strings and zero-length
// containers as empty.
func isNullOrEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Func:
		return rv.IsNil()
	case reflect.Slice, reflect.Map, reflect.Chan:
		return rv.IsNil() || rv.Len() == 0
	case reflect.Array, reflect.String:
		return rv.Len() == 0
	}
	return false
}
