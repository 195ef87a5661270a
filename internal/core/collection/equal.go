package collection

import (
	"reflect"
)

// ValueEqual is the equality used by Equals and In. Two nils (including typed
// nil pointers) are equal, nil never equals a non-nil value, numbers of
// different Go types are equal when their decimal values are equal, and
// everything else falls back to reflect.DeepEqual.
func ValueEqual(a, b any) bool {
	aNil, bNil := isNil(a), isNil(b)
	if aNil || bNil {
		return aNil && bNil
	}
	if da, ok := ToDecimal(a); ok {
		if db, ok := ToDecimal(b); ok {
			return da.Equal(db)
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
