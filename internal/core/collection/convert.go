package collection

import (
	"fmt"
	"iter"
	"reflect"
	"strings"
)

// DefaultConnector separates elements when Join is called without one.
const DefaultConnector = ","

// JoinOptions controls JoinWith.
type JoinOptions struct {
	Connector string
	SkipEmpty bool // leave out nil elements and elements that render as ""
}

// Join renders each element with fmt.Sprint and places the connector between
// neighbours, so n elements get n-1 connectors. Nil elements, typed nil
// pointers included, render as "null". The connector defaults to
// DefaultConnector. The boolean is false when records is nil or empty, which
// is distinct from joining to an empty string.
func Join[T any](records []T, connector ...string) (string, bool) {
	opts := JoinOptions{Connector: DefaultConnector}
	if len(connector) > 0 {
		opts.Connector = connector[0]
	}
	return JoinWith(records, opts)
}

// JoinWith is Join with explicit options.
func JoinWith[T any](records []T, opts JoinOptions) (string, bool) {
	if len(records) == 0 {
		return "", false
	}

	var b strings.Builder
	written := 0
	for _, r := range records {
		nilElem := isNil(any(r))
		if opts.SkipEmpty && nilElem {
			continue
		}
		s := "null"
		if !nilElem {
			s = fmt.Sprint(r)
		}
		if opts.SkipEmpty && s == "" {
			continue
		}
		if written > 0 {
			b.WriteString(opts.Connector)
		}
		b.WriteString(s)
		written++
	}
	return b.String(), true
}

// ToArray copies records into a slice whose element type is the dynamic type
// of the first element, e.g. []any{"a", "b"} becomes []string{"a", "b"}.
// Only the first element is inspected for typing, so it must not be nil or
// empty; later elements that do not fit that type are rejected. Nil or empty
// records return (nil, nil).
func ToArray[T any](records []T) (any, error) {
	if len(records) == 0 {
		return nil, nil
	}
	first := any(records[0])
	if isNullOrEmpty(first) {
		return nil, invalidArgf("first element is nil or empty")
	}

	et := reflect.TypeOf(first)
	out := reflect.MakeSlice(reflect.SliceOf(et), len(records), len(records))
	for i, r := range records {
		rv := reflect.ValueOf(any(r))
		if !rv.IsValid() {
			continue
		}
		if !rv.Type().AssignableTo(et) {
			return nil, invalidArgf("element %d is %s, want %s", i, rv.Type(), et)
		}
		out.Index(i).Set(rv)
	}
	return out.Interface(), nil
}

// Cursor is a one-shot forward iterator over a sequence. It reads the backing
// slice directly, so changes made by the caller after ToCursor are visible.
type Cursor[T any] struct {
	items []T
	pos   int
}

// ToCursor returns a cursor positioned before the first element.
func ToCursor[T any](records []T) *Cursor[T] {
	return &Cursor[T]{items: records}
}

func (c *Cursor[T]) HasNext() bool {
	return c != nil && c.pos < len(c.items)
}

// Next returns the next element, or false once the cursor is exhausted.
func (c *Cursor[T]) Next() (T, bool) {
	if !c.HasNext() {
		var zero T
		return zero, false
	}
	v := c.items[c.pos]
	c.pos++
	return v, true
}

// Seq drains the cursor as an iterator.
func (c *Cursor[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := c.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// ToList drains the remaining elements of c into a new slice. A nil or
// exhausted cursor yields an empty, non-nil slice.
func ToList[T any](c *Cursor[T]) []T {
	if !c.HasNext() {
		return []T{}
	}
	out := make([]T, 0, len(c.items)-c.pos)
	for v := range c.Seq() {
		out = append(out, v)
	}
	return out
}
