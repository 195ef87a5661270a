package collection

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned before any path is resolved when a
	// required input (records, path, property names) is nil or empty.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIncomparableKey is returned when a resolved value must become a map
	// or set key but its dynamic type (slice, map, func) is not comparable.
	ErrIncomparableKey = errors.New("value cannot be used as a key")
)

func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

func requireRecords[O any](records []O) error {
	if len(records) == 0 {
		return invalidArgf("records is nil or empty")
	}
	return nil
}

func requirePath(p, name string) error {
	if p == "" {
		return invalidArgf("%s is empty", name)
	}
	return nil
}

func incomparable(p string, v any) error {
	return fmt.Errorf("%w: %T at %q", ErrIncomparableKey, v, p)
}
