package path

import (
	"errors"
	"fmt"
)

// ErrResolution is matched by every *ResolutionError via errors.Is.
var ErrResolution = errors.New("property resolution failed")

// ResolutionError reports a path that could not be evaluated against a record:
// a syntax error, a missing struct field, an index out of range or a type mismatch.
type ResolutionError struct {
	Path    string `json:"path"`
	Segment string `json:"segment,omitempty"`
	Reason  string `json:"reason"`
	Err     error  `json:"-"`
}

func (e *ResolutionError) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf("resolve %q at %q: %s", e.Path, e.Segment, e.Reason)
	}
	return fmt.Sprintf("resolve %q: %s", e.Path, e.Reason)
}

// Is reports whether target is ErrResolution.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Mismatch builds the error returned when a resolved value does not have the
// type a caller asked for.
func Mismatch(p string, want string, got any) *ResolutionError {
	return &ResolutionError{
		Path:   p,
		Reason: fmt.Sprintf("expected %s, got %T", want, got),
	}
}
