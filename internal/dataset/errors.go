package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no dataset has the requested name.
	ErrNotFound      = errors.New("dataset not found")
	ErrAlreadyExists = errors.New("dataset already exists")

	// ErrReadOnly is returned by repositories that cannot be written to.
	ErrReadOnly = errors.New("dataset source is read-only")

	// ErrInvalidDataset marks an upload that cannot be registered.
	ErrInvalidDataset = errors.New("invalid dataset")
)

// DecodeError reports a dataset whose content could not be turned into records.
type DecodeError struct {
	Dataset string
	Format  Format
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s dataset %q: %v", e.Format, e.Dataset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is makes every DecodeError match ErrInvalidDataset.
func (e *DecodeError) Is(target error) bool {
	return target == ErrInvalidDataset
}
