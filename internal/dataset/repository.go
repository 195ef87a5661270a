package dataset

import (
	"context"
)

// Repository stores encoded datasets.
type Repository interface {
	// Create stores a new dataset. Returns ErrAlreadyExists if the name is
	// taken and ErrReadOnly if the repository cannot be written to.
	Create(ctx context.Context, ds *Dataset) error

	// Get retrieves a dataset by name. Returns ErrNotFound if not found.
	Get(ctx context.Context, name string) (*Dataset, error)

	// List returns every dataset, ordered by name.
	List(ctx context.Context) ([]*Dataset, error)

	// Delete removes a dataset. Returns ErrNotFound if not found.
	Delete(ctx context.Context, name string) error
}
