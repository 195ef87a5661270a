package storage

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/aevon-lab/sift/internal/dataset"
)

var _ dataset.Repository = (*MemoryRepository)(nil)

// MemoryRepository is an in-memory implementation of dataset.Repository.
// It backs uploaded datasets; nothing survives a restart.
type MemoryRepository struct {
	mu       sync.RWMutex
	datasets map[string]*dataset.Dataset
}

// NewMemoryRepository creates a new in-memory dataset repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		datasets: make(map[string]*dataset.Dataset),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, ds *dataset.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.datasets[ds.Name]; exists {
		return dataset.ErrAlreadyExists
	}

	// Store a copy to prevent external modification
	copy := *ds
	r.datasets[ds.Name] = &copy
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, name string) (*dataset.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ds, exists := r.datasets[name]
	if !exists {
		return nil, dataset.ErrNotFound
	}

	copy := *ds
	return &copy, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*dataset.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*dataset.Dataset, 0, len(r.datasets))
	for _, ds := range r.datasets {
		copy := *ds
		result = append(result, &copy)
	}
	slices.SortFunc(result, func(a, b *dataset.Dataset) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.datasets[name]; !exists {
		return dataset.ErrNotFound
	}

	delete(r.datasets, name)
	return nil
}
