package storage

import (
	"context"
	"testing"

	"github.com/aevon-lab/sift/internal/dataset"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	ds := &dataset.Dataset{Name: "members", Format: dataset.FormatJSON, Content: []byte("[]")}
	require.NoError(t, repo.Create(ctx, ds))
	require.ErrorIs(t, repo.Create(ctx, ds), dataset.ErrAlreadyExists)

	// Stored values are copies.
	ds.Format = dataset.FormatYaml
	got, err := repo.Get(ctx, "members")
	require.NoError(t, err)
	require.Equal(t, dataset.FormatJSON, got.Format)
	got.Name = "changed"

	require.NoError(t, repo.Create(ctx, &dataset.Dataset{Name: "alpha"}))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "alpha", all[0].Name)
	require.Equal(t, "members", all[1].Name)

	require.NoError(t, repo.Delete(ctx, "members"))
	_, err = repo.Get(ctx, "members")
	require.ErrorIs(t, err, dataset.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "members"), dataset.ErrNotFound)
}
