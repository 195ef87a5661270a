package dataset_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aevon-lab/sift/internal/dataset"
	"github.com/aevon-lab/sift/internal/dataset/formats/json"
	"github.com/aevon-lab/sift/internal/dataset/formats/protobuf"
	"github.com/aevon-lab/sift/internal/dataset/formats/yaml"
	"github.com/aevon-lab/sift/internal/dataset/storage"
	datasetmocks "github.com/aevon-lab/sift/internal/mocks/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const membersJSON = `[
  {"name": "张飞", "age": 23},
  {"name": "关羽", "age": 24},
  {"name": "刘备", "age": 25}
]`

func newFormats() *dataset.FormatRegistry {
	formats := dataset.NewFormatRegistry()
	formats.RegisterFormat(dataset.FormatJSON, json.NewDecoder())
	formats.RegisterFormat(dataset.FormatYaml, yaml.NewDecoder())
	formats.RegisterFormat(dataset.FormatProtobuf, protobuf.NewDecoder())
	return formats
}

func TestRegistry_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		dsName  string
		format  dataset.Format
		content string
		wantErr error
	}{
		{
			name:    "valid json",
			dsName:  "members",
			format:  dataset.FormatJSON,
			content: membersJSON,
		},
		{
			name:    "valid yaml",
			dsName:  "members",
			format:  dataset.FormatYaml,
			content: "- name: 张飞\n  age: 23\n",
		},
		{
			name:    "invalid name",
			dsName:  "../etc",
			format:  dataset.FormatJSON,
			content: membersJSON,
			wantErr: dataset.ErrInvalidDataset,
		},
		{
			name:    "unsupported format",
			dsName:  "members",
			format:  "csv",
			content: "name,age",
			wantErr: dataset.ErrInvalidDataset,
		},
		{
			name:    "empty content",
			dsName:  "members",
			format:  dataset.FormatJSON,
			wantErr: dataset.ErrInvalidDataset,
		},
		{
			name:    "protobuf without schema",
			dsName:  "members",
			format:  dataset.FormatProtobuf,
			content: membersJSON,
			wantErr: dataset.ErrInvalidDataset,
		},
		{
			name:    "content that does not decode",
			dsName:  "members",
			format:  dataset.FormatJSON,
			content: `{"name": "张飞"}`,
			wantErr: dataset.ErrInvalidDataset,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := dataset.NewRegistry(storage.NewMemoryRepository(), newFormats())

			ds, err := reg.Register(ctx, tc.dsName, tc.format, []byte(tc.content), nil, "")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, ds.ID)
			require.Equal(t, dataset.SourceUpload, ds.Source)
			require.NotEmpty(t, ds.Fingerprint)
			require.Positive(t, ds.RecordCount)
		})
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	reg := dataset.NewRegistry(storage.NewMemoryRepository(), newFormats())

	_, err := reg.Register(ctx, "members", dataset.FormatJSON, []byte(membersJSON), nil, "")
	require.NoError(t, err)

	_, err = reg.Register(ctx, "members", dataset.FormatJSON, []byte(membersJSON), nil, "")
	require.ErrorIs(t, err, dataset.ErrAlreadyExists)
}

func TestRegistry_RecordsAndDelete(t *testing.T) {
	ctx := context.Background()
	reg := dataset.NewRegistry(storage.NewMemoryRepository(), newFormats())

	_, err := reg.Register(ctx, "members", dataset.FormatJSON, []byte(membersJSON), nil, "")
	require.NoError(t, err)

	records, ds, err := reg.Records(ctx, "members")
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, 3, ds.RecordCount)
	require.Equal(t, "张飞", records[0].(map[string]any)["name"])

	got, err := reg.Get(ctx, "members")
	require.NoError(t, err)
	require.Equal(t, 3, got.RecordCount)

	all, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, reg.Delete(ctx, "members"))
	_, _, err = reg.Records(ctx, "members")
	require.ErrorIs(t, err, dataset.ErrNotFound)
	require.ErrorIs(t, reg.Delete(ctx, "members"), dataset.ErrNotFound)
}

type countingDecoder struct {
	calls atomic.Int32
}

func (d *countingDecoder) Decode(ctx context.Context, ds *dataset.Dataset) ([]any, error) {
	d.calls.Add(1)
	return []any{map[string]any{"n": 1}}, nil
}

func TestRegistry_DecodesOncePerFingerprint(t *testing.T) {
	ctx := context.Background()
	decoder := &countingDecoder{}
	formats := dataset.NewFormatRegistry()
	formats.RegisterFormat(dataset.FormatJSON, decoder)
	reg := dataset.NewRegistry(storage.NewMemoryRepository(), formats)

	_, err := reg.Register(ctx, "counted", dataset.FormatJSON, []byte("[]"), nil, "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := reg.Records(ctx, "counted")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), decoder.calls.Load())
}

func TestRegistry_RepositoryErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("disk on fire")

	repo := datasetmocks.NewRepository(t)
	repo.EXPECT().Get(mock.Anything, "members").Return(nil, storeErr).Twice()
	repo.EXPECT().List(mock.Anything).Return(nil, storeErr).Once()

	reg := dataset.NewRegistry(repo, newFormats())

	_, err := reg.Register(ctx, "members", dataset.FormatJSON, []byte(membersJSON), nil, "")
	require.ErrorIs(t, err, storeErr)

	_, _, err = reg.Records(ctx, "members")
	require.ErrorIs(t, err, storeErr)

	require.ErrorIs(t, reg.Ping(ctx), storeErr)
}

func TestRegistry_ReadOnlyRepository(t *testing.T) {
	ctx := context.Background()

	repo := datasetmocks.NewRepository(t)
	repo.EXPECT().Get(mock.Anything, "members").Return(nil, dataset.ErrNotFound).Once()
	repo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*dataset.Dataset")).Return(dataset.ErrReadOnly).Once()

	reg := dataset.NewRegistry(repo, newFormats())
	_, err := reg.Register(ctx, "members", dataset.FormatJSON, []byte(membersJSON), nil, "")
	require.ErrorIs(t, err, dataset.ErrReadOnly)
}
