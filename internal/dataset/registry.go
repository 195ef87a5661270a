package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheCapacity is the default number of decoded datasets to keep.
const DefaultCacheCapacity = 64

// Registry resolves dataset names to decoded records. Encoded datasets live
// in a Repository; decoded records are cached by fingerprint.
type Registry struct {
	repo        Repository
	formats     *FormatRegistry
	cache       *LRUCache
	decodeGroup singleflight.Group // Dedupe concurrent decoding
}

// NewRegistry creates a new dataset registry.
func NewRegistry(repo Repository, formats *FormatRegistry) *Registry {
	return NewRegistryWithCache(repo, formats, DefaultCacheCapacity)
}

// NewRegistryWithCache creates a registry with a custom cache capacity.
func NewRegistryWithCache(repo Repository, formats *FormatRegistry, cacheCapacity int) *Registry {
	return &Registry{
		repo:    repo,
		formats: formats,
		cache:   NewLRUCache(cacheCapacity),
	}
}

// Register decodes content to make sure it is usable, then stores it as a
// new dataset. Schema and message only apply to FormatProtobuf.
func (r *Registry) Register(ctx context.Context, name string, format Format, content, schema []byte, message string) (*Dataset, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if !r.formats.IsFormatSupported(format) {
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidDataset, format)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidDataset)
	}
	if format == FormatProtobuf && len(schema) == 0 {
		return nil, fmt.Errorf("%w: protobuf datasets require a schema", ErrInvalidDataset)
	}
	if _, err := r.repo.Get(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, name)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	ds := &Dataset{
		ID:          uuid.New().String(),
		Name:        name,
		Format:      format,
		Source:      SourceUpload,
		Content:     content,
		Schema:      schema,
		Message:     message,
		Fingerprint: ComputeFingerprint(format, content, schema, message),
		CreatedAt:   time.Now().UTC(),
	}

	records, err := r.decode(ctx, ds)
	if err != nil {
		return nil, err
	}
	ds.RecordCount = len(records)

	if err := r.repo.Create(ctx, ds); err != nil {
		return nil, err
	}

	slog.Info("Registered dataset",
		"name", ds.Name,
		"id", ds.ID,
		"format", ds.Format,
		"records", ds.RecordCount)
	return ds, nil
}

// Get returns the dataset with its RecordCount filled in.
func (r *Registry) Get(ctx context.Context, name string) (*Dataset, error) {
	_, ds, err := r.Records(ctx, name)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// Records returns the decoded records of the named dataset. The returned
// slice is shared between callers and must not be modified.
func (r *Registry) Records(ctx context.Context, name string) ([]any, *Dataset, error) {
	ds, err := r.repo.Get(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	records, err := r.decode(ctx, ds)
	if err != nil {
		return nil, nil, err
	}
	ds.RecordCount = len(records)
	return records, ds, nil
}

// List returns every dataset. Datasets that fail to decode are still listed,
// with a zero RecordCount.
func (r *Registry) List(ctx context.Context) ([]*Dataset, error) {
	all, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, ds := range all {
		records, err := r.decode(ctx, ds)
		if err != nil {
			slog.Warn("Dataset cannot be decoded", "name", ds.Name, "error", err)
			continue
		}
		ds.RecordCount = len(records)
	}
	return all, nil
}

// Delete removes a dataset and drops its decoded records from the cache.
func (r *Registry) Delete(ctx context.Context, name string) error {
	ds, err := r.repo.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := r.repo.Delete(ctx, name); err != nil {
		return err
	}
	r.cache.Invalidate(ds.Fingerprint)
	slog.Info("Deleted dataset", "name", name)
	return nil
}

// Ping checks that the underlying repository can be listed.
func (r *Registry) Ping(ctx context.Context) error {
	_, err := r.repo.List(ctx)
	return err
}

// decode returns cached records or decodes ds, deduplicating concurrent
// decodes of the same fingerprint.
func (r *Registry) decode(ctx context.Context, ds *Dataset) ([]any, error) {
	key := ds.Fingerprint
	if key == "" {
		key = ComputeFingerprint(ds.Format, ds.Content, ds.Schema, ds.Message)
	}
	if records, ok := r.cache.Get(key); ok {
		return records, nil
	}

	result, err, _ := r.decodeGroup.Do(key, func() (interface{}, error) {
		// Double-check cache after acquiring singleflight lock
		if records, ok := r.cache.Get(key); ok {
			return records, nil
		}

		decoder, err := r.formats.GetDecoder(ds.Format)
		if err != nil {
			return nil, err
		}
		records, err := decoder.Decode(ctx, ds)
		if err != nil {
			return nil, &DecodeError{Dataset: ds.Name, Format: ds.Format, Err: err}
		}

		r.cache.Put(key, records)
		slog.Debug("Decoded dataset", "name", ds.Name, "fingerprint", key, "records", len(records))
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]any), nil
}
