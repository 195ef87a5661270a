package dataset

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Decoder turns a dataset's encoded content into records. Each Format has
// one Decoder. Records may be any value the path resolver can walk: maps,
// slices, scalars or proto.Message values.
type Decoder interface {
	Decode(ctx context.Context, ds *Dataset) ([]any, error)
}

// FormatRegistry maps formats to decoders.
type FormatRegistry struct {
	mu       sync.RWMutex
	decoders map[Format]Decoder
}

// NewFormatRegistry creates an empty format registry. Callers register
// formats themselves, since the format packages import this one.
func NewFormatRegistry() *FormatRegistry {
	return &FormatRegistry{
		decoders: make(map[Format]Decoder),
	}
}

// RegisterFormat installs the decoder for format, replacing any previous one.
func (r *FormatRegistry) RegisterFormat(format Format, decoder Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.decoders[format] = decoder
}

// GetDecoder returns an error if format has not been registered.
func (r *FormatRegistry) GetDecoder(format Format) (Decoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	decoder, exists := r.decoders[format]
	if !exists {
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidDataset, format)
	}
	return decoder, nil
}

func (r *FormatRegistry) IsFormatSupported(format Format) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.decoders[format]
	return exists
}

// SupportedFormats returns the registered formats in sorted order.
func (r *FormatRegistry) SupportedFormats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]Format, 0, len(r.decoders))
	for format := range r.decoders {
		formats = append(formats, format)
	}
	slices.Sort(formats)
	return formats
}
