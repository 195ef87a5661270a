// Package json decodes datasets stored as a JSON array of records.
package json

import (
	"context"
	"fmt"

	"github.com/aevon-lab/sift/internal/dataset"
	"github.com/ohler55/ojg/oj"
)

// Decoder parses JSON content with ojg. Objects become map[string]any,
// integers int64 and other numbers float64, which keeps records directly
// usable by $-prefixed JSONPath queries.
type Decoder struct{}

// NewDecoder creates a new JSON decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) Decode(ctx context.Context, ds *dataset.Dataset) ([]any, error) {
	if ds.Format != dataset.FormatJSON {
		return nil, fmt.Errorf("expected json format, got %s", ds.Format)
	}
	return ParseList(ds.Content)
}

// ParseList parses content that must hold a top-level JSON array.
func ParseList(content []byte) ([]any, error) {
	v, err := oj.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	records, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("top-level JSON value must be an array, got %T", v)
	}
	return records, nil
}
