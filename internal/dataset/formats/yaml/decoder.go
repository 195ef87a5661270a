// Package yaml decodes datasets stored as a YAML sequence of records.
package yaml

import (
	"context"
	"fmt"

	"github.com/aevon-lab/sift/internal/dataset"
	"gopkg.in/yaml.v3"
)

// Decoder parses YAML content with yaml.v3.
type Decoder struct{}

// NewDecoder creates a new YAML decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) Decode(ctx context.Context, ds *dataset.Dataset) ([]any, error) {
	if ds.Format != dataset.FormatYaml {
		return nil, fmt.Errorf("expected yaml format, got %s", ds.Format)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(ds.Content, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(root.Content) == 0 {
		return []any{}, nil
	}
	if doc := root.Content[0]; doc.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("top-level YAML value must be a sequence (line %d)", doc.Line)
	}

	var records []any
	if err := root.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode YAML records: %w", err)
	}
	return records, nil
}
