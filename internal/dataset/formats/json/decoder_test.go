package json

import (
	"context"
	"testing"

	"github.com/aevon-lab/sift/internal/dataset"
	"github.com/stretchr/testify/require"
)

func TestDecoder_Decode(t *testing.T) {
	ds := &dataset.Dataset{
		Name:    "members",
		Format:  dataset.FormatJSON,
		Content: []byte(`[{"name":"张飞","age":23,"score":88.5,"tags":["shu"]},{"name":"关羽","age":24}]`),
	}

	records, err := NewDecoder().Decode(context.Background(), ds)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0].(map[string]any)
	require.Equal(t, "张飞", first["name"])
	require.Equal(t, int64(23), first["age"])
	require.Equal(t, 88.5, first["score"])
	require.Equal(t, []any{"shu"}, first["tags"])
}

func TestDecoder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		format  dataset.Format
		content string
		errMsg  string
	}{
		{"wrong format", dataset.FormatYaml, `[]`, "expected json format"},
		{"object", dataset.FormatJSON, `{"name":"张飞"}`, "must be an array"},
		{"malformed", dataset.FormatJSON, `[{"name":`, "failed to parse JSON"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ds := &dataset.Dataset{Name: "bad", Format: tc.format, Content: []byte(tc.content)}
			_, err := NewDecoder().Decode(context.Background(), ds)
			require.ErrorContains(t, err, tc.errMsg)
		})
	}
}
