package path

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Segment
	}{
		{
			name: "single field",
			in:   "name",
			want: []Segment{{Kind: KindField, Name: "name"}},
		},
		{
			name: "nested fields",
			in:   "address.city",
			want: []Segment{{Kind: KindField, Name: "address"}, {Kind: KindField, Name: "city"}},
		},
		{
			name: "composite",
			in:   "a.b[0].c(key)",
			want: []Segment{
				{Kind: KindField, Name: "a"},
				{Kind: KindField, Name: "b"},
				{Kind: KindIndex, Index: 0},
				{Kind: KindField, Name: "c"},
				{Kind: KindKey, Name: "key"},
			},
		},
		{
			name: "chained suffixes",
			in:   "matrix[1][2]",
			want: []Segment{{Kind: KindField, Name: "matrix"}, {Kind: KindIndex, Index: 1}, {Kind: KindIndex, Index: 2}},
		},
		{
			name: "leading index",
			in:   "[3].name",
			want: []Segment{{Kind: KindIndex, Index: 3}, {Kind: KindField, Name: "name"}},
		},
		{
			name: "key containing dots",
			in:   "attrs(a.b)",
			want: []Segment{{Kind: KindField, Name: "attrs"}, {Kind: KindKey, Name: "a.b"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Parse(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, p.Segments())
			require.Equal(t, tc.in, p.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{
		"",
		".name",
		"a..b",
		"a.",
		"a[",
		"a[x]",
		"a[-1]",
		"a()",
		"a(key",
		"a]b",
		"a[0]b",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrResolution), "want ErrResolution, got %v", err)

			var re *ResolutionError
			require.True(t, errors.As(err, &re))
			require.Equal(t, in, re.Path)
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	require.Panics(t, func() { MustParse("a..b") })
	require.NotPanics(t, func() { MustParse("a.b") })
}
