package collection

import (
	"context"
	"encoding/json"
	"math"
	"slices"
	"testing"

	"github.com/aevon-lab/sift/internal/core/path"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type celsius float64

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
		ok   bool
	}{
		{"int", 42, "42", true},
		{"int64", int64(-7), "-7", true},
		{"int32", int32(9), "9", true},
		{"uint8", uint8(255), "255", true},
		{"float64", 88.5, "88.5", true},
		{"float32", float32(0.25), "0.25", true},
		{"named float", celsius(36.6), "36.6", true},
		{"json number", json.Number("12.345"), "12.345", true},
		{"decimal", decimal.RequireFromString("1.10"), "1.1", true},
		{"numeric string", "12", "0", false},
		{"bool", true, "0", false},
		{"nil", nil, "0", false},
		{"NaN", math.NaN(), "0", false},
		{"infinity", math.Inf(1), "0", false},
		{"bad json number", json.Number("1e"), "0", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ToDecimal(tc.in)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				require.True(t, got.Equal(decimal.RequireFromString(tc.want)), got.String())
			}
		})
	}
}

func TestSum(t *testing.T) {
	got, err := Sum(context.Background(), threeKingdoms(), "age", "score")
	require.NoError(t, err)
	require.Equal(t, []string{"age", "score"}, got.Keys())

	age, _ := got.Get("age")
	score, _ := got.Get("score")
	require.Equal(t, "72", age.String())
	require.Equal(t, "258.75", score.String())
}

func TestSum_DuplicateNamesCollapse(t *testing.T) {
	got, err := Sum(context.Background(), threeKingdoms(), "age", "score", "age")
	require.NoError(t, err)
	require.Equal(t, []string{"age", "score"}, got.Keys())

	age, _ := got.Get("age")
	require.Equal(t, "72", age.String())
}

func TestSum_IsExact(t *testing.T) {
	records := []map[string]any{{"v": 0.1}, {"v": 0.2}}
	got, err := Sum(context.Background(), records, "v")
	require.NoError(t, err)
	v, _ := got.Get("v")
	require.Equal(t, "0.3", v.String())
}

func TestSum_PermutationInvariant(t *testing.T) {
	ctx := context.Background()
	records := threeKingdoms()

	want, err := Sum(ctx, records, "age", "score")
	require.NoError(t, err)

	reversed := slices.Clone(records)
	slices.Reverse(reversed)
	got, err := Sum(ctx, reversed, "age", "score")
	require.NoError(t, err)

	for name, total := range want.All() {
		other, ok := got.Get(name)
		require.True(t, ok)
		require.True(t, total.Equal(other), name)
	}
}

func TestSum_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Sum[*user](ctx, nil, "age")
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Sum(ctx, threeKingdoms())
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Sum(ctx, threeKingdoms(), "age", "")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Sum(ctx, threeKingdoms(), "name")
	require.ErrorIs(t, err, path.ErrResolution)

	_, err = Sum(ctx, threeKingdoms(), "weight")
	require.ErrorIs(t, err, path.ErrResolution)

	// A nil value is not a number.
	_, err = Sum(ctx, []map[string]any{{"v": 1}, {"v": nil}}, "v")
	var rerr *path.ResolutionError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, "v", rerr.Path)
}

func TestAvg(t *testing.T) {
	got, err := Avg(context.Background(), threeKingdoms(), 2, "age", "score")
	require.NoError(t, err)
	require.Equal(t, []string{"age", "score"}, got.Keys())

	age, _ := got.Get("age")
	score, _ := got.Get("score")
	require.Equal(t, "24.00", age.StringFixed(2))
	require.Equal(t, "86.25", score.StringFixed(2))
}

func TestAvg_Rounding(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		values []any
		scale  int32
		want   string
	}{
		{"repeating", []any{1, 1, 0}, 2, "0.67"},
		{"half rounds up", []any{1, 2}, 0, "2"},
		{"negative half rounds away from zero", []any{-1, -2}, 0, "-2"},
		{"exact quotient", []any{10, 20}, 0, "15"},
		{"extra digits", []any{1, 2}, 4, "1.5000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			records := make([]map[string]any, len(tc.values))
			for i, v := range tc.values {
				records[i] = map[string]any{"v": v}
			}
			got, err := Avg(ctx, records, tc.scale, "v")
			require.NoError(t, err)
			v, _ := got.Get("v")
			require.Equal(t, tc.want, v.StringFixed(tc.scale))
		})
	}
}

func TestAvg_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Avg(ctx, threeKingdoms(), -1, "age")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Avg[*user](ctx, nil, 2, "age")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Avg(ctx, threeKingdoms(), 2, "name")
	require.ErrorIs(t, err, path.ErrResolution)
}
