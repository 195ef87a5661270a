package collection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJoin(t *testing.T) {
	got, ok := Join([]string{"a", "b", "c"})
	require.True(t, ok)
	require.Equal(t, "a,b,c", got)

	got, ok = Join([]int{1, 2, 3}, " | ")
	require.True(t, ok)
	require.Equal(t, "1 | 2 | 3", got)

	got, ok = Join([]string{"only"})
	require.True(t, ok)
	require.Equal(t, "only", got)

	// An explicit empty connector is honoured.
	got, ok = Join([]string{"a", "b"}, "")
	require.True(t, ok)
	require.Equal(t, "ab", got)
}

func TestJoin_Absent(t *testing.T) {
	_, ok := Join[string](nil)
	require.False(t, ok)

	_, ok = Join([]string{})
	require.False(t, ok)

	// Present but empty is not the same as absent.
	got, ok := Join([]string{""})
	require.True(t, ok)
	require.Equal(t, "", got)
}

func TestJoinWith_SkipEmpty(t *testing.T) {
	in := []string{"a", "", "b", ""}

	got, ok := JoinWith(in, JoinOptions{Connector: ","})
	require.True(t, ok)
	require.Equal(t, "a,,b,", got)

	got, ok = JoinWith(in, JoinOptions{Connector: ",", SkipEmpty: true})
	require.True(t, ok)
	require.Equal(t, "a,b", got)
}

func TestJoin_NilElements(t *testing.T) {
	var missing *user
	in := []any{"a", nil, "b", missing}

	got, ok := Join(in)
	require.True(t, ok)
	require.Equal(t, "a,null,b,null", got)

	got, ok = JoinWith(in, JoinOptions{Connector: ",", SkipEmpty: true})
	require.True(t, ok)
	require.Equal(t, "a,b", got)
}

func TestToArray(t *testing.T) {
	got, err := ToArray([]any{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, got)

	got, err = ToArray([]any{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, got)

	got, err = ToArray([]int{0, 1})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, got)

	u := &user{Name: "张飞"}
	got, err = ToArray([]any{u})
	require.NoError(t, err)
	require.Equal(t, []*user{u}, got)

	// Later nils become zero values of the element type.
	got, err = ToArray([]any{"a", nil})
	require.NoError(t, err)
	require.Equal(t, []string{"a", ""}, got)
}

func TestToArray_Empty(t *testing.T) {
	got, err := ToArray[any](nil)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = ToArray([]string{})
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestToArray_Errors(t *testing.T) {
	_, err := ToArray([]any{nil, "a"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ToArray([]any{"  ", "a"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ToArray([]any{"a", 1})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCursor(t *testing.T) {
	backing := []int{1, 2, 3}
	c := ToCursor(backing)

	require.True(t, c.HasNext())
	v, ok := c.Next()
	require.True(t, ok)
	require.Equal(t, 1, v)

	require.Equal(t, []int{2, 3}, ToList(c))
	require.False(t, c.HasNext())

	_, ok = c.Next()
	require.False(t, ok)
	require.Equal(t, []int{}, ToList(c))
}

func TestCursor_Seq(t *testing.T) {
	c := ToCursor([]string{"a", "b", "c"})
	var seen []string
	for s := range c.Seq() {
		seen = append(seen, s)
		if s == "b" {
			break
		}
	}
	require.Equal(t, []string{"a", "b"}, seen)
	require.Equal(t, []string{"c"}, ToList(c))
}

func TestToList_NilCursor(t *testing.T) {
	got := ToList[int](nil)
	require.NotNil(t, got)
	require.Empty(t, got)

	require.Equal(t, []string{}, ToList(ToCursor[string](nil)))
}
