package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache(2)
	c.Put("a", []any{1})
	c.Put("b", []any{2})

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Put("c", []any{3})
	require.Equal(t, 2, c.Len())

	_, ok = c.Get("b")
	require.False(t, ok)
	got, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, []any{1}, got)
	_, ok = c.Get("c")
	require.True(t, ok)
}

func TestLRUCache_PutReplaces(t *testing.T) {
	c := NewLRUCache(2)
	c.Put("a", []any{1})
	c.Put("a", []any{2})

	require.Equal(t, 1, c.Len())
	got, _ := c.Get("a")
	require.Equal(t, []any{2}, got)
}

func TestLRUCache_Invalidate(t *testing.T) {
	c := NewLRUCache(0)
	c.Put("a", []any{1})
	c.Invalidate("a")
	c.Invalidate("missing")

	_, ok := c.Get("a")
	require.False(t, ok)
	require.Equal(t, 0, c.Len())
}
