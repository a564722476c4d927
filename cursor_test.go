package bstviz

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorSequentialScan(t *testing.T) {
	t.Parallel()

	tree := setup(t, sample...)
	c := tree.Cursor()

	var got []int
	for v, ok := c.First(); ok; v, ok = c.Next() {
		got = append(got, v)
	}
	assert.Equal(t, tree.InOrder(), got)
	assert.False(t, c.Valid())

	_, ok := c.Next()
	assert.False(t, ok, "Next on an exhausted cursor")
}

func TestCursorReverseScan(t *testing.T) {
	t.Parallel()

	tree := setup(t, sample...)
	c := tree.Cursor()

	var got []int
	for v, ok := c.Last(); ok; v, ok = c.Prev() {
		got = append(got, v)
	}
	want := tree.InOrder()
	slices.Reverse(want)
	assert.Equal(t, want, got)
}

func TestCursorSeek(t *testing.T) {
	t.Parallel()

	tree := setup(t, sample...)
	tests := []struct {
		name   string
		target int
		want   int
		ok     bool
	}{
		{name: "exact_root", target: 10, want: 10, ok: true},
		{name: "exact_leaf", target: 7, want: 7, ok: true},
		{name: "between", target: 8, want: 10, ok: true},
		{name: "between_right", target: 13, want: 15, ok: true},
		{name: "below_all", target: -5, want: 3, ok: true},
		{name: "above_all", target: 19, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tree.Cursor()
			v, ok := c.Seek(tt.target)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.ok, c.Valid())
			if tt.ok {
				assert.Equal(t, tt.want, v)
				assert.Equal(t, tt.want, c.Value())
			}
		})
	}
}

func TestCursorEmptyTree(t *testing.T) {
	t.Parallel()

	c := New().Cursor()
	_, ok := c.First()
	assert.False(t, ok)
	_, ok = c.Last()
	assert.False(t, ok)
	_, ok = c.Seek(0)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Value())
}

// Scans after deletes walk parent links that the delete had to repair.
func TestCursorAfterDeletes(t *testing.T) {
	t.Parallel()

	tree := setup(t, 50, 25, 75, 12, 37, 62, 87, 6, 18, 31, 43, 56, 68, 81, 93)
	for _, v := range []int{50, 25, 87, 62, 6} {
		require.True(t, tree.Delete(v))
		require.NoError(t, tree.Check())

		var fwd, rev []int
		c := tree.Cursor()
		for v, ok := c.First(); ok; v, ok = c.Next() {
			fwd = append(fwd, v)
		}
		for v, ok := c.Last(); ok; v, ok = c.Prev() {
			rev = append(rev, v)
		}
		slices.Reverse(rev)
		assert.Equal(t, tree.InOrder(), fwd)
		assert.Equal(t, tree.InOrder(), rev)
	}
}
