package retained

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// declare builds a frame from a nested description: each entry is an id followed
// by its children.
type node struct {
	id       uint64
	children []node
}

func declare(t *testing.T, f *Frame, nodes ...node) {
	t.Helper()
	for _, n := range nodes {
		_, err := f.Open(n.id)
		require.NoError(t, err)
		declare(t, f, n.children...)
		require.NoError(t, f.Close())
	}
}

func TestFrameStructure(t *testing.T) {
	f := NewFrame()
	declare(t, f,
		node{id: 1, children: []node{
			{id: 2, children: []node{{id: 4}}},
			{id: 3},
		}},
		node{id: 9},
	)

	require.Equal(t, 5, f.Len())
	require.Len(t, f.Roots(), 2)

	root := f.Roots()[0]
	assert.Equal(t, uint64(1), f.ElementID(root))
	assert.Equal(t, -1, f.Parent(root))

	children := f.ChildIndices(root)
	require.Len(t, children, 2)
	assert.Equal(t, uint64(2), f.ElementID(children[0]))
	assert.Equal(t, uint64(3), f.ElementID(children[1]))
	assert.Equal(t, root, f.Parent(children[0]))

	idx, ok := f.Lookup(4)
	require.True(t, ok)
	assert.Equal(t, children[0], f.Parent(idx))

	for _, id := range []uint64{1, 2, 3, 4, 9} {
		assert.True(t, f.Live().Has(id), "id %d", id)
	}
	assert.False(t, f.Live().Has(5))
	assert.Zero(t, f.Depth())
	assert.Equal(t, -1, f.Current())
}

func TestFrameDuplicateID(t *testing.T) {
	f := NewFrame()
	_, err := f.Open(1)
	require.NoError(t, err)
	_, err = f.Open(1)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 1, f.Len())
}

func TestFrameUnbalancedClose(t *testing.T) {
	f := NewFrame()
	assert.ErrorIs(t, f.Close(), ErrUnbalanced)
}

func TestFrameReset(t *testing.T) {
	f := NewFrame()
	declare(t, f, node{id: 1, children: []node{{id: 2}, {id: 3}}})
	f.Reset()

	assert.Zero(t, f.Len())
	assert.Empty(t, f.Roots())
	assert.Empty(t, f.Live())

	declare(t, f, node{id: 7, children: []node{{id: 8}}})
	root := f.Roots()[0]
	assert.Equal(t, uint64(7), f.ElementID(root))
	require.Len(t, f.ChildIndices(root), 1, "children from the previous frame are dropped")
	assert.Equal(t, uint64(8), f.ElementID(f.ChildIndices(root)[0]))
	_, ok := f.Lookup(2)
	assert.False(t, ok)
}

func BenchmarkFrameDeclare(b *testing.B) {
	f := NewFrame()
	b.ReportAllocs()
	for b.Loop() {
		f.Reset()
		for i := range uint64(100) {
			_, _ = f.Open(i)
			_, _ = f.Open(1000 + i)
			_ = f.Close()
			_ = f.Close()
		}
	}
}
