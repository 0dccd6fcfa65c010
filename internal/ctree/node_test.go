package ctree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeafInsertSortedDedup(t *testing.T) {
	l := NewLeaf()
	l.Insert(5)
	l.Insert(2)
	l.Insert(9)
	l.Insert(2) // duplicate, no-op

	require.Equal(t, []int32{2, 5, 9}, l.IDs)
}

func TestAddEdgeToOneTileDescendsAndDedups(t *testing.T) {
	entries := []int{4, 4}
	shifts := []uint{2, 2}
	masks := []uint64{3, 3}

	root := NewInternal(entries[0])
	// keyPart low 2 bits select depth-0 child, next 2 bits select the leaf.
	var keyPart uint64 = (1 << 2) | 2 // depth0 idx=2, depth1 idx=1
	AddEdgeToOneTile(root, entries, shifts, masks, 42, keyPart)
	AddEdgeToOneTile(root, entries, shifts, masks, 42, keyPart) // duplicate insert

	child, ok := root.Children[2].(*Internal)
	require.True(t, ok)
	leaf, ok := child.Children[1].(*Leaf)
	require.True(t, ok)
	require.Equal(t, []int32{42}, leaf.IDs)
}
