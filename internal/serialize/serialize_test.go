package serialize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nearedge/locidx/flatstore"
	"github.com/nearedge/locidx/internal/ctree"
)

func TestSerializeSingleIDLeafUsesNegativeEncoding(t *testing.T) {
	entries := []int{4, 4}
	shifts := []uint{2, 2}
	masks := []uint64{3, 3}

	root := ctree.NewInternal(entries[0])
	ctree.AddEdgeToOneTile(root, entries, shifts, masks, 41, 0)

	store := flatstore.Create(16)
	next, counts := Tree(store, root, flatstore.StartPointer)

	require.Equal(t, 1, counts.Size)
	require.Equal(t, 1, counts.Leafs)
	require.Greater(t, next, flatstore.StartPointer)

	// slot 0 of root points at the depth-1 internal node, whose slot 0 in
	// turn points at the leaf cell.
	childPtr := store.GetInt(flatstore.StartPointer)
	require.Greater(t, childPtr, int32(0))
	leafPtr := store.GetInt(int(childPtr))
	leafCell := store.GetInt(int(leafPtr))
	require.Equal(t, int32(-(41 + 1)), leafCell)
}

func TestSerializeMultiIDLeafUsesHeaderEncoding(t *testing.T) {
	entries := []int{4}
	shifts := []uint{2}
	masks := []uint64{3}

	root := ctree.NewInternal(entries[0])
	ctree.AddEdgeToOneTile(root, entries, shifts, masks, 10, 1)
	ctree.AddEdgeToOneTile(root, entries, shifts, masks, 20, 1)
	ctree.AddEdgeToOneTile(root, entries, shifts, masks, 5, 1)

	store := flatstore.Create(16)
	_, counts := Tree(store, root, flatstore.StartPointer)

	require.Equal(t, 3, counts.Size)
	require.Equal(t, 1, counts.Leafs)

	leafPtr := int(store.GetInt(flatstore.StartPointer + 1))
	require.Greater(t, leafPtr, 0)

	header := store.GetInt(leafPtr)
	require.Equal(t, int32(leafPtr+4), header) // 3 IDs + header cell => end offset

	ids := []int32{store.GetInt(leafPtr + 1), store.GetInt(leafPtr + 2), store.GetInt(leafPtr + 3)}
	require.Equal(t, []int32{5, 10, 20}, ids)
}

func TestSerializeEmptySlotIsZero(t *testing.T) {
	entries := []int{4}
	root := ctree.NewInternal(entries[0])

	store := flatstore.Create(8)
	_, counts := Tree(store, root, flatstore.StartPointer)

	require.Equal(t, 0, counts.Size)
	for i := 0; i < 4; i++ {
		require.EqualValues(t, 0, store.GetInt(flatstore.StartPointer+i))
	}
}
