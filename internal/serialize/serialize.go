package serialize

import (
	"github.com/nearedge/locidx/flatstore"
	"github.com/nearedge/locidx/internal/ctree"
)

// Counts accumulates the diagnostic totals spec.md §4.5 asks the
// serialiser to maintain: the number of edge IDs written, and the number
// of non-empty leaves.
type Counts struct {
	Size  int
	Leafs int
}

// Tree packs root into store starting at intPointer and returns the next
// free int-offset past the written subtree, along with the accumulated
// Counts.
func Tree(store *flatstore.Store, root ctree.Node, intPointer int) (next int, counts Counts) {
	next = pack(store, root, intPointer, &counts)
	return
}

func pack(store *flatstore.Store, n ctree.Node, intPointer int, counts *Counts) int {
	switch v := n.(type) {
	case nil:
		return intPointer
	case *ctree.Internal:
		return packInternal(store, v, intPointer, counts)
	case *ctree.Leaf:
		return packLeaf(store, v, intPointer, counts)
	default:
		return intPointer
	}
}

func packInternal(store *flatstore.Store, node *ctree.Internal, intPointer int, counts *Counts) int {
	fanout := len(node.Children)
	store.EnsureCapacity(intPointer + fanout - 1)
	cursor := intPointer + fanout

	for i, child := range node.Children {
		if child == nil {
			store.SetInt(intPointer+i, 0)
			continue
		}
		childStart := cursor
		cursor = pack(store, child, cursor, counts)
		store.SetInt(intPointer+i, int32(childStart))
	}
	return cursor
}

func packLeaf(store *flatstore.Store, leaf *ctree.Leaf, intPointer int, counts *Counts) int {
	n := len(leaf.IDs)
	switch {
	case n == 0:
		return intPointer
	case n == 1:
		store.SetInt(intPointer, -(leaf.IDs[0] + 1))
		counts.Size++
		counts.Leafs++
		return intPointer + 1
	default:
		store.EnsureCapacity(intPointer + n)
		for j, id := range leaf.IDs {
			store.SetInt(intPointer+1+j, id)
		}
		store.SetInt(intPointer, int32(intPointer+n+1))
		counts.Size += n
		counts.Leafs++
		return intPointer + n + 1
	}
}
