package query

import (
	"github.com/RoaringBitmap/roaring/roaring64"

	"github.com/nearedge/locidx/flatstore"
	"github.com/nearedge/locidx/graph"
)

// QueryBBox visits every edge ID whose tile intersects bbox, each exactly
// once, in no particular order (spec.md §4.7).
func (e *Engine) QueryBBox(bbox graph.Bounds, visitor func(edgeID int32)) {
	seen := roaring64.New()
	e.queryRecurse(flatstore.StartPointer, 0, e.geom.Bounds, bbox, seen, visitor)
}

// queryRecurse descends the flat tree, pruning any child tile that does
// not intersect bbox. Once a tile is known to be fully inside bbox, that
// tile itself is passed down as the box, so none of its children is pruned.
func (e *Engine) queryRecurse(intPointer, depth int, tile, bbox graph.Bounds, seen *roaring64.Bitmap, visitor func(int32)) {
	entries := e.geom.Entries

	if depth == len(entries) {
		v := e.store.GetInt(intPointer)
		switch {
		case v < 0:
			e.emit(-(v + 1), seen, visitor)
		case v > 0:
			for o := intPointer + 1; o < int(v); o++ {
				e.emit(e.store.GetInt(o), seen, visitor)
			}
		}
		return
	}

	fanout := entries[depth]
	for idx := 0; idx < fanout; idx++ {
		childPtr := e.store.GetInt(intPointer + idx)
		if childPtr == 0 {
			continue
		}

		childTile := splitBounds(tile, fanout, idx)
		switch relate(childTile, bbox) {
		case relDisjoint:
			continue
		case relContained:
			e.queryRecurse(int(childPtr), depth+1, childTile, childTile, seen, visitor)
		default:
			e.queryRecurse(int(childPtr), depth+1, childTile, bbox, seen, visitor)
		}
	}
}

func (e *Engine) emit(id int32, seen *roaring64.Bitmap, visitor func(int32)) {
	if seen.CheckedAdd(uint64(id)) {
		visitor(id)
	}
}

// splitIndex extracts the lat- and lon-axis sub-indices packed into a
// child slot index. morton.Encoder.Encode interleaves gy (lat) into the
// even bit positions and gx (lon) into the odd ones, and
// Geometry.CreateReverseKey then bit-reverses the whole key
// (morton.Encoder.ReverseKey) before the tree descent consumes it
// least-significant-bits-first; reversing a fixed-parity interleaving
// swaps which parity belongs to which axis at each consumed chunk. So
// for fan-out 4, bit 0 is the lon-bit and bit 1 the lat-bit; for
// fan-out 16, bits {0,2} form the 2-bit lon-component and bits {1,3}
// form the 2-bit lat-component, the lower bit of each pair (0 and 1)
// being the coarser, high-order bit of that component.
func splitIndex(idx, fanout int) (latIdx, lonIdx int) {
	switch fanout {
	case 16:
		lonIdx = ((idx & 1) << 1) | (idx >> 2 & 1)
		latIdx = ((idx >> 1 & 1) << 1) | (idx >> 3 & 1)
	default:
		lonIdx = idx & 1
		latIdx = idx >> 1 & 1
	}
	return
}

func divisions(fanout int) int {
	if fanout == 16 {
		return 4
	}
	return 2
}

// splitBounds returns the sub-rectangle of parent occupied by child idx
// of a node with the given fanout.
func splitBounds(parent graph.Bounds, fanout, idx int) graph.Bounds {
	latIdx, lonIdx := splitIndex(idx, fanout)
	div := float64(divisions(fanout))

	latStep := (parent.MaxLat - parent.MinLat) / div
	lonStep := (parent.MaxLon - parent.MinLon) / div

	return graph.Bounds{
		MinLat: parent.MinLat + float64(latIdx)*latStep,
		MaxLat: parent.MinLat + float64(latIdx+1)*latStep,
		MinLon: parent.MinLon + float64(lonIdx)*lonStep,
		MaxLon: parent.MinLon + float64(lonIdx+1)*lonStep,
	}
}

type relation int

const (
	relDisjoint relation = iota
	relContained
	relIntersect
)

func relate(a, b graph.Bounds) relation {
	if a.MaxLat < b.MinLat || a.MinLat > b.MaxLat || a.MaxLon < b.MinLon || a.MinLon > b.MaxLon {
		return relDisjoint
	}
	if a.MinLat >= b.MinLat && a.MaxLat <= b.MaxLat && a.MinLon >= b.MinLon && a.MaxLon <= b.MaxLon {
		return relContained
	}
	return relIntersect
}
