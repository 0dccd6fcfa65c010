package query

import "github.com/nearedge/locidx/graph"

// SnapKind classifies where on the matched edge a snap landed.
type SnapKind int

const (
	// TOWER means the query point snapped to one of the edge's end nodes.
	TOWER SnapKind = iota
	// PILLAR means the query point snapped to an interior polyline vertex.
	PILLAR
	// EDGE means the query point snapped to the interior of a segment.
	EDGE
)

func (k SnapKind) String() string {
	switch k {
	case TOWER:
		return "TOWER"
	case PILLAR:
		return "PILLAR"
	case EDGE:
		return "EDGE"
	default:
		return "UNKNOWN"
	}
}

// Snap is the result of FindClosest: the closest edge (and position along
// it) to a query point, or an invalid Snap carrying only QueryLat/QueryLon
// if nothing matched within the search's region limit (spec.md §4.6, §9).
type Snap struct {
	QueryLat, QueryLon float64

	// Edge is the matched edge, oriented base→adj in the direction it was
	// discovered. Nil when !Valid().
	Edge graph.EdgeIteratorState
	// NodeID is the snapped-to node for Kind==TOWER; for EDGE it is the
	// base node of the traversal the snap was found on, and for PILLAR the
	// adj node of that traversal (informational for PILLAR/EDGE).
	NodeID int32
	// WayIndex is the index, within Edge's base→adj polyline, of the
	// segment or vertex the snap landed on.
	WayIndex int
	Kind     SnapKind

	// Distance is the physical distance from the query point to the
	// snapped point, in metres (denormalized once, at the end of the
	// search, per spec.md §9).
	Distance float64
	// SnapLat, SnapLon is the coordinate the query point was snapped to.
	SnapLat, SnapLon float64

	valid bool
}

// Valid reports whether the search found any edge at all.
func (s *Snap) Valid() bool {
	return s != nil && s.valid
}

// SnappedPoint returns the coordinate the query point was snapped to.
func (s *Snap) SnappedPoint() (lat, lon float64, ok bool) {
	if !s.Valid() {
		return 0, 0, false
	}
	return s.SnapLat, s.SnapLon, true
}

// Less orders two snaps by ascending query distance, with invalid snaps
// sorting last. It is the comparator spec.md §9 names for assembling
// ranked snap results.
func Less(a, b *Snap) bool {
	if a.Valid() != b.Valid() {
		return a.Valid()
	}
	return a.Distance < b.Distance
}

// candidate is the in-progress, normalized-distance form of a Snap, used
// internally while the search is still comparing squared/normalized
// distances rather than physical ones.
type candidate struct {
	normDist float64
	kind     SnapKind
	edge     graph.EdgeIteratorState
	nodeID   int32
	wayIndex int
	snapLat  float64
	snapLon  float64
}
