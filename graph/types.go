package graph

import "errors"

// ErrNodeNotFound indicates a requested node ID does not exist.
var ErrNodeNotFound = errors.New("graph: node not found")

// ErrEdgeNotFound indicates a requested edge ID does not exist.
var ErrEdgeNotFound = errors.New("graph: edge not found")

// PillarMode selects which vertices WayGeometry returns.
type PillarMode int

const (
	// PillarOnly returns only the interior polyline vertices (no tower nodes).
	PillarOnly PillarMode = iota
	// PillarAndAdj returns the interior vertices plus the adjacent (end) tower node.
	PillarAndAdj
)

// Bounds is an axis-aligned lat/lon rectangle.
type Bounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Empty reports whether the rectangle is degenerate (zero or negative area).
func (b Bounds) Empty() bool {
	return b.MinLat >= b.MaxLat || b.MinLon >= b.MaxLon
}

// LatLon is a single WGS84-ish coordinate pair.
type LatLon struct {
	Lat, Lon float64
}

// EdgeIteratorState describes one traversal of one edge: which node it was
// reached from (base), which node it leads to (adj), and the edge's
// polyline. Detach returns a copy that is safe to retain after the
// iterator that produced it has moved on.
type EdgeIteratorState interface {
	EdgeID() int32
	BaseNode() int32
	AdjNode() int32
	// WayGeometry returns the polyline for this edge in base→adj order.
	WayGeometry(mode PillarMode) []LatLon
	// Detach returns a value independent of whatever iterator produced it.
	// If reverse is true, base/adj are swapped and the geometry reversed.
	Detach(reverse bool) EdgeIteratorState
}

// EdgeFilter accepts or rejects an edge during traversal.
type EdgeFilter func(EdgeIteratorState) bool

// AllEdges accepts every edge.
func AllEdges(EdgeIteratorState) bool { return true }

// EdgeIterator walks a sequence of edges; Next advances the cursor and
// reports whether a further edge is available. The EdgeIteratorState
// methods describe the edge at the current cursor position.
type EdgeIterator interface {
	EdgeIteratorState
	Next() bool
}

// EdgeExplorer yields an EdgeIterator over the edges incident to a node.
type EdgeExplorer interface {
	SetBaseNode(node int32) EdgeIterator
}

// Graph is the external road-graph collaborator. Implementations must be
// safe for concurrent reads once built; locidx never mutates a Graph.
type Graph interface {
	NodeCount() int
	EdgeCount() int
	Bounds() Bounds
	NodeLatLon(node int32) (lat, lon float64, ok bool)

	// AllEdges returns a fresh iterator over every edge, each visited once.
	AllEdges() EdgeIterator

	// EdgeIteratorStateForKey resolves a detached edge iterator state from a
	// key of the form edgeID*2 (+1 to request the reversed orientation),
	// mirroring the road-graph convention this index was built against.
	EdgeIteratorStateForKey(key int32) (EdgeIteratorState, bool)

	// CreateEdgeExplorer returns an explorer over outgoing edges that pass
	// filter. A nil filter is equivalent to AllEdges.
	CreateEdgeExplorer(filter EdgeFilter) EdgeExplorer
}
