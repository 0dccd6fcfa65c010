// Package locidx implements a geospatial nearest-edge index for a road
// graph: given a query latitude/longitude it returns the closest edge
// (and the snapped point on it) under a caller-supplied filter, plus
// rectangular range queries over every edge overlapping a bounding box.
//
// Overview:
//
//   - The graph's bounding box is tiled by a hierarchical grid with mixed
//     fan-out (16 children per node where density is high, 4 elsewhere),
//     addressed by a bit-reversed Morton key so traversal is mask-then-shift.
//   - Construction rasterises every edge's polyline into the tiles it
//     touches (Bresenham's line algorithm in tile-coordinate space), then
//     serialises the resulting tree depth-first into a flat, sign-encoded
//     int32 array (package flatstore).
//   - Queries expand rings of tiles around the point, collect seed edges,
//     and refine with a breadth-first walk of the graph whose visited set
//     is shared across seeds, snapping to the closest tower node, pillar,
//     or edge interior.
//
// Lifecycle:
//
//   - New(g, opts...) configures an unbuilt Index over a graph.Graph.
//   - Prepare() builds the index in memory (unbuilt → live).
//   - Load(path) loads a previously flushed index, validating its header
//     against the current graph (unbuilt → live); it returns (false, nil)
//     if path does not exist, so callers can fall back to Prepare.
//   - Close() is terminal; every operation after Close fails with
//     ErrIndexClosed.
//
// Construction must not overlap queries; once live, the store is
// effectively read-only and FindClosest/QueryBBox may be called freely.
//
// Configuration:
//
//   - WithMinResolutionInMeter(n): target leaf-tile width, default 300m.
//   - WithMaxRegionSearch(k): expanding-ring search bound, default 4,
//     rounded up to the next even number.
//   - WithApproximation(bool): planar (fast, default) vs. precise
//     (earth-model) distance calculator for queries.
//
// See also:
//
//   - graph.Graph: the road-graph collaborator this index is built over.
//   - distance.Calculator: the planar/precise distance abstraction.
//   - query.Engine: the seed-search and refinement machinery Prepare and
//     Load wire up.
package locidx
