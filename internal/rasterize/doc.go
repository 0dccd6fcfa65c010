// Package rasterize implements the Rasteriser of spec.md §4.4: for every
// accepted edge, it walks the edge's polyline segment by segment, skips
// segments that cross the antimeridian, projects the remaining segments
// into tile-coordinate space, enumerates every tile a segment's Bresenham
// line touches, and inserts the edge ID into each touched tile's leaf of
// the construction tree.
//
// The neighbor-enumeration-over-a-2D-grid shape is grounded on
// gridgraph.GridGraph's precomputed neighbor offsets
// (github.com/katalvlaran/lvlath/gridgraph/gridgraph.go); the line-walk
// itself follows Bresenham's algorithm as spec.md §4.4 requires.
package rasterize
