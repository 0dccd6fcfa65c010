// Package tilegeom is the pure-math layer of the spatial index (spec.md
// §4.1): deriving the per-depth fan-out schedule and tile size from graph
// bounds and a target resolution, reversing Morton keys for traversal, and
// measuring the distance from a query point to a ring of tiles around it.
//
// The derived-once Geometry struct is grounded on gridgraph.GridOptions
// (github.com/katalvlaran/lvlath/gridgraph), the teacher's own "treat a
// coordinate grid as a traversable structure" package.
package tilegeom
