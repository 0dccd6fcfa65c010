// Package distance implements the distance-calculator collaborator of
// spec.md §6: a planar (fast, approximate) and a precise (earth-model)
// calculator, both satisfying the same Calculator interface, plus the
// order-preserving normalized-distance transform used throughout the
// query engine to avoid repeated square roots.
//
// Coordinate math is grounded on github.com/paulmach/orb's orb.Point /
// orb/geo.Distance, the geospatial library referenced by this corpus's
// other_examples/bb1f67da_protomaps-go-pmtiles__pmtiles-extract.go.go.
package distance
