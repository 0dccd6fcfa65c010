// Package morton implements the Morton-key (Z-order) encoder collaborator
// of spec.md §6: interleaving a point's per-axis grid coordinates into a
// single integer key so that spatially close points tend to have close
// keys, plus the bit-reversal used to put level-0 in the key's
// least-significant bits (spec.md §4.1, §9 "Reversed Morton key").
//
// No example or reference repo in this corpus imports a dedicated Morton/
// Z-order library (the two reference files that touch tile IDs,
// other_examples/c3af116c_gogama-flatgeobuf__packedrtree-packedrtree.go.go
// and other_examples/266e44c1_pspoerri-geotiff2pmtiles__internal-pmtiles-directory.go.go,
// both hand-roll their own bit arithmetic with the standard library), so
// this package does the same: hand-written bit-interleaving loops over the
// standard library only.
package morton
