// Package ctree is the in-memory construction tree of spec.md §4.3: a
// mutable tree of fixed-fan-out internal nodes and sorted, duplicate-free
// leaf nodes, populated one tile at a time by the rasteriser and later
// packed into a flatstore.Store by package serialize.
//
// The insert-sorted, duplicate-free slice is grounded on
// core.adjacencyList's nested-map insertion discipline
// (github.com/katalvlaran/lvlath/core/adjacency_list.go), adapted from a
// map to a binary-searched slice because leaf membership here is a small,
// dense, strictly-increasing set of edge IDs (spec.md's leaf
// de-duplication invariant), not an arbitrary adjacency relation.
package ctree
