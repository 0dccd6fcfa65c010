// Package serialize packs an in-memory construction tree (internal/ctree)
// depth-first into a flatstore.Store, using the sign-encoded cell scheme
// of spec.md §3 and §4.5: a positive internal-level cell is a child
// pointer, a positive leaf-header cell is the exclusive end-offset of a
// multi-ID leaf, and a negative cell is a single edge ID stored inline.
//
// The pure, allocation-light depth-first builder shape is grounded on
// matrix.BuildAdjacencyData (github.com/katalvlaran/lvlath/matrix), the
// teacher's own "fold a graph-shaped structure into a flat array" routine.
package serialize
