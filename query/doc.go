// Package query implements the Query Engine of spec.md §4.6–§4.7: an
// expanding tile-ring seed search, tile-to-leaf descent over a
// flatstore.Store, a per-seed breadth-first walk with a visited set shared
// across seeds, point-to-segment snap computation, and the recursive
// bounding-box range query.
//
// The seed-refinement walker is grounded on bfs.walker
// (github.com/katalvlaran/lvlath/bfs/bfs.go): a queue of frontier nodes, a
// shared visited set, and a per-node visit callback, adapted so the
// visited set is explicitly shared across independent per-seed walks
// (spec.md §9 "BFS visited set shared across seeds") instead of a single
// graph-wide traversal. The distance-driven early-termination test is
// grounded on dijkstra's use of a monotonically improving best-known
// distance to prune further work
// (github.com/katalvlaran/lvlath/dijkstra/dijkstra.go).
package query
