// Package graph declares the road-graph collaborator that locidx indexes:
// node coordinates, edge iteration, polyline geometry, and a per-node
// outgoing-edge explorer. The index never mutates a Graph; it only reads
// from one during Prepare and during queries.
//
// MemGraph is a small concrete implementation used by tests and examples
// so the rest of the module is usable without a caller-supplied graph.
package graph
