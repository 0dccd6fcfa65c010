// Package flatstore implements the Flat Store collaborator of spec.md
// §4.2: a growable, randomly-addressable array of signed 32-bit integers
// with a small header and file persistence. Everything above this layer
// (the construction tree's serialised form, the query engine's tile
// descent) treats it as nothing more than get/set-int32-by-offset.
//
// Byte addressing is intOffset<<2. No third-party random-access-array or
// memory-mapped-file library appears anywhere in this corpus — the only
// reference to a memory-mapped store (other_examples/b55a7e5b_Giulio2002-gdbx__node.go.go)
// is a single non-importable snippet of libmdbx's internal node layout,
// not a usable module — so persistence here is the standard library's
// encoding/binary over a plain file, the justified exception to "prefer a
// pack dependency" (see DESIGN.md).
package flatstore
