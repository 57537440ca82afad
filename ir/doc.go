// Package ir holds the in-memory form of a PROTO document.
//
// A [Document] owns every entity in a flat arena and refers to them by
// [Handle].  Entities come in three kinds:
//
//   - Property: a scalar or scalar-array field, with opaque Content.
//   - Node: a typed node in a field slot, with an opaque Header such as
//     "Solid {", "DEF Base Mesh {" or "USE Base".
//   - Container: an array of nodes such as "children [ ... ]".
//
// Parent and child relations are handles into the arena, so replacing an
// entity is a splice of one slot in its parent's children.  Entities that
// have been spliced out stay in the arena but are no longer reachable.
//
// Searches, the cursor and all mutations go through the Document.
package ir
