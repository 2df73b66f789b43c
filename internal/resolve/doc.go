// Package resolve computes a deterministic plugin load order from a
// dependency graph using a priority-aware variant of Kahn's algorithm, and
// exposes Resolve, the single entry point that ties graph construction,
// ordering, and tier validation together.
//
// Given identical inputs the output is byte-for-byte identical: the ready
// set is a (priority, identity) min-heap, all map iteration goes through
// sorted accessors, and nothing depends on scheduling or wall-clock time.
package resolve
