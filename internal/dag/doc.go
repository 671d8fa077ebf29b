// Package dag builds the directed execution graph over node identifiers and
// computes a topological execution order.
//
// The graph is intentionally forgiving at construction time: links may name
// vertices that no node record defines, which creates a placeholder vertex.
// Validation happens where it can be reported precisely — a placeholder in
// the execution order fails in the compiler as an unresolved node reference,
// and a cyclic graph fails here with a CycleError before any extraction or
// code generation runs.
package dag
