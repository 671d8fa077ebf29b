// Package compile is the graph-to-program compiler: it orders node
// execution, resolves inter-node data dependencies into variable bindings,
// and merges each node's source fragments into one coherent Python program.
//
// All mutable compilation state — the fragment cache, the output variable
// counter, the collected argument declarations, and the output binding
// table — lives in a Context created per run, never in package state.
package compile
