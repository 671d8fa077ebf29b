// Package graphdesc defines the materialized node/link description of a
// visually authored computation graph and its two front-ends: the JSON
// payloads the editor sends on the command line, and hand-authored .hcl grid
// files.
//
// The package performs structural validation only (required fields, unique
// identifiers, literal widget parameters). Referential integrity between
// nodes and links is deliberately left to the compiler, where a dangling
// reference surfaces as a resolution error for the specific node involved.
package graphdesc
