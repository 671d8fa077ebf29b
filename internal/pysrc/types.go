package pysrc

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Bundle holds everything extracted from one Python source file: its
// top-level import statements, its top-level function definitions, and the
// command-line arguments those functions declare. A Bundle is immutable once
// computed and is cached per file path by the compiler.
type Bundle struct {
	Path      string
	Imports   []string
	Functions []string
	Args      []ArgSpec
}

// Kwarg is one keyword argument of an add_argument declaration. The value is
// a literal: string values hold the rendered source text (quotes included for
// string literals, bare text for identifiers and expressions) and are emitted
// verbatim; number and bool values are dropped from the emitted declaration.
type Kwarg struct {
	Name  string
	Value cty.Value
}

// ArgSpec is one declared command-line argument: the flag name texts in
// declaration order and the keyword arguments of the declaration.
type ArgSpec struct {
	Names  []string
	Kwargs []Kwarg
}

// FirstName returns the flag text the merged program declares this argument
// under.
func (a ArgSpec) FirstName() (string, bool) {
	if len(a.Names) == 0 {
		return "", false
	}
	return a.Names[0], true
}

// ExtractionError reports a source file that is missing, unreadable, or not
// scannable.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract fragments from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
