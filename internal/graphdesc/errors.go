package graphdesc

import "fmt"

// ParseError reports a payload that is not syntactically valid JSON.
type ParseError struct {
	What string // "nodes" or "links"
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed %s payload: %v", e.What, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a structurally valid payload with a missing or invalid
// field.
type SchemaError struct {
	Field string
	Msg   string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}
