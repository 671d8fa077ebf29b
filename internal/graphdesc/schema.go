package graphdesc

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// ID identifies a node or link within one graph description. The editor
// serializes identifiers as JSON numbers, hand-authored grid files use block
// labels; both canonicalize to a string.
type ID string

// UnmarshalJSON accepts either a JSON string or a JSON number as an ID.
func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Properties carries the function reference a node invokes.
type Properties struct {
	FunctionName string `json:"functionName"`
	FilePath     string `json:"filePath"`
}

// InputSlot is one named input of a node, optionally wired to a link.
type InputSlot struct {
	Name string `json:"name"`
	Link *ID    `json:"link"`
}

// OutputSlot is one named output of a node.
type OutputSlot struct {
	Name string `json:"name"`
}

// Node is a unit of computation referencing a named function in a Python
// source file. Inputs and outputs keep their declared slot order.
type Node struct {
	ID         ID           `json:"id"`
	Type       string       `json:"type"`
	Title      string       `json:"title"`
	Properties Properties   `json:"properties"`
	Inputs     []InputSlot  `json:"inputs"`
	Outputs    []OutputSlot `json:"outputs"`

	// WidgetParams holds literal parameters surfaced to the launcher, not to
	// the generated program body.
	WidgetParams map[string]cty.Value `json:"-"`

	rawWidgetParams map[string]json.RawMessage
}

// Link is a directed data-flow edge from one node's output slot to a
// consuming node. The consuming input slot is recorded on the consumer's
// InputSlot.Link, not here.
type Link struct {
	ID                ID  `json:"id"`
	SourceNodeID      ID  `json:"sourceNodeId"`
	SourceOutputIndex int `json:"sourceOutputIndex"`
	TargetNodeID      ID  `json:"targetNodeId"`
}

// decodeWidgetParams converts raw JSON literal values into cty values.
func (n *Node) decodeWidgetParams() error {
	if len(n.rawWidgetParams) == 0 {
		return nil
	}
	n.WidgetParams = make(map[string]cty.Value, len(n.rawWidgetParams))
	for name, raw := range n.rawWidgetParams {
		ty, err := ctyjson.ImpliedType(raw)
		if err != nil {
			return fmt.Errorf("widget parameter %q of node %s: %w", name, n.ID, err)
		}
		val, err := ctyjson.Unmarshal(raw, ty)
		if err != nil {
			return fmt.Errorf("widget parameter %q of node %s: %w", name, n.ID, err)
		}
		n.WidgetParams[name] = val
	}
	n.rawWidgetParams = nil
	return nil
}

// String returns the identifier in a form usable as a diagnostic label.
func (id ID) String() string { return string(id) }

// Quote renders the identifier the way diagnostics print it.
func (id ID) Quote() string { return strconv.Quote(string(id)) }
