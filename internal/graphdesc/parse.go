package graphdesc

import (
	"encoding/json"
	"fmt"
)

// nodeWire mirrors Node for JSON decoding so widget parameters can be kept
// raw until they are converted into cty values.
type nodeWire struct {
	ID           ID                         `json:"id"`
	Type         string                     `json:"type"`
	Title        string                     `json:"title"`
	Properties   Properties                 `json:"properties"`
	Inputs       []InputSlot                `json:"inputs"`
	Outputs      []OutputSlot               `json:"outputs"`
	WidgetParams map[string]json.RawMessage `json:"widgetParameter"`
}

// ParseNodes decodes the editor's node payload. Every node must carry an id,
// and ids must be unique within the payload.
func ParseNodes(payload []byte) ([]*Node, error) {
	var wires []nodeWire
	if err := json.Unmarshal(payload, &wires); err != nil {
		return nil, &ParseError{What: "nodes", Err: err}
	}

	nodes := make([]*Node, 0, len(wires))
	seen := make(map[ID]bool, len(wires))
	for i, w := range wires {
		if w.ID == "" {
			return nil, &SchemaError{Field: fmt.Sprintf("nodes[%d].id", i), Msg: "required field is missing"}
		}
		if seen[w.ID] {
			return nil, &SchemaError{Field: fmt.Sprintf("nodes[%d].id", i), Msg: fmt.Sprintf("duplicate node id %s", w.ID.Quote())}
		}
		seen[w.ID] = true

		node := &Node{
			ID:              w.ID,
			Type:            w.Type,
			Title:           w.Title,
			Properties:      w.Properties,
			Inputs:          w.Inputs,
			Outputs:         w.Outputs,
			rawWidgetParams: w.WidgetParams,
		}
		if err := node.decodeWidgetParams(); err != nil {
			return nil, &SchemaError{Field: fmt.Sprintf("nodes[%d].widgetParameter", i), Msg: err.Error()}
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// ParseLinks decodes the editor's link payload. Every link must carry an id
// and both endpoint node ids; link ids must be unique within the payload.
func ParseLinks(payload []byte) ([]*Link, error) {
	var links []*Link
	if err := json.Unmarshal(payload, &links); err != nil {
		return nil, &ParseError{What: "links", Err: err}
	}

	seen := make(map[ID]bool, len(links))
	for i, link := range links {
		if link.ID == "" {
			return nil, &SchemaError{Field: fmt.Sprintf("links[%d].id", i), Msg: "required field is missing"}
		}
		if seen[link.ID] {
			return nil, &SchemaError{Field: fmt.Sprintf("links[%d].id", i), Msg: fmt.Sprintf("duplicate link id %s", link.ID.Quote())}
		}
		seen[link.ID] = true
		if link.SourceNodeID == "" {
			return nil, &SchemaError{Field: fmt.Sprintf("links[%d].sourceNodeId", i), Msg: "required field is missing"}
		}
		if link.TargetNodeID == "" {
			return nil, &SchemaError{Field: fmt.Sprintf("links[%d].targetNodeId", i), Msg: "required field is missing"}
		}
	}
	return links, nil
}
