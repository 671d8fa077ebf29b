package graphdesc

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/roundlabs/unirun/internal/ctxlog"
)

// hclGraphFile is the top-level structure of a hand-authored grid file.
type hclGraphFile struct {
	Nodes []*hclNode `hcl:"node,block"`
	Links []*hclLink `hcl:"link,block"`
}

type hclNode struct {
	Type         string          `hcl:"node_type,label"`
	ID           string          `hcl:"id,label"`
	Title        string          `hcl:"title,optional"`
	FilePath     string          `hcl:"file_path,optional"`
	FunctionName string          `hcl:"function_name,optional"`
	Inputs       []*hclInputSlot `hcl:"input,block"`
	Outputs      []string        `hcl:"outputs,optional"`
	Params       hcl.Expression  `hcl:"params,optional"`
}

type hclInputSlot struct {
	Name string  `hcl:"name"`
	Link *string `hcl:"link,optional"`
}

type hclLink struct {
	ID     string `hcl:"id,label"`
	From   string `hcl:"from"`
	Output int    `hcl:"output,optional"`
	To     string `hcl:"to"`
}

// LoadHCLFile parses a hand-authored .hcl grid file into the same node and
// link records the editor's JSON payloads produce.
func LoadHCLFile(ctx context.Context, path string) ([]*Node, []*Link, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading graph description from HCL file.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var parsed hclGraphFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	nodes := make([]*Node, 0, len(parsed.Nodes))
	seen := make(map[ID]bool, len(parsed.Nodes))
	for _, hn := range parsed.Nodes {
		node, err := hn.toNode()
		if err != nil {
			return nil, nil, fmt.Errorf("node %q in %s: %w", hn.ID, path, err)
		}
		if seen[node.ID] {
			return nil, nil, &SchemaError{Field: "node", Msg: fmt.Sprintf("duplicate node id %s", node.ID.Quote())}
		}
		seen[node.ID] = true
		nodes = append(nodes, node)
	}

	links := make([]*Link, 0, len(parsed.Links))
	seenLinks := make(map[ID]bool, len(parsed.Links))
	for _, hl := range parsed.Links {
		if seenLinks[ID(hl.ID)] {
			return nil, nil, &SchemaError{Field: "link", Msg: fmt.Sprintf("duplicate link id %q", hl.ID)}
		}
		seenLinks[ID(hl.ID)] = true
		links = append(links, &Link{
			ID:                ID(hl.ID),
			SourceNodeID:      ID(hl.From),
			SourceOutputIndex: hl.Output,
			TargetNodeID:      ID(hl.To),
		})
	}

	logger.Debug("HCL graph description loaded.", "nodes", len(nodes), "links", len(links))
	return nodes, links, nil
}

// toNode converts a decoded HCL node block into a Node record, evaluating the
// params expression into literal values.
func (hn *hclNode) toNode() (*Node, error) {
	node := &Node{
		ID:    ID(hn.ID),
		Type:  hn.Type,
		Title: hn.Title,
		Properties: Properties{
			FunctionName: hn.FunctionName,
			FilePath:     hn.FilePath,
		},
	}
	for _, in := range hn.Inputs {
		slot := InputSlot{Name: in.Name}
		if in.Link != nil {
			link := ID(*in.Link)
			slot.Link = &link
		}
		node.Inputs = append(node.Inputs, slot)
	}
	for _, out := range hn.Outputs {
		node.Outputs = append(node.Outputs, OutputSlot{Name: out})
	}

	if hn.Params != nil {
		val, diags := hn.Params.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("params must be a literal object: %w", diags)
		}
		if !val.IsNull() {
			if !val.Type().IsObjectType() && !val.Type().IsMapType() {
				return nil, fmt.Errorf("params must be an object, got %s", val.Type().FriendlyName())
			}
			node.WidgetParams = val.AsValueMap()
		}
	}
	return node, nil
}
