package compile

import (
	"context"

	"github.com/roundlabs/unirun/internal/ctxlog"
	"github.com/roundlabs/unirun/internal/dag"
	"github.com/roundlabs/unirun/internal/graphdesc"
)

// Node types that contribute a call statement. Anything else is logged and
// skipped; its outputs stay unbound.
var supportedNodeTypes = map[string]bool{
	"python/function": true,
	"python/load":     true,
}

// Program is the result of compiling one graph description.
type Program struct {
	// Text is the complete assembled Python program.
	Text string
	// Order is the execution order the compiler settled on.
	Order []graphdesc.ID
	// Statements are the generated call lines, in execution order.
	Statements []Statement
}

// Compile turns a graph description into one executable program text. It
// validates the graph (cycle detection first), processes nodes in
// topological order through the fragment cache and binding resolver, and
// assembles the merged program.
func (c *Context) Compile(ctx context.Context, nodes []*graphdesc.Node, links []*graphdesc.Link) (*Program, error) {
	logger := ctxlog.FromContext(ctx)

	graph := dag.Build(ctx, nodes, links)
	order, err := graph.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	logger.Debug("Execution order determined.", "node_count", len(order))

	linksByID := make(map[graphdesc.ID]*graphdesc.Link, len(links))
	for _, link := range links {
		linksByID[link.ID] = link
	}

	var (
		importLists [][]string
		functions   []string
		statements  []Statement
		seenFiles   = make(map[string]bool)
	)

	for _, id := range order {
		node, ok := graph.Node(id)
		if !ok {
			return nil, &graphdesc.SchemaError{Field: "links", Msg: "link references unknown node " + id.Quote()}
		}
		logger.Debug("Processing node.", "id", node.ID, "title", node.Title, "type", node.Type)

		if !supportedNodeTypes[node.Type] {
			logger.Warn("Skipping node of unsupported type.", "id", node.ID, "type", node.Type)
			continue
		}

		bundle, err := c.Bundle(ctx, node.Properties.FilePath)
		if err != nil {
			return nil, err
		}
		// Fragments are spliced once per source file, in first-use order;
		// a second node over the same file reuses the emitted definitions.
		if !seenFiles[bundle.Path] {
			seenFiles[bundle.Path] = true
			importLists = append(importLists, bundle.Imports)
			functions = append(functions, bundle.Functions...)
		}

		stmt, err := c.resolveNode(node, graph, linksByID)
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
		logger.Debug("Call statement generated.", "id", node.ID, "statement", stmt.Render())
	}

	text := assemble(ctx, mergeImports(importLists), functions, statements, c.argSpecs)
	logger.Debug("Program assembled.", "bytes", len(text), "statements", len(statements))

	return &Program{
		Text:       text,
		Order:      order,
		Statements: statements,
	}, nil
}
