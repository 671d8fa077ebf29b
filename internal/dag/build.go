package dag

import (
	"context"

	"github.com/roundlabs/unirun/internal/ctxlog"
	"github.com/roundlabs/unirun/internal/graphdesc"
)

// Build constructs the execution graph from raw node and link records: one
// vertex per node record, one producer→consumer edge per link.
func Build(ctx context.Context, nodes []*graphdesc.Node, links []*graphdesc.Link) *Graph {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting graph construction.")

	graph := New()
	for _, node := range nodes {
		graph.AddNode(node)
	}
	logger.Debug("Build: node creation complete.", "node_count", graph.Len())

	for _, link := range links {
		graph.AddEdge(link.SourceNodeID, link.TargetNodeID)
	}
	logger.Debug("Build: edge creation complete.", "link_count", len(links))

	return graph
}
