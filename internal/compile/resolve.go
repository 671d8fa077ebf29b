package compile

import (
	"fmt"
	"strings"

	"github.com/roundlabs/unirun/internal/dag"
	"github.com/roundlabs/unirun/internal/graphdesc"
)

// Statement is one generated call in the program's main body.
type Statement struct {
	Targets  []string
	Function string
	Args     []string
}

// Render produces the Python call line: `<targets> = <function>(<args>)`, or
// a bare call when the node has no outputs.
func (s Statement) Render() string {
	call := fmt.Sprintf("%s(%s)", s.Function, strings.Join(s.Args, ", "))
	if len(s.Targets) == 0 {
		return call
	}
	return strings.Join(s.Targets, ", ") + " = " + call
}

// resolveNode wires one node's inputs to previously bound outputs, allocates
// fresh variables for its own outputs, and records them in the binding table.
func (c *Context) resolveNode(node *graphdesc.Node, graph *dag.Graph, links map[graphdesc.ID]*graphdesc.Link) (Statement, error) {
	stmt := Statement{Function: node.Properties.FunctionName}

	for _, slot := range node.Inputs {
		if slot.Link == nil {
			// Unconnected inputs are passed explicitly as the no-value literal.
			stmt.Args = append(stmt.Args, slot.Name+"=None")
			continue
		}

		link, ok := links[*slot.Link]
		if !ok {
			return Statement{}, fmt.Errorf("input %q of node %s references unknown link %s",
				slot.Name, node.ID.Quote(), slot.Link.Quote())
		}
		producer, ok := graph.Node(link.SourceNodeID)
		if !ok {
			return Statement{}, fmt.Errorf("link %s references unknown node %s",
				link.ID.Quote(), link.SourceNodeID.Quote())
		}
		if link.SourceOutputIndex < 0 || link.SourceOutputIndex >= len(producer.Outputs) {
			return Statement{}, fmt.Errorf("link %s references output index %d of node %s, which has %d outputs",
				link.ID.Quote(), link.SourceOutputIndex, producer.ID.Quote(), len(producer.Outputs))
		}

		outputName := producer.Outputs[link.SourceOutputIndex].Name
		variable, ok := c.binding(producer.ID, outputName)
		if !ok {
			return Statement{}, &BindingError{
				ConsumerID: node.ID,
				ProducerID: producer.ID,
				Output:     outputName,
			}
		}
		stmt.Args = append(stmt.Args, slot.Name+"="+variable)
	}

	for _, out := range node.Outputs {
		variable := c.nextVar()
		stmt.Targets = append(stmt.Targets, variable)
		c.bind(node.ID, out.Name, variable)
	}

	return stmt, nil
}
