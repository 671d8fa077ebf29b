package dag

import (
	"github.com/roundlabs/unirun/internal/graphdesc"
)

// Graph is the execution graph over node identifiers, with edges from
// producer to consumer. Vertices keep their insertion order so ordering is
// deterministic for a given description.
type Graph struct {
	vertices map[graphdesc.ID]*vertex
	order    []graphdesc.ID
}

type vertex struct {
	id         graphdesc.ID
	payload    *graphdesc.Node
	deps       map[graphdesc.ID]*vertex
	dependents map[graphdesc.ID]*vertex
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		vertices: make(map[graphdesc.ID]*vertex),
	}
}

// ensure returns the vertex for id, creating a placeholder if it does not
// exist yet. A placeholder has no payload until AddNode attaches one.
func (g *Graph) ensure(id graphdesc.ID) *vertex {
	if v, ok := g.vertices[id]; ok {
		return v
	}
	v := &vertex{
		id:         id,
		deps:       make(map[graphdesc.ID]*vertex),
		dependents: make(map[graphdesc.ID]*vertex),
	}
	g.vertices[id] = v
	g.order = append(g.order, id)
	return v
}

// AddNode registers a node record as a vertex, attaching the record as the
// vertex payload. Adding the same id twice keeps the first payload.
func (g *Graph) AddNode(node *graphdesc.Node) {
	v := g.ensure(node.ID)
	if v.payload == nil {
		v.payload = node
	}
}

// AddEdge creates a directed edge from the producer to the consumer.
// Endpoints that have not been added as nodes are created as placeholders;
// a dangling reference is not an error here, it surfaces as a lookup failure
// when the consumer is resolved. Parallel edges collapse to one constraint.
func (g *Graph) AddEdge(fromID, toID graphdesc.ID) {
	from := g.ensure(fromID)
	to := g.ensure(toID)
	to.deps[fromID] = from
	from.dependents[toID] = to
}

// Node returns the payload attached to the given vertex. The boolean is
// false when the vertex does not exist or is a placeholder created by an
// edge whose endpoint was never added as a node.
func (g *Graph) Node(id graphdesc.ID) (*graphdesc.Node, bool) {
	v, ok := g.vertices[id]
	if !ok || v.payload == nil {
		return nil, false
	}
	return v.payload, true
}

// Len returns the number of vertices, placeholders included.
func (g *Graph) Len() int { return len(g.vertices) }

// TopologicalOrder produces a linear order consistent with every edge: each
// edge's producer appears before its consumer. Independent vertices keep
// their insertion order. A cyclic graph yields a *CycleError and no order.
func (g *Graph) TopologicalOrder() ([]graphdesc.ID, error) {
	indegree := make(map[graphdesc.ID]int, len(g.vertices))
	for id, v := range g.vertices {
		indegree[id] = len(v.deps)
	}

	ordered := make([]graphdesc.ID, 0, len(g.vertices))
	emitted := make(map[graphdesc.ID]bool, len(g.vertices))

	// Repeatedly take the first vertex in insertion order whose remaining
	// dependencies are all emitted. Quadratic, but graphs here are small.
	for len(ordered) < len(g.vertices) {
		progressed := false
		for _, id := range g.order {
			if emitted[id] || indegree[id] > 0 {
				continue
			}
			emitted[id] = true
			ordered = append(ordered, id)
			for depID := range g.vertices[id].dependents {
				indegree[depID]--
			}
			progressed = true
		}
		if !progressed {
			return nil, &CycleError{NodeID: g.firstBlocked(emitted)}
		}
	}
	return ordered, nil
}

// firstBlocked names one vertex that is part of (or downstream of) a cycle,
// for the diagnostic.
func (g *Graph) firstBlocked(emitted map[graphdesc.ID]bool) graphdesc.ID {
	for _, id := range g.order {
		if !emitted[id] {
			return id
		}
	}
	return ""
}
