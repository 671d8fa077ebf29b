package dag

import (
	"context"
	"testing"

	"github.com/roundlabs/unirun/internal/graphdesc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id string) *graphdesc.Node {
	return &graphdesc.Node{ID: graphdesc.ID(id), Type: "python/function"}
}

func link(id, from, to string) *graphdesc.Link {
	return &graphdesc.Link{ID: graphdesc.ID(id), SourceNodeID: graphdesc.ID(from), TargetNodeID: graphdesc.ID(to)}
}

func TestBuild(t *testing.T) {
	g := Build(context.Background(),
		[]*graphdesc.Node{node("a"), node("b")},
		[]*graphdesc.Link{link("l1", "a", "b")},
	)
	require.NotNil(t, g)
	assert.Equal(t, 2, g.Len())

	payload, ok := g.Node("a")
	require.True(t, ok)
	assert.Equal(t, graphdesc.ID("a"), payload.ID)
}

func TestBuildDanglingLinkCreatesPlaceholder(t *testing.T) {
	g := Build(context.Background(),
		[]*graphdesc.Node{node("a")},
		[]*graphdesc.Link{link("l1", "a", "ghost")},
	)
	assert.Equal(t, 2, g.Len())

	_, ok := g.Node("ghost")
	assert.False(t, ok, "placeholder vertices must not expose a payload")
}

func TestTopologicalOrder(t *testing.T) {
	t.Run("every edge's source precedes its target", func(t *testing.T) {
		g := New()
		for _, id := range []string{"a", "b", "c", "d", "e"} {
			g.AddNode(node(id))
		}
		edges := [][2]graphdesc.ID{
			{"a", "b"}, {"b", "c"}, {"a", "c"}, {"c", "d"}, {"a", "e"},
		}
		for _, e := range edges {
			g.AddEdge(e[0], e[1])
		}

		order, err := g.TopologicalOrder()
		require.NoError(t, err)
		require.Len(t, order, 5)

		index := make(map[graphdesc.ID]int, len(order))
		for i, id := range order {
			index[id] = i
		}
		for _, e := range edges {
			assert.Less(t, index[e[0]], index[e[1]], "edge %s -> %s out of order", e[0], e[1])
		}
	})

	t.Run("independent nodes keep insertion order", func(t *testing.T) {
		g := New()
		for _, id := range []string{"z", "m", "a"} {
			g.AddNode(node(id))
		}
		order, err := g.TopologicalOrder()
		require.NoError(t, err)
		assert.Equal(t, []graphdesc.ID{"z", "m", "a"}, order)
	})

	t.Run("empty graph yields empty order", func(t *testing.T) {
		order, err := New().TopologicalOrder()
		require.NoError(t, err)
		assert.Empty(t, order)
	})
}

func TestTopologicalOrderCycle(t *testing.T) {
	t.Run("two-node cycle", func(t *testing.T) {
		g := New()
		g.AddNode(node("a"))
		g.AddNode(node("b"))
		g.AddEdge("a", "b")
		g.AddEdge("b", "a")

		order, err := g.TopologicalOrder()
		assert.Nil(t, order)

		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Contains(t, err.Error(), "cycle detected")
	})

	t.Run("self edge", func(t *testing.T) {
		g := New()
		g.AddNode(node("a"))
		g.AddEdge("a", "a")

		_, err := g.TopologicalOrder()
		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, graphdesc.ID("a"), cycleErr.NodeID)
	})

	t.Run("cycle downstream of valid prefix", func(t *testing.T) {
		g := New()
		for _, id := range []string{"a", "b", "c"} {
			g.AddNode(node(id))
		}
		g.AddEdge("a", "b")
		g.AddEdge("b", "c")
		g.AddEdge("c", "b")

		_, err := g.TopologicalOrder()
		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
	})
}

func TestParallelEdgesCollapse(t *testing.T) {
	g := New()
	g.AddNode(node("a"))
	g.AddNode(node("b"))
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")

	order, err := g.TopologicalOrder()
	require.NoError(t, err)
	assert.Equal(t, []graphdesc.ID{"a", "b"}, order)
}
