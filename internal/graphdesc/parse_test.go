package graphdesc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestParseNodes(t *testing.T) {
	payload := `[
		{
			"id": 1,
			"type": "python/function",
			"title": "Train",
			"properties": {"functionName": "train", "filePath": "steps/train.py"},
			"inputs": [{"name": "df", "link": 7}, {"name": "seed", "link": null}],
			"outputs": [{"name": "model"}, {"name": "metrics"}],
			"widgetParameter": {"--epochs": 5, "--name": "demo", "--verbose": true}
		}
	]`

	nodes, err := ParseNodes([]byte(payload))
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	n := nodes[0]
	assert.Equal(t, ID("1"), n.ID)
	assert.Equal(t, "python/function", n.Type)
	assert.Equal(t, "train", n.Properties.FunctionName)
	assert.Equal(t, "steps/train.py", n.Properties.FilePath)

	require.Len(t, n.Inputs, 2)
	require.NotNil(t, n.Inputs[0].Link)
	assert.Equal(t, ID("7"), *n.Inputs[0].Link)
	assert.Nil(t, n.Inputs[1].Link)

	require.Len(t, n.Outputs, 2)
	assert.Equal(t, "model", n.Outputs[0].Name)

	require.Len(t, n.WidgetParams, 3)
	assert.True(t, n.WidgetParams["--epochs"].RawEquals(cty.NumberIntVal(5)))
	assert.True(t, n.WidgetParams["--name"].RawEquals(cty.StringVal("demo")))
	assert.True(t, n.WidgetParams["--verbose"].RawEquals(cty.True))
}

func TestParseNodesStringIDs(t *testing.T) {
	nodes, err := ParseNodes([]byte(`[{"id": "loader", "type": "python/load"}]`))
	require.NoError(t, err)
	assert.Equal(t, ID("loader"), nodes[0].ID)
}

func TestParseNodesErrors(t *testing.T) {
	t.Run("malformed payload", func(t *testing.T) {
		_, err := ParseNodes([]byte(`{not json`))
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "nodes", parseErr.What)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := ParseNodes([]byte(`[{"type": "python/function"}]`))
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Contains(t, schemaErr.Field, "id")
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := ParseNodes([]byte(`[{"id": 1, "type": "a"}, {"id": 1, "type": "b"}]`))
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Contains(t, schemaErr.Msg, "duplicate node id")
	})
}

func TestParseLinks(t *testing.T) {
	payload := `[{"id": 7, "sourceNodeId": 1, "sourceOutputIndex": 1, "targetNodeId": 2}]`
	links, err := ParseLinks([]byte(payload))
	require.NoError(t, err)
	require.Len(t, links, 1)

	l := links[0]
	assert.Equal(t, ID("7"), l.ID)
	assert.Equal(t, ID("1"), l.SourceNodeID)
	assert.Equal(t, 1, l.SourceOutputIndex)
	assert.Equal(t, ID("2"), l.TargetNodeID)
}

func TestParseLinksErrors(t *testing.T) {
	t.Run("missing endpoint", func(t *testing.T) {
		_, err := ParseLinks([]byte(`[{"id": 7, "sourceNodeId": 1}]`))
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Contains(t, schemaErr.Field, "targetNodeId")
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := ParseLinks([]byte(`[
			{"id": 7, "sourceNodeId": 1, "targetNodeId": 2},
			{"id": 7, "sourceNodeId": 2, "targetNodeId": 3}
		]`))
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Contains(t, schemaErr.Msg, "duplicate link id")
	})
}
