package graphdesc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const sampleGrid = `
node "python/function" "load" {
  title         = "Load data"
  file_path     = "steps/load.py"
  function_name = "load_data"

  outputs = ["df"]

  params = {
    "--path" = "data.csv"
  }
}

node "python/function" "train" {
  file_path     = "steps/train.py"
  function_name = "train"

  input {
    name = "df"
    link = "l1"
  }
  input {
    name = "seed"
  }

  outputs = ["model"]
}

link "l1" {
  from = "load"
  to   = "train"
}
`

func writeGrid(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadHCLFile(t *testing.T) {
	nodes, links, err := LoadHCLFile(context.Background(), writeGrid(t, sampleGrid))
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.Len(t, links, 1)

	load := nodes[0]
	assert.Equal(t, ID("load"), load.ID)
	assert.Equal(t, "python/function", load.Type)
	assert.Equal(t, "Load data", load.Title)
	assert.Equal(t, "load_data", load.Properties.FunctionName)
	require.Len(t, load.Outputs, 1)
	assert.Equal(t, "df", load.Outputs[0].Name)
	require.Len(t, load.WidgetParams, 1)
	assert.True(t, load.WidgetParams["--path"].RawEquals(cty.StringVal("data.csv")))

	train := nodes[1]
	require.Len(t, train.Inputs, 2)
	require.NotNil(t, train.Inputs[0].Link)
	assert.Equal(t, ID("l1"), *train.Inputs[0].Link)
	assert.Nil(t, train.Inputs[1].Link)

	assert.Equal(t, ID("load"), links[0].SourceNodeID)
	assert.Equal(t, 0, links[0].SourceOutputIndex)
	assert.Equal(t, ID("train"), links[0].TargetNodeID)
}

func TestLoadHCLFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, _, err := LoadHCLFile(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
		assert.Error(t, err)
	})

	t.Run("duplicate node id", func(t *testing.T) {
		grid := `
node "python/function" "a" {}
node "python/function" "a" {}
`
		_, _, err := LoadHCLFile(context.Background(), writeGrid(t, grid))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate node id")
	})

	t.Run("non-object params", func(t *testing.T) {
		grid := `
node "python/function" "a" {
  params = "not an object"
}
`
		_, _, err := LoadHCLFile(context.Background(), writeGrid(t, grid))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "params must be an object")
	})
}
