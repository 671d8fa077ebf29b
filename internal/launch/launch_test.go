package launch

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/roundlabs/unirun/internal/graphdesc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestParams(t *testing.T) {
	nodes := []*graphdesc.Node{
		{
			ID: "train",
			WidgetParams: map[string]cty.Value{
				"--epochs": cty.NumberIntVal(5),
				"--data":   cty.StringVal("data.csv"),
			},
		},
		{ID: "plain"},
		{
			ID: "report",
			WidgetParams: map[string]cty.Value{
				"--title": cty.StringVal("weekly"),
			},
		},
	}

	params, err := Params(nodes)
	require.NoError(t, err)

	// Nodes keep their original order; names sort within one node.
	assert.Equal(t, "--data data.csv --epochs 5 --title weekly", params)
}

func TestParamsRejectsNonScalar(t *testing.T) {
	nodes := []*graphdesc.Node{
		{
			ID: "bad",
			WidgetParams: map[string]cty.Value{
				"--xs": cty.ListVal([]cty.Value{cty.NumberIntVal(1)}),
			},
		},
	}
	_, err := Params(nodes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be scalar")
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()

	result, err := Write(context.Background(), dir, "print('hi')\n", "--epochs 5")
	require.NoError(t, err)

	program, err := os.ReadFile(result.ProgramPath)
	require.NoError(t, err)
	assert.Equal(t, "print('hi')\n", string(program))

	launcher, err := os.ReadFile(result.LauncherPath)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/bash\npython integrated_script.py --epochs 5\n", string(launcher))

	info, err := os.Stat(result.LauncherPath)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o111, "launcher must be executable")
}

func TestWriteFailsForMissingDirectory(t *testing.T) {
	_, err := Write(context.Background(), filepath.Join(t.TempDir(), "absent"), "x", "")

	var launchErr *Error
	require.ErrorAs(t, err, &launchErr)
	assert.Equal(t, "write-program", launchErr.Stage)
}

func TestExecute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("launcher is a bash script")
	}
	dir := t.TempDir()

	writeLauncher := func(content string) *Result {
		path := filepath.Join(dir, LauncherFileName)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
		return &Result{LauncherPath: path}
	}

	t.Run("relays output and exit code zero", func(t *testing.T) {
		result := writeLauncher("#!/bin/bash\necho hello from launcher\n")
		var out strings.Builder

		require.NoError(t, Execute(context.Background(), result, &out))
		assert.Equal(t, 0, result.ExitCode)
		assert.Contains(t, out.String(), "hello from launcher")
	})

	t.Run("non-zero exit is a result, not an error", func(t *testing.T) {
		result := writeLauncher("#!/bin/bash\nexit 3\n")
		var out strings.Builder

		require.NoError(t, Execute(context.Background(), result, &out))
		assert.Equal(t, 3, result.ExitCode)
	})

	t.Run("missing launcher is a launch error", func(t *testing.T) {
		result := &Result{LauncherPath: filepath.Join(t.TempDir(), LauncherFileName)}
		var out strings.Builder

		err := Execute(context.Background(), result, &out)
		var launchErr *Error
		require.ErrorAs(t, err, &launchErr)
		assert.Equal(t, "execute", launchErr.Stage)
	})
}
