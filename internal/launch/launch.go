// Package launch writes the assembled program and its parameter-passing
// launcher to disk, then runs the launcher as a child process.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roundlabs/unirun/internal/ctxlog"
	"github.com/roundlabs/unirun/internal/graphdesc"
	"github.com/roundlabs/unirun/internal/pyrender"
)

const (
	// ProgramFileName is the fixed name of the assembled program.
	ProgramFileName = "integrated_script.py"
	// LauncherFileName is the fixed name of the launcher script.
	LauncherFileName = "run_integrated_script.sh"
)

// Error reports that the program or launcher could not be written or
// executed. It is fatal to the run and never retried.
type Error struct {
	Stage string // "write-program", "write-launcher", "execute"
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("launch failed at %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Result is the outcome of one launcher invocation.
type Result struct {
	ProgramPath  string
	LauncherPath string
	ExitCode     int
}

// Params flattens every node's widget parameters into the launcher's
// parameter string: `name value` pairs joined by spaces, nodes in their
// original order, parameter names sorted within each node.
func Params(nodes []*graphdesc.Node) (string, error) {
	var parts []string
	for _, node := range nodes {
		names := make([]string, 0, len(node.WidgetParams))
		for name := range node.WidgetParams {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			word, err := pyrender.Word(node.WidgetParams[name])
			if err != nil {
				return "", fmt.Errorf("widget parameter %q of node %s: %w", name, node.ID.Quote(), err)
			}
			parts = append(parts, name, word)
		}
	}
	return strings.Join(parts, " "), nil
}

// Write emits the program and launcher into outDir and marks the launcher
// executable.
func Write(ctx context.Context, outDir, programText, paramString string) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	programPath := filepath.Join(outDir, ProgramFileName)
	if err := os.WriteFile(programPath, []byte(programText), 0o644); err != nil {
		return nil, &Error{Stage: "write-program", Err: err}
	}
	logger.Info("Assembled program written.", "path", programPath)

	launcher := fmt.Sprintf("#!/bin/bash\npython %s %s\n", ProgramFileName, paramString)
	launcherPath := filepath.Join(outDir, LauncherFileName)
	if err := os.WriteFile(launcherPath, []byte(launcher), 0o644); err != nil {
		return nil, &Error{Stage: "write-launcher", Err: err}
	}
	if err := os.Chmod(launcherPath, 0o755); err != nil {
		return nil, &Error{Stage: "write-launcher", Err: err}
	}
	logger.Info("Launcher script written.", "path", launcherPath)

	return &Result{ProgramPath: programPath, LauncherPath: launcherPath}, nil
}

// Execute runs the launcher as a child process, relaying its combined output
// to outW. The call blocks until the child exits or ctx is cancelled. A
// non-zero child exit is reported in the Result, not as an error; only a
// failure to start (or a cancelled context) is an *Error.
func Execute(ctx context.Context, result *Result, outW io.Writer) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Executing launcher.", "path", result.LauncherPath)

	cmd := exec.CommandContext(ctx, "./"+LauncherFileName)
	cmd.Dir = filepath.Dir(result.LauncherPath)
	cmd.Stdout = outW
	cmd.Stderr = outW

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			logger.Warn("Launcher exited with non-zero status.", "exit_code", result.ExitCode)
			return nil
		}
		return &Error{Stage: "execute", Err: err}
	}

	result.ExitCode = 0
	logger.Info("Launcher finished.", "exit_code", 0)
	return nil
}
