// Package cli parses command-line arguments into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/roundlabs/unirun/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("unirun", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
unirun - compiles a visually authored computation graph into one Python
program and runs it.

Usage:
  unirun [options] NODES_JSON LINKS_JSON
  unirun [options] --graph GRAPH_FILE

Arguments:
  NODES_JSON
    JSON array of node records, as materialized by the graph editor.
  LINKS_JSON
    JSON array of link records.

Options:
`)
		flagSet.PrintDefaults()
	}

	graphFlag := flagSet.String("graph", "", "Path to a hand-authored .hcl graph file, instead of the JSON payloads.")
	outDirFlag := flagSet.String("out-dir", ".", "Directory for the assembled program and launcher.")
	editorFlag := flagSet.String("editor-endpoint", "", "socket.io URL of the graph editor for lifecycle events.")
	compileOnlyFlag := flagSet.Bool("compile-only", false, "Write the artifacts without executing the launcher.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	var nodesPayload, linksPayload string
	if *graphFlag == "" {
		if flagSet.NArg() != 2 {
			flagSet.Usage()
			return nil, false, &ExitError{Code: 1, Message: "expected exactly two positional payloads: NODES_JSON LINKS_JSON"}
		}
		nodesPayload = flagSet.Arg(0)
		linksPayload = flagSet.Arg(1)
	} else if flagSet.NArg() != 0 {
		return nil, false, &ExitError{Code: 1, Message: "positional payloads cannot be combined with --graph"}
	}

	config, err := app.NewConfig(app.Config{
		NodesPayload:   nodesPayload,
		LinksPayload:   linksPayload,
		GraphFile:      *graphFlag,
		OutDir:         *outDirFlag,
		EditorEndpoint: *editorFlag,
		CompileOnly:    *compileOnlyFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 1, Message: err.Error()}
	}

	return config, false, nil
}
