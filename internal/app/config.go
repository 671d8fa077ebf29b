package app

import "errors"

// Config holds everything an App needs for one compile-and-run.
type Config struct {
	// NodesPayload and LinksPayload are the editor's JSON payloads. They are
	// required unless GraphFile is set.
	NodesPayload string
	LinksPayload string

	// GraphFile is an optional hand-authored .hcl grid file used instead of
	// the JSON payloads.
	GraphFile string

	// OutDir is where the assembled program and launcher are written.
	OutDir string

	// EditorEndpoint, when non-empty, is the editor's socket.io URL for
	// lifecycle events.
	EditorEndpoint string

	// CompileOnly writes the artifacts without executing the launcher.
	CompileOnly bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphFile == "" && (cfg.NodesPayload == "" || cfg.LinksPayload == "") {
		return nil, errors.New("a graph description is required: either the two JSON payloads or a graph file")
	}
	if cfg.GraphFile != "" && (cfg.NodesPayload != "" || cfg.LinksPayload != "") {
		return nil, errors.New("a graph file and JSON payloads are mutually exclusive")
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	return &cfg, nil
}
