package app

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/roundlabs/unirun/internal/notify"
)

// App encapsulates the runner's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	notifier notify.Notifier
	runID    string
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App with its own isolated logger and a fresh run identifier.
func NewApp(outW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	runID := uuid.NewString()
	return &App{
		outW:     outW,
		logger:   logger.With("run_id", runID),
		config:   config,
		notifier: notify.Nop{},
		runID:    runID,
	}
}

// RunID returns the identifier of this run.
func (a *App) RunID() string { return a.runID }
