package app

import (
	"context"
	"fmt"

	"github.com/roundlabs/unirun/internal/compile"
	"github.com/roundlabs/unirun/internal/ctxlog"
	"github.com/roundlabs/unirun/internal/graphdesc"
	"github.com/roundlabs/unirun/internal/launch"
	"github.com/roundlabs/unirun/internal/notify"
)

// Run executes the whole pipeline: load the graph description, compile it
// into one program, write the artifacts, and invoke the launcher.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.")

	if a.config.EditorEndpoint != "" {
		editor, err := notify.Connect(ctx, a.config.EditorEndpoint)
		if err != nil {
			// The editor channel is best-effort; a dead editor must not
			// block the run.
			a.logger.Warn("Editor channel unavailable, continuing without it.", "error", err)
		} else {
			a.notifier = editor
			defer editor.Close()
		}
	}

	nodes, links, err := a.loadDescription(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("Graph description loaded.", "nodes", len(nodes), "links", len(links))

	a.notifier.Emit(ctx, notify.EventCompileStart, map[string]any{"runId": a.runID})

	cctx := compile.NewContext()
	program, err := cctx.Compile(ctx, nodes, links)
	if err != nil {
		a.notifier.Emit(ctx, notify.EventRunError, map[string]any{"runId": a.runID, "error": err.Error()})
		return err
	}
	a.logger.Info("Program compiled.", "statements", len(program.Statements))

	params, err := launch.Params(nodes)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("# Generated by unirun, run %s. Do not edit.\n", a.runID)
	result, err := launch.Write(ctx, a.config.OutDir, header+program.Text, params)
	if err != nil {
		a.notifier.Emit(ctx, notify.EventRunError, map[string]any{"runId": a.runID, "error": err.Error()})
		return err
	}
	a.notifier.Emit(ctx, notify.EventCompileDone, map[string]any{
		"runId":    a.runID,
		"program":  result.ProgramPath,
		"launcher": result.LauncherPath,
	})

	if a.config.CompileOnly {
		a.logger.Info("Compile-only run, skipping launcher execution.")
		return nil
	}

	if err := launch.Execute(ctx, result, a.outW); err != nil {
		a.notifier.Emit(ctx, notify.EventRunError, map[string]any{"runId": a.runID, "error": err.Error()})
		return err
	}
	a.notifier.Emit(ctx, notify.EventRunExit, map[string]any{"runId": a.runID, "exitCode": result.ExitCode})

	if result.ExitCode != 0 {
		return fmt.Errorf("generated program exited with code %d", result.ExitCode)
	}
	a.logger.Debug("App.Run finished.")
	return nil
}

// loadDescription materializes the node and link records from whichever
// front-end the configuration selected.
func (a *App) loadDescription(ctx context.Context) ([]*graphdesc.Node, []*graphdesc.Link, error) {
	if a.config.GraphFile != "" {
		return graphdesc.LoadHCLFile(ctx, a.config.GraphFile)
	}
	nodes, err := graphdesc.ParseNodes([]byte(a.config.NodesPayload))
	if err != nil {
		return nil, nil, err
	}
	links, err := graphdesc.ParseLinks([]byte(a.config.LinksPayload))
	if err != nil {
		return nil, nil, err
	}
	return nodes, links, nil
}
