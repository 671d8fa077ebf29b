// Package notify emits compile/run lifecycle events to the graph editor over
// a socket.io channel. The channel is optional: when no endpoint is
// configured, or the connection fails, events go nowhere and the run is
// unaffected.
package notify

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/roundlabs/unirun/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event names emitted to the editor.
const (
	EventCompileStart = "compile:start"
	EventCompileDone  = "compile:done"
	EventRunExit      = "run:exit"
	EventRunError     = "run:error"
)

// Notifier publishes lifecycle events to the editor.
type Notifier interface {
	Emit(ctx context.Context, event string, payload map[string]any)
	Close()
}

// Nop is a Notifier that discards everything.
type Nop struct{}

func (Nop) Emit(context.Context, string, map[string]any) {}
func (Nop) Close()                                       {}

// Editor is a socket.io-backed Notifier connected to the editor endpoint.
type Editor struct {
	io *socket.Socket
}

const connectTimeout = 10 * time.Second

// Connect dials the editor's socket.io endpoint over websocket and waits for
// the connection to establish.
func Connect(ctx context.Context, endpoint string) (*Editor, error) {
	logger := ctxlog.FromContext(ctx).With("endpoint", endpoint)
	logger.Debug("Connecting to editor endpoint...")

	parsedURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse editor endpoint: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket("/", opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Editor channel connected.", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err, _ := errs[0].(error)
		connectChan <- err
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("editor connection failed: %w", err)
		}
		return &Editor{io: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while connecting to editor")
	case <-time.After(connectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for editor connection", connectTimeout)
	}
}

// Emit publishes one event. Emission is fire-and-forget; a dead channel
// never fails the run.
func (e *Editor) Emit(ctx context.Context, event string, payload map[string]any) {
	ctxlog.FromContext(ctx).Debug("Emitting editor event.", "event", event)
	e.io.Emit(event, payload)
}

// Close tears the channel down.
func (e *Editor) Close() {
	e.io.Disconnect()
}
