package audit

import (
	"context"
	"log/slog"
)

// Sink is where the worker lands events.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Worker consumes audit events from a channel and persists them. It keeps
// background processing testable without wiring queue implementations into
// the request path.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run drains the inbox until the context ends. Sink failures are logged and
// the event dropped; the audit trail never takes the service down.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit append failed",
					"event_id", event.ID,
					"kind", string(event.Kind),
					"error", err,
				)
			}
		}
	}
}
