package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	dErrors "taxgate/pkg/domain-errors"
)

// Publisher hands events to the background worker through a bounded inbox.
// Emit never blocks the caller: when the inbox is full the event is dropped
// and an error returned, which callers treat as best effort.
type Publisher struct {
	inbox chan Event
}

// NewPublisher creates a publisher with the given inbox capacity.
func NewPublisher(capacity int) *Publisher {
	return &Publisher{inbox: make(chan Event, capacity)}
}

// Emit enqueues an event, stamping ID and timestamp when absent.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
		return nil
	default:
		return dErrors.New(dErrors.CodeInternal, "audit inbox full, event dropped")
	}
}

// Inbox exposes the receive side for the worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}
