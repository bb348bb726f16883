package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Publisher captures structured audit events. Synchronous by default; with
// WithAsync it buffers events through a background worker so the request path
// never blocks on the sink.
type Publisher struct {
	sink   Sink
	logger *slog.Logger

	inbox chan Event
	wg    sync.WaitGroup
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsync buffers events through a background worker with the given
// capacity. Close must be called to drain it.
func WithAsync(capacity int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan Event, capacity)
	}
}

// WithLogger sets the logger used for sink failures on the async path.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(sink Sink, opts ...Option) *Publisher {
	p := &Publisher{sink: sink, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

// Emit records one event, filling in the identifier and timestamp when the
// caller left them zero.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if p.inbox == nil {
		return p.sink.Append(ctx, event)
	}
	select {
	case p.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for event := range p.inbox {
		if err := p.sink.Append(context.Background(), event); err != nil {
			p.logger.Error("audit append failed",
				"draft_id", event.DraftID,
				"action", event.Action,
				"error", err,
			)
		}
	}
}

// Close drains the async buffer. A no-op for synchronous publishers.
func (p *Publisher) Close() {
	if p.inbox == nil {
		return
	}
	close(p.inbox)
	p.wg.Wait()
}
