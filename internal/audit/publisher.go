package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Publisher emits audit events to a store, either synchronously or
// through a buffered channel drained by a background goroutine.
type Publisher struct {
	store  Store
	logger *slog.Logger
	events chan Event
	wg     sync.WaitGroup
	once   sync.Once
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to asynchronous mode with the
// given channel capacity.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.events = make(chan Event, size)
		}
	}
}

// WithLogger sets the logger used when a buffered write fails.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPublisher creates a publisher writing to store. Synchronous by
// default; see WithAsyncBuffer.
func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.events != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit records an event. In async mode a full buffer falls back to a
// synchronous write rather than dropping the event.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if p.events == nil {
		return p.store.Append(ctx, event)
	}
	select {
	case p.events <- event:
		return nil
	default:
		return p.store.Append(ctx, event)
	}
}

// List exposes the underlying store's events, mainly for tests.
func (p *Publisher) List(ctx context.Context) ([]Event, error) {
	return p.store.List(ctx)
}

// Close stops the background drain after flushing buffered events.
func (p *Publisher) Close() {
	p.once.Do(func() {
		if p.events != nil {
			close(p.events)
			p.wg.Wait()
		}
	})
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.events {
		// Persist with a background context; the emitting request may
		// be long gone. Failures here have no caller to return to, so
		// they go to the log.
		if err := p.store.Append(context.Background(), event); err != nil {
			p.logger.Error("failed to persist buffered audit event",
				"action", event.Action, "error", err)
		}
	}
}
