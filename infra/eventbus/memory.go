package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/amirasaad/compago/pkg/domain/events"
	"github.com/amirasaad/compago/pkg/eventbus"
)

type depthKey struct{}

// MaxEventDepth bounds how deep handlers may emit follow-up events.
const MaxEventDepth = 10

// ErrMaxEventDepth is returned when a handler chain emits recursively past MaxEventDepth.
var ErrMaxEventDepth = errors.New("max event depth exceeded")

// MemoryEventBus is a synchronous in-memory implementation of the Bus interface.
// Handlers run on the emitting goroutine in registration order, so emitting from the
// dispatch loop keeps every handler on the loop too.
type MemoryEventBus struct {
	handlers  map[events.EventType][]eventbus.HandlerFunc
	mu        sync.RWMutex
	logger    *slog.Logger
	published []events.Event
	record    bool
}

// Option configures a MemoryEventBus.
type Option func(*MemoryEventBus)

// WithRecording keeps every emitted event for inspection in tests.
func WithRecording() Option {
	return func(b *MemoryEventBus) { b.record = true }
}

// NewWithMemory creates a new in-memory event bus for event-driven communication.
func NewWithMemory(logger *slog.Logger, opts ...Option) *MemoryEventBus {
	b := &MemoryEventBus{
		handlers: make(map[events.EventType][]eventbus.HandlerFunc),
		logger:   logger.With("bus", "memory"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register registers a handler for a specific event type.
func (b *MemoryEventBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit dispatches the event to all registered handlers for its type.
// Handler errors and panics are logged and joined into the returned error; every
// handler runs regardless.
func (b *MemoryEventBus) Emit(ctx context.Context, event events.Event) error {
	depth, _ := ctx.Value(depthKey{}).(int)
	if depth >= MaxEventDepth {
		b.logger.Error("❌ [ERROR] Event depth exceeded", "type", event.Type(), "depth", depth)
		return fmt.Errorf("%w: %s", ErrMaxEventDepth, event.Type())
	}
	ctx = context.WithValue(ctx, depthKey{}, depth+1)

	eventType := events.EventType(event.Type())
	b.mu.Lock()
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[eventType]...)
	if b.record {
		b.published = append(b.published, event)
	}
	b.mu.Unlock()

	if len(handlers) == 0 {
		b.logger.Debug("no handlers registered", "type", eventType)
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := b.invoke(ctx, handler, event); err != nil {
			b.logger.Error("failed to process event", "type", eventType, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *MemoryEventBus) invoke(
	ctx context.Context,
	handler eventbus.HandlerFunc,
	event events.Event,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic recovered in event handler", "type", event.Type(), "panic", r)
			err = fmt.Errorf("handler panic on %s: %v", event.Type(), r)
		}
	}()
	return handler(ctx, event)
}

// ClearPublished clears the list of published events. This is useful for testing.
func (b *MemoryEventBus) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = nil
}

// Published returns a copy of the recorded events. This is useful for testing.
func (b *MemoryEventBus) Published() []events.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]events.Event(nil), b.published...)
}

// Ensure MemoryEventBus implements the Bus interface.
var _ eventbus.Bus = (*MemoryEventBus)(nil)
