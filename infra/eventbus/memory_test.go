package eventbus_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/compago/infra/eventbus"
	"github.com/amirasaad/compago/pkg/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestMemoryEventBus_DispatchInOrder(t *testing.T) {
	bus := eventbus.NewWithMemory(discard(), eventbus.WithRecording())
	var calls []string
	bus.Register(events.EventTypeAuthenticationFailed, func(ctx context.Context, e events.Event) error {
		calls = append(calls, "first")
		return nil
	})
	bus.Register(events.EventTypeAuthenticationFailed, func(ctx context.Context, e events.Event) error {
		calls = append(calls, "second")
		return nil
	})

	require.NoError(t, bus.Emit(context.Background(), &events.AuthenticationFailed{Reason: "bad pin"}))
	assert.Equal(t, []string{"first", "second"}, calls)
	require.Len(t, bus.Published(), 1)

	bus.ClearPublished()
	assert.Empty(t, bus.Published())
}

func TestMemoryEventBus_NoHandlers(t *testing.T) {
	bus := eventbus.NewWithMemory(discard())
	assert.NoError(t, bus.Emit(context.Background(), &events.ValidationFailed{}))
	assert.Empty(t, bus.Published(), "recording is off by default")
}

func TestMemoryEventBus_ErrorsAndPanics(t *testing.T) {
	bus := eventbus.NewWithMemory(discard())
	boom := errors.New("boom")
	ran := false
	bus.Register(events.EventTypeValidationFailed, func(ctx context.Context, e events.Event) error {
		return boom
	})
	bus.Register(events.EventTypeValidationFailed, func(ctx context.Context, e events.Event) error {
		panic("kaput")
	})
	bus.Register(events.EventTypeValidationFailed, func(ctx context.Context, e events.Event) error {
		ran = true
		return nil
	})

	err := bus.Emit(context.Background(), &events.ValidationFailed{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "kaput")
	assert.True(t, ran, "later handlers still run")
}

func TestMemoryEventBus_DepthGuard(t *testing.T) {
	bus := eventbus.NewWithMemory(discard())
	count := 0
	bus.Register(events.EventTypeValidationFailed, func(ctx context.Context, e events.Event) error {
		count++
		return bus.Emit(ctx, e)
	})

	err := bus.Emit(context.Background(), &events.ValidationFailed{})
	assert.ErrorIs(t, err, eventbus.ErrMaxEventDepth)
	assert.Equal(t, eventbus.MaxEventDepth, count)
}
