package app

import (
	"context"
	"log/slog"

	"github.com/amirasaad/compago/pkg/domain/events"
	"github.com/amirasaad/compago/pkg/eventbus"
	"github.com/amirasaad/compago/pkg/handler/payment"
	"github.com/amirasaad/compago/pkg/handler/session"
)

// setupEventBus registers all event handlers with the event bus.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	logger := a.Deps.Logger

	a.setupPaymentHandlers(bus, logger)
	a.setupSessionHandlers(bus, logger)
	a.setupStateHandlers(bus)
}

func (a *App) setupPaymentHandlers(bus eventbus.Bus, logger *slog.Logger) {
	settlement := payment.Settlement{
		Scheduler: a.Deps.Loop,
		Delay:     a.Config.Payment.SettlementDelay,
		Tracker:   a.settlements,
	}

	bus.Register(
		events.EventTypeOutboundPaymentRequested,
		payment.HandleOutboundRequested(bus, a.Deps.Ledger, a.Notifications, settlement, logger),
	)
	bus.Register(
		events.EventTypeInboundPaymentRequested,
		payment.HandleInboundRequested(bus, a.Deps.Ledger, a.Notifications, settlement, logger),
	)
	bus.Register(
		events.EventTypePaymentSettled,
		payment.HandleSettled(a.Notifications, logger),
	)
	bus.Register(
		events.EventTypePaymentFailed,
		payment.HandleFailed(a.Notifications, logger),
	)
}

func (a *App) setupSessionHandlers(bus eventbus.Bus, logger *slog.Logger) {
	bus.Register(
		events.EventTypeAuthenticationFailed,
		session.HandleAuthenticationFailed(a.Notifications, logger),
	)
	bus.Register(
		events.EventTypeValidationFailed,
		session.HandleValidationFailed(a.Notifications, logger),
	)
}

// setupStateHandlers turns changes that happen outside a view event (settlement,
// notification expiry) into StateChanged publications.
func (a *App) setupStateHandlers(bus eventbus.Bus) {
	onChange := func(_ context.Context, e events.Event) error {
		a.changed(e.Type())
		return nil
	}
	bus.Register(events.EventTypePaymentSettled, onChange)
	bus.Register(events.EventTypePaymentFailed, onChange)
	bus.Register(events.EventTypeNotificationChanged, onChange)
}
