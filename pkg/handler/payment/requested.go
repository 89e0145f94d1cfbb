package payment

import (
	"context"
	"log/slog"

	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/events"
	"github.com/amirasaad/compago/pkg/domain/notification"
	"github.com/amirasaad/compago/pkg/eventbus"
	"github.com/amirasaad/compago/pkg/ledger"
	notify "github.com/amirasaad/compago/pkg/notification"
)

// HandleOutboundRequested shows the processing notification and schedules settlement.
// When the job runs it settles the payment on the ledger in one atomic step and emits
// PaymentSettled, or PaymentFailed when the ledger rejects it.
func HandleOutboundRequested(
	bus eventbus.Bus,
	store ledger.Store,
	notifier notify.Notifier,
	settlement Settlement,
	logger *slog.Logger,
) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		log := logger.With("handler", "payment.HandleOutboundRequested", "event_type", e.Type())
		log.Info("🟢 [START] Received event")

		evt, ok := e.(*events.OutboundPaymentRequested)
		if !ok {
			log.Debug("🚫 [SKIP] Skipping: unexpected event type", "event", e)
			return nil
		}
		log = log.With("correlation_id", evt.CorrelationID, "account", evt.AccountID)

		notifier.Notify(ctx, notification.MsgProcessingPayment, notification.Info)

		intent := evt.Intent
		return settlement.schedule(ctx, bus, store, evt.FlowEvent, entry{
			direction:    account.DirectionOutbound,
			accountID:    evt.AccountID,
			amount:       intent.Amount,
			counterparty: intent.Counterparty(),
			channel:      intent.Channel,
			memo:         intent.Memo,
		}, log)
	}
}

// HandleInboundRequested shows the confirming notification and schedules the credit.
func HandleInboundRequested(
	bus eventbus.Bus,
	store ledger.Store,
	notifier notify.Notifier,
	settlement Settlement,
	logger *slog.Logger,
) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		log := logger.With("handler", "payment.HandleInboundRequested", "event_type", e.Type())
		log.Info("🟢 [START] Received event")

		evt, ok := e.(*events.InboundPaymentRequested)
		if !ok {
			log.Debug("🚫 [SKIP] Skipping: unexpected event type", "event", e)
			return nil
		}
		log = log.With("correlation_id", evt.CorrelationID, "account", evt.AccountID)

		notifier.Notify(ctx, notification.MsgConfirmingReceipt, notification.Info)

		return settlement.schedule(ctx, bus, store, evt.FlowEvent, entry{
			direction:    account.DirectionInbound,
			accountID:    evt.AccountID,
			amount:       evt.Amount,
			counterparty: evt.Counterparty,
			channel:      evt.Channel,
			memo:         evt.Memo,
		}, log)
	}
}
