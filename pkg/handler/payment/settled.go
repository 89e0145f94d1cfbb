package payment

import (
	"context"
	"log/slog"

	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/events"
	"github.com/amirasaad/compago/pkg/domain/notification"
	"github.com/amirasaad/compago/pkg/eventbus"
	notify "github.com/amirasaad/compago/pkg/notification"
)

// HandleSettled shows the success notification. By the time PaymentSettled is emitted
// the ledger already holds the transaction and the new balance.
func HandleSettled(notifier notify.Notifier, logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		log := logger.With("handler", "payment.HandleSettled", "event_type", e.Type())

		evt, ok := e.(*events.PaymentSettled)
		if !ok {
			log.Debug("🚫 [SKIP] Skipping: unexpected event type", "event", e)
			return nil
		}
		log = log.With(
			"correlation_id", evt.CorrelationID,
			"transaction_id", evt.Transaction.ID,
			"direction", evt.Transaction.Direction,
		)

		message := notification.MsgPaymentSent
		if evt.Transaction.Direction == account.DirectionInbound {
			message = notification.MsgPaymentReceived
		}
		notifier.Notify(ctx, message, notification.Success)
		log.Info("✅ [SUCCESS] Payment settled", "amount", evt.Transaction.Amount.String())
		return nil
	}
}
