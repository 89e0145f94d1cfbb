package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/compago/pkg/domain/events"
	"github.com/amirasaad/compago/pkg/domain/notification"
	"github.com/amirasaad/compago/pkg/eventbus"
	"github.com/amirasaad/compago/pkg/ledger"
	notify "github.com/amirasaad/compago/pkg/notification"
)

// HandleFailed shows an error notification for a rejected payment. The ledger was
// not touched.
func HandleFailed(notifier notify.Notifier, logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		log := logger.With("handler", "payment.HandleFailed", "event_type", e.Type())

		pf, ok := e.(*events.PaymentFailed)
		if !ok {
			log.Debug("🚫 [SKIP] Skipping: unexpected event type", "event", e)
			return nil
		}
		log = log.With("correlation_id", pf.CorrelationID, "account", pf.AccountID)

		notifier.Notify(ctx, FailureMessage(pf), notification.Error)
		log.Info("❌ [ERROR] Payment failed", "reason", pf.Reason)
		return nil
	}
}

// FailureMessage renders the user-facing text for a failed payment.
func FailureMessage(pf *events.PaymentFailed) string {
	switch {
	case errors.Is(pf.Err, ledger.ErrInsufficientFunds):
		return fmt.Sprintf("%s %s.", notification.MsgInsufficientFunds, pf.AccountID)
	case errors.Is(pf.Err, ledger.ErrAccountNotFound):
		return fmt.Sprintf("%s: la cuenta %s no está vinculada.", notification.MsgPaymentFailed, pf.AccountID)
	default:
		return notification.MsgPaymentFailed + "."
	}
}
