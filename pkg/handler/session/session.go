// Package session holds the handlers that surface session level failures to the user.
package session

import (
	"context"
	"log/slog"

	"github.com/amirasaad/compago/pkg/domain/events"
	"github.com/amirasaad/compago/pkg/domain/notification"
	"github.com/amirasaad/compago/pkg/eventbus"
	notify "github.com/amirasaad/compago/pkg/notification"
)

// HandleAuthenticationFailed shows the wrong PIN notification.
func HandleAuthenticationFailed(notifier notify.Notifier, logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		log := logger.With("handler", "session.HandleAuthenticationFailed")
		if _, ok := e.(*events.AuthenticationFailed); !ok {
			log.Debug("🚫 [SKIP] Skipping: unexpected event type", "event", e)
			return nil
		}
		notifier.Notify(ctx, notification.MsgInvalidPin, notification.Error)
		return nil
	}
}

// HandleValidationFailed shows the validation message and nothing else.
func HandleValidationFailed(notifier notify.Notifier, logger *slog.Logger) eventbus.HandlerFunc {
	return func(ctx context.Context, e events.Event) error {
		log := logger.With("handler", "session.HandleValidationFailed")
		evt, ok := e.(*events.ValidationFailed)
		if !ok {
			log.Debug("🚫 [SKIP] Skipping: unexpected event type", "event", e)
			return nil
		}
		log.Info("validation failed", "fields", evt.Fields)
		notifier.Notify(ctx, evt.Message, notification.Error)
		return nil
	}
}
