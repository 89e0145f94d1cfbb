package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/events"
	"github.com/amirasaad/compago/pkg/domain/payment"
	"github.com/amirasaad/compago/pkg/domain/session"
)

var (
	// ErrNoPendingConfirmation is returned by ConfirmSend without a prior RequestConfirmation.
	ErrNoPendingConfirmation = errors.New("no payment awaiting confirmation")
	// ErrReceiveModeInactive is returned when receive mode is required but not active.
	ErrReceiveModeInactive = errors.New("receive mode is not active")
	// ErrWrongScreen is returned when a view event does not belong to the active screen.
	ErrWrongScreen = errors.New("action not available on this screen")
)

// exec runs fn as one view event on the dispatch loop and publishes the result.
func (a *App) exec(ctx context.Context, cause string, fn func() error) error {
	return a.Deps.Loop.Do(ctx, func() error {
		a.inCommand = true
		defer func() {
			a.inCommand = false
			a.publish(cause)
		}()
		return fn()
	})
}

// requireScreen fails unless the session is authenticated and showing screen.
func (a *App) requireScreen(screen session.Screen) error {
	if !a.state.Authenticated {
		return session.ErrNotAuthenticated
	}
	if current := a.state.Screen(); current != screen {
		return fmt.Errorf("%w: %s", ErrWrongScreen, current)
	}
	return nil
}

// Login checks the PIN and opens the dashboard. A wrong PIN leaves the state as it
// was and shows an error notification.
func (a *App) Login(ctx context.Context, pin string) error {
	// bcrypt is slow; keep it off the loop.
	authErr := a.AuthService.Authenticate(ctx, pin)
	return a.exec(ctx, "login", func() error {
		if authErr != nil {
			a.emit(ctx, &events.AuthenticationFailed{
				FlowEvent: events.NewFlowEvent(),
				Reason:    authErr.Error(),
			})
			return authErr
		}
		a.state.Authenticated = true
		a.state.Navigator.Reset()
		return nil
	})
}

// Logout ends the session. Calling it while logged out changes nothing.
func (a *App) Logout(ctx context.Context) error {
	return a.exec(ctx, "logout", func() error {
		a.state.reset()
		return nil
	})
}

// Navigate moves to screen, discarding the send form when leaving SendPayment and
// deactivating receive mode when leaving ReceivePayment.
func (a *App) Navigate(ctx context.Context, screen session.Screen) error {
	return a.exec(ctx, "navigate", func() error {
		t, err := a.state.Navigator.Navigate(screen, a.state.Authenticated)
		if err != nil {
			return err
		}
		if t.LeftSend() {
			a.state.discardSend()
		}
		if t.LeftReceive() {
			a.state.Charge = nil
		}
		return nil
	})
}

// UpdateDraft edits the send form. A pending confirmation no longer matches the form
// and is dropped.
func (a *App) UpdateDraft(ctx context.Context, patch payment.DraftPatch) error {
	return a.exec(ctx, "update_draft", func() error {
		if err := a.requireScreen(session.SendPayment); err != nil {
			return err
		}
		a.state.Draft = a.state.Draft.Apply(patch)
		a.state.Confirmation = nil
		return nil
	})
}

// SelectChannel switches the send tab and resets the form.
func (a *App) SelectChannel(ctx context.Context, channel account.Channel) error {
	return a.exec(ctx, "select_channel", func() error {
		if err := a.requireScreen(session.SendPayment); err != nil {
			return err
		}
		a.state.Draft = payment.NewDraft(channel)
		a.state.Confirmation = nil
		return nil
	})
}

// SelectContact fills the payee from a saved contact. An unknown name resets the form.
func (a *App) SelectContact(ctx context.Context, name string) error {
	return a.exec(ctx, "select_contact", func() error {
		if err := a.requireScreen(session.SendPayment); err != nil {
			return err
		}
		a.state.Confirmation = nil
		for _, c := range a.Deps.Contacts {
			if c.Name == name {
				a.state.Draft = a.state.Draft.WithContact(c)
				return nil
			}
		}
		a.state.Draft = payment.NewDraft(a.state.Draft.Channel)
		return nil
	})
}

// AutoFill simulates an NFC approach or a QR scan by loading the channel's preset.
func (a *App) AutoFill(ctx context.Context, channel account.Channel) error {
	return a.exec(ctx, "auto_fill", func() error {
		if err := a.requireScreen(session.SendPayment); err != nil {
			return err
		}
		preset, ok := a.Deps.Presets[channel]
		if !ok {
			return fmt.Errorf("%w: no preset for %q", account.ErrInvalidChannel, channel)
		}
		a.state.Draft = payment.NewDraft(channel).WithPreset(preset)
		a.state.Confirmation = nil
		return nil
	})
}

// RequestConfirmation validates the form and stores the summary to confirm.
func (a *App) RequestConfirmation(ctx context.Context) (payment.Summary, error) {
	var summary payment.Summary
	err := a.exec(ctx, "request_confirmation", func() error {
		if err := a.requireScreen(session.SendPayment); err != nil {
			return err
		}
		intent, err := a.state.Draft.Intent(a.currency)
		if err != nil {
			a.PaymentService.ReportValidation(ctx, err)
			return err
		}
		summary = payment.Summarize(intent)
		a.state.Confirmation = &summary
		return nil
	})
	return summary, err
}

// ConfirmSend submits the confirmed payment, clears the form and returns to the
// dashboard. Settlement completes later on the loop.
func (a *App) ConfirmSend(ctx context.Context) (*events.OutboundPaymentRequested, error) {
	var requested *events.OutboundPaymentRequested
	err := a.exec(ctx, "confirm_send", func() error {
		if !a.state.Authenticated {
			return session.ErrNotAuthenticated
		}
		if a.state.Confirmation == nil {
			return ErrNoPendingConfirmation
		}
		intent := a.state.Confirmation.Intent()
		a.state.Confirmation = nil

		evt, err := a.PaymentService.SubmitOutbound(ctx, intent)
		if err != nil {
			return err
		}
		requested = evt
		a.state.discardSend()
		_, err = a.state.Navigator.Navigate(session.Dashboard, true)
		return err
	})
	return requested, err
}

// CancelConfirm drops the pending summary. Nothing else changes.
func (a *App) CancelConfirm(ctx context.Context) error {
	return a.exec(ctx, "cancel_confirm", func() error {
		a.state.Confirmation = nil
		return nil
	})
}

// ActivateReceiveMode creates a charge and its QR payload.
func (a *App) ActivateReceiveMode(ctx context.Context, amountText, concept string) (*payment.Charge, error) {
	var charge *payment.Charge
	err := a.exec(ctx, "activate_receive", func() error {
		if err := a.requireScreen(session.ReceivePayment); err != nil {
			return err
		}
		c, err := payment.NewCharge(amountText, concept, a.receiver, a.currency, a.Deps.Loop.Clock().Now())
		if err != nil {
			a.PaymentService.ReportValidation(ctx, err)
			return err
		}
		a.state.Charge = c
		charge = c
		return nil
	})
	return charge, err
}

// CancelReceiveMode deactivates the charge.
func (a *App) CancelReceiveMode(ctx context.Context) error {
	return a.exec(ctx, "cancel_receive", func() error {
		if a.state.Charge == nil {
			return ErrReceiveModeInactive
		}
		a.state.Charge = nil
		return nil
	})
}

// SimulateIncomingPayment pays the active charge as if a customer had approached.
// The charge is consumed and the dashboard is shown while the payment settles.
func (a *App) SimulateIncomingPayment(ctx context.Context) (*events.InboundPaymentRequested, error) {
	var requested *events.InboundPaymentRequested
	err := a.exec(ctx, "simulate_incoming", func() error {
		if !a.state.Authenticated {
			return session.ErrNotAuthenticated
		}
		charge := a.state.Charge
		if charge == nil {
			return ErrReceiveModeInactive
		}
		evt, err := a.PaymentService.SubmitInbound(
			ctx,
			charge.Amount,
			a.Deps.IncomingCounterparty,
			a.Deps.IncomingChannel,
			charge.Concept,
		)
		if err != nil {
			return err
		}
		requested = evt
		a.state.Charge = nil
		_, err = a.state.Navigator.Navigate(session.Dashboard, true)
		return err
	})
	return requested, err
}

// SetHistoryFilter selects which movements the history view lists.
func (a *App) SetHistoryFilter(ctx context.Context, filter account.Filter) error {
	return a.exec(ctx, "set_history_filter", func() error {
		if !a.state.Authenticated {
			return session.ErrNotAuthenticated
		}
		a.state.HistoryFilter = filter
		return nil
	})
}

// DismissNotification hides the active notification. It reports whether one was shown.
func (a *App) DismissNotification(ctx context.Context) (bool, error) {
	var dismissed bool
	err := a.exec(ctx, "dismiss_notification", func() error {
		dismissed = a.Notifications.Dismiss(ctx)
		return nil
	})
	return dismissed, err
}

// Snapshot returns the current state. It must not be called from an Observer.
func (a *App) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := a.Deps.Loop.Do(ctx, func() error {
		snap = a.snapshot()
		return nil
	})
	return snap, err
}

func (a *App) emit(ctx context.Context, evt events.Event) {
	if err := a.Deps.EventBus.Emit(ctx, evt); err != nil {
		a.Deps.Logger.Error("❌ [ERROR] failed to emit event", "type", evt.Type(), "error", err)
	}
}
