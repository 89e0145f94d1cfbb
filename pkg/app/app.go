// Package app is the wallet controller. It owns the session state, runs every view
// event on the dispatch loop and publishes a StateChanged snapshot after each change.
package app

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/amirasaad/compago/pkg/config"
	"github.com/amirasaad/compago/pkg/dispatch"
	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/payment"
	"github.com/amirasaad/compago/pkg/domain/user"
	"github.com/amirasaad/compago/pkg/eventbus"
	paymenthandler "github.com/amirasaad/compago/pkg/handler/payment"
	"github.com/amirasaad/compago/pkg/ledger"
	"github.com/amirasaad/compago/pkg/money"
	"github.com/amirasaad/compago/pkg/notification"
	"github.com/amirasaad/compago/pkg/service/auth"
	paymentsvc "github.com/amirasaad/compago/pkg/service/payment"
)

// Deps contains the infrastructure the controller is built on.
type Deps struct {
	EventBus eventbus.Bus
	Loop     *dispatch.Loop
	Ledger   ledger.Store
	Logger   *slog.Logger

	Contacts []payment.Contact
	Presets  map[account.Channel]payment.Preset
	Profile  user.Profile

	// Incoming payments simulated from receive mode are attributed to this payer.
	IncomingCounterparty string
	IncomingChannel      account.Channel
}

type App struct {
	Deps           *Deps
	Config         *config.App
	AuthService    *auth.Service
	PaymentService *paymentsvc.Service
	Notifications  *notification.Queue

	settlements *paymenthandler.Tracker
	currency    money.Code
	receiver    payment.Receiver

	// Owned by the dispatch loop.
	state     SessionState
	inCommand bool

	mu        sync.Mutex
	observers map[uint64]Observer
	nextObs   uint64
	closeOnce sync.Once
	closeErr  error
}

// New wires the services and event handlers. The loop must already be running.
func New(deps *Deps, cfg *config.App) (*App, error) {
	code := money.Code(cfg.Payment.Currency)
	if code == "" {
		code = money.DefaultCode
	}
	if !code.IsValid() {
		return nil, fmt.Errorf("%w: %q", money.ErrInvalidCurrency, cfg.Payment.Currency)
	}
	mode, err := paymentsvc.ParseSettlementMode(cfg.Payment.SettlementMode)
	if err != nil {
		return nil, err
	}
	authService, err := auth.NewWithPin(cfg.Auth.Pin, cfg.Auth.HashCost, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	if deps.IncomingChannel == "" {
		deps.IncomingChannel = account.ChannelNFC
	}

	app := &App{
		Deps:        deps,
		Config:      cfg,
		AuthService: authService,
		PaymentService: paymentsvc.New(deps.EventBus, deps.Ledger, paymentsvc.Config{
			Mode:           mode,
			SourceAccount:  cfg.Payment.SourceAccount,
			ReceiveAccount: cfg.Payment.ReceiveAccount,
			Currency:       code,
		}, deps.Logger),
		Notifications: notification.NewQueue(deps.Loop, deps.EventBus, cfg.Notification.TTL, deps.Logger),
		settlements:   paymenthandler.NewTracker(),
		currency:      code,
		receiver: payment.Receiver{
			Phone: cfg.Receive.Phone,
			ID:    cfg.Receive.ID,
			Bank:  cfg.Receive.Bank,
		},
		state:     newSessionState(),
		observers: make(map[uint64]Observer),
	}
	app.setupEventBus()
	return app, nil
}

// PendingSettlements returns how many payments are still waiting to settle.
func (a *App) PendingSettlements() int { return a.settlements.Pending() }

// Close cancels pending settlements and stops the dispatch loop. Safe to call twice.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		if n := a.settlements.CancelAll(); n > 0 {
			a.Deps.Logger.Info("pending settlements discarded", "count", n)
		}
		a.closeErr = a.Deps.Loop.Close()
	})
	return a.closeErr
}
