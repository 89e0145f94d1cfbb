// Package initializer builds the process-wide dependencies from configuration.
package initializer

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	infra_eventbus "github.com/amirasaad/compago/infra/eventbus"
	"github.com/amirasaad/compago/internal/fixtures"
	"github.com/amirasaad/compago/pkg/app"
	"github.com/amirasaad/compago/pkg/clock"
	"github.com/amirasaad/compago/pkg/config"
	"github.com/amirasaad/compago/pkg/dispatch"
	"github.com/amirasaad/compago/pkg/ledger"
	"github.com/amirasaad/compago/pkg/money"
)

type options struct {
	clock     clock.Clock
	logOutput io.Writer
	logger    *slog.Logger
}

// Option customizes InitializeDependencies.
type Option func(*options)

// WithClock replaces the wall clock, e.g. with clock.NewManual in tests.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogOutput sends process logs to w instead of stdout.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// WithLogger uses logger as is instead of building one from config.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// InitializeDependencies loads the seed, builds the ledger and starts the event bus
// and the dispatch loop.
func InitializeDependencies(cfg *config.App, opts ...Option) (*app.Deps, error) {
	o := options{clock: clock.Real(), logOutput: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = setupLogger(cfg.Log, o.logOutput)
	}

	seed, err := fixtures.Load(cfg.Seed.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}
	logger.Info("Seed data loaded",
		"dir", cfg.Seed.Dir,
		"accounts", len(seed.Accounts),
		"transactions", len(seed.Transactions),
		"contacts", len(seed.Contacts),
	)

	store, err := ledger.New(
		seed.Accounts,
		seed.Transactions,
		ledger.WithOverdraft(cfg.Payment.AllowOverdraft),
		ledger.WithCurrency(money.Code(cfg.Payment.Currency)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build ledger: %w", err)
	}
	for _, id := range []string{cfg.Payment.SourceAccount, cfg.Payment.ReceiveAccount} {
		if _, err := store.Account(id); err != nil {
			return nil, fmt.Errorf("settlement account: %w", err)
		}
	}
	if cfg.Payment.AllowOverdraft {
		logger.Warn("⚠️ Overdraft allowed: debits are not checked against balances")
	}

	return &app.Deps{
		EventBus:             infra_eventbus.NewWithMemory(logger),
		Loop:                 dispatch.New(o.clock, logger),
		Ledger:               store,
		Logger:               logger,
		Contacts:             seed.Contacts,
		Presets:              fixtures.Presets,
		Profile:              fixtures.Profile,
		IncomingCounterparty: fixtures.IncomingCounterparty,
		IncomingChannel:      fixtures.IncomingChannel,
	}, nil
}

// NewApp initializes the dependencies and the controller in one step. The caller
// owns the returned App and must Close it.
func NewApp(cfg *config.App, opts ...Option) (*app.App, error) {
	deps, err := InitializeDependencies(cfg, opts...)
	if err != nil {
		return nil, err
	}
	a, err := app.New(deps, cfg)
	if err != nil {
		_ = deps.Loop.Close()
		return nil, err
	}
	return a, nil
}
