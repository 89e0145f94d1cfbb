// Package payment is the entry point of the payment workflow: it validates requests
// synchronously and hands valid ones to the event-driven settlement chain.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/events"
	"github.com/amirasaad/compago/pkg/domain/payment"
	"github.com/amirasaad/compago/pkg/eventbus"
	"github.com/amirasaad/compago/pkg/ledger"
	"github.com/amirasaad/compago/pkg/money"
)

// SettlementMode decides which account an outbound payment debits.
type SettlementMode string

const (
	// ModeIntent debits the account named by the intent's bank when it is linked,
	// otherwise the source account.
	ModeIntent SettlementMode = "intent"
	// ModeFixed always debits the source account.
	ModeFixed SettlementMode = "fixed"
)

// ErrUnknownSettlementMode is returned by ParseSettlementMode.
var ErrUnknownSettlementMode = errors.New("unknown settlement mode")

// ParseSettlementMode is case insensitive. Empty means ModeIntent.
func ParseSettlementMode(s string) (SettlementMode, error) {
	switch SettlementMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeIntent:
		return ModeIntent, nil
	case ModeFixed:
		return ModeFixed, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSettlementMode, s)
	}
}

// Config holds the workflow settings.
type Config struct {
	Mode           SettlementMode
	SourceAccount  string
	ReceiveAccount string
	Currency       money.Code
}

// Service submits payments.
type Service struct {
	bus    eventbus.Bus
	ledger ledger.Store
	cfg    Config
	logger *slog.Logger
}

// New creates a payment service.
func New(bus eventbus.Bus, store ledger.Store, cfg Config, logger *slog.Logger) *Service {
	if cfg.Mode == "" {
		cfg.Mode = ModeIntent
	}
	if cfg.Currency == "" {
		cfg.Currency = money.DefaultCode
	}
	return &Service{bus: bus, ledger: store, cfg: cfg, logger: logger}
}

// Currency is the wallet currency amounts are parsed in.
func (s *Service) Currency() money.Code { return s.cfg.Currency }

// SettlementAccount returns the ledger account intent will be debited from.
func (s *Service) SettlementAccount(intent payment.Intent) string {
	if s.cfg.Mode == ModeIntent {
		bank := strings.TrimSpace(intent.Bank)
		for _, acc := range s.ledger.Accounts() {
			if strings.EqualFold(acc.ID, bank) {
				return acc.ID
			}
		}
	}
	return s.cfg.SourceAccount
}

// SubmitOutbound validates intent and starts its settlement. Validation and the
// advisory funds check are synchronous; the ledger is never touched here.
func (s *Service) SubmitOutbound(
	ctx context.Context,
	intent payment.Intent,
) (*events.OutboundPaymentRequested, error) {
	log := s.logger.With("service", "payment.SubmitOutbound")
	log.Info("🟢 [START] Received outbound payment", "bank", intent.Bank, "channel", intent.Channel)

	if err := intent.Validate(); err != nil {
		log.Warn("❌ [ERROR] Outbound payment rejected by validation", "error", err)
		s.reportValidation(ctx, err)
		return nil, err
	}

	accountID := s.SettlementAccount(intent)
	if err := s.ledger.CanDebit(accountID, intent.Amount); err != nil {
		log.Warn("❌ [ERROR] Outbound payment rejected", "account", accountID, "error", err)
		s.emit(ctx, events.NewPaymentFailed(
			events.NewFlowEvent(), account.DirectionOutbound, accountID, intent.Amount, err,
		))
		return nil, err
	}

	evt := events.NewOutboundPaymentRequested(intent, accountID)
	log.Info(
		"📤 [EMIT] Emitting OutboundPaymentRequested",
		"correlation_id", evt.CorrelationID,
		"account", accountID,
		"amount", intent.Amount.String(),
	)
	if err := s.bus.Emit(ctx, evt); err != nil {
		return evt, fmt.Errorf("emit outbound payment: %w", err)
	}
	return evt, nil
}

// SubmitInbound announces an incoming payment to the receive account.
func (s *Service) SubmitInbound(
	ctx context.Context,
	amount money.Money,
	counterparty string,
	channel account.Channel,
	memo string,
) (*events.InboundPaymentRequested, error) {
	log := s.logger.With("service", "payment.SubmitInbound")
	log.Info("🟢 [START] Received inbound payment", "counterparty", counterparty, "channel", channel)

	var err error
	if !amount.IsPositive() {
		err = &payment.ValidationError{Fields: []string{"Amount"}, Message: payment.MsgInvalidAmount}
	} else {
		err = payment.ValidateChannel(channel)
	}
	if err != nil {
		log.Warn("❌ [ERROR] Inbound payment rejected by validation", "error", err)
		s.reportValidation(ctx, err)
		return nil, err
	}
	if _, err := s.ledger.Account(s.cfg.ReceiveAccount); err != nil {
		log.Error("❌ [ERROR] Receive account is not linked", "account", s.cfg.ReceiveAccount, "error", err)
		return nil, err
	}

	evt := events.NewInboundPaymentRequested(
		amount, counterparty, channel, s.cfg.ReceiveAccount,
		events.WithInboundMemo(memo),
	)
	log.Info(
		"📤 [EMIT] Emitting InboundPaymentRequested",
		"correlation_id", evt.CorrelationID,
		"account", s.cfg.ReceiveAccount,
		"amount", amount.String(),
	)
	if err := s.bus.Emit(ctx, evt); err != nil {
		return evt, fmt.Errorf("emit inbound payment: %w", err)
	}
	return evt, nil
}

// ReportValidation surfaces a validation failure raised outside the service.
func (s *Service) ReportValidation(ctx context.Context, err error) {
	s.reportValidation(ctx, err)
}

func (s *Service) reportValidation(ctx context.Context, err error) {
	var verr *payment.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	s.emit(ctx, &events.ValidationFailed{
		FlowEvent: events.NewFlowEvent(),
		Fields:    verr.Fields,
		Message:   verr.Message,
	})
}

func (s *Service) emit(ctx context.Context, evt events.Event) {
	if err := s.bus.Emit(ctx, evt); err != nil {
		s.logger.Error("❌ [ERROR] failed to emit event", "type", evt.Type(), "error", err)
	}
}
