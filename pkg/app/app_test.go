package app_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/compago/infra/eventbus"
	"github.com/amirasaad/compago/internal/fixtures"
	"github.com/amirasaad/compago/pkg/app"
	"github.com/amirasaad/compago/pkg/clock"
	"github.com/amirasaad/compago/pkg/config"
	"github.com/amirasaad/compago/pkg/dispatch"
	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/events"
	"github.com/amirasaad/compago/pkg/domain/notification"
	"github.com/amirasaad/compago/pkg/domain/payment"
	"github.com/amirasaad/compago/pkg/domain/session"
	"github.com/amirasaad/compago/pkg/ledger"
	"github.com/amirasaad/compago/pkg/service/auth"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

const settleDelay = 1500 * time.Millisecond

func testConfig() *config.App {
	return &config.App{
		Env:  "test",
		Auth: &config.Auth{Pin: "1234", HashCost: bcrypt.MinCost},
		Payment: &config.Payment{
			SettlementDelay: settleDelay,
			SettlementMode:  "intent",
			SourceAccount:   "Banesco",
			ReceiveAccount:  "Provincial",
			Currency:        "VES",
		},
		Notification: &config.Notification{TTL: 3 * time.Second},
		Receive:      &config.Receive{Phone: "04167890123", ID: "V-10000000", Bank: "COMPAGO Bank"},
		Dashboard:    &config.Dashboard{RecentLimit: 5},
	}
}

type AppTestSuite struct {
	suite.Suite
	ctx    context.Context
	clock  *clock.Manual
	ledger *ledger.Ledger
	bus    *eventbus.MemoryEventBus
	app    *app.App

	mu      sync.Mutex
	changes []app.StateChanged
}

func (s *AppTestSuite) SetupTest() {
	s.build(testConfig())
}

func (s *AppTestSuite) build(cfg *config.App, opts ...ledger.Option) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.ctx = context.Background()
	s.clock = clock.NewManual(time.Date(2025, 1, 5, 9, 0, 0, 0, time.Local))
	seed := fixtures.Default()
	var err error
	s.ledger, err = ledger.New(seed.Accounts, seed.Transactions, opts...)
	s.Require().NoError(err)
	s.bus = eventbus.NewWithMemory(logger, eventbus.WithRecording())

	s.app, err = app.New(&app.Deps{
		EventBus:             s.bus,
		Loop:                 dispatch.New(s.clock, logger),
		Ledger:               s.ledger,
		Logger:               logger,
		Contacts:             seed.Contacts,
		Presets:              fixtures.Presets,
		Profile:              fixtures.Profile,
		IncomingCounterparty: fixtures.IncomingCounterparty,
		IncomingChannel:      fixtures.IncomingChannel,
	}, cfg)
	s.Require().NoError(err)

	s.changes = nil
	s.app.Subscribe(func(evt app.StateChanged) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.changes = append(s.changes, evt)
	})
}

func (s *AppTestSuite) TearDownTest() {
	_ = s.app.Close()
}

func (s *AppTestSuite) snap() app.Snapshot {
	snap, err := s.app.Snapshot(s.ctx)
	s.Require().NoError(err)
	return snap
}

func (s *AppTestSuite) advance(d time.Duration) {
	s.clock.Advance(d)
	s.snap() // barrier: everything the timers posted has run
}

func (s *AppTestSuite) login() {
	s.Require().NoError(s.app.Login(s.ctx, auth.DefaultPin))
}

func (s *AppTestSuite) balance(id string) string {
	acc, err := s.ledger.Account(id)
	s.Require().NoError(err)
	return acc.Balance.String()
}

func (s *AppTestSuite) goTo(screen session.Screen) {
	s.Require().NoError(s.app.Navigate(s.ctx, screen))
}

func (s *AppTestSuite) TestInitialState() {
	snap := s.snap()
	s.False(snap.Authenticated)
	s.Equal(session.Login, snap.Screen)
	s.Equal("1516.45 VES", snap.TotalBalance.String())
	s.Len(snap.Transactions, 5)
	s.Len(snap.Recent, 5)
	s.Len(snap.Contacts, 3)
	s.Equal("Carlos Hernández", snap.Profile.Name)
	s.Nil(snap.Notification)
}

func (s *AppTestSuite) TestLogin() {
	err := s.app.Login(s.ctx, "0000")
	s.ErrorIs(err, auth.ErrInvalidPin)
	snap := s.snap()
	s.False(snap.Authenticated)
	s.Equal(session.Login, snap.Screen)
	s.Require().NotNil(snap.Notification)
	s.Equal(notification.MsgInvalidPin, snap.Notification.Message)
	s.Equal(notification.Error, snap.Notification.Severity)

	s.login()
	snap = s.snap()
	s.True(snap.Authenticated)
	s.Equal(session.Dashboard, snap.Screen)
}

func (s *AppTestSuite) TestNavigationGuards() {
	s.ErrorIs(s.app.Navigate(s.ctx, session.History), session.ErrNotAuthenticated)
	s.Equal(session.Login, s.snap().Screen)

	s.login()
	s.goTo(session.History)
	s.Equal(session.History, s.snap().Screen)
	s.ErrorIs(s.app.Navigate(s.ctx, session.Login), session.ErrInvalidTransition)
	s.Equal(session.History, s.snap().Screen)
}

func (s *AppTestSuite) TestLogoutIsIdempotent() {
	s.login()
	s.goTo(session.SendPayment)
	s.Require().NoError(s.app.AutoFill(s.ctx, account.ChannelNFC))

	s.Require().NoError(s.app.Logout(s.ctx))
	first := s.snap()
	s.False(first.Authenticated)
	s.Equal(session.Login, first.Screen)
	s.Empty(first.Draft.Phone)

	s.Require().NoError(s.app.Logout(s.ctx))
	second := s.snap()
	s.Equal(first.Authenticated, second.Authenticated)
	s.Equal(first.Screen, second.Screen)

	// the next login lands on the dashboard, not the screen left behind
	s.login()
	s.Equal(session.Dashboard, s.snap().Screen)
}

func (s *AppTestSuite) TestSendPayment() {
	s.login()
	s.goTo(session.SendPayment)
	s.Require().NoError(s.app.AutoFill(s.ctx, account.ChannelNFC))

	summary, err := s.app.RequestConfirmation(s.ctx)
	s.Require().NoError(err)
	s.Equal("85.00 VES", summary.Amount.String())
	s.Equal("04129876543 (V-19876543)", summary.Counterparty)
	s.Equal(account.ChannelNFC, summary.Channel)
	s.Len(s.ledger.Transactions(), 5, "confirmation is a pure read")

	req, err := s.app.ConfirmSend(s.ctx)
	s.Require().NoError(err)
	s.Equal("Banesco", req.AccountID)

	snap := s.snap()
	s.Equal(session.Dashboard, snap.Screen)
	s.Empty(snap.Draft.Phone)
	s.Nil(snap.Confirmation)
	s.Equal(1, snap.PendingSettlements)
	s.Require().NotNil(snap.Notification)
	s.Equal(notification.MsgProcessingPayment, snap.Notification.Message)
	s.Equal("525.75 VES", s.balance("Banesco"))

	s.advance(settleDelay)
	snap = s.snap()
	s.Equal("440.75 VES", s.balance("Banesco"))
	s.Equal("1431.45 VES", snap.TotalBalance.String())
	s.Require().Len(snap.Transactions, 6)
	head := snap.Transactions[0]
	s.Equal(account.DirectionOutbound, head.Direction)
	s.Equal("85.00 VES", head.Amount.String())
	s.Equal(account.ChannelNFC, head.Channel)
	s.Equal(head.ID, snap.Recent[0].ID)
	s.Len(snap.Recent, 5)
	s.Zero(snap.PendingSettlements)
	s.Require().NotNil(snap.Notification)
	s.Equal(notification.MsgPaymentSent, snap.Notification.Message)

	s.advance(3 * time.Second)
	s.Nil(s.snap().Notification)
}

func (s *AppTestSuite) TestSendPayment_IntentModeDebitsNamedBank() {
	s.login()
	s.goTo(session.SendPayment)
	s.Require().NoError(s.app.AutoFill(s.ctx, account.ChannelQR))
	_, err := s.app.RequestConfirmation(s.ctx)
	s.Require().NoError(err)
	_, err = s.app.ConfirmSend(s.ctx)
	s.Require().NoError(err)

	s.advance(settleDelay)
	s.Equal("740.20 VES", s.balance("Mercantil"))
	s.Equal("525.75 VES", s.balance("Banesco"))
}

func (s *AppTestSuite) TestInvalidDraft() {
	s.login()
	s.goTo(session.SendPayment)
	phone := "04129876543"
	s.Require().NoError(s.app.UpdateDraft(s.ctx, payment.DraftPatch{Phone: &phone}))

	_, err := s.app.RequestConfirmation(s.ctx)
	s.ErrorIs(err, payment.ErrValidation)
	snap := s.snap()
	s.Nil(snap.Confirmation)
	s.Equal("04129876543", snap.Draft.Phone, "the form is kept for correction")
	s.Require().NotNil(snap.Notification)
	s.Equal(payment.MsgMissingFields, snap.Notification.Message)
	s.Equal(notification.Error, snap.Notification.Severity)

	s.advance(settleDelay)
	s.Len(s.ledger.Transactions(), 5)
	s.Equal("1516.45 VES", s.snap().TotalBalance.String())
}

func (s *AppTestSuite) TestCancelConfirmHasNoSideEffects() {
	s.login()
	s.goTo(session.SendPayment)
	s.Require().NoError(s.app.AutoFill(s.ctx, account.ChannelNFC))
	_, err := s.app.RequestConfirmation(s.ctx)
	s.Require().NoError(err)
	before := s.snap()

	s.Require().NoError(s.app.CancelConfirm(s.ctx))
	after := s.snap()
	s.Nil(after.Confirmation)
	s.Equal(before.Draft, after.Draft)
	s.Equal(before.Screen, after.Screen)
	s.Equal(before.Transactions, after.Transactions)

	_, err = s.app.ConfirmSend(s.ctx)
	s.ErrorIs(err, app.ErrNoPendingConfirmation)
	s.advance(settleDelay)
	s.Len(s.ledger.Transactions(), 5)
}

func (s *AppTestSuite) TestDraftDiscardedOnNavigation() {
	s.login()
	s.goTo(session.SendPayment)
	s.Require().NoError(s.app.SelectContact(s.ctx, "Ana López"))
	snap := s.snap()
	s.Equal("04147654321", snap.Draft.Phone)
	s.Equal("Mercantil", snap.Draft.Bank)
	s.Empty(snap.Draft.AmountText)

	s.goTo(session.Dashboard)
	s.goTo(session.SendPayment)
	s.Empty(s.snap().Draft.Phone)
}

func (s *AppTestSuite) TestDraftEditing() {
	s.login()
	s.ErrorIs(s.app.AutoFill(s.ctx, account.ChannelNFC), app.ErrWrongScreen)

	s.goTo(session.SendPayment)
	s.Require().NoError(s.app.AutoFill(s.ctx, account.ChannelQR))
	snap := s.snap()
	s.Equal(account.ChannelQR, snap.Draft.Channel)
	s.Equal("150.00", snap.Draft.AmountText)

	s.Require().NoError(s.app.SelectChannel(s.ctx, account.ChannelManual))
	snap = s.snap()
	s.Equal(account.ChannelManual, snap.Draft.Channel)
	s.Empty(snap.Draft.Phone)

	s.ErrorIs(s.app.AutoFill(s.ctx, account.ChannelManual), account.ErrInvalidChannel)

	s.Require().NoError(s.app.SelectContact(s.ctx, "Juan Pérez"))
	s.Require().NoError(s.app.SelectContact(s.ctx, "Nadie"))
	s.Empty(s.snap().Draft.Phone)
}

func (s *AppTestSuite) TestReceivePayment() {
	s.login()
	s.goTo(session.ReceivePayment)

	_, err := s.app.ActivateReceiveMode(s.ctx, "", "")
	s.ErrorIs(err, payment.ErrValidation)
	snap := s.snap()
	s.Nil(snap.Charge)
	s.Require().NotNil(snap.Notification)
	s.Equal(payment.MsgMissingChargeAmount, snap.Notification.Message)

	charge, err := s.app.ActivateReceiveMode(s.ctx, "150.00", "Cobro")
	s.Require().NoError(err)
	var payload map[string]any
	s.Require().NoError(json.Unmarshal([]byte(charge.QRPayload), &payload))
	s.Equal("04167890123", payload["receiverPhone"])
	s.Equal("COMPAGO Bank", payload["receiverBank"])
	s.Equal("Cobro", payload["concept"])

	req, err := s.app.SimulateIncomingPayment(s.ctx)
	s.Require().NoError(err)
	s.Equal("Provincial", req.AccountID)
	snap = s.snap()
	s.Nil(snap.Charge)
	s.Equal(session.Dashboard, snap.Screen)
	s.Equal(notification.MsgConfirmingReceipt, snap.Notification.Message)

	s.advance(settleDelay)
	snap = s.snap()
	s.Equal("250.50 VES", s.balance("Provincial"))
	head := snap.Transactions[0]
	s.Equal(account.DirectionInbound, head.Direction)
	s.Equal(fixtures.IncomingCounterparty, head.Counterparty)
	s.Equal(notification.MsgPaymentReceived, snap.Notification.Message)
}

func (s *AppTestSuite) TestReceiveModeLifecycle() {
	s.login()
	s.ErrorIs(s.app.CancelReceiveMode(s.ctx), app.ErrReceiveModeInactive)
	_, err := s.app.SimulateIncomingPayment(s.ctx)
	s.ErrorIs(err, app.ErrReceiveModeInactive)

	s.goTo(session.ReceivePayment)
	_, err = s.app.ActivateReceiveMode(s.ctx, "20", "")
	s.Require().NoError(err)
	s.Require().NoError(s.app.CancelReceiveMode(s.ctx))
	s.Nil(s.snap().Charge)

	_, err = s.app.ActivateReceiveMode(s.ctx, "20", "")
	s.Require().NoError(err)
	s.goTo(session.Profile)
	s.Nil(s.snap().Charge, "leaving the receive screen deactivates the charge")
}

func (s *AppTestSuite) TestHistoryFilter() {
	s.login()
	s.Require().NoError(s.app.SetHistoryFilter(s.ctx, account.FilterOutbound))
	snap := s.snap()
	s.Require().Len(snap.History, 3)
	s.Equal("t001", snap.History[0].ID)
	s.Equal("t003", snap.History[1].ID)
	s.Equal("t005", snap.History[2].ID)
	s.Len(snap.Transactions, 5)
}

func (s *AppTestSuite) TestConcurrentSendsCannotOverdraw() {
	s.login()
	for range 2 {
		s.goTo(session.SendPayment)
		phone, bank, amount := "04121234567", "Banesco", "300"
		s.Require().NoError(s.app.UpdateDraft(s.ctx, payment.DraftPatch{
			Phone: &phone, Bank: &bank, AmountText: &amount,
		}))
		_, err := s.app.RequestConfirmation(s.ctx)
		s.Require().NoError(err)
		_, err = s.app.ConfirmSend(s.ctx)
		s.Require().NoError(err, "the advisory check passes while both are pending")
	}
	s.Equal(2, s.app.PendingSettlements())

	s.advance(settleDelay)
	s.Equal("225.75 VES", s.balance("Banesco"))
	s.Len(s.ledger.Transactions(), 6)
	snap := s.snap()
	s.Require().NotNil(snap.Notification)
	s.Equal(notification.Error, snap.Notification.Severity)
}

func (s *AppTestSuite) TestInsufficientFundsRejectedAtSubmit() {
	s.login()
	s.goTo(session.SendPayment)
	phone, bank, amount := "04121234567", "Provincial", "500"
	s.Require().NoError(s.app.UpdateDraft(s.ctx, payment.DraftPatch{Phone: &phone, Bank: &bank, AmountText: &amount}))
	_, err := s.app.RequestConfirmation(s.ctx)
	s.Require().NoError(err)

	_, err = s.app.ConfirmSend(s.ctx)
	s.ErrorIs(err, ledger.ErrInsufficientFunds)
	snap := s.snap()
	s.Equal(session.SendPayment, snap.Screen)
	s.Zero(snap.PendingSettlements)
	s.Equal("100.50 VES", s.balance("Provincial"))
	s.Contains(snap.Notification.Message, notification.MsgInsufficientFunds)
}

func (s *AppTestSuite) TestOverdraftParityMode() {
	_ = s.app.Close()
	cfg := testConfig()
	cfg.Payment.SettlementMode = "fixed"
	s.build(cfg, ledger.WithOverdraft(true))

	s.login()
	s.goTo(session.SendPayment)
	phone, bank, amount := "04121234567", "Mercantil", "1000"
	s.Require().NoError(s.app.UpdateDraft(s.ctx, payment.DraftPatch{Phone: &phone, Bank: &bank, AmountText: &amount}))
	_, err := s.app.RequestConfirmation(s.ctx)
	s.Require().NoError(err)
	_, err = s.app.ConfirmSend(s.ctx)
	s.Require().NoError(err)

	s.advance(settleDelay)
	s.Equal("-474.25 VES", s.balance("Banesco"))
	s.Equal("890.20 VES", s.balance("Mercantil"))
}

func (s *AppTestSuite) TestCloseDiscardsPendingSettlements() {
	s.login()
	s.goTo(session.SendPayment)
	s.Require().NoError(s.app.AutoFill(s.ctx, account.ChannelNFC))
	_, err := s.app.RequestConfirmation(s.ctx)
	s.Require().NoError(err)
	_, err = s.app.ConfirmSend(s.ctx)
	s.Require().NoError(err)

	s.Require().NoError(s.app.Close())
	s.Require().NoError(s.app.Close())
	s.clock.Advance(settleDelay)

	s.Equal("525.75 VES", s.balance("Banesco"))
	s.Zero(s.app.PendingSettlements())
	_, err = s.app.Snapshot(s.ctx)
	s.ErrorIs(err, dispatch.ErrClosed)
}

func (s *AppTestSuite) TestStateChangedPublished() {
	s.login()
	s.goTo(session.SendPayment)
	s.Require().NoError(s.app.AutoFill(s.ctx, account.ChannelNFC))
	_, err := s.app.RequestConfirmation(s.ctx)
	s.Require().NoError(err)
	_, err = s.app.ConfirmSend(s.ctx)
	s.Require().NoError(err)
	s.advance(settleDelay)

	s.mu.Lock()
	defer s.mu.Unlock()
	causes := make([]string, 0, len(s.changes))
	var settled *app.StateChanged
	for i, c := range s.changes {
		causes = append(causes, c.Cause)
		if c.Cause == events.EventTypePaymentSettled.String() {
			settled = &s.changes[i]
		}
	}
	s.Equal([]string{"login", "navigate", "auto_fill", "request_confirmation", "confirm_send"}, causes[:5])
	s.Require().NotNil(settled)
	s.Equal("1431.45 VES", settled.Snapshot.TotalBalance.String())
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}
