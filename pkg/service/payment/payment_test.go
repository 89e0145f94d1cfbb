package payment_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/compago/internal/fixtures"
	"github.com/amirasaad/compago/internal/fixtures/mocks"
	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/events"
	domain "github.com/amirasaad/compago/pkg/domain/payment"
	"github.com/amirasaad/compago/pkg/ledger"
	"github.com/amirasaad/compago/pkg/money"
	"github.com/amirasaad/compago/pkg/service/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	seed := fixtures.Default()
	l, err := ledger.New(seed.Accounts, seed.Transactions)
	require.NoError(t, err)
	return l
}

func newService(t *testing.T, bus *mocks.Bus, mode payment.SettlementMode) (*payment.Service, *ledger.Ledger) {
	t.Helper()
	l := newLedger(t)
	svc := payment.New(bus, l, payment.Config{
		Mode:           mode,
		SourceAccount:  "Banesco",
		ReceiveAccount: "Provincial",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, l
}

func intent(bank, amount string) domain.Intent {
	return domain.Intent{
		Phone:   "04129876543",
		LegalID: "V-19876543",
		Bank:    bank,
		Amount:  money.Must(amount, money.VES),
		Memo:    "Almuerzo",
		Channel: account.ChannelNFC,
	}
}

func TestParseSettlementMode(t *testing.T) {
	m, err := payment.ParseSettlementMode("")
	require.NoError(t, err)
	assert.Equal(t, payment.ModeIntent, m)

	m, err = payment.ParseSettlementMode("FIXED")
	require.NoError(t, err)
	assert.Equal(t, payment.ModeFixed, m)

	_, err = payment.ParseSettlementMode("random")
	assert.ErrorIs(t, err, payment.ErrUnknownSettlementMode)
}

func TestSettlementAccount(t *testing.T) {
	bus := mocks.NewBus(t)

	svc, _ := newService(t, bus, payment.ModeIntent)
	assert.Equal(t, "Mercantil", svc.SettlementAccount(intent("mercantil", "10")))
	assert.Equal(t, "Banesco", svc.SettlementAccount(intent("Venezuela", "10")))

	fixed, _ := newService(t, bus, payment.ModeFixed)
	assert.Equal(t, "Banesco", fixed.SettlementAccount(intent("Mercantil", "10")))
	assert.Equal(t, money.VES, fixed.Currency())
}

func TestSubmitOutbound_EmitsRequested(t *testing.T) {
	bus := mocks.NewBus(t)
	svc, l := newService(t, bus, payment.ModeIntent)

	var emitted *events.OutboundPaymentRequested
	bus.EXPECT().
		Emit(mock.Anything, mock.AnythingOfType("*events.OutboundPaymentRequested")).
		Run(func(_ context.Context, e events.Event) {
			emitted = e.(*events.OutboundPaymentRequested)
		}).
		Return(nil).
		Once()

	evt, err := svc.SubmitOutbound(context.Background(), intent("Banesco", "85.00"))
	require.NoError(t, err)
	require.NotNil(t, evt)
	assert.Same(t, emitted, evt)
	assert.Equal(t, "Banesco", evt.AccountID)
	assert.Equal(t, evt.ID, evt.CorrelationID)

	acc, err := l.Account("Banesco")
	require.NoError(t, err)
	assert.Equal(t, "525.75 VES", acc.Balance.String(), "submit never touches the ledger")
	assert.Len(t, l.Transactions(), 5)
}

func TestSubmitOutbound_ValidationFailure(t *testing.T) {
	bus := mocks.NewBus(t)
	svc, _ := newService(t, bus, payment.ModeIntent)

	bus.EXPECT().
		Emit(mock.Anything, mock.MatchedBy(func(e events.Event) bool {
			vf, ok := e.(*events.ValidationFailed)
			return ok && vf.Message == domain.MsgMissingFields
		})).
		Return(nil).
		Once()

	in := intent("", "85")
	in.Phone = ""
	evt, err := svc.SubmitOutbound(context.Background(), in)
	assert.Nil(t, evt)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSubmitOutbound_InsufficientFunds(t *testing.T) {
	bus := mocks.NewBus(t)
	svc, l := newService(t, bus, payment.ModeFixed)

	bus.EXPECT().
		Emit(mock.Anything, mock.MatchedBy(func(e events.Event) bool {
			pf, ok := e.(*events.PaymentFailed)
			return ok && pf.AccountID == "Banesco" && errors.Is(pf.Err, ledger.ErrInsufficientFunds)
		})).
		Return(nil).
		Once()

	evt, err := svc.SubmitOutbound(context.Background(), intent("Banesco", "10000"))
	assert.Nil(t, evt)
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	assert.Equal(t, "1516.45 VES", l.TotalBalance().String())
}

func TestSubmitOutbound_EmitError(t *testing.T) {
	bus := mocks.NewBus(t)
	svc, _ := newService(t, bus, payment.ModeIntent)
	boom := errors.New("boom")
	bus.EXPECT().Emit(mock.Anything, mock.Anything).Return(boom).Once()

	evt, err := svc.SubmitOutbound(context.Background(), intent("Banesco", "1"))
	assert.NotNil(t, evt)
	assert.ErrorIs(t, err, boom)
}

func TestSubmitInbound(t *testing.T) {
	bus := mocks.NewBus(t)
	svc, _ := newService(t, bus, payment.ModeIntent)

	bus.EXPECT().
		Emit(mock.Anything, mock.AnythingOfType("*events.InboundPaymentRequested")).
		Return(nil).
		Once()

	evt, err := svc.SubmitInbound(
		context.Background(),
		money.Must("150", money.VES),
		fixtures.IncomingCounterparty,
		fixtures.IncomingChannel,
		"Cobro",
	)
	require.NoError(t, err)
	assert.Equal(t, "Provincial", evt.AccountID)
	assert.Equal(t, "Cobro", evt.Memo)
	assert.Equal(t, fixtures.IncomingCounterparty, evt.Counterparty)
}

func TestSubmitInbound_Rejected(t *testing.T) {
	bus := mocks.NewBus(t)
	l := newLedger(t)
	svc := payment.New(bus, l, payment.Config{ReceiveAccount: "Venezuela"}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.SubmitInbound(context.Background(), money.Must("10", money.VES), "x", account.ChannelNFC, "")
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	bus.EXPECT().
		Emit(mock.Anything, mock.AnythingOfType("*events.ValidationFailed")).
		Return(nil).
		Once()
	_, err = svc.SubmitInbound(context.Background(), money.Zero(money.VES), "x", account.ChannelNFC, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReportValidation_IgnoresOtherErrors(t *testing.T) {
	bus := mocks.NewBus(t)
	svc, _ := newService(t, bus, payment.ModeIntent)

	svc.ReportValidation(context.Background(), errors.New("not a validation error"))
	bus.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything)
}

func TestSubmitOutbound_InvalidChannel(t *testing.T) {
	for _, ch := range []account.Channel{"Bitcoin", ""} {
		t.Run(string(ch), func(t *testing.T) {
			bus := mocks.NewBus(t)
			svc, l := newService(t, bus, payment.ModeIntent)

			bus.EXPECT().
				Emit(mock.Anything, mock.MatchedBy(func(e events.Event) bool {
					vf, ok := e.(*events.ValidationFailed)
					return ok && vf.Message == domain.MsgInvalidChannel
				})).
				Return(nil).
				Once()

			in := intent("Banesco", "10")
			in.Channel = ch
			evt, err := svc.SubmitOutbound(context.Background(), in)
			assert.Nil(t, evt)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Len(t, l.Transactions(), 5)
		})
	}
}

func TestSubmitInbound_InvalidChannel(t *testing.T) {
	bus := mocks.NewBus(t)
	svc, l := newService(t, bus, payment.ModeIntent)

	bus.EXPECT().
		Emit(mock.Anything, mock.MatchedBy(func(e events.Event) bool {
			vf, ok := e.(*events.ValidationFailed)
			return ok && vf.Message == domain.MsgInvalidChannel
		})).
		Return(nil).
		Once()

	evt, err := svc.SubmitInbound(
		context.Background(),
		money.Must("150", money.VES),
		fixtures.IncomingCounterparty,
		account.Channel("Bitcoin"),
		"",
	)
	assert.Nil(t, evt)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, l.Transactions(), 5)
}
