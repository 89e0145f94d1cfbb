package events_test

import (
	"errors"
	"testing"

	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/events"
	"github.com/amirasaad/compago/pkg/domain/payment"
	"github.com/amirasaad/compago/pkg/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEventTypes(t *testing.T) {
	tests := []struct {
		event    events.Event
		expected events.EventType
	}{
		{&events.OutboundPaymentRequested{}, events.EventTypeOutboundPaymentRequested},
		{&events.InboundPaymentRequested{}, events.EventTypeInboundPaymentRequested},
		{&events.PaymentSettled{}, events.EventTypePaymentSettled},
		{&events.PaymentFailed{}, events.EventTypePaymentFailed},
		{&events.AuthenticationFailed{}, events.EventTypeAuthenticationFailed},
		{&events.ValidationFailed{}, events.EventTypeValidationFailed},
		{&events.NotificationChanged{}, events.EventTypeNotificationChanged},
	}
	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected.String(), tt.event.Type())
		})
	}
}

func TestFactories_KeepCorrelation(t *testing.T) {
	intent := payment.Intent{Phone: "0412", Bank: "Banesco", Amount: money.Must("85", money.VES)}
	req := events.NewOutboundPaymentRequested(intent, "Banesco")
	assert.NotEqual(t, uuid.Nil, req.ID)
	assert.Equal(t, req.ID, req.CorrelationID)
	assert.False(t, req.Timestamp.IsZero())

	settled := events.NewPaymentSettled(req.FlowEvent, account.Transaction{ID: "t1"}, money.Zero(money.VES))
	assert.Equal(t, req.CorrelationID, settled.CorrelationID)
	assert.NotEqual(t, req.ID, settled.ID)

	failed := events.NewPaymentFailed(req.FlowEvent, account.DirectionOutbound, "Banesco", intent.Amount, errors.New("boom"))
	assert.Equal(t, req.CorrelationID, failed.CorrelationID)
	assert.Equal(t, "boom", failed.Reason)

	in := events.NewInboundPaymentRequested(
		money.Must("150", money.VES), "Cliente Simulador", account.ChannelNFC, "Provincial",
		events.WithInboundMemo("Venta"),
		events.WithInboundFlow(req.FlowEvent),
	)
	assert.Equal(t, "Venta", in.Memo)
	assert.Equal(t, req.CorrelationID, in.CorrelationID)
}
