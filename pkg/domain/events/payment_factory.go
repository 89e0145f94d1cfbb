package events

import (
	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/payment"
	"github.com/amirasaad/compago/pkg/money"
)

// InboundOpt configures an InboundPaymentRequested.
type InboundOpt func(*InboundPaymentRequested)

// WithInboundMemo sets the concept of the incoming payment.
func WithInboundMemo(memo string) InboundOpt {
	return func(e *InboundPaymentRequested) { e.Memo = memo }
}

// WithInboundFlow continues an existing workflow instead of starting one.
func WithInboundFlow(fe FlowEvent) InboundOpt {
	return func(e *InboundPaymentRequested) { e.FlowEvent = fe }
}

// NewOutboundPaymentRequested starts an outbound workflow.
func NewOutboundPaymentRequested(intent payment.Intent, accountID string) *OutboundPaymentRequested {
	return &OutboundPaymentRequested{
		FlowEvent: NewFlowEvent(),
		Intent:    intent,
		AccountID: accountID,
	}
}

// NewInboundPaymentRequested starts an inbound workflow.
func NewInboundPaymentRequested(
	amount money.Money,
	counterparty string,
	channel account.Channel,
	accountID string,
	opts ...InboundOpt,
) *InboundPaymentRequested {
	e := &InboundPaymentRequested{
		FlowEvent:    NewFlowEvent(),
		Amount:       amount,
		Counterparty: counterparty,
		Channel:      channel,
		AccountID:    accountID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewPaymentSettled follows up on a request in the same workflow.
func NewPaymentSettled(fe FlowEvent, tx account.Transaction, balance money.Money) *PaymentSettled {
	return &PaymentSettled{
		FlowEvent:   fe.Next(),
		Transaction: tx,
		Balance:     balance,
	}
}

// NewPaymentFailed follows up on a request in the same workflow.
func NewPaymentFailed(
	fe FlowEvent,
	direction account.Direction,
	accountID string,
	amount money.Money,
	err error,
) *PaymentFailed {
	return &PaymentFailed{
		FlowEvent: fe.Next(),
		Direction: direction,
		AccountID: accountID,
		Amount:    amount,
		Reason:    err.Error(),
		Err:       err,
	}
}
