package events

import (
	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/payment"
	"github.com/amirasaad/compago/pkg/money"
)

// OutboundPaymentRequested is emitted once a send intent passed validation.
type OutboundPaymentRequested struct {
	FlowEvent
	Intent    payment.Intent
	AccountID string // ledger account that will be debited
}

// InboundPaymentRequested is emitted when an incoming payment is announced.
type InboundPaymentRequested struct {
	FlowEvent
	Amount       money.Money
	Counterparty string
	Channel      account.Channel
	Memo         string
	AccountID    string // ledger account that will be credited
}

// PaymentSettled is emitted after the ledger recorded the movement.
type PaymentSettled struct {
	FlowEvent
	Transaction account.Transaction
	Balance     money.Money // balance of the settled account afterwards
}

// PaymentFailed is emitted when settlement was rejected. The ledger is unchanged.
type PaymentFailed struct {
	FlowEvent
	Direction account.Direction
	AccountID string
	Amount    money.Money
	Reason    string
	Err       error `json:"-"`
}

func (e *OutboundPaymentRequested) Type() string {
	return EventTypeOutboundPaymentRequested.String()
}
func (e *InboundPaymentRequested) Type() string { return EventTypeInboundPaymentRequested.String() }
func (e *PaymentSettled) Type() string          { return EventTypePaymentSettled.String() }
func (e *PaymentFailed) Type() string           { return EventTypePaymentFailed.String() }
