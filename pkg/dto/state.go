package dto

import (
	"time"

	"github.com/amirasaad/compago/pkg/domain/user"
)

// NotificationRead is the active notification.
type NotificationRead struct {
	ID        uint64    `json:"id"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DraftRead is the send form as typed.
type DraftRead struct {
	Phone           string `json:"phone"`
	LegalID         string `json:"legalId"`
	Bank            string `json:"bank"`
	Amount          string `json:"amount"`
	Memo            string `json:"memo"`
	Channel         string `json:"channel"`
	SelectedContact string `json:"selectedContact,omitempty"`
}

// SummaryRead is the payment awaiting confirmation.
type SummaryRead struct {
	Amount       AmountRead `json:"amount"`
	Counterparty string     `json:"counterparty"`
	Bank         string     `json:"bank"`
	Channel      string     `json:"channel"`
	Memo         string     `json:"memo,omitempty"`
}

// ChargeRead is an active receive-mode request.
type ChargeRead struct {
	Amount      AmountRead `json:"amount"`
	Concept     string     `json:"concept,omitempty"`
	QRPayload   string     `json:"qrPayload"`
	ActivatedAt time.Time  `json:"activatedAt"`
}

// StateRead is the full view state.
type StateRead struct {
	Authenticated      bool              `json:"authenticated"`
	Screen             string            `json:"screen"`
	Accounts           []AccountRead     `json:"accounts"`
	TotalBalance       AmountRead        `json:"totalBalance"`
	Recent             []TransactionRead `json:"recent"`
	History            TransactionList   `json:"history"`
	Notification       *NotificationRead `json:"notification,omitempty"`
	Draft              DraftRead         `json:"draft"`
	Confirmation       *SummaryRead      `json:"confirmation,omitempty"`
	Charge             *ChargeRead       `json:"charge,omitempty"`
	Contacts           []ContactRead     `json:"contacts"`
	Profile            user.Profile      `json:"profile"`
	PendingSettlements int               `json:"pendingSettlements"`
}
