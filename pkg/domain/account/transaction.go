package account

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/amirasaad/compago/pkg/money"
	"github.com/google/uuid"
)

// Direction tells whether money left or entered the wallet.
type Direction string

// Direction constants.
const (
	DirectionOutbound Direction = "outbound"
	DirectionInbound  Direction = "inbound"
)

// Label returns the user-facing name of the direction.
func (d Direction) Label() string {
	switch d {
	case DirectionOutbound:
		return "Envío"
	case DirectionInbound:
		return "Recepción"
	default:
		return string(d)
	}
}

// ParseDirection accepts the canonical names and the Spanish labels.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "outbound", "envío", "envio", "sent":
		return DirectionOutbound, nil
	case "inbound", "recepción", "recepcion", "received":
		return DirectionInbound, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Channel is how a payment was captured.
type Channel string

// Channel constants.
const (
	ChannelNFC     Channel = "NFC"
	ChannelQR      Channel = "QR"
	ChannelManual  Channel = "Manual"
	ChannelContact Channel = "Contacto"
)

// Channels lists the send tabs in display order.
var Channels = []Channel{ChannelNFC, ChannelQR, ChannelManual, ChannelContact}

// IsValid reports whether c is one of Channels.
func (c Channel) IsValid() bool { return slices.Contains(Channels, c) }

// ParseChannel is case insensitive and also accepts "contact".
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nfc":
		return ChannelNFC, nil
	case "qr":
		return ChannelQR, nil
	case "manual":
		return ChannelManual, nil
	case "contacto", "contact":
		return ChannelContact, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidChannel, s)
	}
}

// Transaction is the immutable record of a completed money movement.
// Entries are only ever created after settlement and never change afterwards.
type Transaction struct {
	ID           string
	Direction    Direction
	Amount       money.Money
	Counterparty string
	Channel      Channel
	OccurredOn   time.Time
	Account      string // ledger account it settled against, empty for seeded history
	Memo         string
}

// TransactionOpt configures a Transaction built with NewTransaction.
type TransactionOpt func(*Transaction)

// WithTransactionID overrides the generated ID. Used for seeded history.
func WithTransactionID(id string) TransactionOpt {
	return func(t *Transaction) { t.ID = id }
}

// WithOccurredOn sets the calendar date of the movement.
func WithOccurredOn(d time.Time) TransactionOpt {
	return func(t *Transaction) { t.OccurredOn = DateOf(d) }
}

// WithAccount records the ledger account the movement settled against.
func WithAccount(accountID string) TransactionOpt {
	return func(t *Transaction) { t.Account = accountID }
}

// WithMemo attaches the optional concept.
func WithMemo(memo string) TransactionOpt {
	return func(t *Transaction) { t.Memo = memo }
}

// NewTransaction creates a transaction with a fresh time-ordered ID dated today.
func NewTransaction(
	direction Direction,
	amount money.Money,
	counterparty string,
	channel Channel,
	opts ...TransactionOpt,
) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, ErrTransactionAmountMustBePositive
	}
	if direction != DirectionOutbound && direction != DirectionInbound {
		return Transaction{}, fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return Transaction{}, fmt.Errorf("generate transaction id: %w", err)
	}
	tx := Transaction{
		ID:           id.String(),
		Direction:    direction,
		Amount:       amount,
		Counterparty: counterparty,
		Channel:      channel,
		OccurredOn:   DateOf(time.Now()),
	}
	for _, opt := range opts {
		opt(&tx)
	}
	return tx, nil
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Counterparty renders the outbound counterparty label "phone (id)", or just the
// phone when no legal ID was given.
func Counterparty(phone, legalID string) string {
	phone = strings.TrimSpace(phone)
	legalID = strings.TrimSpace(legalID)
	if legalID == "" {
		return phone
	}
	return fmt.Sprintf("%s (%s)", phone, legalID)
}

// Filter selects which transactions the history view shows.
type Filter string

// Filter constants.
const (
	FilterAll      Filter = "all"
	FilterOutbound Filter = Filter(DirectionOutbound)
	FilterInbound  Filter = Filter(DirectionInbound)
)

// ParseFilter accepts "all"/"todos" or anything ParseDirection understands.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "todos", "todas":
		return FilterAll, nil
	}
	d, err := ParseDirection(s)
	if err != nil {
		return "", err
	}
	return Filter(d), nil
}

// Matches reports whether tx passes the filter.
func (f Filter) Matches(tx Transaction) bool {
	return f == FilterAll || f == "" || Direction(f) == tx.Direction
}

// Apply returns the matching transactions in their original order.
func (f Filter) Apply(txs []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}
