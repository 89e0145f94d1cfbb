package account

import (
	"errors"
	"strings"

	"github.com/amirasaad/compago/pkg/money"
)

var (
	// ErrTransactionAmountMustBePositive is returned when a transaction amount is not positive.
	ErrTransactionAmountMustBePositive = errors.New("transaction amount must be positive")

	// ErrInvalidDirection is returned when a direction or history filter cannot be parsed.
	ErrInvalidDirection = errors.New("invalid transaction direction")

	// ErrInvalidChannel is returned when a payment channel cannot be parsed.
	ErrInvalidChannel = errors.New("invalid payment channel")

	// ErrEmptyAccountID is returned when an account is built without a bank name.
	ErrEmptyAccountID = errors.New("account id is required")
)

// Account is one linked bank balance. The bank name doubles as the identifier and
// is unique within a session.
//
// Invariants:
// - ID is never empty.
// - The balance is a Money value object in the wallet currency.
type Account struct {
	ID      string
	Balance money.Money
	Icon    string
	Label   string
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id      string
	balance money.Money
	icon    string
	label   string
}

// New creates a new Builder with a zero balance in the default currency.
func New(id string) *Builder {
	return &Builder{
		id:      id,
		balance: money.Zero(money.DefaultCode),
		label:   id,
	}
}

// WithBalance sets the opening balance. Used when seeding a session.
func (b *Builder) WithBalance(balance money.Money) *Builder {
	b.balance = balance
	return b
}

// WithIcon sets the display icon.
func (b *Builder) WithIcon(icon string) *Builder {
	b.icon = icon
	return b
}

// WithLabel sets the display label. Defaults to the ID.
func (b *Builder) WithLabel(label string) *Builder {
	b.label = label
	return b
}

// Build validates the account and returns it.
func (b *Builder) Build() (*Account, error) {
	if strings.TrimSpace(b.id) == "" {
		return nil, ErrEmptyAccountID
	}
	return &Account{
		ID:      b.id,
		Balance: b.balance,
		Icon:    b.icon,
		Label:   b.label,
	}, nil
}

// Credit returns a copy of the account with amount added to its balance.
func (a Account) Credit(amount money.Money) (Account, error) {
	if !amount.IsPositive() {
		return a, ErrTransactionAmountMustBePositive
	}
	balance, err := a.Balance.Add(amount)
	if err != nil {
		return a, err
	}
	a.Balance = balance
	return a, nil
}

// Debit returns a copy of the account with amount subtracted from its balance.
// The result may be negative; the ledger decides whether that is allowed.
func (a Account) Debit(amount money.Money) (Account, error) {
	if !amount.IsPositive() {
		return a, ErrTransactionAmountMustBePositive
	}
	balance, err := a.Balance.Subtract(amount)
	if err != nil {
		return a, err
	}
	a.Balance = balance
	return a, nil
}
