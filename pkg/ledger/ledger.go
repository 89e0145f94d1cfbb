// Package ledger keeps the linked accounts and the transaction log of a session.
// It is the only place balance invariants are enforced.
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/money"
)

var (
	// ErrInsufficientFunds is returned when a debit would leave a negative balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAccountNotFound is returned for an unknown account ID.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateAccount is returned when two seed accounts share an ID.
	ErrDuplicateAccount = errors.New("duplicate account")
)

// Store is the read/write surface of the ledger used by the payment workflow.
type Store interface {
	Account(id string) (account.Account, error)
	Accounts() []account.Account
	TotalBalance() money.Money
	Transactions() []account.Transaction
	Filter(f account.Filter) []account.Transaction
	Recent(n int) []account.Transaction
	CanDebit(accountID string, amount money.Money) error
	Credit(accountID string, amount money.Money) (account.Account, error)
	Debit(accountID string, amount money.Money) (account.Account, error)
	AppendTransaction(tx account.Transaction) error
	Settle(tx account.Transaction, accountID string) (account.Account, error)
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithOverdraft lets debits take a balance below zero.
func WithOverdraft(allow bool) Option {
	return func(l *Ledger) { l.allowOverdraft = allow }
}

// WithCurrency sets the wallet currency. Defaults to money.DefaultCode.
func WithCurrency(code money.Code) Option {
	return func(l *Ledger) { l.currency = code }
}

// Ledger is an in-memory Store. Accounts keep their seed order and the transaction
// log is kept most recent first.
type Ledger struct {
	mu             sync.RWMutex
	accounts       []account.Account
	index          map[string]int
	txs            []account.Transaction
	allowOverdraft bool
	currency       money.Code
}

// New creates a ledger from seed accounts and history. The history is expected most
// recent first.
func New(accounts []account.Account, history []account.Transaction, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		index:    make(map[string]int, len(accounts)),
		currency: money.DefaultCode,
	}
	for _, opt := range opts {
		opt(l)
	}
	for _, acc := range accounts {
		if _, dup := l.index[acc.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, acc.ID)
		}
		if acc.Balance.CurrencyCode() != l.currency {
			return nil, fmt.Errorf("account %s: %w", acc.ID, money.ErrMismatchedCurrencies)
		}
		l.index[acc.ID] = len(l.accounts)
		l.accounts = append(l.accounts, acc)
	}
	for _, tx := range history {
		if err := l.checkTransaction(tx); err != nil {
			return nil, fmt.Errorf("transaction %s: %w", tx.ID, err)
		}
	}
	l.txs = append([]account.Transaction(nil), history...)
	return l, nil
}

// AllowOverdraft reports whether debits may go below zero.
func (l *Ledger) AllowOverdraft() bool { return l.allowOverdraft }

// Currency returns the wallet currency.
func (l *Ledger) Currency() money.Code { return l.currency }

// Account returns a copy of one account.
func (l *Ledger) Account(id string) (account.Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.index[id]
	if !ok {
		return account.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	return l.accounts[i], nil
}

// Accounts returns a copy of all accounts in seed order.
func (l *Ledger) Accounts() []account.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]account.Account(nil), l.accounts...)
}

// TotalBalance sums every account.
func (l *Ledger) TotalBalance() money.Money {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total := money.Zero(l.currency)
	for _, acc := range l.accounts {
		// currencies are checked on the way in
		total, _ = total.Add(acc.Balance)
	}
	return total
}

// Transactions returns a copy of the log, most recent first.
func (l *Ledger) Transactions() []account.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]account.Transaction(nil), l.txs...)
}

// Filter returns the entries matching f in log order.
func (l *Ledger) Filter(f account.Filter) []account.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return f.Apply(l.txs)
}

// Recent returns at most n entries from the head of the log.
func (l *Ledger) Recent(n int) []account.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n < 0 {
		n = 0
	}
	if n > len(l.txs) {
		n = len(l.txs)
	}
	return append([]account.Transaction(nil), l.txs[:n]...)
}

// CanDebit reports whether amount could be debited from the account right now.
func (l *Ledger) CanDebit(accountID string, amount money.Money) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, err := l.debited(accountID, amount)
	return err
}

// Credit adds amount to an account.
func (l *Ledger) Credit(accountID string, amount money.Money) (account.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	next, err := l.credited(accountID, amount)
	if err != nil {
		return account.Account{}, err
	}
	l.accounts[l.index[accountID]] = next
	return next, nil
}

// Debit subtracts amount from an account.
func (l *Ledger) Debit(accountID string, amount money.Money) (account.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	next, err := l.debited(accountID, amount)
	if err != nil {
		return account.Account{}, err
	}
	l.accounts[l.index[accountID]] = next
	return next, nil
}

// AppendTransaction prepends tx to the log without touching balances.
func (l *Ledger) AppendTransaction(tx account.Transaction) error {
	if err := l.checkTransaction(tx); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prepend(tx)
	return nil
}

// Settle records tx and applies it to the account as one step: an outbound entry
// debits, an inbound entry credits. Either both happen or neither does.
func (l *Ledger) Settle(tx account.Transaction, accountID string) (account.Account, error) {
	if err := l.checkTransaction(tx); err != nil {
		return account.Account{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	var (
		next account.Account
		err  error
	)
	switch tx.Direction {
	case account.DirectionOutbound:
		next, err = l.debited(accountID, tx.Amount)
	case account.DirectionInbound:
		next, err = l.credited(accountID, tx.Amount)
	}
	if err != nil {
		return account.Account{}, err
	}
	tx.Account = accountID
	l.accounts[l.index[accountID]] = next
	l.prepend(tx)
	return next, nil
}

func (l *Ledger) prepend(tx account.Transaction) {
	l.txs = append(l.txs, account.Transaction{})
	copy(l.txs[1:], l.txs)
	l.txs[0] = tx
}

func (l *Ledger) checkTransaction(tx account.Transaction) error {
	if !tx.Amount.IsPositive() {
		return account.ErrTransactionAmountMustBePositive
	}
	if tx.Amount.CurrencyCode() != l.currency {
		return money.ErrMismatchedCurrencies
	}
	if tx.Direction != account.DirectionOutbound && tx.Direction != account.DirectionInbound {
		return fmt.Errorf("%w: %q", account.ErrInvalidDirection, tx.Direction)
	}
	if !tx.Channel.IsValid() {
		return fmt.Errorf("%w: %q", account.ErrInvalidChannel, tx.Channel)
	}
	return nil
}

// credited computes the account after a credit. Caller holds l.mu.
func (l *Ledger) credited(accountID string, amount money.Money) (account.Account, error) {
	i, ok := l.index[accountID]
	if !ok {
		return account.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	return l.accounts[i].Credit(amount)
}

// debited computes the account after a debit. Caller holds l.mu.
func (l *Ledger) debited(accountID string, amount money.Money) (account.Account, error) {
	i, ok := l.index[accountID]
	if !ok {
		return account.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	next, err := l.accounts[i].Debit(amount)
	if err != nil {
		return account.Account{}, err
	}
	if next.Balance.IsNegative() && !l.allowOverdraft {
		return account.Account{}, fmt.Errorf(
			"%w: %s has %s, needs %s",
			ErrInsufficientFunds,
			accountID,
			l.accounts[i].Balance,
			amount,
		)
	}
	return next, nil
}

var _ Store = (*Ledger)(nil)
