package fixtures

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/payment"
	"github.com/amirasaad/compago/pkg/money"
)

//go:embed data/*.csv
var seedFS embed.FS

const (
	accountsFile     = "accounts.csv"
	transactionsFile = "transactions.csv"
	contactsFile     = "contacts.csv"
)

// ErrInvalidSeed is returned when a seed file is malformed.
var ErrInvalidSeed = errors.New("invalid seed file")

// Seed is the start-of-session data set.
type Seed struct {
	Accounts     []account.Account
	Transactions []account.Transaction
	Contacts     []payment.Contact
}

// Load reads the seed. Files present in dir override the embedded defaults; an empty
// dir uses the embedded data only.
func Load(dir string) (*Seed, error) {
	accounts, err := readFile(dir, accountsFile, 5, parseAccount)
	if err != nil {
		return nil, err
	}
	txs, err := readFile(dir, transactionsFile, 7, parseTransaction)
	if err != nil {
		return nil, err
	}
	contacts, err := readFile(dir, contactsFile, 4, parseContact)
	if err != nil {
		return nil, err
	}
	return &Seed{Accounts: accounts, Transactions: txs, Contacts: contacts}, nil
}

// Default returns the embedded seed. It panics if the embedded files are broken.
func Default() *Seed {
	s, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("fixtures: embedded seed: %v", err))
	}
	return s
}

func open(dir, name string) (io.ReadCloser, error) {
	if dir != "" {
		f, err := os.Open(filepath.Join(dir, name))
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
	}
	return seedFS.Open("data/" + name)
}

func readFile[T any](
	dir, name string,
	columns int,
	parse func(rec []string) (T, error),
) ([]T, error) {
	r, err := open(dir, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var out []T
	for i, rec := range records {
		if i == 0 {
			if len(rec) < columns {
				return nil, fmt.Errorf(
					"%w: %s: expected at least %d columns, got %d",
					ErrInvalidSeed, name, columns, len(rec),
				)
			}
			continue // skip header
		}
		if len(rec) < columns {
			return nil, fmt.Errorf("%w: %s line %d: expected %d columns", ErrInvalidSeed, name, i+1, columns)
		}
		v, err := parse(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %w", ErrInvalidSeed, name, i+1, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// id,balance,currency,icon,label
func parseAccount(rec []string) (account.Account, error) {
	balance, err := money.Parse(rec[1], money.Code(strings.TrimSpace(rec[2])))
	if err != nil {
		return account.Account{}, err
	}
	acc, err := account.New(strings.TrimSpace(rec[0])).
		WithBalance(balance).
		WithIcon(rec[3]).
		WithLabel(rec[4]).
		Build()
	if err != nil {
		return account.Account{}, err
	}
	return *acc, nil
}

// id,direction,amount,currency,counterparty,channel,date
func parseTransaction(rec []string) (account.Transaction, error) {
	direction, err := account.ParseDirection(rec[1])
	if err != nil {
		return account.Transaction{}, err
	}
	amount, err := money.Parse(rec[2], money.Code(strings.TrimSpace(rec[3])))
	if err != nil {
		return account.Transaction{}, err
	}
	channel, err := account.ParseChannel(rec[5])
	if err != nil {
		return account.Transaction{}, err
	}
	date, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(rec[6]), time.Local)
	if err != nil {
		return account.Transaction{}, err
	}
	return account.NewTransaction(
		direction, amount, rec[4], channel,
		account.WithTransactionID(strings.TrimSpace(rec[0])),
		account.WithOccurredOn(date),
	)
}

// name,phone,legal_id,bank
func parseContact(rec []string) (payment.Contact, error) {
	c := payment.Contact{
		Name:    strings.TrimSpace(rec[0]),
		Phone:   strings.TrimSpace(rec[1]),
		LegalID: strings.TrimSpace(rec[2]),
		Bank:    strings.TrimSpace(rec[3]),
	}
	if c.Name == "" || c.Phone == "" {
		return payment.Contact{}, errors.New("contact needs a name and a phone")
	}
	return c, nil
}
