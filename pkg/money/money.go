// Package money provides functionality for handling monetary values.
//
// It is a value object that represents a monetary value in a specific currency.
// Invariants:
//   - Amount never carries more decimal places than the currency allows.
//   - Currency code must be valid ISO 4217 (3 uppercase letters).
//   - All arithmetic operations require matching currencies.
package money

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ToCurrency converts a Code to a Currency with default decimals
func (c Code) ToCurrency() Currency {
	switch c {
	case VES:
		return VESCurrency
	case USD:
		return USDCurrency
	case EUR:
		return EURCurrency
	default:
		return Currency{Code: c, Decimals: 2, Symbol: string(c)}
	}
}

// IsValid checks if the currency code is valid
func (c Code) IsValid() bool {
	if len(c) != 3 {
		return false
	}
	return c[0] >= 'A' && c[0] <= 'Z' &&
		c[1] >= 'A' && c[1] <= 'Z' &&
		c[2] >= 'A' && c[2] <= 'Z'
}

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}

// Currency represents a monetary unit with its standard decimal places
// and the symbol used when displaying amounts.
type Currency struct {
	Code     Code
	Decimals int32
	Symbol   string
	Locale   string
}

// String returns the currency code as a string
func (c Currency) String() string { return string(c.Code) }

// Common currency instances
var (
	VESCurrency = Currency{Code: VES, Decimals: 2, Symbol: "Bs.", Locale: "es-VE"}
	USDCurrency = Currency{Code: USD, Decimals: 2, Symbol: "$", Locale: "en-US"}
	EURCurrency = Currency{Code: EUR, Decimals: 2, Symbol: "€", Locale: "es"}
)

// DefaultCode is the currency wallets are denominated in.
const DefaultCode = VES

// Money represents a monetary value in a specific currency.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New creates a Money value from a decimal amount.
// Invariants enforced:
//   - Currency code must be valid.
//   - Amount must not have more decimal places than allowed by the currency.
func New(amount decimal.Decimal, code Code) (Money, error) {
	if code == "" {
		code = DefaultCode
	}
	if !code.IsValid() {
		return Money{}, fmt.Errorf("%w: %s", ErrInvalidCurrency, code)
	}
	c := code.ToCurrency()
	if !amount.Equal(amount.Truncate(c.Decimals)) {
		return Money{}, fmt.Errorf("%w: %s", ErrInvalidDecimals, amount.String())
	}
	return Money{amount: amount, currency: c}, nil
}

// Parse reads a user-entered amount such as "85", "85.00" or "85,00".
// Surrounding whitespace is ignored and a lone comma is treated as the decimal separator.
func Parse(text string, code Code) (Money, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Money{}, ErrInvalidAmount
	}
	if strings.Contains(text, ",") && !strings.Contains(text, ".") {
		text = strings.Replace(text, ",", ".", 1)
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	return New(d, code)
}

// Must is like Parse but panics on error. It is meant for fixtures.
func Must(text string, code Code) Money {
	m, err := Parse(text, code)
	if err != nil {
		panic(fmt.Sprintf("money.Must(%q, %v): %v", text, code, err))
	}
	return m
}

// Zero returns a zero amount in the given currency.
func Zero(code Code) Money {
	if code == "" {
		code = DefaultCode
	}
	return Money{amount: decimal.Zero, currency: code.ToCurrency()}
}

// Amount returns the decimal amount in the main currency unit.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency of the Money object.
func (m Money) Currency() Currency {
	return m.currency
}

// CurrencyCode returns the currency code of the Money object.
func (m Money) CurrencyCode() Code {
	return m.currency.Code
}

// IsSameCurrency checks if both values share a currency.
func (m Money) IsSameCurrency(other Money) bool {
	return m.currency.Code == other.currency.Code
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, fmt.Errorf(
			"%w: cannot add %s and %s",
			ErrMismatchedCurrencies,
			m.currency.Code,
			other.currency.Code,
		)
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns the difference of both amounts.
// The result can be negative if the subtrahend is larger than the minuend.
func (m Money) Subtract(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, fmt.Errorf(
			"%w: cannot subtract %s from %s",
			ErrMismatchedCurrencies,
			other.currency.Code,
			m.currency.Code,
		)
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Cmp compares two amounts of the same currency.
func (m Money) Cmp(other Money) (int, error) {
	if !m.IsSameCurrency(other) {
		return 0, ErrMismatchedCurrencies
	}
	return m.amount.Cmp(other.amount), nil
}

// LessThan reports whether m is strictly less than other.
func (m Money) LessThan(other Money) (bool, error) {
	c, err := m.Cmp(other)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}

// Equals checks currency and amount equality.
func (m Money) Equals(other Money) bool {
	return m.IsSameCurrency(other) && m.amount.Equal(other.amount)
}

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// String returns the amount with the currency's decimal places and its code, e.g. "85.00 VES".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(m.currency.Decimals), m.currency.Code)
}

// Format renders the amount for display in the currency's locale, e.g. "Bs. 525,75".
// The whole part is grouped by the locale printer as an integer and the fraction is
// copied from the decimal, so no digit goes through a float.
func (m Money) Format() string {
	tag, err := language.Parse(m.currency.Locale)
	if err != nil {
		tag = language.Spanish
	}
	p := message.NewPrinter(tag)

	whole, frac, _ := strings.Cut(m.amount.Abs().StringFixed(m.currency.Decimals), ".")
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = p.Sprintf("%v", number.Decimal(n))
	}
	if m.amount.IsNegative() {
		whole = "-" + whole
	}
	if frac == "" {
		return fmt.Sprintf("%s %s", m.currency.Symbol, whole)
	}
	return fmt.Sprintf("%s %s%s%s", m.currency.Symbol, whole, decimalSeparator(p), frac)
}

func decimalSeparator(p *message.Printer) string {
	s := p.Sprintf("%v", number.Decimal(1.5, number.Scale(1)))
	return strings.TrimSuffix(strings.TrimPrefix(s, "1"), "5")
}

// MarshalJSON implements json.Marshaler interface.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"amount":   m.amount.StringFixed(m.currency.Decimals),
		"currency": m.currency.Code,
	})
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (m *Money) UnmarshalJSON(data []byte) error {
	var aux struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	parsed, err := New(aux.Amount, Code(aux.Currency))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
