package money

import "errors"

// Common money package errors
var (
	// ErrMismatchedCurrencies is returned when performing operations on money with
	// different currencies
	ErrMismatchedCurrencies = errors.New("mismatched currencies")

	// ErrInvalidAmount is returned when an amount cannot be parsed.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidDecimals is returned when an amount has more decimal places
	// than the currency allows.
	ErrInvalidDecimals = errors.New("amount has more decimal places than allowed by the currency")

	// ErrInvalidCurrency is returned for malformed currency codes.
	ErrInvalidCurrency = errors.New("invalid currency code")
)
