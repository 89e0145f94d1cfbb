package money

// Code represents a currency code (e.g., "VES", "USD").
type Code string

// Common currency codes
const (
	VES Code = "VES" // Venezuelan Bolívar
	USD Code = "USD" // US Dollar
	EUR Code = "EUR" // Euro
)
