package utils

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// HashPin hashes a PIN using bcrypt with the given cost. Out of range costs fall
// back to bcrypt.DefaultCost.
func HashPin(pin string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	return string(bytes), err
}

// CheckPinHash compares a plain PIN with a bcrypt hash.
func CheckPinHash(pin, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

// IsPin returns true if s is a four digit PIN.
func IsPin(s string) bool {
	return pinPattern.MatchString(s)
}
