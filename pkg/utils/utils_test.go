package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPin(t *testing.T) {
	pin := "1234"
	hashed, err := HashPin(pin, bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEmpty(t, hashed)
	assert.NotEqual(t, pin, hashed)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestHashPin_CostFallback(t *testing.T) {
	hashed, err := HashPin("1234", 1)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestCheckPinHash(t *testing.T) {
	hashed, _ := HashPin("1234", bcrypt.MinCost)

	// Test with correct PIN
	assert.True(t, CheckPinHash("1234", hashed))

	// Test with incorrect PIN
	assert.False(t, CheckPinHash("4321", hashed))
	assert.False(t, CheckPinHash("", hashed))
}

func TestIsPin(t *testing.T) {
	assert.True(t, IsPin("1234"))
	assert.True(t, IsPin("0000"))

	assert.False(t, IsPin("123"))
	assert.False(t, IsPin("12345"))
	assert.False(t, IsPin("12a4"))
	assert.False(t, IsPin(""))
}
