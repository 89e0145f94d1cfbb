package money_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/amirasaad/compago/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a new Money instance for testing
func mustParse(t *testing.T, text string, code money.Code) money.Money {
	t.Helper()
	m, err := money.Parse(text, code)
	require.NoError(t, err, "failed to create money for test")
	return m
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		code     money.Code
		expected string
		wantErr  error
	}{
		{"plain integer", "85", money.VES, "85.00 VES", nil},
		{"dot decimals", "525.75", money.VES, "525.75 VES", nil},
		{"comma decimals", "890,20", money.VES, "890.20 VES", nil},
		{"surrounding spaces", "  100.5 ", money.VES, "100.50 VES", nil},
		{"default currency", "1", "", "1.00 VES", nil},
		{"empty", "", money.VES, "", money.ErrInvalidAmount},
		{"garbage", "abc", money.VES, "", money.ErrInvalidAmount},
		{"too many decimals", "10.005", money.VES, "", money.ErrInvalidDecimals},
		{"invalid currency", "10", money.Code("bolivar"), "", money.ErrInvalidCurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := money.Parse(tt.text, tt.code)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m.String())
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	ves525 := mustParse(t, "525.75", money.VES)
	ves85 := mustParse(t, "85.00", money.VES)
	usd10 := mustParse(t, "10", money.USD)

	t.Run("Subtract same currency", func(t *testing.T) {
		result, err := ves525.Subtract(ves85)
		require.NoError(t, err)
		assert.Equal(t, "440.75 VES", result.String())
	})

	t.Run("Add same currency", func(t *testing.T) {
		result, err := mustParse(t, "100.50", money.VES).Add(mustParse(t, "150", money.VES))
		require.NoError(t, err)
		assert.True(t, result.Equals(mustParse(t, "250.50", money.VES)))
	})

	t.Run("Subtract can go negative", func(t *testing.T) {
		result, err := ves85.Subtract(ves525)
		require.NoError(t, err)
		assert.True(t, result.IsNegative())
	})

	t.Run("Add different currency", func(t *testing.T) {
		_, err := ves85.Add(usd10)
		assert.ErrorIs(t, err, money.ErrMismatchedCurrencies)
	})

	t.Run("Compare different currency", func(t *testing.T) {
		_, err := ves85.LessThan(usd10)
		assert.ErrorIs(t, err, money.ErrMismatchedCurrencies)
	})

	t.Run("LessThan", func(t *testing.T) {
		less, err := ves85.LessThan(ves525)
		require.NoError(t, err)
		assert.True(t, less)
	})
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, mustParse(t, "0.01", money.VES).IsPositive())
	assert.True(t, money.Zero(money.VES).IsZero())
	assert.False(t, money.Zero(money.VES).IsPositive())
	assert.False(t, mustParse(t, "1", money.VES).Equals(mustParse(t, "1", money.USD)))
}

func TestMoney_Format(t *testing.T) {
	assert.Equal(t, "Bs. 525,75", mustParse(t, "525.75", money.VES).Format())
	assert.Equal(t, "Bs. 85,00", mustParse(t, "85", money.VES).Format())
	assert.Equal(t, "Bs. -12,50", mustParse(t, "-12.5", money.VES).Format())
	assert.Equal(t, "$ 0.05", mustParse(t, "0.05", money.USD).Format())

	// 2^53+1 has no exact float64 form.
	big := mustParse(t, "9007199254740993.21", money.VES).Format()
	assert.True(t, strings.HasPrefix(big, "Bs. 9"), big)
	assert.True(t, strings.HasSuffix(big, ",21"), big)
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, big)
	assert.Equal(t, "900719925474099321", digits)
}

func TestMoney_JSON(t *testing.T) {
	m := mustParse(t, "440.75", money.VES)
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"440.75","currency":"VES"}`, string(data))

	var decoded money.Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestNew_RejectsExtraDecimals(t *testing.T) {
	_, err := money.New(decimal.RequireFromString("1.234"), money.VES)
	assert.ErrorIs(t, err, money.ErrInvalidDecimals)
}

func TestMust_Panics(t *testing.T) {
	assert.Panics(t, func() { money.Must("not-a-number", money.VES) })
}
