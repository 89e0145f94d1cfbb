package fixtures_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amirasaad/compago/internal/fixtures"
	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	seed := fixtures.Default()

	require.Len(t, seed.Accounts, 3)
	assert.Equal(t, "Banesco", seed.Accounts[0].ID)
	assert.Equal(t, "525.75 VES", seed.Accounts[0].Balance.String())
	assert.Equal(t, "890.20 VES", seed.Accounts[1].Balance.String())
	assert.Equal(t, "100.50 VES", seed.Accounts[2].Balance.String())
	assert.Equal(t, "💳", seed.Accounts[2].Icon)

	require.Len(t, seed.Transactions, 5)
	first := seed.Transactions[0]
	assert.Equal(t, "t001", first.ID)
	assert.Equal(t, account.DirectionOutbound, first.Direction)
	assert.Equal(t, "50.00 VES", first.Amount.String())
	assert.Equal(t, "María G.", first.Counterparty)
	assert.Equal(t, account.ChannelNFC, first.Channel)
	assert.Equal(t, "2025-01-04", first.OccurredOn.Format("2006-01-02"))
	assert.Equal(t, account.ChannelContact, seed.Transactions[4].Channel)
	assert.Equal(t, "t005", seed.Transactions[4].ID)

	require.Len(t, seed.Contacts, 3)
	assert.Equal(t, "Juan Pérez", seed.Contacts[0].Name)
	assert.Equal(t, "V-12345678", seed.Contacts[0].LegalID)
}

func TestLoad_OverrideDirectory(t *testing.T) {
	dir := t.TempDir()
	csvContent := "id,balance,currency,icon,label\nBNC,10.00,VES,🏦,BNC\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "accounts.csv"), []byte(csvContent), 0o600))

	seed, err := fixtures.Load(dir)
	require.NoError(t, err)
	require.Len(t, seed.Accounts, 1)
	assert.Equal(t, "BNC", seed.Accounts[0].ID)
	assert.Len(t, seed.Transactions, 5, "missing files fall back to the embedded seed")
}

func TestLoad_Malformed(t *testing.T) {
	tests := map[string]string{
		"short header": "id,balance\nA,1\n",
		"bad amount":   "id,balance,currency,icon,label\nA,abc,VES,x,A\n",
		"short row":    "id,balance,currency,icon,label\nA,1\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "accounts.csv"), []byte(content), 0o600))
			_, err := fixtures.Load(dir)
			assert.ErrorIs(t, err, fixtures.ErrInvalidSeed)
		})
	}
}

func TestPresets(t *testing.T) {
	nfc := fixtures.Presets[account.ChannelNFC]
	assert.Equal(t, "04129876543", nfc.Phone)
	assert.Equal(t, "85.00", nfc.Amount)
	qr := fixtures.Presets[account.ChannelQR]
	assert.Equal(t, "Mercantil", qr.Bank)
	assert.Equal(t, "CH", fixtures.Profile.Initials())
}
