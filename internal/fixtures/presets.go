package fixtures

import (
	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/payment"
	"github.com/amirasaad/compago/pkg/domain/user"
)

// Profile is the simulated wallet owner.
var Profile = user.Profile{
	Name:    "Carlos Hernández",
	Phone:   "0412-3456789",
	LegalID: "V-12.345.678",
	Avatar:  "CH",
}

// Presets are what an NFC approach or a QR scan fills into the send form.
var Presets = map[account.Channel]payment.Preset{
	account.ChannelNFC: {
		Phone:   "04129876543",
		LegalID: "V-19876543",
		Bank:    "Banesco",
		Amount:  "85.00",
		Memo:    "Almuerzo",
	},
	account.ChannelQR: {
		Phone:   "04141122334",
		LegalID: "J-20123456",
		Bank:    "Mercantil",
		Amount:  "150.00",
		Memo:    "Compra en tienda",
	},
}

// Incoming payments simulated from receive mode come from this payer.
const (
	IncomingCounterparty = "Cliente Simulador"
	IncomingChannel      = account.ChannelNFC
)
