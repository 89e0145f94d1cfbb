package payment

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/compago/pkg/money"
)

// Receiver identifies the wallet owner in a charge QR code.
type Receiver struct {
	Phone string
	ID    string
	Bank  string
}

// Charge is an active receive-mode request ("cobro").
type Charge struct {
	Amount      money.Money
	Concept     string
	QRPayload   string
	ActivatedAt time.Time
}

type qrPayload struct {
	Amount        json.Number `json:"amount"`
	Concept       string      `json:"concept"`
	ReceiverPhone string      `json:"receiverPhone"`
	ReceiverID    string      `json:"receiverId"`
	ReceiverBank  string      `json:"receiverBank"`
}

// NewCharge validates the amount and encodes the QR payload.
func NewCharge(
	amountText, concept string,
	receiver Receiver,
	code money.Code,
	now time.Time,
) (*Charge, error) {
	if strings.TrimSpace(amountText) == "" {
		return nil, &ValidationError{Fields: []string{"Amount"}, Message: MsgMissingChargeAmount}
	}
	amount, err := parseAmount(amountText, code)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(qrPayload{
		Amount:        json.Number(amount.Amount().String()),
		Concept:       concept,
		ReceiverPhone: receiver.Phone,
		ReceiverID:    receiver.ID,
		ReceiverBank:  receiver.Bank,
	})
	if err != nil {
		return nil, fmt.Errorf("encode charge payload: %w", err)
	}
	return &Charge{
		Amount:      amount,
		Concept:     concept,
		QRPayload:   string(payload),
		ActivatedAt: now,
	}, nil
}
