// Package payment holds the send/receive value types: the editable Draft, the
// validated Intent, the confirmation Summary and the receive-mode Charge.
package payment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/money"
	"github.com/go-playground/validator/v10"
)

// ErrValidation is the sentinel every *ValidationError unwraps to.
var ErrValidation = errors.New("validation failed")

const (
	// MsgMissingFields is shown when a send form is incomplete.
	MsgMissingFields = "Por favor, complete todos los campos requeridos (Teléfono, Banco, Monto)."
	// MsgMissingChargeAmount is shown when receive mode is activated without an amount.
	MsgMissingChargeAmount = "Por favor, ingrese el monto a cobrar."
	// MsgInvalidAmount is shown when the amount is not a positive number.
	MsgInvalidAmount = "El monto debe ser un número mayor a cero."
	// MsgInvalidChannel is shown when the payment method is not one of the wallet channels.
	MsgInvalidChannel = "Seleccione un método de pago válido (NFC, QR, Manual o Contacto)."
)

// ValidationError lists the fields that failed and the user-facing message.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s [%s]", e.Message, strings.Join(e.Fields, ", "))
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

var validate = validator.New(validator.WithRequiredStructEnabled())

// validationError converts validator output into a *ValidationError.
func validationError(err error, message string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields, Message: message}
}

// parseAmount turns raw text into a strictly positive amount.
func parseAmount(text string, code money.Code) (money.Money, error) {
	amount, err := money.Parse(text, code)
	if err != nil || !amount.IsPositive() {
		return money.Money{}, &ValidationError{Fields: []string{"Amount"}, Message: MsgInvalidAmount}
	}
	return amount, nil
}

// ValidateChannel rejects anything outside account.Channels.
func ValidateChannel(c account.Channel) error {
	if !c.IsValid() {
		return &ValidationError{Fields: []string{"Channel"}, Message: MsgInvalidChannel}
	}
	return nil
}

// Intent is a validated outbound payment request.
type Intent struct {
	Phone   string `validate:"required"`
	LegalID string
	Bank    string `validate:"required"`
	Amount  money.Money
	Memo    string
	Channel account.Channel
}

// Validate checks phone, bank, a positive amount and the channel.
func (i Intent) Validate() error {
	if err := validate.Struct(i); err != nil {
		return validationError(err, MsgMissingFields)
	}
	if !i.Amount.IsPositive() {
		return &ValidationError{Fields: []string{"Amount"}, Message: MsgInvalidAmount}
	}
	return ValidateChannel(i.Channel)
}

// Counterparty is the label recorded on the outbound transaction.
func (i Intent) Counterparty() string {
	return account.Counterparty(i.Phone, i.LegalID)
}

// Summary is what the user confirms before an intent is submitted.
type Summary struct {
	Amount       money.Money
	Counterparty string
	Phone        string
	LegalID      string
	Bank         string
	Channel      account.Channel
	Memo         string
}

// Summarize is a pure read of the intent.
func Summarize(i Intent) Summary {
	return Summary{
		Amount:       i.Amount,
		Counterparty: i.Counterparty(),
		Phone:        i.Phone,
		LegalID:      i.LegalID,
		Bank:         i.Bank,
		Channel:      i.Channel,
		Memo:         i.Memo,
	}
}

// Intent rebuilds the intent the summary was made from.
func (s Summary) Intent() Intent {
	return Intent{
		Phone:   s.Phone,
		LegalID: s.LegalID,
		Bank:    s.Bank,
		Amount:  s.Amount,
		Memo:    s.Memo,
		Channel: s.Channel,
	}
}
