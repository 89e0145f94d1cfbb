package notification

import (
	"time"
)

// Severity drives how a notification is rendered.
type Severity string

// Severity constants.
const (
	Info    Severity = "info"
	Success Severity = "success"
	Error   Severity = "error"
)

// Notification is a transient user-facing message. At most one is active at a time.
type Notification struct {
	ID        uint64 // generation that produced it
	Message   string
	Severity  Severity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// User-facing messages of the payment workflow.
const (
	MsgProcessingPayment = "Procesando pago..."
	MsgPaymentSent       = "¡Pago enviado con éxito!"
	MsgConfirmingReceipt = "Confirmando recepción de pago..."
	MsgPaymentReceived   = "¡Pago recibido con éxito!"
	MsgInvalidPin        = "PIN incorrecto. Intente de nuevo."
	MsgPaymentFailed     = "No se pudo completar el pago"
	MsgInsufficientFunds = "Saldo insuficiente en la cuenta"
)
