package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	// Payment events
	EventTypeOutboundPaymentRequested EventType = "Payment.OutboundRequested"
	EventTypeInboundPaymentRequested  EventType = "Payment.InboundRequested"
	EventTypePaymentSettled           EventType = "Payment.Settled"
	EventTypePaymentFailed            EventType = "Payment.Failed"

	// Session events
	EventTypeAuthenticationFailed EventType = "Session.AuthenticationFailed"
	EventTypeValidationFailed     EventType = "Session.ValidationFailed"

	// Notification events
	EventTypeNotificationChanged EventType = "Notification.Changed"
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	return string(et)
}
