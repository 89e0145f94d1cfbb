package events

import (
	"github.com/amirasaad/compago/pkg/domain/notification"
)

// AuthenticationFailed is emitted when the PIN check fails.
type AuthenticationFailed struct {
	FlowEvent
	Reason string
}

// ValidationFailed is emitted when a view event carried invalid input.
type ValidationFailed struct {
	FlowEvent
	Fields  []string
	Message string
}

// NotificationChanged is emitted whenever the active notification is replaced,
// expires or is dismissed. Notification is nil when the slot became empty.
type NotificationChanged struct {
	FlowEvent
	Notification *notification.Notification
}

func (e *AuthenticationFailed) Type() string { return EventTypeAuthenticationFailed.String() }
func (e *ValidationFailed) Type() string     { return EventTypeValidationFailed.String() }
func (e *NotificationChanged) Type() string  { return EventTypeNotificationChanged.String() }
