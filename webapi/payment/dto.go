package payment

// ChannelInput selects a payment channel tab.
type ChannelInput struct {
	Channel string `json:"channel" validate:"required"`
}

// ContactInput selects a saved contact by name.
type ContactInput struct {
	Name string `json:"name" validate:"required"`
}

// ReceiveInput activates receive mode. The amount is validated by the domain so
// that a missing or malformed value surfaces as a wallet notification.
type ReceiveInput struct {
	Amount  string `json:"amount"`
	Concept string `json:"concept" validate:"max=140"`
}
