package session

// LoginInput is the request body of the login endpoint.
type LoginInput struct {
	Pin string `json:"pin" validate:"required"`
}

// NavigateInput names the target screen.
type NavigateInput struct {
	Screen string `json:"screen" validate:"required"`
}
