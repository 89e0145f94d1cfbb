// Package session implements the screen state machine of the wallet.
package session

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotAuthenticated is returned when a protected screen is requested without a session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidTransition is returned for transitions the state machine forbids.
	ErrInvalidTransition = errors.New("invalid screen transition")
	// ErrUnknownScreen is returned by ParseScreen.
	ErrUnknownScreen = errors.New("unknown screen")
)

// Screen is one view of the wallet.
type Screen string

// Screens.
const (
	Login          Screen = "login"
	Dashboard      Screen = "dashboard"
	SendPayment    Screen = "sendPayment"
	ReceivePayment Screen = "receivePayment"
	History        Screen = "history"
	Profile        Screen = "profile"
)

// Screens lists every screen reachable after login, in tab order.
var Screens = []Screen{Dashboard, SendPayment, ReceivePayment, History, Profile}

func (s Screen) String() string { return string(s) }

// ParseScreen matches names case-insensitively and accepts a few aliases.
func ParseScreen(name string) (Screen, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "login":
		return Login, nil
	case "dashboard", "home", "inicio":
		return Dashboard, nil
	case "sendpayment", "send", "enviar":
		return SendPayment, nil
	case "receivepayment", "receive", "recibir":
		return ReceivePayment, nil
	case "history", "historial":
		return History, nil
	case "profile", "perfil":
		return Profile, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
}

// Transition describes an accepted navigation so the owner can clean up.
type Transition struct {
	From Screen
	To   Screen
}

// LeftSend reports whether the send form must be discarded.
func (t Transition) LeftSend() bool { return t.From == SendPayment && t.To != SendPayment }

// LeftReceive reports whether an active charge must be deactivated.
func (t Transition) LeftReceive() bool {
	return t.From == ReceivePayment && t.To != ReceivePayment
}

// Navigator tracks the active screen. It has no history stack; going back means
// navigating to Dashboard. It is not safe for concurrent use.
type Navigator struct {
	active Screen
}

// NewNavigator starts on Dashboard, which is shown once the user logs in.
func NewNavigator() *Navigator {
	return &Navigator{active: Dashboard}
}

// Current returns Login while unauthenticated, otherwise the active screen.
func (n *Navigator) Current(authenticated bool) Screen {
	if !authenticated {
		return Login
	}
	return n.active
}

// Navigate moves to target.
func (n *Navigator) Navigate(target Screen, authenticated bool) (Transition, error) {
	from := n.Current(authenticated)
	switch {
	case target == Login && authenticated:
		return Transition{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, target)
	case target == Login:
		return Transition{From: Login, To: Login}, nil
	case !authenticated:
		return Transition{}, fmt.Errorf("%w: %s", ErrNotAuthenticated, target)
	}
	if !isKnown(target) {
		return Transition{}, fmt.Errorf("%w: %q", ErrUnknownScreen, target)
	}
	n.active = target
	return Transition{From: from, To: target}, nil
}

// Reset returns to Dashboard. Used on login and logout.
func (n *Navigator) Reset() Transition {
	t := Transition{From: n.active, To: Dashboard}
	n.active = Dashboard
	return t
}

func isKnown(s Screen) bool {
	for _, known := range Screens {
		if known == s {
			return true
		}
	}
	return false
}
