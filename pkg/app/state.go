package app

import (
	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/notification"
	"github.com/amirasaad/compago/pkg/domain/payment"
	"github.com/amirasaad/compago/pkg/domain/session"
	"github.com/amirasaad/compago/pkg/domain/user"
	"github.com/amirasaad/compago/pkg/money"
)

// SessionState is the transient state of the single wallet session. The ledger and the
// notification slot live in their own components; everything else is here.
type SessionState struct {
	Authenticated bool
	Navigator     *session.Navigator
	Draft         payment.Draft
	Confirmation  *payment.Summary
	Charge        *payment.Charge
	HistoryFilter account.Filter
}

func newSessionState() SessionState {
	return SessionState{
		Navigator:     session.NewNavigator(),
		Draft:         payment.NewDraft(account.ChannelNFC),
		HistoryFilter: account.FilterAll,
	}
}

// Screen is the screen the view should render.
func (s *SessionState) Screen() session.Screen {
	return s.Navigator.Current(s.Authenticated)
}

// discardSend drops the send form and any pending confirmation.
func (s *SessionState) discardSend() {
	s.Draft = payment.NewDraft(s.Draft.Channel)
	s.Confirmation = nil
}

// reset clears everything a logout throws away.
func (s *SessionState) reset() {
	s.Authenticated = false
	s.Navigator.Reset()
	s.Draft = payment.NewDraft(account.ChannelNFC)
	s.Confirmation = nil
	s.Charge = nil
	s.HistoryFilter = account.FilterAll
}

// Snapshot is a read-only copy of what the view layer renders.
type Snapshot struct {
	Authenticated      bool
	Screen             session.Screen
	Accounts           []account.Account
	TotalBalance       money.Money
	Transactions       []account.Transaction
	Recent             []account.Transaction
	History            []account.Transaction
	HistoryFilter      account.Filter
	Notification       *notification.Notification
	Draft              payment.Draft
	Confirmation       *payment.Summary
	Charge             *payment.Charge
	Contacts           []payment.Contact
	Profile            user.Profile
	Currency           money.Code
	PendingSettlements int
}

// StateChanged is published to observers after every change of the session.
type StateChanged struct {
	Cause    string
	Snapshot Snapshot
}

// Observer receives StateChanged publications on the dispatch loop. It must return
// quickly and must not call back into the App.
type Observer func(StateChanged)

// Subscribe registers fn and returns a function that removes it.
func (a *App) Subscribe(fn Observer) (unsubscribe func()) {
	a.mu.Lock()
	id := a.nextObs
	a.nextObs++
	a.observers[id] = fn
	a.mu.Unlock()
	return func() {
		a.mu.Lock()
		delete(a.observers, id)
		a.mu.Unlock()
	}
}

// snapshot builds a Snapshot. Runs on the loop.
func (a *App) snapshot() Snapshot {
	st := &a.state
	l := a.Deps.Ledger
	snap := Snapshot{
		Authenticated:      st.Authenticated,
		Screen:             st.Screen(),
		Accounts:           l.Accounts(),
		TotalBalance:       l.TotalBalance(),
		Transactions:       l.Transactions(),
		Recent:             l.Recent(a.Config.Dashboard.RecentLimit),
		History:            l.Filter(st.HistoryFilter),
		HistoryFilter:      st.HistoryFilter,
		Draft:              st.Draft,
		Contacts:           append([]payment.Contact(nil), a.Deps.Contacts...),
		Profile:            a.Deps.Profile,
		Currency:           a.currency,
		PendingSettlements: a.settlements.Pending(),
	}
	if n, ok := a.Notifications.Current(); ok {
		snap.Notification = &n
	}
	if st.Confirmation != nil {
		c := *st.Confirmation
		snap.Confirmation = &c
	}
	if st.Charge != nil {
		c := *st.Charge
		snap.Charge = &c
	}
	return snap
}

// changed publishes a StateChanged unless a view event is running; the view event
// publishes once when it finishes. Runs on the loop.
func (a *App) changed(cause string) {
	if a.inCommand {
		return
	}
	a.publish(cause)
}

func (a *App) publish(cause string) {
	a.mu.Lock()
	observers := make([]Observer, 0, len(a.observers))
	for _, fn := range a.observers {
		observers = append(observers, fn)
	}
	a.mu.Unlock()
	if len(observers) == 0 {
		return
	}
	evt := StateChanged{Cause: cause, Snapshot: a.snapshot()}
	for _, fn := range observers {
		fn(evt)
	}
}
