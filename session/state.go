package session

import (
	"github.com/surveydesk/go-console/api"
	"github.com/surveydesk/go-console/users"
)

// StateKind tags the session state. After initialization exactly one of
// logged out, two-factor pending, or logged in holds at any time; logged in
// and logged out are the only stable rest states.
type StateKind string

const (
	StateUninitialized    StateKind = "uninitialized"
	StateRestoring        StateKind = "restoring"
	StateLoggedOut        StateKind = "logged_out"
	StateTwoFactorPending StateKind = "two_factor_pending"
	StateLoggedIn         StateKind = "logged_in"
)

// State is a snapshot of the session. User is set only when Kind is
// StateLoggedIn; TwoFactor only when Kind is StateTwoFactorPending. Entering
// either state clears the other, so the two are mutually exclusive by
// construction.
type State struct {
	Kind      StateKind
	User      *users.User
	TwoFactor *api.TwoFactorChallenge
}

// IsLoggedIn reports whether a valid credential has been established.
func (s State) IsLoggedIn() bool {
	return s.Kind == StateLoggedIn
}

// IsTwoFactorPending reports whether a login attempt awaits out-of-band
// approval.
func (s State) IsTwoFactorPending() bool {
	return s.Kind == StateTwoFactorPending
}

func loggedOut() State {
	return State{Kind: StateLoggedOut}
}

func loggedIn(user *users.User) State {
	return State{Kind: StateLoggedIn, User: user}
}

func twoFactorPending(challenge *api.TwoFactorChallenge) State {
	return State{Kind: StateTwoFactorPending, TwoFactor: challenge}
}
