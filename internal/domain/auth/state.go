package auth

import "fmt"

// State is a step of the credential sign-in lifecycle.
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
	StateExpired        State = "expired"
	StateLoggedOut      State = "logged_out"
)

// Event drives a transition between States.
type Event string

const (
	EventSubmit  Event = "submit"  // credentials sent to the exchange endpoint
	EventGranted Event = "granted" // exchange returned a token and profile
	EventDenied  Event = "denied"  // invalid credentials or any exchange failure
	EventExpire  Event = "expire"  // session passed its expiry
	EventLogout  Event = "logout"  // explicit sign-out
)

var transitions = map[State]map[Event]State{
	StateAnonymous: {
		EventSubmit: StateAuthenticating,
	},
	StateAuthenticating: {
		EventGranted: StateAuthenticated,
		EventDenied:  StateAnonymous,
	},
	StateAuthenticated: {
		EventExpire: StateExpired,
		EventLogout: StateLoggedOut,
	},
	StateExpired: {
		EventSubmit: StateAuthenticating,
		EventLogout: StateLoggedOut,
	},
	StateLoggedOut: {
		EventSubmit: StateAuthenticating,
	},
}

// Next returns the state reached from s on e, or an error for an illegal transition.
func (s State) Next(e Event) (State, error) {
	if next, ok := transitions[s][e]; ok {
		return next, nil
	}
	return s, fmt.Errorf("invalid auth transition: %s on %s", s, e)
}

// SignedIn reports whether s carries a usable session.
func (s State) SignedIn() bool {
	return s == StateAuthenticated
}

// StateOf derives the lifecycle state of a stored session.
func StateOf(sess *Session, expired bool) State {
	switch {
	case sess == nil:
		return StateAnonymous
	case expired:
		return StateExpired
	default:
		return StateAuthenticated
	}
}
