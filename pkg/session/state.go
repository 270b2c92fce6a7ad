package session

import "github.com/aussiebroadwan/devconnect/pkg/authsdk"

// Status is where a session is in its lifecycle.
type Status int

const (
	// Idle is the state before the first Bootstrap.
	Idle Status = iota
	Loading
	Authenticated
	Unauthenticated
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of the client session.
type State struct {
	Status  Status
	Account *authsdk.Account

	// Errors are the messages of the last failed attempt.
	Errors []authsdk.ErrorMessage
}

// Loading reports whether a bootstrap, login or registration is pending.
func (s State) Loading() bool { return s.Status == Loading }

// Authenticated reports whether an account is signed in.
func (s State) Authenticated() bool { return s.Status == Authenticated }
