package session

import (
	"github.com/nikolayk812/storefront/internal/domain"
)

// State is either anonymous or holds exactly one authenticated identity.
type State struct {
	Identity      domain.Identity
	Authenticated bool
}

func Anonymous() State {
	return State{}
}

func Authenticated(identity domain.Identity) State {
	return State{Identity: identity, Authenticated: true}
}

type ActionKind int

const (
	ActionSignedIn ActionKind = iota + 1
	ActionSignedOut
	ActionProfileUpdated
)

func (k ActionKind) String() string {
	switch k {
	case ActionSignedIn:
		return "signed_in"
	case ActionSignedOut:
		return "signed_out"
	case ActionProfileUpdated:
		return "profile_updated"
	default:
		return "unknown"
	}
}

type Action struct {
	Kind     ActionKind
	Identity domain.Identity      // ActionSignedIn
	Update   domain.ProfileUpdate // ActionProfileUpdated
}

func SignedIn(identity domain.Identity) Action {
	return Action{Kind: ActionSignedIn, Identity: identity}
}

func SignedOut() Action {
	return Action{Kind: ActionSignedOut}
}

func ProfileUpdated(update domain.ProfileUpdate) Action {
	return Action{Kind: ActionProfileUpdated, Update: update}
}

// Reduce returns the session state that follows action. Signing in replaces
// any active identity; profile updates of an anonymous session are ignored.
func Reduce(state State, action Action) State {
	switch action.Kind {
	case ActionSignedIn:
		return Authenticated(action.Identity)
	case ActionSignedOut:
		return Anonymous()
	case ActionProfileUpdated:
		if !state.Authenticated {
			return state
		}
		return Authenticated(action.Update.Apply(state.Identity))
	default:
		return state
	}
}
