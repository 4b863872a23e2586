package audit

import (
	"github.com/mailposture/mailposture/internal/services"
)

// State is the lifecycle position of one audit item. Transitions are
// one-directional: pending -> loading -> a terminal state.
type State string

const (
	StatePending  State = "pending"
	StateLoading  State = "loading"
	StateSuccess  State = "success"
	StateNotFound State = "not_found"
	StateInvalid  State = "invalid"
	StateError    State = "error"
	StateTimeout  State = "timeout"
)

// Terminal reports whether s ends the item's lifecycle.
func (s State) Terminal() bool {
	switch s {
	case StateSuccess, StateNotFound, StateInvalid, StateError, StateTimeout:
		return true
	}
	return false
}

// ReleaseState tracks the optional background follow-up of a listed
// item. It never changes the item's primary State.
type ReleaseState string

const (
	ReleaseNone    ReleaseState = ""
	ReleasePending ReleaseState = "pending"
	ReleaseDone    ReleaseState = "done"
	ReleaseFailed  ReleaseState = "failed"
)

// Item is one target moving through the audit lifecycle.
type Item struct {
	ID      int
	Target  string
	State   State
	Result  services.Result
	Err     error
	Release ReleaseState
}
