package game

import "github.com/samdwyer/sonarmaze/internal/world"

// Action is the kind of a player intent.
type Action int

const (
	// ActionNone means no input arrived this tick.
	ActionNone Action = iota
	// ActionMove steps the player one cell in Intent.Dir.
	ActionMove
	// ActionPing spends one ping on a sonar sweep.
	ActionPing
	// ActionRevealAll permanently reveals the whole level (debug).
	ActionRevealAll
	// ActionConfirm starts a run from the menu or an end screen.
	ActionConfirm
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionMove:
		return "move"
	case ActionPing:
		return "ping"
	case ActionRevealAll:
		return "reveal_all"
	case ActionConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// Intent is one discrete input delivered to the state machine per tick.
type Intent struct {
	Action Action
	Dir    world.Direction // Only meaningful for ActionMove
}

// None is the empty intent.
func None() Intent { return Intent{Action: ActionNone} }

// Move returns a movement intent.
func Move(dir world.Direction) Intent { return Intent{Action: ActionMove, Dir: dir} }

// Ping returns a sonar ping intent.
func Ping() Intent { return Intent{Action: ActionPing} }

// RevealAll returns the debug reveal intent.
func RevealAll() Intent { return Intent{Action: ActionRevealAll} }

// Confirm returns the confirm intent.
func Confirm() Intent { return Intent{Action: ActionConfirm} }

// normalize maps out-of-domain intents to None. Malformed input is dropped,
// not reported.
func (in Intent) normalize() Intent {
	switch in.Action {
	case ActionMove:
		if !in.Dir.IsValid() {
			return None()
		}
		return in
	case ActionPing, ActionRevealAll, ActionConfirm:
		return Intent{Action: in.Action}
	default:
		return None()
	}
}
