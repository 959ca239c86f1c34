// Package game provides the Sonar Maze state machine and its terminal loop.
package game

import "github.com/samdwyer/sonarmaze/internal/world"

// Phase identifies which top-level state is live.
type Phase int

const (
	// PhaseMenu is the title screen.
	PhaseMenu Phase = iota
	// PhasePlaying is an active level.
	PhasePlaying
	// PhaseGameOver follows running out of pings without finding the exit.
	PhaseGameOver
	// PhaseVictory follows taking the exit on the last depth.
	PhaseVictory
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	case PhaseVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// State is the machine's current top-level state. Exactly one variant is
// live; transitions replace the whole value.
type State interface {
	Phase() Phase
	isState()
}

// MainMenu is the initial state.
type MainMenu struct{}

// GameOver is terminal until the player confirms a restart.
type GameOver struct {
	Depth int // Depth the run ended on
}

// Victory is terminal until the player confirms a restart.
type Victory struct{}

// Playing holds everything a live level owns. A level change builds a new
// Playing rather than mutating this one.
type Playing struct {
	Grid      *world.Grid
	Player    world.Point
	Exit      world.Point
	Frame     int
	PingsLeft int
	Depth     int
}

func (MainMenu) Phase() Phase { return PhaseMenu }
func (GameOver) Phase() Phase { return PhaseGameOver }
func (Victory) Phase() Phase { return PhaseVictory }
func (*Playing) Phase() Phase { return PhasePlaying }
func (MainMenu) isState() {}
func (GameOver) isState() {}
func (Victory) isState() {}
func (*Playing) isState() {}

// ExitFound reports whether a ping has reached the exit this level.
func (p *Playing) ExitFound() bool {
	return p.Grid.At(p.Exit).LastSeen.IsPermanent()
}
