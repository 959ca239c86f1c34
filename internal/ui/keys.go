package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/sonarmaze/internal/game"
	"github.com/samdwyer/sonarmaze/internal/world"
)

// Bindings maps key events to game intents.
type Bindings struct {
	// Debug enables the reveal-all key.
	Debug bool
}

// Intent returns the intent for a key event and whether the key asks to
// quit. Unbound keys map to game.None().
func (b Bindings) Intent(ev *tcell.EventKey) (in game.Intent, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.None(), true
	case tcell.KeyUp:
		return game.Move(world.Up), false
	case tcell.KeyDown:
		return game.Move(world.Down), false
	case tcell.KeyLeft:
		return game.Move(world.Left), false
	case tcell.KeyRight:
		return game.Move(world.Right), false
	case tcell.KeyEnter:
		return game.Confirm(), false
	case tcell.KeyF1:
		return b.revealAll(), false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return game.None(), true
		case 'w', 'W':
			return game.Move(world.Up), false
		case 's', 'S':
			return game.Move(world.Down), false
		case 'a', 'A':
			return game.Move(world.Left), false
		case 'd', 'D':
			return game.Move(world.Right), false
		case ' ', 'p', 'P':
			return game.Ping(), false
		case '`':
			return b.revealAll(), false
		}
	}
	return game.None(), false
}

func (b Bindings) revealAll() game.Intent {
	if !b.Debug {
		return game.None()
	}
	return game.RevealAll()
}
