package ui

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/sonarmaze/internal/game"
	"github.com/samdwyer/sonarmaze/internal/gamedata"
)

// minEcho keeps a fading echo from dimming into invisibility before the
// fade gate drops it.
const minEcho = 0.25

var titleColor = gamedata.MustParseHexColor("#E8C547")

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen  *Screen
	palette gamedata.Palette
	text    *Text
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette gamedata.Palette, text *Text) *Renderer {
	return &Renderer{
		screen:  screen,
		palette: palette,
		text:    text,
	}
}

// Render draws one frame of the view.
func (r *Renderer) Render(v game.View) {
	r.screen.Clear()

	switch v.Phase {
	case game.PhaseMenu:
		r.renderOverlay(r.text.Get("TITLE"), r.text.Get("MENU_HINT"), r.text.Get("CONTROLS"))
	case game.PhaseGameOver:
		r.renderOverlay(r.text.Get("GAME_OVER"), fmt.Sprintf(r.text.Get("GAME_OVER_HINT"), v.Depth))
	case game.PhaseVictory:
		r.renderOverlay(r.text.Get("VICTORY"), fmt.Sprintf(r.text.Get("VICTORY_HINT"), v.MaxDepth))
	case game.PhasePlaying:
		r.renderLevel(v)
	}

	r.screen.Show()
}

// renderLevel draws revealed tiles, the player and the status line.
func (r *Renderer) renderLevel(v game.View) {
	for y := 0; y < v.Height; y++ {
		for x := 0; x < v.Width; x++ {
			cell := v.CellAt(x, y)
			if !cell.Visible {
				continue
			}
			style := r.palette.Lookup(cell.Kind.String())
			color := gamedata.Dim(style.TCellColor(), max(cell.Echo, minEcho))
			r.screen.SetContent(x, y, style.GlyphRune(), tcell.StyleDefault.Foreground(color))
		}
	}

	player := r.palette.Lookup("player")
	playerStyle := tcell.StyleDefault.
		Foreground(player.TCellColor()).
		Bold(true)
	r.screen.SetContent(v.Player.X, v.Player.Y, player.GlyphRune(), playerStyle)

	// Below the map, or on the last row when the terminal is too short.
	_, h := r.screen.Size()
	status := fmt.Sprintf(r.text.Get("STATUS"), v.Depth, v.MaxDepth, v.PingsLeft)
	r.RenderMessage(status, max(0, min(v.Height, h-1)))
}

// renderOverlay centers a title and hint lines on an otherwise empty screen.
func (r *Renderer) renderOverlay(title string, lines ...string) {
	w, h := r.screen.Size()
	y := h/2 - (len(lines)+2)/2

	titleStyle := tcell.StyleDefault.Foreground(titleColor).Bold(true)
	r.screen.DrawText(centered(title, w), y, title, titleStyle)

	hintStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, line := range lines {
		r.screen.DrawText(centered(line, w), y+2+i, line, hintStyle)
	}
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.screen.DrawText(0, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

func centered(s string, width int) int {
	return max(0, (width-utf8.RuneCountInString(s))/2)
}
