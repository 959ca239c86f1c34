package game

import "github.com/samdwyer/sonarmaze/internal/world"

// Cell is the renderer's view of one tile.
type Cell struct {
	Kind    world.TileKind
	Visible bool    // Passes the fade gate this frame
	Echo    float64 // 1 when freshly pinged or permanent, falling toward 0 as it fades
}

// View is a read-only snapshot of everything the presentation layer needs
// to draw one frame. Outside PhasePlaying only Phase and Depth are set.
type View struct {
	Phase     Phase
	Width     int
	Height    int
	Cells     []Cell // Row-major, Width*Height long
	Player    world.Point
	Depth     int
	MaxDepth  int
	PingsLeft int
	Frame     int
}

// CellAt returns the cell at (x, y).
func (v View) CellAt(x, y int) Cell {
	return v.Cells[y*v.Width+x]
}

// View builds a snapshot of the current state.
func (m *Machine) View() View {
	v := View{
		Phase:    m.state.Phase(),
		MaxDepth: m.cfg.Rules.MaxDepth,
	}

	switch s := m.state.(type) {
	case GameOver:
		v.Depth = s.Depth
	case Victory:
		v.Depth = m.cfg.Rules.MaxDepth
	case *Playing:
		v.Width, v.Height = s.Grid.Width(), s.Grid.Height()
		v.Player = s.Player
		v.Depth = s.Depth
		v.PingsLeft = s.PingsLeft
		v.Frame = s.Frame
		v.Cells = make([]Cell, 0, v.Width*v.Height)
		s.Grid.ForEach(func(_ world.Point, t world.Tile) {
			v.Cells = append(v.Cells, Cell{
				Kind:    t.Kind,
				Visible: t.Visible(s.Frame),
				Echo:    echo(t.LastSeen, s.Frame),
			})
		})
	}
	return v
}

// echo is the remaining brightness of a stamp at frame now.
func echo(s world.Stamp, now int) float64 {
	if s.IsPermanent() {
		return 1
	}
	if !s.Visible(now) {
		return 0
	}
	seen, _ := s.Frame()
	return float64(world.RevealDuration-(now-seen)) / world.RevealDuration
}
