package world

import "fmt"

// Grid is a fixed-size map stored in one contiguous row-major buffer.
type Grid struct {
	width  int
	height int
	tiles  []Tile

	exit    Point
	hasExit bool
}

// NewGrid creates a grid of the given size filled with unrevealed walls.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("world: invalid grid size %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether p addresses a cell of the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Index maps p to its buffer offset. Addressing outside the grid is a
// programming error and panics.
func (g *Grid) Index(p Point) int {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("world: %v outside %dx%d grid", p, g.width, g.height))
	}
	return p.Y*g.width + p.X
}

// PointAt is the inverse of Index.
func (g *Grid) PointAt(i int) Point {
	return Point{X: i % g.width, Y: i / g.width}
}

// At returns the tile at p.
func (g *Grid) At(p Point) Tile {
	return g.tiles[g.Index(p)]
}

// Kind returns the kind of the tile at p, treating out-of-bounds as Wall.
func (g *Grid) Kind(p Point) TileKind {
	if !g.InBounds(p) {
		return Wall
	}
	return g.tiles[p.Y*g.width+p.X].Kind
}

// SetKind changes the kind of the tile at p. Setting an Exit moves the exit:
// a previous exit cell reverts to Floor so a grid never holds two.
func (g *Grid) SetKind(p Point, k TileKind) {
	i := g.Index(p)
	if k == Exit {
		if g.hasExit && g.exit != p {
			g.tiles[g.Index(g.exit)].Kind = Floor
		}
		g.exit, g.hasExit = p, true
	} else if g.hasExit && g.exit == p {
		g.hasExit = false
	}
	g.tiles[i].Kind = k
}

// SetStamp records when the tile at p was last revealed.
func (g *Grid) SetStamp(p Point, s Stamp) {
	g.tiles[g.Index(p)].LastSeen = s
}

// Exit returns the exit position, if one has been placed.
func (g *Grid) Exit() (Point, bool) {
	return g.exit, g.hasExit
}

// Count returns the number of tiles of the given kind.
func (g *Grid) Count(k TileKind) int {
	n := 0
	for _, t := range g.tiles {
		if t.Kind == k {
			n++
		}
	}
	return n
}

// ForEach calls fn for every cell in scan order.
func (g *Grid) ForEach(fn func(p Point, t Tile)) {
	for i, t := range g.tiles {
		fn(g.PointAt(i), t)
	}
}
