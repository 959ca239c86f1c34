// Package world provides the cavern grid, its generator and the sonar
// visibility engine.
package world

// TileKind is the semantic kind of a single map cell.
type TileKind uint8

const (
	// Wall is impassable and blocks line of sight.
	Wall TileKind = iota
	// Floor is open, walkable ground.
	Floor
	// Exit leads to the next depth. Exactly one per level.
	Exit
	// Pickup grants one extra ping when walked over.
	Pickup
)

// String returns a human-readable kind name.
func (k TileKind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Floor:
		return "floor"
	case Exit:
		return "exit"
	case Pickup:
		return "pickup"
	default:
		return "unknown"
	}
}

// Glyph returns the kind's display character.
func (k TileKind) Glyph() rune {
	switch k {
	case Wall:
		return '#'
	case Floor:
		return '.'
	case Exit:
		return '>'
	case Pickup:
		return '*'
	default:
		return '?'
	}
}

// IsPassable returns true if the player can stand on the kind.
func (k TileKind) IsPassable() bool {
	return k != Wall
}

// IsOpaque returns true if the kind blocks sonar.
func (k TileKind) IsOpaque() bool {
	return k == Wall
}

// Tile is one grid cell: its kind and when a ping last touched it.
type Tile struct {
	Kind     TileKind
	LastSeen Stamp
}

// Visible reports whether the tile passes the fade gate at frame now.
func (t Tile) Visible(now int) bool {
	return t.LastSeen.Visible(now)
}
