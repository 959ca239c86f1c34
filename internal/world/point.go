package world

import "fmt"

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Add returns p offset by d.
func (p Point) Add(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// DistSq returns the squared Euclidean distance between p and q.
func (p Point) DistSq(q Point) int {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is one of the four cardinal moves.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every valid direction, in the order the generator draws them.
var Directions = [...]Direction{Left, Right, Up, Down}

// IsValid returns true for the four cardinal directions.
func (d Direction) IsValid() bool {
	return d >= Up && d <= Right
}

// Delta returns the x and y offsets for the direction. Screen y grows downward.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}
