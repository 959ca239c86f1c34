package world

import (
	"context"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/sonarmaze/internal/telemetry"
)

// VisibleSet returns every cell within radius (Euclidean) of origin that has
// a clear line of sight to it. Walls block sight but are themselves visible
// when they end a ray. The origin is always included.
func VisibleSet(grid *Grid, origin Point, radius int) mapset.Set[Point] {
	visible := mapset.New[Point]()
	visible.Put(origin)

	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			p := Point{X: origin.X + dx, Y: origin.Y + dy}
			if !grid.InBounds(p) {
				continue
			}
			if hasLineOfSight(grid, origin, p) {
				visible.Put(p)
			}
		}
	}
	return visible
}

// hasLineOfSight walks a Bresenham line from a to b and reports whether any
// opaque cell lies strictly between them.
func hasLineOfSight(grid *Grid, a, b Point) bool {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	e := dx + dy

	x, y := a.X, a.Y
	for {
		if x == b.X && y == b.Y {
			return true
		}
		if (x != a.X || y != a.Y) && grid.Kind(Point{X: x, Y: y}).IsOpaque() {
			return false
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

// Reveal pings from origin: every visible cell is stamped with frame, except
// the exit, which is stamped Permanent. Permanent stamps are never lowered.
// Returns the number of cells in the visible set.
func Reveal(ctx context.Context, grid *Grid, origin Point, radius, frame int) int {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "sonar.ping")
	defer span.End()

	visible := VisibleSet(grid, origin, radius)
	exitSeen := false
	visible.Each(func(p Point) {
		t := grid.At(p)
		switch {
		case t.Kind == Exit:
			grid.SetStamp(p, Permanent)
			exitSeen = true
		case t.LastSeen.IsPermanent():
		default:
			grid.SetStamp(p, SeenAt(frame))
		}
	})

	span.SetAttributes(
		attribute.Int("ping.x", origin.X),
		attribute.Int("ping.y", origin.Y),
		attribute.Int("ping.radius", radius),
		attribute.Int("ping.frame", frame),
		attribute.Int("ping.visible", visible.Size()),
		attribute.Bool("ping.exit_seen", exitSeen),
	)
	return visible.Size()
}

// RevealAll stamps every cell Permanent, ignoring radius and walls.
func RevealAll(grid *Grid) {
	for i := range grid.tiles {
		grid.tiles[i].LastSeen = Permanent
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
