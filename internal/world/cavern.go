package world

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/sonarmaze/internal/telemetry"
)

const (
	// Default cavern dimensions
	DefaultWidth  = 80
	DefaultHeight = 50

	// DefaultFloorRatio is the share of cells the walk carves before stopping.
	DefaultFloorRatio = 0.40
	// DefaultPickups is the number of ping pickups scattered per level.
	DefaultPickups = 3
)

var (
	// ErrGridTooSmall means the clamped interior cannot hold the floor target.
	ErrGridTooSmall = errors.New("grid too small for cavern")
	// ErrBadFloorRatio means the floor ratio is outside (0, 1).
	ErrBadFloorRatio = errors.New("floor ratio must be between 0 and 1")
)

// Rand is the random stream the generator draws from. *math/rand.Rand
// satisfies it; pass a seeded one for reproducible levels.
type Rand interface {
	Intn(n int) int
}

// CavernParams controls cavern generation.
type CavernParams struct {
	Width      int
	Height     int
	FloorRatio float64
	Pickups    int
}

// DefaultCavernParams returns the standard 80x50 cavern settings.
func DefaultCavernParams() CavernParams {
	return CavernParams{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		FloorRatio: DefaultFloorRatio,
		Pickups:    DefaultPickups,
	}
}

// floorTarget is the number of cells the walk must carve, rounded up so the
// carved share never falls below FloorRatio. The epsilon absorbs float error
// in products like 100*0.4.
func (p CavernParams) floorTarget() int {
	return max(1, int(math.Ceil(float64(p.Width*p.Height)*p.FloorRatio-1e-9)))
}

// Validate checks that a walk with these params terminates.
func (p CavernParams) Validate() error {
	if p.FloorRatio <= 0 || p.FloorRatio >= 1 || math.IsNaN(p.FloorRatio) {
		return fmt.Errorf("%w: %v", ErrBadFloorRatio, p.FloorRatio)
	}
	if p.Width < 3 || p.Height < 3 {
		return fmt.Errorf("%w: %dx%d has no interior", ErrGridTooSmall, p.Width, p.Height)
	}
	if interior := (p.Width - 2) * (p.Height - 2); interior < p.floorTarget() {
		return fmt.Errorf("%w: %dx%d interior holds %d cells, need %d",
			ErrGridTooSmall, p.Width, p.Height, interior, p.floorTarget())
	}
	return nil
}

// Level is a freshly generated cavern with its spawn and exit.
type Level struct {
	Grid    *Grid
	Spawn   Point
	Exit    Point
	Pickups []Point
}

// Generate carves a cavern with a drunkard's walk from the grid center,
// places the exit on the floor cell farthest from the spawn and scatters
// pickups. The outer ring always stays Wall.
func Generate(ctx context.Context, params CavernParams, rng Rand) (*Level, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "cavern.generate")
	defer span.End()

	startTime := time.Now()

	grid := NewGrid(params.Width, params.Height)
	spawn := Point{X: params.Width / 2, Y: params.Height / 2}

	steps := carve(grid, spawn, params.floorTarget(), rng)
	exit := placeExit(grid, spawn)
	pickups := placePickups(grid, spawn, params.Pickups, rng)

	span.SetAttributes(
		attribute.Int("cavern.width", params.Width),
		attribute.Int("cavern.height", params.Height),
		attribute.Int("cavern.walk_steps", steps),
		attribute.Int("cavern.floor_target", params.floorTarget()),
		attribute.Float64("cavern.exit_distance", math.Sqrt(float64(spawn.DistSq(exit)))),
		attribute.Int("cavern.pickups", len(pickups)),
		attribute.Int64("cavern.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return &Level{
		Grid:    grid,
		Spawn:   spawn,
		Exit:    exit,
		Pickups: pickups,
	}, nil
}

// carve walks a cursor from start, turning walls to floor until target cells
// are open. Returns the number of steps taken.
func carve(grid *Grid, start Point, target int, rng Rand) int {
	cursor := start
	carved, steps := 0, 0
	for {
		if grid.Kind(cursor) == Wall {
			grid.SetKind(cursor, Floor)
			carved++
		}
		if carved >= target {
			return steps
		}

		cursor = cursor.Add(Directions[rng.Intn(len(Directions))])
		cursor.X = clamp(cursor.X, 1, grid.Width()-2)
		cursor.Y = clamp(cursor.Y, 1, grid.Height()-2)
		steps++
	}
}

// placeExit turns the floor cell farthest from spawn into the exit. Ties go
// to the first cell in scan order.
func placeExit(grid *Grid, spawn Point) Point {
	best, bestDist := spawn, -1
	grid.ForEach(func(p Point, t Tile) {
		if t.Kind != Floor {
			return
		}
		if d := spawn.DistSq(p); d > bestDist {
			best, bestDist = p, d
		}
	})
	grid.SetKind(best, Exit)
	return best
}

// placePickups converts up to n random floor cells, never the spawn, into
// pickups.
func placePickups(grid *Grid, spawn Point, n int, rng Rand) []Point {
	var candidates []Point
	grid.ForEach(func(p Point, t Tile) {
		if t.Kind == Floor && p != spawn {
			candidates = append(candidates, p)
		}
	})
	n = min(n, len(candidates))
	if n <= 0 {
		return nil
	}

	chosen := mapset.New[Point]()
	placed := make([]Point, 0, n)
	for chosen.Size() < n {
		p := candidates[rng.Intn(len(candidates))]
		if chosen.Has(p) {
			continue
		}
		chosen.Put(p)
		grid.SetKind(p, Pickup)
		placed = append(placed, p)
	}
	return placed
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
