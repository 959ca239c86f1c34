// Command mapgen generates a cavern and prints it, fully revealed, for
// inspecting seeds and generator settings without starting the game.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/samdwyer/sonarmaze/internal/world"
)

var (
	seed    = flag.Int64("seed", 0, "cavern seed (0 = random)")
	width   = flag.Int("width", world.DefaultWidth, "grid width")
	height  = flag.Int("height", world.DefaultHeight, "grid height")
	ratio   = flag.Float64("floor", world.DefaultFloorRatio, "share of cells to carve")
	pickups = flag.Int("pickups", world.DefaultPickups, "pickups to scatter")
	plain   = flag.Bool("plain", false, "disable colors")
)

var styles = map[world.TileKind]color.Style{
	world.Wall:   {color.FgRed},
	world.Floor:  {color.FgGray},
	world.Exit:   {color.FgYellow, color.OpBold},
	world.Pickup: {color.FgCyan, color.OpBold},
}

var playerStyle = color.Style{color.FgGreen, color.OpBold}

func main() {
	flag.Parse()

	if *plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.Enable = false
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}

	params := world.CavernParams{
		Width:      *width,
		Height:     *height,
		FloorRatio: *ratio,
		Pickups:    *pickups,
	}
	level, err := world.Generate(context.Background(), params, rand.New(rand.NewSource(s)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "mapgen: %v\n", err)
		os.Exit(1)
	}

	printLevel(os.Stdout, level)
	fmt.Printf("seed %d  %dx%d  open %d  spawn %v  exit %v  distance %.1f  pickups %d\n",
		s, params.Width, params.Height,
		params.Width*params.Height-level.Grid.Count(world.Wall),
		level.Spawn, level.Exit,
		math.Sqrt(float64(level.Spawn.DistSq(level.Exit))),
		len(level.Pickups))
}

// printLevel writes one line per grid row, the spawn drawn as '@'.
func printLevel(w io.Writer, level *world.Level) {
	g := level.Grid
	var b strings.Builder
	for y := 0; y < g.Height(); y++ {
		b.Reset()
		for x := 0; x < g.Width(); x++ {
			p := world.Point{X: x, Y: y}
			if p == level.Spawn {
				b.WriteString(playerStyle.Sprint("@"))
				continue
			}
			kind := g.At(p).Kind
			b.WriteString(styles[kind].Sprint(string(kind.Glyph())))
		}
		fmt.Fprintln(w, b.String())
	}
}
