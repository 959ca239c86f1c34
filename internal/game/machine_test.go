package game

import (
	"context"
	"errors"
	"testing"

	"github.com/samdwyer/sonarmaze/internal/gamedata"
	"github.com/samdwyer/sonarmaze/internal/world"
)

func testConfig() Config {
	rules := gamedata.MustLoadRules()
	rules.Cavern.Width = 24
	rules.Cavern.Height = 16
	return Config{Seed: 42, Rules: rules}
}

func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	m, err := NewMachine(testConfig())
	if err != nil {
		t.Fatalf("NewMachine() error: %v", err)
	}
	return m
}

// corridorLevel puts the player in a one-row corridor:
//
//	##########
//	#.@.*...>#
//	##########
func corridorLevel(m *Machine, depth, pings int) *Playing {
	g := world.NewGrid(10, 5)
	for x := 1; x <= 8; x++ {
		g.SetKind(world.Point{X: x, Y: 2}, world.Floor)
	}
	g.SetKind(world.Point{X: 4, Y: 2}, world.Pickup)
	exit := world.Point{X: 8, Y: 2}
	g.SetKind(exit, world.Exit)

	p := &Playing{
		Grid:      g,
		Player:    world.Point{X: 2, Y: 2},
		Exit:      exit,
		PingsLeft: pings,
		Depth:     depth,
	}
	m.state = p
	return p
}

func step(t *testing.T, m *Machine, in Intent) {
	t.Helper()
	if err := m.Step(context.Background(), in); err != nil {
		t.Fatalf("Step(%v) error: %v", in.Action, err)
	}
}

func playing(t *testing.T, m *Machine) *Playing {
	t.Helper()
	p, ok := m.State().(*Playing)
	if !ok {
		t.Fatalf("State() = %v, want playing", m.State().Phase())
	}
	return p
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseMenu, "menu"},
		{PhasePlaying, "playing"},
		{PhaseGameOver, "game_over"},
		{PhaseVictory, "victory"},
		{Phase(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.expected {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.expected)
		}
	}
}

func TestNewMachineStartsOnMenu(t *testing.T) {
	m := newTestMachine(t)
	if _, ok := m.State().(MainMenu); !ok {
		t.Errorf("initial State() = %v, want menu", m.State().Phase())
	}
}

func TestNewMachineRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Rules.Cavern.Width = 4
	cfg.Rules.Cavern.Height = 4
	if _, err := NewMachine(cfg); !errors.Is(err, world.ErrGridTooSmall) {
		t.Errorf("NewMachine(4x4) error = %v, want ErrGridTooSmall", err)
	}

	cfg = testConfig()
	cfg.Rules.MaxDepth = 0
	if _, err := NewMachine(cfg); !errors.Is(err, gamedata.ErrInvalidRules) {
		t.Errorf("NewMachine(maxDepth 0) error = %v, want ErrInvalidRules", err)
	}
}

func TestMenuConfirmStartsRun(t *testing.T) {
	m := newTestMachine(t)
	step(t, m, Confirm())

	p := playing(t, m)
	if p.Depth != 1 {
		t.Errorf("Depth = %d, want 1", p.Depth)
	}
	if p.PingsLeft != 15 {
		t.Errorf("PingsLeft = %d, want 15", p.PingsLeft)
	}
	if p.Frame != 0 {
		t.Errorf("Frame = %d, want 0", p.Frame)
	}
	if k := p.Grid.At(p.Player).Kind; k != world.Floor {
		t.Errorf("spawn tile = %v, want floor", k)
	}
	if k := p.Grid.At(p.Exit).Kind; k != world.Exit {
		t.Errorf("exit tile = %v, want exit", k)
	}
}

func TestMenuIgnoresOtherIntents(t *testing.T) {
	for _, in := range []Intent{None(), Move(world.Up), Ping(), RevealAll()} {
		m := newTestMachine(t)
		step(t, m, in)
		if _, ok := m.State().(MainMenu); !ok {
			t.Errorf("after %v: State() = %v, want menu", in.Action, m.State().Phase())
		}
	}
}

func TestMoveAdvancesFrame(t *testing.T) {
	m := newTestMachine(t)
	p := corridorLevel(m, 1, 5)

	step(t, m, Move(world.Left))
	if want := (world.Point{X: 1, Y: 2}); p.Player != want {
		t.Errorf("Player = %v, want %v", p.Player, want)
	}
	if p.Frame != 1 {
		t.Errorf("Frame = %d, want 1", p.Frame)
	}
}

func TestBlockedMoveStillAdvancesFrame(t *testing.T) {
	m := newTestMachine(t)
	p := corridorLevel(m, 1, 5)

	step(t, m, Move(world.Up))
	if want := (world.Point{X: 2, Y: 2}); p.Player != want {
		t.Errorf("Player = %v, want %v (blocked)", p.Player, want)
	}
	if p.Frame != 1 {
		t.Errorf("Frame = %d, want 1", p.Frame)
	}
}

func TestInvalidDirectionIsNoIntent(t *testing.T) {
	m := newTestMachine(t)
	p := corridorLevel(m, 1, 5)

	step(t, m, Intent{Action: ActionMove, Dir: world.Direction(42)})
	step(t, m, Intent{Action: Action(77)})
	if want := (world.Point{X: 2, Y: 2}); p.Player != want {
		t.Errorf("Player = %v, want %v", p.Player, want)
	}
	if m.State() != p {
		t.Error("malformed intent replaced the playing state")
	}
}

func TestPickupGrantsPing(t *testing.T) {
	m := newTestMachine(t)
	p := corridorLevel(m, 1, 5)

	step(t, m, Move(world.Right))
	step(t, m, Move(world.Right))

	pickup := world.Point{X: 4, Y: 2}
	if p.Player != pickup {
		t.Fatalf("Player = %v, want %v", p.Player, pickup)
	}
	if p.PingsLeft != 6 {
		t.Errorf("PingsLeft = %d, want 6", p.PingsLeft)
	}
	if k := p.Grid.At(pickup).Kind; k != world.Floor {
		t.Errorf("pickup tile = %v, want floor", k)
	}
}

func TestPingRevealsAndSpends(t *testing.T) {
	m := newTestMachine(t)
	p := corridorLevel(m, 1, 5)

	step(t, m, Ping())
	if p.PingsLeft != 4 {
		t.Errorf("PingsLeft = %d, want 4", p.PingsLeft)
	}
	if s := p.Grid.At(p.Player).LastSeen; s != world.SeenAt(0) {
		t.Errorf("player tile stamp = %v, want frame 0", s)
	}
	if !p.ExitFound() {
		t.Error("exit within radius 8 should be permanently revealed")
	}
	if p.Frame != 1 {
		t.Errorf("Frame = %d, want 1", p.Frame)
	}
}

func TestPingWithNoPingsIsNoop(t *testing.T) {
	m := newTestMachine(t)
	p := corridorLevel(m, 1, 0)
	p.Grid.SetStamp(p.Exit, world.Permanent)

	step(t, m, Ping())
	if p.PingsLeft != 0 {
		t.Errorf("PingsLeft = %d, want 0", p.PingsLeft)
	}
	if s := p.Grid.At(p.Player).LastSeen; !s.IsNever() {
		t.Errorf("player tile stamp = %v, want never", s)
	}
	if m.State() != p {
		t.Errorf("State() = %v, want unchanged playing", m.State().Phase())
	}
}

func TestOutOfPingsWithoutExitIsGameOver(t *testing.T) {
	m := newTestMachine(t)
	corridorLevel(m, 2, 0)

	step(t, m, Move(world.Left))
	over, ok := m.State().(GameOver)
	if !ok {
		t.Fatalf("State() = %v, want game_over", m.State().Phase())
	}
	if over.Depth != 2 {
		t.Errorf("GameOver.Depth = %d, want 2", over.Depth)
	}
}

func TestLastPingFindingExitKeepsPlaying(t *testing.T) {
	m := newTestMachine(t)
	corridorLevel(m, 1, 1)

	step(t, m, Ping())
	p := playing(t, m)
	if p.PingsLeft != 0 || !p.ExitFound() {
		t.Errorf("PingsLeft = %d, ExitFound = %v, want 0, true", p.PingsLeft, p.ExitFound())
	}

	// With the exit known, a player out of pings can still walk to it.
	step(t, m, Move(world.Right))
	playing(t, m)
}

func TestLastPingMissingExitIsGameOver(t *testing.T) {
	m := newTestMachine(t)
	p := corridorLevel(m, 1, 1)
	// Wall off the exit so the sweep cannot reach it.
	p.Grid.SetKind(world.Point{X: 7, Y: 2}, world.Wall)

	step(t, m, Ping())
	if _, ok := m.State().(GameOver); !ok {
		t.Errorf("State() = %v, want game_over", m.State().Phase())
	}
}

func TestRevealAllPreventsGameOver(t *testing.T) {
	m := newTestMachine(t)
	p := corridorLevel(m, 1, 0)

	step(t, m, RevealAll())
	if m.State() != p {
		t.Fatalf("State() = %v, want unchanged playing", m.State().Phase())
	}
	p.Grid.ForEach(func(pt world.Point, tile world.Tile) {
		if !tile.LastSeen.IsPermanent() {
			t.Errorf("tile %v stamp = %v, want permanent", pt, tile.LastSeen)
		}
	})
}

func TestExitDescends(t *testing.T) {
	m := newTestMachine(t)
	old := corridorLevel(m, 1, 7)
	old.Player = world.Point{X: 7, Y: 2}
	old.Frame = 33

	step(t, m, Move(world.Right))
	p := playing(t, m)
	if p == old {
		t.Fatal("descending must build a new Playing state")
	}
	if p.Depth != 2 {
		t.Errorf("Depth = %d, want 2", p.Depth)
	}
	if p.PingsLeft != 12 {
		t.Errorf("PingsLeft = %d, want 12", p.PingsLeft)
	}
	if p.Frame != 0 {
		t.Errorf("Frame = %d, want 0", p.Frame)
	}
	if p.Grid == old.Grid {
		t.Error("descending must generate a new grid")
	}
	if want := (world.Point{X: 12, Y: 8}); p.Player != want {
		t.Errorf("Player = %v, want spawn %v", p.Player, want)
	}
}

func TestExitOnLastDepthIsVictory(t *testing.T) {
	m := newTestMachine(t)
	p := corridorLevel(m, 3, 2)
	p.Player = world.Point{X: 7, Y: 2}

	step(t, m, Move(world.Right))
	if _, ok := m.State().(Victory); !ok {
		t.Errorf("State() = %v, want victory", m.State().Phase())
	}
}

func TestEndScreensRestartOnConfirm(t *testing.T) {
	for _, end := range []State{GameOver{Depth: 2}, Victory{}} {
		m := newTestMachine(t)
		m.state = end

		step(t, m, Ping())
		if m.State() != end {
			t.Errorf("%v: Ping changed state to %v", end.Phase(), m.State().Phase())
		}

		step(t, m, Confirm())
		p := playing(t, m)
		if p.Depth != 1 || p.PingsLeft != 15 || p.Frame != 0 {
			t.Errorf("%v: restart = depth %d, pings %d, frame %d, want 1, 15, 0",
				end.Phase(), p.Depth, p.PingsLeft, p.Frame)
		}
	}
}

func TestSameSeedSameRun(t *testing.T) {
	m1 := newTestMachine(t)
	m2 := newTestMachine(t)
	step(t, m1, Confirm())
	step(t, m2, Confirm())

	p1, p2 := playing(t, m1), playing(t, m2)
	if p1.Exit != p2.Exit {
		t.Fatalf("Exit = %v vs %v with the same seed", p1.Exit, p2.Exit)
	}
	p1.Grid.ForEach(func(pt world.Point, tile world.Tile) {
		if p2.Grid.At(pt).Kind != tile.Kind {
			t.Errorf("tile %v differs between runs with the same seed", pt)
		}
	})
}

func TestGenerationErrorPropagates(t *testing.T) {
	cfg := testConfig()
	cfg.Rules.Cavern.Width = 2
	m := newMachine(cfg, nil)

	err := m.Step(context.Background(), Confirm())
	if !errors.Is(err, world.ErrGridTooSmall) {
		t.Errorf("Step(Confirm) error = %v, want ErrGridTooSmall", err)
	}
	if _, ok := m.State().(MainMenu); !ok {
		t.Errorf("State() = %v after failed generation, want menu", m.State().Phase())
	}
}
