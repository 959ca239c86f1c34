package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/sonarmaze/internal/telemetry"
	"github.com/samdwyer/sonarmaze/internal/world"
)

// Machine is the sole mutator of gameplay state. It consumes one intent per
// tick and is not safe for concurrent use.
type Machine struct {
	cfg   Config
	rng   world.Rand
	state State
}

// NewMachine validates cfg and returns a machine on the main menu.
func NewMachine(cfg Config) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return newMachine(cfg, rand.New(rand.NewSource(seed))), nil
}

// newMachine skips validation; tests use it to inject a scripted rng.
func newMachine(cfg Config, rng world.Rand) *Machine {
	return &Machine{
		cfg:   cfg,
		rng:   rng,
		state: MainMenu{},
	}
}

// State returns the live state. Callers must treat it as read-only.
func (m *Machine) State() State {
	return m.state
}

// Step applies one intent. At most one transition happens per call. The
// only errors are generation failures on entering a level.
func (m *Machine) Step(ctx context.Context, in Intent) error {
	in = in.normalize()

	switch s := m.state.(type) {
	case *Playing:
		return m.stepPlaying(ctx, s, in)
	default:
		if in.Action == ActionConfirm {
			return m.newRun(ctx)
		}
		return nil
	}
}

// stepPlaying handles one tick of a live level.
func (m *Machine) stepPlaying(ctx context.Context, p *Playing, in Intent) error {
	switch in.Action {
	case ActionMove:
		target := p.Player.Add(in.Dir)
		switch p.Grid.Kind(target) {
		case world.Wall:
			// Blocked; the attempt still costs a frame.
		case world.Exit:
			if p.Depth >= m.cfg.Rules.MaxDepth {
				m.win(ctx, p)
				return nil
			}
			return m.descend(ctx, p)
		case world.Pickup:
			p.Grid.SetKind(target, world.Floor)
			p.PingsLeft++
			p.Player = target
		default:
			p.Player = target
		}

	case ActionPing:
		if p.PingsLeft > 0 {
			world.Reveal(ctx, p.Grid, p.Player, m.cfg.Rules.PingRadius, p.Frame)
			p.PingsLeft--
		}

	case ActionRevealAll:
		world.RevealAll(p.Grid)
	}

	p.Frame++

	if p.PingsLeft == 0 && !p.ExitFound() {
		m.lose(ctx, p)
	}
	return nil
}

// newRun starts a fresh depth-1 level.
func (m *Machine) newRun(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.new_run")
	defer span.End()

	next, err := m.enterLevel(ctx, 1, m.cfg.Rules.StartingPings)
	if err != nil {
		span.RecordError(err)
		return err
	}
	m.state = next
	return nil
}

// descend replaces the current level with a new one a depth lower.
func (m *Machine) descend(ctx context.Context, p *Playing) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.descend")
	defer span.End()

	span.SetAttributes(
		attribute.Int("game.depth", p.Depth+1),
		attribute.Int("game.pings_carried", p.PingsLeft),
		attribute.Int("game.frames_on_level", p.Frame),
	)

	next, err := m.enterLevel(ctx, p.Depth+1, p.PingsLeft+m.cfg.Rules.DescentBonus)
	if err != nil {
		span.RecordError(err)
		return err
	}
	m.state = next
	return nil
}

// enterLevel generates a cavern and wraps it in a new Playing state.
func (m *Machine) enterLevel(ctx context.Context, depth, pings int) (*Playing, error) {
	level, err := world.Generate(ctx, m.cfg.cavernParams(), m.rng)
	if err != nil {
		return nil, fmt.Errorf("generate depth %d: %w", depth, err)
	}
	return &Playing{
		Grid:      level.Grid,
		Player:    level.Spawn,
		Exit:      level.Exit,
		Frame:     0,
		PingsLeft: pings,
		Depth:     depth,
	}, nil
}

func (m *Machine) win(ctx context.Context, p *Playing) {
	_, span := telemetry.Tracer("game").Start(ctx, "game.victory")
	span.SetAttributes(
		attribute.Int("game.depth", p.Depth),
		attribute.Int("game.pings_left", p.PingsLeft),
	)
	span.End()

	m.state = Victory{}
}

func (m *Machine) lose(ctx context.Context, p *Playing) {
	_, span := telemetry.Tracer("game").Start(ctx, "game.over")
	span.SetAttributes(
		attribute.Int("game.depth", p.Depth),
		attribute.Int("game.frame", p.Frame),
	)
	span.End()

	m.state = GameOver{Depth: p.Depth}
}
