package ui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/sonarmaze/internal/game"
	"github.com/samdwyer/sonarmaze/internal/gamedata"
	"github.com/samdwyer/sonarmaze/internal/telemetry"
)

// DefaultTickRate is the number of game ticks per second.
const DefaultTickRate = 10

// Options configures the terminal front end.
type Options struct {
	TickRate int    // Ticks per second; <= 0 means DefaultTickRate
	Debug    bool   // Bind the reveal-all key
	Language string // Message catalog, "en" when empty
}

// App drives a game.Machine from terminal input.
type App struct {
	screen   *Screen
	renderer *Renderer
	machine  *game.Machine
	bindings Bindings
	tick     time.Duration
	running  bool
}

// NewApp opens the terminal and prepares rendering.
func NewApp(machine *game.Machine, opts Options) (*App, error) {
	screen, err := NewScreen()
	if err != nil {
		return nil, err
	}
	app, err := newApp(screen, machine, opts)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return app, nil
}

func newApp(screen *Screen, machine *game.Machine, opts Options) (*App, error) {
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultTickRate
	}

	text, err := LoadText(opts.Language)
	if err != nil {
		return nil, err
	}
	palette, err := gamedata.LoadPalette()
	if err != nil {
		return nil, err
	}

	return &App{
		screen:   screen,
		renderer: NewRenderer(screen, palette, text),
		machine:  machine,
		bindings: Bindings{Debug: opts.Debug},
		tick:     time.Second / time.Duration(opts.TickRate),
		running:  true,
	}, nil
}

// Run executes the main loop until the player quits or ctx is done. Each
// tick consumes at most one key intent; extra keys pressed within a tick
// are dropped.
func (a *App) Run(ctx context.Context) error {
	defer a.screen.Close()

	_, span := telemetry.Tracer("ui").Start(ctx, "app.run")
	defer span.End()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go a.forwardEvents(events, done)

	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()

	ticks := 0
	pending := game.None()
	a.renderer.Render(a.machine.View())

	for a.running {
		select {
		case <-ctx.Done():
			a.running = false

		case ev, ok := <-events:
			if !ok {
				a.running = false
				break
			}
			if in, queued := a.handleEvent(ev); queued && pending.Action == game.ActionNone {
				pending = in
			}

		case <-ticker.C:
			if err := a.machine.Step(ctx, pending); err != nil {
				span.RecordError(err)
				return err
			}
			pending = game.None()
			ticks++
			a.renderer.Render(a.machine.View())
		}
	}

	span.SetAttributes(attribute.Int("app.ticks", ticks))
	return nil
}

// forwardEvents moves blocking PollEvent calls off the loop goroutine.
func (a *App) forwardEvents(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent processes one terminal event and returns the intent it
// produced, if any.
func (a *App) handleEvent(ev tcell.Event) (game.Intent, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		in, quit := a.bindings.Intent(ev)
		if quit {
			a.running = false
			return game.None(), false
		}
		return in, in.Action != game.ActionNone
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return game.None(), false
}
