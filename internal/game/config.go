package game

import (
	"fmt"

	"github.com/samdwyer/sonarmaze/internal/gamedata"
	"github.com/samdwyer/sonarmaze/internal/world"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible caverns.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// Rules are the tunable numbers of a run, normally the embedded rules.json.
	Rules gamedata.Rules
}

// DefaultConfig returns a config with the embedded rules and a random seed.
func DefaultConfig() Config {
	return Config{Rules: gamedata.MustLoadRules()}
}

// cavernParams converts the rules' cavern section into generator params.
func (c Config) cavernParams() world.CavernParams {
	return world.CavernParams{
		Width:      c.Rules.Cavern.Width,
		Height:     c.Rules.Cavern.Height,
		FloorRatio: c.Rules.Cavern.FloorRatio,
		Pickups:    c.Rules.Cavern.Pickups,
	}
}

// Validate reports configuration errors up front, so generation cannot fail
// mid-run for a reason that was knowable at startup.
func (c Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return err
	}
	if err := c.cavernParams().Validate(); err != nil {
		return fmt.Errorf("cavern rules: %w", err)
	}
	return nil
}
