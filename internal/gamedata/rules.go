package gamedata

import (
	"errors"
	"fmt"
)

// ErrInvalidRules is returned when a rules file holds values the game cannot run with.
var ErrInvalidRules = errors.New("invalid rules")

// CavernRules sizes each generated level.
type CavernRules struct {
	Width      int     `json:"width"`      // Grid columns
	Height     int     `json:"height"`     // Grid rows
	FloorRatio float64 `json:"floorRatio"` // Share of cells carved before the walk stops
	Pickups    int     `json:"pickups"`    // Ping pickups scattered per level
}

// Rules holds the tunable numbers of a run.
type Rules struct {
	StartingPings int         `json:"startingPings"` // Pings granted at depth 1
	DescentBonus  int         `json:"descentBonus"`  // Pings added on reaching a new depth
	PingRadius    int         `json:"pingRadius"`    // Sonar sweep radius in cells
	MaxDepth      int         `json:"maxDepth"`      // Taking the exit here wins the run
	Cavern        CavernRules `json:"cavern"`
}

// Validate checks the values that would break the state machine. Cavern
// geometry is checked by the generator itself.
func (r Rules) Validate() error {
	switch {
	case r.StartingPings < 0:
		return fmt.Errorf("%w: startingPings %d < 0", ErrInvalidRules, r.StartingPings)
	case r.DescentBonus < 0:
		return fmt.Errorf("%w: descentBonus %d < 0", ErrInvalidRules, r.DescentBonus)
	case r.PingRadius < 0:
		return fmt.Errorf("%w: pingRadius %d < 0", ErrInvalidRules, r.PingRadius)
	case r.MaxDepth < 1:
		return fmt.Errorf("%w: maxDepth %d < 1", ErrInvalidRules, r.MaxDepth)
	case r.Cavern.Pickups < 0:
		return fmt.Errorf("%w: pickups %d < 0", ErrInvalidRules, r.Cavern.Pickups)
	}
	return nil
}

// LoadRules loads the embedded rules.json.
func LoadRules() (Rules, error) {
	rules, err := Load[Rules]("rules.json")
	if err != nil {
		return Rules{}, err
	}
	return rules, rules.Validate()
}

// LoadRulesFile loads rules from a JSON file on disk.
func LoadRulesFile(path string) (Rules, error) {
	rules, err := LoadFile[Rules](path)
	if err != nil {
		return Rules{}, err
	}
	return rules, rules.Validate()
}

// MustLoadRules loads the embedded rules, panicking on error.
func MustLoadRules() Rules {
	rules, err := LoadRules()
	if err != nil {
		panic(err)
	}
	return rules
}
