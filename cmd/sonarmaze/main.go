// Package main is the entry point for Sonar Maze.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/samdwyer/sonarmaze/internal/game"
	"github.com/samdwyer/sonarmaze/internal/gamedata"
	"github.com/samdwyer/sonarmaze/internal/telemetry"
	"github.com/samdwyer/sonarmaze/internal/ui"
)

func main() {
	// Load .env file for local development (seed, tick rate, Honeycomb key)
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	seed := flag.Int64("seed", envInt64("SONARMAZE_SEED", 0), "cavern seed (0 = random)")
	tickRate := flag.Int("tick-rate", int(envInt64("SONARMAZE_TICK_RATE", ui.DefaultTickRate)), "game ticks per second")
	debug := flag.Bool("debug", envBool("SONARMAZE_DEBUG"), "enable the reveal-all key (F1)")
	rulesPath := flag.String("rules", os.Getenv("SONARMAZE_RULES"), "JSON rules file overriding the built-in rules")
	lang := flag.String("lang", "en", "message catalog")
	flag.Parse()

	if !telemetry.ConfigureEnv() {
		log.Printf("Note: HONEYCOMB_SONARMAZE_API_KEY not set, traces will not be exported")
	}

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	cfg := game.DefaultConfig()
	cfg.Seed = *seed
	if *rulesPath != "" {
		rules, err := gamedata.LoadRulesFile(*rulesPath)
		if err != nil {
			log.Fatalf("Failed to load rules: %v", err)
		}
		cfg.Rules = rules
	}

	machine, err := game.NewMachine(cfg)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	app, err := ui.NewApp(machine, ui.Options{
		TickRate: *tickRate,
		Debug:    *debug,
		Language: *lang,
	})
	if err != nil {
		log.Fatalf("Failed to initialize terminal: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// envInt64 reads an integer env var, falling back to def when unset or malformed.
func envInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("Note: ignoring %s=%q: %v", key, v, err)
		return def
	}
	return n
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
}
