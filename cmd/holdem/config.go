package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/luca-patrignani/holdem/domain/poker"
)

const (
	envPlayers    = "HOLDEM_PLAYERS"
	envStack      = "HOLDEM_STACK"
	envSmallBlind = "HOLDEM_SMALL_BLIND"
	envBigBlind   = "HOLDEM_BIG_BLIND"
	envSeed       = "HOLDEM_SEED"
)

type config struct {
	Players    []string
	Stack      uint
	SmallBlind uint
	BigBlind   uint
	Seed       uint64
	Seeded     bool // deal from a reproducible shuffle
	Debug      bool
}

// environment returns a lookup over the process environment that falls back
// to the values of the given .env files, ".env" by default. A missing file
// is not an error.
func environment(files ...string) (func(string) string, error) {
	values, err := godotenv.Read(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return os.Getenv, fmt.Errorf("read env file: %w", err)
	}
	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return values[key]
	}, nil
}

// parseConfig reads the defaults from getenv and lets the command line
// flags override them.
func parseConfig(args []string, getenv func(string) string) (config, error) {
	defaults := config{
		Players:    []string{"alice", "bob", "carol"},
		Stack:      1000,
		SmallBlind: 5,
		BigBlind:   10,
	}
	if v := getenv(envPlayers); v != "" {
		defaults.Players = splitNames(v)
	}
	for _, e := range []struct {
		key string
		dst *uint
	}{
		{envStack, &defaults.Stack},
		{envSmallBlind, &defaults.SmallBlind},
		{envBigBlind, &defaults.BigBlind},
	} {
		v := getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseUint(v, 10, 0)
		if err != nil {
			return config{}, fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = uint(n)
	}

	cfg := defaults
	fset := flag.NewFlagSet("holdem", flag.ContinueOnError)
	players := fset.String("players", strings.Join(defaults.Players, ","), "comma separated player names")
	fset.UintVar(&cfg.Stack, "stack", defaults.Stack, "starting chips of every player")
	fset.UintVar(&cfg.SmallBlind, "sb", defaults.SmallBlind, "small blind")
	fset.UintVar(&cfg.BigBlind, "bb", defaults.BigBlind, "big blind")
	seed := fset.String("seed", getenv(envSeed), "seed for a reproducible, non-cryptographic shuffle")
	fset.BoolVar(&cfg.Debug, "debug", false, "log every action")
	if err := fset.Parse(args); err != nil {
		return config{}, err
	}

	cfg.Players = splitNames(*players)
	if *seed != "" {
		n, err := strconv.ParseUint(*seed, 10, 64)
		if err != nil {
			return config{}, fmt.Errorf("seed: %w", err)
		}
		cfg.Seed, cfg.Seeded = n, true
	}

	if len(cfg.Players) < 2 || len(cfg.Players) > poker.MaxSeats {
		return config{}, fmt.Errorf("need between 2 and %d players, got %d", poker.MaxSeats, len(cfg.Players))
	}
	seen := map[string]bool{}
	for _, p := range cfg.Players {
		if seen[p] {
			return config{}, fmt.Errorf("player %q listed twice", p)
		}
		seen[p] = true
	}
	if cfg.Stack == 0 {
		return config{}, errors.New("stack must be positive")
	}
	return cfg, nil
}

func splitNames(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
