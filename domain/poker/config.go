package poker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/luca-patrignani/holdem/domain/deck"
)

const (
	DefaultMaxSeats      = 9
	MaxSeats             = 10
	DefaultActionTimeout = 30 * time.Second
)

// TableConfig holds the fixed parameters of a table.
type TableConfig struct {
	SmallBlind    uint          `json:"small_blind"`
	BigBlind      uint          `json:"big_blind"`
	ActionTimeout time.Duration `json:"action_timeout"` // budget exposed to the orchestrator
	MaxSeats      int           `json:"max_seats"`
}

// Validate fills defaults and checks the blind structure and seat count.
func (c *TableConfig) Validate() error {
	if c.MaxSeats == 0 {
		c.MaxSeats = DefaultMaxSeats
	}
	if c.ActionTimeout == 0 {
		c.ActionTimeout = DefaultActionTimeout
	}
	switch {
	case c.BigBlind == 0:
		return fmt.Errorf("%w: big blind must be positive", ErrInvalidConfig)
	case c.SmallBlind == 0 || c.SmallBlind > c.BigBlind:
		return fmt.Errorf("%w: small blind must be between 1 and the big blind, got %d", ErrInvalidConfig, c.SmallBlind)
	case c.MaxSeats < 2 || c.MaxSeats > MaxSeats:
		return fmt.Errorf("%w: seats must be between 2 and %d, got %d", ErrInvalidConfig, MaxSeats, c.MaxSeats)
	case c.ActionTimeout < 0:
		return fmt.Errorf("%w: negative action timeout", ErrInvalidConfig)
	}
	return nil
}

// Observer receives a snapshot after every state change of a table. It is
// called synchronously by the goroutine that owns the table.
type Observer interface {
	OnStateChange(state GameState)
}

// DeckFactory builds the deck for a new hand.
type DeckFactory func() (*deck.Deck, error)

type TableOption func(*Table)

func WithLogger(logger *slog.Logger) TableOption {
	return func(t *Table) {
		if logger == nil {
			logger = slog.Default()
		}
		t.logger = logger
	}
}

// WithDeckFactory replaces the crypto shuffled deck, e.g. with a seeded or
// stacked one.
func WithDeckFactory(f DeckFactory) TableOption {
	return func(t *Table) {
		t.newDeck = f
	}
}

func WithObserver(o Observer) TableOption {
	return func(t *Table) {
		t.observers = append(t.observers, o)
	}
}

func WithClock(now func() time.Time) TableOption {
	return func(t *Table) {
		t.now = now
	}
}

func WithTableID(id string) TableOption {
	return func(t *Table) {
		t.state.TableID = id
	}
}

func cryptoDeck() (*deck.Deck, error) {
	return deck.NewShuffledDeck(deck.NewCryptoSource()), nil
}

func newTableID() string {
	return uuid.NewString()
}
