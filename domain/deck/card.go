package deck

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Suit of a playing card (0-3: clubs, diamonds, hearts, spades).
type Suit uint8

// Card suit constants
const (
	Club    Suit = 0 // ♣ (black)
	Diamond Suit = 1 // ♦ (red)
	Heart   Suit = 2 // ♥ (red)
	Spade   Suit = 3 // ♠ (black)
)

// Rank of a playing card. Aces are high (14); the evaluator handles the
// wheel straight explicitly.
type Rank uint8

// Card rank constants
const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// Suits lists the four suits in deck order.
var Suits = [4]Suit{Club, Diamond, Heart, Spade}

const (
	rankLetters = "23456789TJQKA"
	suitLetters = "cdhs"
)

// Card represents a playing card with suit and rank. The zero value is not a
// valid card.
type Card struct {
	suit Suit
	rank Rank
}

// NewCard creates a new Card with validation.
//
// Parameters:
//   - suit: 0-3 (Club, Diamond, Heart, Spade)
//   - rank: 2-14 (2-10 face value, Jack=11, Queen=12, King=13, Ace=14)
//
// Returns the Card or an error if suit or rank is invalid.
func NewCard(suit Suit, rank Rank) (Card, error) {
	if suit > Spade || rank < Two || rank > Ace {
		return Card{}, fmt.Errorf("invalid card %d, %d", suit, rank)
	}
	return Card{suit: suit, rank: rank}, nil
}

// ParseCard parses the two letter form of a card, rank first then suit,
// e.g. "As", "Td", "2c". Ranks are 23456789TJQKA and suits cdhs, case
// insensitive. "10" is accepted for tens.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	r := strings.IndexByte(rankLetters, strings.ToUpper(s[:1])[0])
	su := strings.IndexByte(suitLetters, strings.ToLower(s[1:])[0])
	if r < 0 || su < 0 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	return Card{suit: Suit(su), rank: Rank(r + 2)}, nil
}

// MustParse parses a space separated list of cards and panics on error.
// It is meant for fixtures and tests.
func MustParse(s string) []Card {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			panic(err)
		}
		cards = append(cards, c)
	}
	return cards
}

// Suit returns the suit value of the Card.
func (c Card) Suit() Suit {
	return c.suit
}

// Rank returns the rank value of the Card.
func (c Card) Rank() Rank {
	return c.rank
}

// IsValid reports whether the card is one of the 52 real cards.
func (c Card) IsValid() bool {
	return c.suit <= Spade && c.rank >= Two && c.rank <= Ace
}

// Index maps the card to 0-51, suits in deck order and ranks ascending.
func (c Card) Index() int {
	return int(c.suit)*13 + int(c.rank-Two)
}

// Code returns the two letter form accepted by ParseCard.
func (c Card) Code() string {
	if !c.IsValid() {
		return "??"
	}
	return string(rankLetters[c.rank-Two]) + string(suitLetters[c.suit])
}

// String returns a human-readable representation of the Card using suit
// symbols (♣, ♦, ♥, ♠) and rank abbreviations (A, K, Q, J, T or number).
func (c Card) String() string {
	if !c.IsValid() {
		return "??"
	}
	return string(rankLetters[c.rank-Two]) + c.suit.Symbol()
}

// Symbol returns the unicode symbol of the suit.
func (s Suit) Symbol() string {
	switch s {
	case Club:
		return "♣"
	case Diamond:
		return "♦"
	case Heart:
		return "♥"
	case Spade:
		return "♠"
	default:
		return "?"
	}
}

// IsRed reports whether the suit is printed in red.
func (s Suit) IsRed() bool {
	return s == Diamond || s == Heart
}

// Name returns the singular english name of the rank, e.g. "Queen".
func (r Rank) Name() string {
	names := [...]string{"Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King", "Ace"}
	if r < Two || r > Ace {
		return "?"
	}
	return names[r-Two]
}

// Plural returns the plural english name of the rank, e.g. "Sixes".
func (r Rank) Plural() string {
	if r == Six {
		return "Sixes"
	}
	return r.Name() + "s"
}

func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Code())
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCard(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
