package deck

import (
	"errors"
	"fmt"
)

// Size is the number of cards in a standard deck.
const Size = 52

// ErrExhaustedDeck is returned when more cards are requested than remain.
// With at most ten players a hand needs 28 cards, so this always signals an
// internal consistency error in the caller.
var ErrExhaustedDeck = errors.New("deck exhausted")

// Deck is an ordered sequence of cards consumed from the front. Dealt and
// burned cards are removed and never come back within a hand.
type Deck struct {
	cards  []Card
	burned int
}

// Standard returns the 52 cards in canonical order, suit by suit with ranks
// ascending.
func Standard() []Card {
	cards := make([]Card, 0, Size)
	for _, s := range Suits {
		for r := Two; r <= Ace; r++ {
			cards = append(cards, Card{suit: s, rank: r})
		}
	}
	return cards
}

// NewShuffledDeck creates a full deck permuted with Fisher–Yates driven by
// src.
func NewShuffledDeck(src Source) *Deck {
	cards := Standard()
	Shuffle(cards, src)
	return &Deck{cards: cards}
}

// NewStackedDeck creates a deck that deals cards in exactly the given order.
// It is used to replay recorded hands and to build deterministic fixtures.
// The slice may hold fewer than 52 cards but must not contain duplicates or
// invalid cards.
func NewStackedDeck(cards []Card) (*Deck, error) {
	if len(cards) > Size {
		return nil, fmt.Errorf("stacked deck has %d cards, at most %d allowed", len(cards), Size)
	}
	var seen [Size]bool
	for i, c := range cards {
		if !c.IsValid() {
			return nil, fmt.Errorf("invalid card at position %d", i)
		}
		if seen[c.Index()] {
			return nil, fmt.Errorf("duplicate card %s at position %d", c, i)
		}
		seen[c.Index()] = true
	}
	return &Deck{cards: append([]Card(nil), cards...)}, nil
}

// Len returns the number of cards left.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Burned returns how many cards were burned since the deck was created.
func (d *Deck) Burned() int {
	return d.burned
}

// Remaining returns a copy of the cards still in the deck, next card first.
func (d *Deck) Remaining() []Card {
	return append([]Card(nil), d.cards...)
}

// Deal removes and returns the next n cards.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot deal %d cards", n)
	}
	if n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d cards, %d left", ErrExhaustedDeck, n, len(d.cards))
	}
	out := append([]Card(nil), d.cards[:n]...)
	d.cards = d.cards[n:]
	return out, nil
}

// Burn discards the next card.
func (d *Deck) Burn() error {
	if _, err := d.Deal(1); err != nil {
		return err
	}
	d.burned++
	return nil
}

// DealStreet burns one card and reveals the next n, the way community cards
// are dealt before the flop, the turn and the river.
func (d *Deck) DealStreet(n int) ([]Card, error) {
	if n+1 > len(d.cards) {
		return nil, fmt.Errorf("%w: street needs %d cards, %d left", ErrExhaustedDeck, n+1, len(d.cards))
	}
	if err := d.Burn(); err != nil {
		return nil, err
	}
	return d.Deal(n)
}

// DealHole deals cardsPerPlayer cards to playerCount players, one card to
// each player per pass like a physical dealer.
func (d *Deck) DealHole(playerCount, cardsPerPlayer int) ([][]Card, error) {
	if playerCount < 0 || cardsPerPlayer < 0 {
		return nil, fmt.Errorf("cannot deal %d cards to %d players", cardsPerPlayer, playerCount)
	}
	need := playerCount * cardsPerPlayer
	if need > len(d.cards) {
		return nil, fmt.Errorf("%w: hole cards need %d cards, %d left", ErrExhaustedDeck, need, len(d.cards))
	}
	hands := make([][]Card, playerCount)
	for i := range hands {
		hands[i] = make([]Card, 0, cardsPerPlayer)
	}
	for pass := 0; pass < cardsPerPlayer; pass++ {
		for p := 0; p < playerCount; p++ {
			hands[p] = append(hands[p], d.cards[0])
			d.cards = d.cards[1:]
		}
	}
	return hands, nil
}
