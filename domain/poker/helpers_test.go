package poker

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/luca-patrignani/holdem/domain/deck"
)

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestTable seats one player per id, in seat order, with the given stacks.
// The first player holds the button of the first hand.
func newTestTable(t *testing.T, ids []string, stacks []uint, opts ...TableOption) *Table {
	t.Helper()
	opts = append([]TableOption{
		WithLogger(quietLogger()),
		WithClock(func() time.Time { return testTime }),
		WithTableID("test-table"),
	}, opts...)
	tb, err := NewTable(TableConfig{SmallBlind: 5, BigBlind: 10}, opts...)
	if err != nil {
		t.Fatal(err)
	}
	for i, id := range ids {
		if err := tb.SeatPlayer(id, strings.ToUpper(id), stacks[i], false); err != nil {
			t.Fatal(err)
		}
	}
	return tb
}

// stackedDeck returns a factory for a deck that gives holes[i] to the player
// at index i and runs out the board, assuming the button is at dealer.
// Burn cards and the rest of the deck are filled with unused cards.
func stackedDeck(dealer int, holes []string, board string) DeckFactory {
	n := len(holes)
	hole := make([][]deck.Card, n)
	used := map[deck.Card]bool{}
	for i, h := range holes {
		hole[i] = deck.MustParse(h)
		for _, c := range hole[i] {
			used[c] = true
		}
	}
	boardCards := deck.MustParse(board)
	for _, c := range boardCards {
		used[c] = true
	}
	var rest []deck.Card
	for _, c := range deck.Standard() {
		if !used[c] {
			rest = append(rest, c)
		}
	}
	take := func() deck.Card {
		c := rest[0]
		rest = rest[1:]
		return c
	}

	var order []deck.Card
	for pass := 0; pass < 2; pass++ {
		for k := 0; k < n; k++ {
			order = append(order, hole[(dealer+1+k)%n][pass])
		}
	}
	order = append(order, take())
	order = append(order, boardCards[:3]...)
	order = append(order, take(), boardCards[3])
	order = append(order, take(), boardCards[4])
	order = append(order, rest...)

	return func() (*deck.Deck, error) {
		return deck.NewStackedDeck(order)
	}
}

func mustAct(t *testing.T, tb *Table, id string, a Action) {
	t.Helper()
	if err := tb.ProcessAction(id, a); err != nil {
		t.Fatalf("%s %s %d: %v", id, a.Type, a.Amount, err)
	}
}

func player(t *testing.T, s GameState, id string) Player {
	t.Helper()
	idx := s.FindPlayerIndex(id)
	if idx == -1 {
		t.Fatalf("player %s not seated", id)
	}
	return s.Players[idx]
}

func activeID(s GameState) string {
	p, ok := s.ActivePlayer()
	if !ok {
		return ""
	}
	return p.ID
}

// totalChips counts every chip on the table, stacks plus the pot while a
// hand is running.
func totalChips(s GameState) uint {
	var sum uint
	for _, p := range s.Players {
		sum += p.Chips
	}
	if !s.HandComplete {
		sum += s.Pot
	}
	return sum
}

var (
	fold  = Action{Type: ActionFold}
	check = Action{Type: ActionCheck}
	call  = Action{Type: ActionCall}
	allIn = Action{Type: ActionAllIn}
)

func bet(n uint) Action     { return Action{Type: ActionBet, Amount: n} }
func raiseTo(n uint) Action { return Action{Type: ActionRaise, Amount: n} }
