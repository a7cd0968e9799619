// Package hand ranks Texas Hold'em hands of five to seven cards.
//
// Every hand is reduced to a single Strength scalar so that comparing two
// hands is a plain integer comparison. Strength is a fixed radix number:
//
//	strength = category·15⁵ + k₁·15⁴ + k₂·15³ + k₃·15² + k₄·15 + k₅
//
// where the kickers k₁..k₅ are ranks 2..14 in descending significance and
// unused kicker digits are 0. A digit never exceeds 14, so the largest value
// of a category is category·15⁵ + 15⁵ − 1, strictly below the smallest value
// of the next category. Category therefore dominates any kicker ordering.
package hand

import (
	"fmt"
	"math/bits"

	"github.com/luca-patrignani/holdem/domain/deck"
)

// Category of a five card poker hand, weakest first.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Radix of the strength encoding and number of kicker digits below the
// category digit.
const (
	Radix       = 15
	KickerWidth = 5
)

// Strength is the totally ordered value of a hand. Higher is better, equal
// values tie.
type Strength uint32

// Pack encodes a category and up to five kicker ranks, most significant
// first. It panics on more than five kickers or a rank outside 2..14.
func Pack(c Category, kickers ...deck.Rank) Strength {
	if len(kickers) > KickerWidth {
		panic(fmt.Sprintf("hand: %d kickers, at most %d", len(kickers), KickerWidth))
	}
	s := Strength(c)
	for i := 0; i < KickerWidth; i++ {
		s *= Radix
		if i < len(kickers) {
			k := kickers[i]
			if k < deck.Two || k > deck.Ace {
				panic(fmt.Sprintf("hand: kicker rank %d out of range", k))
			}
			s += Strength(k)
		}
	}
	return s
}

// Category extracts the category digit.
func (s Strength) Category() Category {
	for i := 0; i < KickerWidth; i++ {
		s /= Radix
	}
	return Category(s)
}

// Evaluation is the result of ranking a hand.
type Evaluation struct {
	Category    Category    `json:"category"`
	Strength    Strength    `json:"strength"`
	Description string      `json:"description"`
	Cards       []deck.Card `json:"cards"` // the best five cards
}

// Compare returns -1, 0 or 1 when a is weaker than, ties or beats b.
func Compare(a, b Evaluation) int {
	switch {
	case a.Strength < b.Strength:
		return -1
	case a.Strength > b.Strength:
		return 1
	default:
		return 0
	}
}

// rankMask has bit r set for every rank r present.
type rankMask uint16

const wheelMask = rankMask(1<<deck.Ace | 1<<deck.Two | 1<<deck.Three | 1<<deck.Four | 1<<deck.Five)

// Evaluate ranks the best five card hand that can be made from 5 to 7 cards.
// Fewer than five cards, more than seven, invalid or repeated cards are caller
// bugs and make Evaluate panic.
func Evaluate(cards []deck.Card) Evaluation {
	if len(cards) < 5 || len(cards) > 7 {
		panic(fmt.Sprintf("hand: cannot evaluate %d cards", len(cards)))
	}

	var (
		counts   [deck.Ace + 1]int
		all      rankMask
		bySuit   [4]rankMask
		suitSize [4]int
		seen     [deck.Size]bool
	)
	for _, c := range cards {
		if !c.IsValid() {
			panic(fmt.Sprintf("hand: invalid card %v", c))
		}
		if seen[c.Index()] {
			panic(fmt.Sprintf("hand: duplicate card %s", c))
		}
		seen[c.Index()] = true
		counts[c.Rank()]++
		all |= 1 << c.Rank()
		bySuit[c.Suit()] |= 1 << c.Rank()
		suitSize[c.Suit()]++
	}

	flushSuit := -1
	for s, n := range suitSize {
		if n >= 5 {
			flushSuit = s
		}
	}

	if flushSuit >= 0 {
		if high, ok := straightHigh(bySuit[flushSuit]); ok {
			suit := deck.Suit(flushSuit)
			ranks := straightRanks(high)
			if high == deck.Ace {
				return build(RoyalFlush, ranks, pickSuited(cards, suit, ranks), "Royal Flush")
			}
			return build(StraightFlush, ranks, pickSuited(cards, suit, ranks),
				fmt.Sprintf("Straight Flush, %s high", high.Name()))
		}
	}

	var quads, trips, pairs, singles []deck.Rank
	for r := deck.Ace; r >= deck.Two; r-- {
		switch counts[r] {
		case 4:
			quads = append(quads, r)
		case 3:
			trips = append(trips, r)
		case 2:
			pairs = append(pairs, r)
		case 1:
			singles = append(singles, r)
		}
	}

	if len(quads) > 0 {
		q := quads[0]
		kicker := topRanks(all&^(1<<q), 1)
		ranks := []deck.Rank{q, q, q, q, kicker[0]}
		return build(FourOfAKind, []deck.Rank{q, kicker[0]}, pick(cards, ranks),
			fmt.Sprintf("Four of a Kind, %s", q.Plural()))
	}

	if len(trips) > 0 {
		t := trips[0]
		var p deck.Rank
		if len(trips) > 1 {
			p = trips[1]
		}
		if len(pairs) > 0 && pairs[0] > p {
			p = pairs[0]
		}
		if p != 0 {
			return build(FullHouse, []deck.Rank{t, p}, pick(cards, []deck.Rank{t, t, t, p, p}),
				fmt.Sprintf("Full House, %s full of %s", t.Plural(), p.Plural()))
		}
	}

	if flushSuit >= 0 {
		suit := deck.Suit(flushSuit)
		ranks := topRanks(bySuit[flushSuit], 5)
		return build(Flush, ranks, pickSuited(cards, suit, ranks),
			fmt.Sprintf("Flush, %s high", ranks[0].Name()))
	}

	if high, ok := straightHigh(all); ok {
		ranks := straightRanks(high)
		return build(Straight, ranks, pick(cards, ranks),
			fmt.Sprintf("Straight, %s high", high.Name()))
	}

	if len(trips) > 0 {
		t := trips[0]
		kickers := topRanks(all&^(1<<t), 2)
		return build(ThreeOfAKind, append([]deck.Rank{t}, kickers...),
			pick(cards, append([]deck.Rank{t, t, t}, kickers...)),
			fmt.Sprintf("Three of a Kind, %s", t.Plural()))
	}

	if len(pairs) >= 2 {
		hi, lo := pairs[0], pairs[1]
		kicker := topRanks(all&^(1<<hi|1<<lo), 1)
		return build(TwoPair, []deck.Rank{hi, lo, kicker[0]},
			pick(cards, []deck.Rank{hi, hi, lo, lo, kicker[0]}),
			fmt.Sprintf("Two Pair, %s and %s", hi.Plural(), lo.Plural()))
	}

	if len(pairs) == 1 {
		p := pairs[0]
		kickers := topRanks(all&^(1<<p), 3)
		return build(Pair, append([]deck.Rank{p}, kickers...),
			pick(cards, append([]deck.Rank{p, p}, kickers...)),
			fmt.Sprintf("Pair of %s", p.Plural()))
	}

	ranks := topRanks(all, 5)
	return build(HighCard, ranks, pick(cards, ranks),
		fmt.Sprintf("High Card, %s", ranks[0].Name()))
}

func build(c Category, kickers []deck.Rank, best []deck.Card, desc string) Evaluation {
	return Evaluation{
		Category:    c,
		Strength:    Pack(c, kickers...),
		Description: desc,
		Cards:       best,
	}
}

// straightHigh returns the high card of the best straight in m. The wheel is
// matched explicitly and reported as five high.
func straightHigh(m rankMask) (deck.Rank, bool) {
	for high := deck.Ace; high >= deck.Six; high-- {
		run := rankMask(0x1f) << (high - 4)
		if m&run == run {
			return high, true
		}
	}
	if m&wheelMask == wheelMask {
		return deck.Five, true
	}
	return 0, false
}

// straightRanks lists the ranks of the straight ending at high, in the order
// they are compared. The wheel ace sits at the bottom.
func straightRanks(high deck.Rank) []deck.Rank {
	if high == deck.Five {
		return []deck.Rank{deck.Five, deck.Four, deck.Three, deck.Two, deck.Ace}
	}
	return []deck.Rank{high, high - 1, high - 2, high - 3, high - 4}
}

// topRanks returns the n highest ranks set in m.
func topRanks(m rankMask, n int) []deck.Rank {
	out := make([]deck.Rank, 0, n)
	for m != 0 && len(out) < n {
		r := deck.Rank(15 - bits.LeadingZeros16(uint16(m)))
		out = append(out, r)
		m &^= 1 << r
	}
	return out
}

// pick selects one card per requested rank, never the same card twice.
func pick(cards []deck.Card, ranks []deck.Rank) []deck.Card {
	used := make([]bool, len(cards))
	out := make([]deck.Card, 0, len(ranks))
	for _, r := range ranks {
		for i, c := range cards {
			if !used[i] && c.Rank() == r {
				used[i] = true
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func pickSuited(cards []deck.Card, suit deck.Suit, ranks []deck.Rank) []deck.Card {
	out := make([]deck.Card, 0, len(ranks))
	for _, r := range ranks {
		for _, c := range cards {
			if c.Suit() == suit && c.Rank() == r {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
