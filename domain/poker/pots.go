package poker

import (
	"slices"
)

// potLayer is a pot with the table indices of the players who can win it.
type potLayer struct {
	amount   uint
	eligible []int
}

// buildPots splits the chips committed in the hand into a main pot and side
// pots. Contributions are layered by the distinct TotalBet levels: each
// layer takes its width from every player who reached it, folded players
// included, and can be won by the non-folded players among them. A layer
// reached by a single player is an uncalled bet and is returned in refunds
// instead. Consecutive layers with the same eligible players are merged.
func buildPots(players []Player) (pots []potLayer, refunds map[int]uint) {
	refunds = map[int]uint{}

	var levels []uint
	for _, p := range players {
		if p.TotalBet > 0 && !slices.Contains(levels, p.TotalBet) {
			levels = append(levels, p.TotalBet)
		}
	}
	slices.Sort(levels)

	var (
		prev  uint
		carry uint
	)
	for _, level := range levels {
		width := level - prev
		prev = level

		var contributors, eligible []int
		for i, p := range players {
			if p.TotalBet >= level {
				contributors = append(contributors, i)
				if !p.IsFolded {
					eligible = append(eligible, i)
				}
			}
		}
		if len(contributors) == 1 {
			refunds[contributors[0]] += width
			continue
		}

		amount := width * uint(len(contributors))
		switch {
		case len(eligible) == 0 && len(pots) > 0:
			pots[len(pots)-1].amount += amount
		case len(eligible) == 0:
			carry += amount
		case len(pots) > 0 && slices.Equal(pots[len(pots)-1].eligible, eligible):
			pots[len(pots)-1].amount += amount
		default:
			pots = append(pots, potLayer{amount: amount + carry, eligible: eligible})
			carry = 0
		}
	}
	return pots, refunds
}
