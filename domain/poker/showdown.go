package poker

import (
	"slices"

	"github.com/luca-patrignani/holdem/domain/deck"
	"github.com/luca-patrignani/holdem/domain/hand"
)

// settle refunds uncalled bets, awards every pot and prepares the table for
// the next hand. Hands are only evaluated when more than one player is left.
func (t *Table) settle() {
	s := &t.state
	n := len(s.Players)

	pots, refunds := buildPots(s.Players)
	for idx, amount := range refunds {
		s.Players[idx].Chips += amount
		s.Pot -= amount
	}

	contested := t.countNotFolded() > 1
	evals := map[int]hand.Evaluation{}
	if contested {
		s.Round = Showdown
		for i, p := range s.Players {
			if p.IsFolded {
				continue
			}
			cards := make([]deck.Card, 0, 7)
			cards = append(cards, p.HoleCards...)
			cards = append(cards, s.CommunityCards...)
			evals[i] = hand.Evaluate(cards)
		}
	}

	won := make([]uint, n)
	s.SidePots = make([]SidePot, 0, len(pots))
	for i, pot := range pots {
		winners := slices.Clone(pot.eligible)
		if contested {
			winners = bestHands(pot.eligible, evals)
		}
		t.orderFromButton(winners)
		share := pot.amount / uint(len(winners))
		remainder := pot.amount % uint(len(winners))
		for k, w := range winners {
			won[w] += share
			if uint(k) < remainder {
				won[w]++
			}
		}

		ids := make([]string, len(pot.eligible))
		for k, e := range pot.eligible {
			ids[k] = s.Players[e].ID
		}
		s.SidePots = append(s.SidePots, SidePot{Amount: pot.amount, EligiblePlayerIDs: ids, IsMain: i == 0})
	}

	s.Winners = nil
	for i := range s.Players {
		if won[i] == 0 {
			continue
		}
		p := &s.Players[i]
		p.Chips += won[i]
		w := Winner{PlayerID: p.ID, Name: p.Name, Amount: won[i], Refunded: refunds[i]}
		if ev, ok := evals[i]; ok {
			w.Hand = &ev
		}
		s.Winners = append(s.Winners, w)
	}

	s.HandComplete = true
	t.setActive(-1)
	t.logger.Info("hand settled", "hand", s.HandNumber, "pot", s.Pot, "pots", len(s.SidePots), "winners", len(s.Winners), "showdown", contested)
	t.prepareNextHand()
}

// bestHands returns the eligible players holding the strongest hand.
func bestHands(eligible []int, evals map[int]hand.Evaluation) []int {
	var best hand.Strength
	var winners []int
	for _, idx := range eligible {
		switch st := evals[idx].Strength; {
		case len(winners) == 0 || st > best:
			best = st
			winners = []int{idx}
		case st == best:
			winners = append(winners, idx)
		}
	}
	return winners
}

// orderFromButton sorts table indices clockwise starting left of the
// dealer, the order odd chips are handed out in.
func (t *Table) orderFromButton(idxs []int) {
	n := len(t.state.Players)
	d := t.state.DealerPosition
	dist := func(i int) int { return (i - d - 1 + n) % n }
	for i := 1; i < len(idxs); i++ {
		for j := i; j > 0 && dist(idxs[j]) < dist(idxs[j-1]); j-- {
			idxs[j], idxs[j-1] = idxs[j-1], idxs[j]
		}
	}
}

// prepareNextHand moves the button to the next player with chips, removes
// busted players and discards the deck.
func (t *Table) prepareNextHand() {
	s := &t.state
	n := len(s.Players)
	nextDealer := ""
	for i := 1; i <= n; i++ {
		p := s.Players[(s.DealerPosition+i)%n]
		if p.Chips > 0 {
			nextDealer = p.ID
			break
		}
	}

	kept := s.Players[:0]
	for _, p := range s.Players {
		if p.Chips == 0 {
			t.logger.Info("player busted", "player", p.ID, "hand", s.HandNumber)
			continue
		}
		kept = append(kept, p)
	}
	s.Players = kept
	s.DealerPosition = 0
	t.restoreDealer(nextDealer)

	s.HandNumber++
	t.deck = nil
}
