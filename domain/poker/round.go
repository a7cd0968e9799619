package poker

import "fmt"

type Round string

const (
	PreFlop  Round = "preflop"
	Flop     Round = "flop"
	Turn     Round = "turn"
	River    Round = "river"
	Showdown Round = "showdown"
)

// nextRound returns the street after current. Showdown is terminal.
func nextRound(current Round) Round {
	switch current {
	case PreFlop:
		return Flop
	case Flop:
		return Turn
	case Turn:
		return River
	default:
		return Showdown
	}
}

// communityCount is the number of cards revealed when entering the round.
func communityCount(r Round) int {
	switch r {
	case Flop:
		return 3
	case Turn, River:
		return 1
	default:
		return 0
	}
}

// needsAction reports whether the player still owes a decision in the
// current betting round.
func (t *Table) needsAction(p Player) bool {
	return p.canAct() && (!p.HasActed || p.CurrentBet < t.state.CurrentBet)
}

// roundComplete reports whether the current betting round is over: nobody
// owes a decision, or a single player is left able to bet and faces nothing
// to call. A disconnected player who has not matched the bet keeps the round
// open until they are folded or reconnect.
func (t *Table) roundComplete() bool {
	able := 0
	pending := false
	var last Player
	for _, p := range t.state.Players {
		if !p.inHand() {
			continue
		}
		if !p.IsConnected && p.CurrentBet < t.state.CurrentBet {
			return false
		}
		able++
		last = p
		if t.needsAction(p) {
			pending = true
		}
	}
	if !pending {
		return true
	}
	return able == 1 && last.CurrentBet >= t.state.CurrentBet
}

// completeRound moves to the next street, or settles when the river betting
// is over or nobody can respond to a bet any more.
func (t *Table) completeRound() {
	if t.countInHand() <= 1 {
		t.runOut()
		t.settle()
		return
	}
	if t.state.Round == River {
		t.state.Round = Showdown
		t.settle()
		return
	}
	t.nextStreet()
	if t.roundComplete() {
		t.completeRound()
		return
	}
	t.advance(t.state.DealerPosition)
}

// nextStreet resets the betting round and reveals the next community cards.
func (t *Table) nextStreet() {
	s := &t.state
	s.Round = nextRound(s.Round)
	for i := range s.Players {
		s.Players[i].CurrentBet = 0
		s.Players[i].HasActed = false
	}
	s.CurrentBet = 0
	s.LastRaiseSize = s.BigBlind

	cards, err := t.deck.DealStreet(communityCount(s.Round))
	if err != nil {
		panic(fmt.Sprintf("poker: %v", err))
	}
	s.CommunityCards = append(s.CommunityCards, cards...)
	t.logger.Info("street dealt", "hand", s.HandNumber, "round", s.Round, "board", fmt.Sprint(s.CommunityCards))
}

// runOut deals every remaining street without betting.
func (t *Table) runOut() {
	for t.state.Round != River && t.state.Round != Showdown {
		t.nextStreet()
	}
	t.state.Round = Showdown
	t.setActive(-1)
}

// nextToAct returns the first connected player after from, in seating order
// and wrapping around, who still owes a decision, or -1 if none does.
func (t *Table) nextToAct(from int) int {
	n := len(t.state.Players)
	for i := 1; i <= n; i++ {
		next := (from + i) % n
		if t.needsAction(t.state.Players[next]) {
			return next
		}
	}
	return -1
}

// advance hands the turn to the next player after from. When only
// disconnected players owe chips nobody is active, and TurnStartedAt marks
// the start of the wait for the orchestrator to fold them.
func (t *Table) advance(from int) {
	next := t.nextToAct(from)
	t.setActive(next)
	if next == -1 {
		t.state.TurnStartedAt = t.now()
	}
}

func (t *Table) countInHand() int {
	count := 0
	for _, p := range t.state.Players {
		if p.inHand() {
			count++
		}
	}
	return count
}

func (t *Table) countNotFolded() int {
	count := 0
	for _, p := range t.state.Players {
		if !p.IsFolded {
			count++
		}
	}
	return count
}
