package poker

// applyAction moves the chips of a validated action and returns how many
// went into the pot.
func (t *Table) applyAction(idx int, a Action) uint {
	s := &t.state
	p := &s.Players[idx]

	switch a.Type {
	case ActionFold:
		p.IsFolded = true
		return 0
	case ActionCheck:
		return 0
	case ActionCall:
		return t.pay(idx, s.CurrentBet-p.CurrentBet)
	case ActionBet:
		moved := t.pay(idx, a.Amount)
		t.raiseTo(idx, a.Amount, true)
		return moved
	case ActionRaise:
		moved := t.pay(idx, a.Amount-p.CurrentBet)
		t.raiseTo(idx, a.Amount, true)
		return moved
	case ActionAllIn:
		moved := t.pay(idx, p.Chips)
		if p.CurrentBet > s.CurrentBet {
			full := p.CurrentBet-s.CurrentBet >= s.LastRaiseSize
			t.raiseTo(idx, p.CurrentBet, full)
		}
		return moved
	}
	return 0
}

// pay moves amount from the player's stack into the pot.
func (t *Table) pay(idx int, amount uint) uint {
	p := &t.state.Players[idx]
	p.Chips -= amount
	p.CurrentBet += amount
	p.TotalBet += amount
	t.state.Pot += amount
	if p.Chips == 0 {
		p.IsAllIn = true
	}
	return amount
}

// raiseTo lifts the table bet to level. A full bet or raise sets the new
// minimum increment and gives every other player still able to bet a new
// turn; a short all-in only raises the amount to call.
func (t *Table) raiseTo(idx int, level uint, full bool) {
	s := &t.state
	if full {
		s.LastRaiseSize = level - s.CurrentBet
		for i := range s.Players {
			if i != idx && !s.Players[i].IsFolded && !s.Players[i].IsAllIn {
				s.Players[i].HasActed = false
			}
		}
	}
	s.CurrentBet = level
}
