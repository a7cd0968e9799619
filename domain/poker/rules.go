package poker

import "fmt"

// checkAction validates a against the betting context of the player at idx.
// It never modifies the table.
func (t *Table) checkAction(idx int, a Action) error {
	s := t.state
	p := s.Players[idx]
	toCall := s.CurrentBet - p.CurrentBet

	switch a.Type {
	case ActionFold:
		return nil
	case ActionCheck:
		if toCall > 0 {
			return fmt.Errorf("%w: %d to call", ErrCannotCheckFacingBet, toCall)
		}
	case ActionCall:
		if toCall == 0 {
			return fmt.Errorf("%w: check instead", ErrNothingToCall)
		}
		if p.Chips < toCall {
			return fmt.Errorf("%w: call needs %d, have %d, go all-in instead", ErrInsufficientChips, toCall, p.Chips)
		}
	case ActionBet:
		if s.CurrentBet > 0 {
			return fmt.Errorf("%w: current bet is %d", ErrBetAlreadyOpened, s.CurrentBet)
		}
		if a.Amount < s.BigBlind {
			return fmt.Errorf("%w: minimum bet is %d, got %d", ErrBelowMinimumBet, s.BigBlind, a.Amount)
		}
		if a.Amount > p.Chips {
			return fmt.Errorf("%w: bet of %d, have %d", ErrInsufficientChips, a.Amount, p.Chips)
		}
	case ActionRaise:
		if s.CurrentBet == 0 {
			return ErrNoBetToRaise
		}
		if p.HasActed {
			return fmt.Errorf("%w: the last all-in was below a full raise", ErrActionNotReopened)
		}
		minRaise := s.CurrentBet + s.LastRaiseSize
		if a.Amount < minRaise {
			return fmt.Errorf("%w: minimum raise is to %d, got %d", ErrBelowMinimumRaise, minRaise, a.Amount)
		}
		if a.Amount-p.CurrentBet > p.Chips {
			return fmt.Errorf("%w: raise to %d needs %d, have %d", ErrInsufficientChips, a.Amount, a.Amount-p.CurrentBet, p.Chips)
		}
	case ActionAllIn:
		if p.Chips == 0 {
			return fmt.Errorf("%w: no chips left", ErrInsufficientChips)
		}
		if p.HasActed && p.CurrentBet+p.Chips > s.CurrentBet {
			return fmt.Errorf("%w: all-in of %d would raise", ErrActionNotReopened, p.Chips)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	return nil
}
