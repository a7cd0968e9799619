// Package poker implements the rules engine of a Texas Hold'em table:
// seating, blinds, action validation, street progression, side pots and
// settlement.
//
// # Core Types
//
// Table: The single owner of a table's state. Hands are driven by
// StartNewHand and ProcessAction; seats only change between hands.
//
// GameState: The snapshot returned by Table.Snapshot and passed to
// observers. It is a deep copy and never aliases the table.
//
// Player: A seated player with chips, hole cards and betting state.
//
// Action: A player's request (fold, check, call, bet, raise, all-in).
//
// # Game Flow
//
// A hand progresses through rounds: PreFlop → Flop → Turn → River → Showdown.
// It ends early when all but one player fold, and runs the board out without
// betting when no more than one player can still bet.
//
// # Pots
//
// At settlement the committed chips are layered by contribution level into a
// main pot and side pots. A top layer nobody called is returned to its owner.
// Ties split a pot evenly; odd chips go one by one to the winners closest to
// the left of the button.
package poker
