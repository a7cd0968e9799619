package ledger

import "github.com/luca-patrignani/holdem/domain/poker"

// Block is one recorded table snapshot in the history
type Block struct {
	Index      int                 `json:"index"`
	Timestamp  int64               `json:"timestamp"`
	PrevHash   string              `json:"prev_hash"`
	Hash       string              `json:"hash"`
	HandNumber int                 `json:"hand_number"`      // 0 before the first hand starts
	Action     *poker.PlayerAction `json:"action,omitempty"` // last accepted action of the hand
	State      poker.GameState     `json:"state"`
}

// handOf returns the hand a snapshot belongs to. A settled snapshot already
// carries the number of the next hand.
func handOf(s poker.GameState) int {
	if s.HandComplete {
		return s.HandNumber - 1
	}
	return s.HandNumber
}
