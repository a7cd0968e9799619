package poker

import (
	"time"

	"github.com/luca-patrignani/holdem/domain/deck"
	"github.com/luca-patrignani/holdem/domain/hand"
)

type Player struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	IsAI        bool        `json:"is_ai"`
	Chips       uint        `json:"chips"`
	HoleCards   []deck.Card `json:"hole_cards"`
	CurrentBet  uint        `json:"current_bet"` // wagered in the current betting round
	TotalBet    uint        `json:"total_bet"`   // wagered in the whole hand
	HasActed    bool        `json:"has_acted"`   // acted since the last full bet or raise
	IsFolded    bool        `json:"is_folded"`
	IsAllIn     bool        `json:"is_all_in"`
	IsConnected bool        `json:"is_connected"`
	Seat        int         `json:"seat"`

	IsDealer     bool `json:"is_dealer"`
	IsSmallBlind bool `json:"is_small_blind"`
	IsBigBlind   bool `json:"is_big_blind"`
}

// inHand reports whether the player still has chips at stake in the
// betting, connected or not.
func (p Player) inHand() bool {
	return !p.IsFolded && !p.IsAllIn
}

// canAct reports whether the player may still take voluntary actions.
func (p Player) canAct() bool {
	return p.inHand() && p.IsConnected
}

type ActionType string

const (
	ActionFold  ActionType = "fold"
	ActionCheck ActionType = "check"
	ActionCall  ActionType = "call"
	ActionBet   ActionType = "bet"
	ActionRaise ActionType = "raise"
	ActionAllIn ActionType = "allin"
)

// Action is a request from a player. Amount is only read for bets, where it
// is the size of the bet, and raises, where it is the new table bet the
// player raises to.
type Action struct {
	Type   ActionType `json:"type"`
	Amount uint       `json:"amount,omitempty"`
}

// PlayerAction records an accepted action. Amount is the number of chips the
// player moved into the pot.
type PlayerAction struct {
	PlayerID string     `json:"player_id"`
	Type     ActionType `json:"type"`
	Amount   uint       `json:"amount"`
	Round    Round      `json:"round"`
}

type SidePot struct {
	Amount            uint     `json:"amount"`
	EligiblePlayerIDs []string `json:"eligible_player_ids"`
	IsMain            bool     `json:"is_main"`
}

// Winner sums what a player took from every pot of a hand. Hand is nil when
// the pot was not contested.
type Winner struct {
	PlayerID string           `json:"player_id"`
	Name     string           `json:"name"`
	Amount   uint             `json:"amount"`
	Refunded uint             `json:"refunded,omitempty"` // uncalled bet returned to the player
	Hand     *hand.Evaluation `json:"hand,omitempty"`
}

// GameState is the full state of a table. Values returned by Table.Snapshot
// are deep copies and can be read or kept freely.
type GameState struct {
	TableID           string        `json:"table_id"`
	HandNumber        int           `json:"hand_number"`
	Players           []Player      `json:"players"`
	DealerPosition    int           `json:"dealer_position"`
	Deck              []deck.Card   `json:"deck,omitempty"`
	CommunityCards    []deck.Card   `json:"community_cards"`
	Round             Round         `json:"round"`
	CurrentBet        uint          `json:"current_bet"`
	LastRaiseSize     uint          `json:"last_raise_size"`
	Pot               uint          `json:"pot"`
	SidePots          []SidePot     `json:"side_pots,omitempty"`
	SmallBlind        uint          `json:"small_blind"`
	BigBlind          uint          `json:"big_blind"`
	ActivePlayerIndex int           `json:"active_player_index"` // -1 when nobody may act
	LastAction        *PlayerAction `json:"last_action,omitempty"`
	ActionTimeout     time.Duration `json:"action_timeout"`
	TurnStartedAt     time.Time     `json:"turn_started_at"`
	HandComplete      bool          `json:"hand_complete"`
	Winners           []Winner      `json:"winners,omitempty"`
}

// ActivePlayer returns the player expected to act, if any.
func (s GameState) ActivePlayer() (Player, bool) {
	if s.ActivePlayerIndex < 0 || s.ActivePlayerIndex >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.ActivePlayerIndex], true
}

// FindPlayerIndex returns the index of the player with the given ID, or -1 if not found.
func (s GameState) FindPlayerIndex(playerID string) int {
	for i, p := range s.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// ViewFor returns a copy of the state safe to send to playerID: the deck is
// dropped and every other player's hole cards are hidden. Once a hand is
// complete the cards of players who reached showdown stay visible.
func (s GameState) ViewFor(playerID string) GameState {
	v := s.clone()
	v.Deck = nil
	shown := map[string]bool{}
	if v.HandComplete {
		for _, w := range v.Winners {
			if w.Hand != nil {
				for _, p := range v.Players {
					if !p.IsFolded {
						shown[p.ID] = true
					}
				}
				break
			}
		}
	}
	for i := range v.Players {
		if v.Players[i].ID != playerID && !shown[v.Players[i].ID] {
			v.Players[i].HoleCards = nil
		}
	}
	return v
}

func (s GameState) clone() GameState {
	c := s
	c.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		p.HoleCards = cloneCards(p.HoleCards)
		c.Players[i] = p
	}
	c.Deck = cloneCards(s.Deck)
	c.CommunityCards = cloneCards(s.CommunityCards)
	if s.SidePots != nil {
		c.SidePots = make([]SidePot, len(s.SidePots))
		for i, sp := range s.SidePots {
			sp.EligiblePlayerIDs = append([]string(nil), sp.EligiblePlayerIDs...)
			c.SidePots[i] = sp
		}
	}
	if s.Winners != nil {
		c.Winners = make([]Winner, len(s.Winners))
		for i, w := range s.Winners {
			if w.Hand != nil {
				h := *w.Hand
				h.Cards = cloneCards(h.Cards)
				w.Hand = &h
			}
			c.Winners[i] = w
		}
	}
	if s.LastAction != nil {
		la := *s.LastAction
		c.LastAction = &la
	}
	return c
}

func cloneCards(cards []deck.Card) []deck.Card {
	if cards == nil {
		return nil
	}
	return append([]deck.Card(nil), cards...)
}
