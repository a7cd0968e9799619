package poker

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/luca-patrignani/holdem/domain/deck"
)

// Table owns the state of one poker table and is the only way to change it.
//
// A Table is not safe for concurrent use: callers must serialize calls per
// table, for example with a mutex or a single goroutine owning it. Every
// call runs to completion; a rejected call leaves the state untouched.
type Table struct {
	state     GameState
	cfg       TableConfig
	deck      *deck.Deck
	newDeck   DeckFactory
	logger    *slog.Logger
	observers []Observer
	now       func() time.Time
}

// NewTable creates an empty table. Players are seated with SeatPlayer and
// play starts with StartNewHand.
func NewTable(cfg TableConfig, opts ...TableOption) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Table{
		cfg:     cfg,
		newDeck: cryptoDeck,
		logger:  slog.Default(),
		now:     time.Now,
		state: GameState{
			HandNumber:        1,
			Round:             PreFlop,
			SmallBlind:        cfg.SmallBlind,
			BigBlind:          cfg.BigBlind,
			LastRaiseSize:     cfg.BigBlind,
			ActivePlayerIndex: -1,
			ActionTimeout:     cfg.ActionTimeout,
			HandComplete:      true,
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.state.TableID == "" {
		t.state.TableID = newTableID()
	}
	t.logger = t.logger.With("table", t.state.TableID)
	return t, nil
}

// Snapshot returns a deep copy of the current state, including the cards
// left in the deck.
func (t *Table) Snapshot() GameState {
	s := t.state.clone()
	if t.deck != nil {
		s.Deck = t.deck.Remaining()
	}
	return s
}

func (t *Table) inProgress() bool {
	return !t.state.HandComplete
}

// SeatPlayer adds a player in the lowest free seat. Players can only join
// between hands.
func (t *Table) SeatPlayer(id, name string, chips uint, isAI bool) error {
	if t.inProgress() {
		return fmt.Errorf("%w: cannot seat %s", ErrHandInProgress, id)
	}
	if t.state.FindPlayerIndex(id) != -1 {
		return fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
	}
	if len(t.state.Players) >= t.cfg.MaxSeats {
		return fmt.Errorf("%w: %d seats", ErrTableFull, t.cfg.MaxSeats)
	}
	if chips == 0 {
		return fmt.Errorf("%w: %s has no chips", ErrInsufficientChips, id)
	}

	taken := map[int]bool{}
	for _, p := range t.state.Players {
		taken[p.Seat] = true
	}
	seat := 0
	for taken[seat] {
		seat++
	}

	dealerID := t.dealerID()
	t.state.Players = append(t.state.Players, Player{
		ID:          id,
		Name:        name,
		IsAI:        isAI,
		Chips:       chips,
		IsConnected: true,
		Seat:        seat,
	})
	sort.Slice(t.state.Players, func(i, j int) bool {
		return t.state.Players[i].Seat < t.state.Players[j].Seat
	})
	t.restoreDealer(dealerID)

	t.logger.Info("player seated", "player", id, "seat", seat, "chips", chips)
	t.notify()
	return nil
}

// RemovePlayer unseats a player between hands.
func (t *Table) RemovePlayer(id string) error {
	if t.inProgress() {
		return fmt.Errorf("%w: cannot remove %s", ErrHandInProgress, id)
	}
	idx := t.state.FindPlayerIndex(id)
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	dealerID := t.dealerID()
	t.state.Players = append(t.state.Players[:idx], t.state.Players[idx+1:]...)
	if dealerID == id {
		// the button stays on the seat, which now holds the next player
		t.state.DealerPosition = idx
		t.clampDealer()
	} else {
		t.restoreDealer(dealerID)
	}
	t.logger.Info("player removed", "player", id)
	t.notify()
	return nil
}

// SetConnected records whether a player is connected. Disconnected players
// are skipped when choosing who acts next but still have to match the bet
// before the round closes; folding them on timeout is up to the
// orchestrator. A player reconnecting while the table waits on them takes
// the turn.
func (t *Table) SetConnected(id string, connected bool) error {
	idx := t.state.FindPlayerIndex(id)
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	if t.state.Players[idx].IsConnected == connected {
		return nil
	}
	t.state.Players[idx].IsConnected = connected
	t.logger.Info("player connection changed", "player", id, "connected", connected)
	if connected && t.inProgress() && t.state.ActivePlayerIndex == -1 && t.needsAction(t.state.Players[idx]) {
		t.setActive(idx)
	}
	t.notify()
	return nil
}

func (t *Table) dealerID() string {
	if t.state.DealerPosition < 0 || t.state.DealerPosition >= len(t.state.Players) {
		return ""
	}
	return t.state.Players[t.state.DealerPosition].ID
}

func (t *Table) restoreDealer(id string) {
	if idx := t.state.FindPlayerIndex(id); idx != -1 {
		t.state.DealerPosition = idx
		return
	}
	t.clampDealer()
}

func (t *Table) clampDealer() {
	if n := len(t.state.Players); n == 0 || t.state.DealerPosition >= n || t.state.DealerPosition < 0 {
		t.state.DealerPosition = 0
	}
}

// StartNewHand shuffles a new deck, deals the hole cards, posts the blinds
// and hands the action to the first player.
func (t *Table) StartNewHand() error {
	if t.inProgress() {
		return fmt.Errorf("%w: hand %d is not complete", ErrHandInProgress, t.state.HandNumber)
	}
	funded := 0
	for _, p := range t.state.Players {
		if p.Chips > 0 {
			funded++
		}
	}
	if funded < 2 {
		return fmt.Errorf("%w: need 2 players with chips, have %d", ErrNotEnoughPlayers, funded)
	}
	d, err := t.newDeck()
	if err != nil {
		return fmt.Errorf("build deck: %w", err)
	}
	n := len(t.state.Players)
	if need := 2*n + 8; d.Len() < need {
		return fmt.Errorf("%w: hand needs %d cards, deck has %d", deck.ErrExhaustedDeck, need, d.Len())
	}

	s := &t.state
	t.deck = d
	t.clampDealer()
	s.Round = PreFlop
	s.CommunityCards = []deck.Card{}
	s.CurrentBet = 0
	s.LastRaiseSize = s.BigBlind
	s.Pot = 0
	s.SidePots = nil
	s.Winners = nil
	s.LastAction = nil
	s.HandComplete = false
	for i := range s.Players {
		p := &s.Players[i]
		p.HoleCards = nil
		p.CurrentBet = 0
		p.TotalBet = 0
		p.HasActed = false
		p.IsFolded = false
		p.IsAllIn = false
		p.IsDealer = i == s.DealerPosition
		p.IsSmallBlind = false
		p.IsBigBlind = false
	}

	hole, err := d.DealHole(n, 2)
	if err != nil {
		panic(fmt.Sprintf("poker: %v", err))
	}
	for k, cards := range hole {
		s.Players[(s.DealerPosition+1+k)%n].HoleCards = cards
	}

	sb, bb := t.blindPositions()
	s.Players[sb].IsSmallBlind = true
	s.Players[bb].IsBigBlind = true
	t.pay(sb, min(s.SmallBlind, s.Players[sb].Chips))
	t.pay(bb, min(s.BigBlind, s.Players[bb].Chips))
	s.CurrentBet = s.BigBlind

	t.logger.Info("hand started",
		"hand", s.HandNumber,
		"dealer", s.Players[s.DealerPosition].ID,
		"small_blind", s.Players[sb].ID,
		"big_blind", s.Players[bb].ID,
		"players", n)

	if t.roundComplete() {
		t.completeRound()
	} else {
		t.advance(bb)
	}
	t.notify()
	return nil
}

// blindPositions returns the small and big blind seats. Heads-up the dealer
// posts the small blind.
func (t *Table) blindPositions() (sb, bb int) {
	n := len(t.state.Players)
	d := t.state.DealerPosition
	if n == 2 {
		return d, (d + 1) % n
	}
	return (d + 1) % n, (d + 2) % n
}

// ProcessAction validates and applies an action of playerID, then moves the
// hand forward: to the next player, the next street or the settlement.
//
// A disconnected player may only fold, and may do so out of turn. While a
// disconnected player owes chips the betting round cannot close; if nobody
// else owes a decision the table waits with no active player.
func (t *Table) ProcessAction(playerID string, a Action) error {
	if !t.inProgress() {
		return ErrNoHandInProgress
	}
	idx := t.state.FindPlayerIndex(playerID)
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	p := t.state.Players[idx]
	if !p.IsConnected && a.Type != ActionFold {
		return fmt.Errorf("%w: %s", ErrPlayerDisconnected, playerID)
	}
	if idx != t.state.ActivePlayerIndex && p.IsConnected {
		if active, ok := t.state.ActivePlayer(); ok {
			return fmt.Errorf("%w: %s to act, not %s", ErrNotPlayersTurn, active.ID, playerID)
		}
		return fmt.Errorf("%w: %s", ErrNotPlayersTurn, playerID)
	}
	if p.IsFolded {
		return fmt.Errorf("%w: %s", ErrPlayerAlreadyFolded, playerID)
	}
	if p.IsAllIn {
		return fmt.Errorf("%w: %s", ErrPlayerAlreadyAllIn, playerID)
	}
	if err := t.checkAction(idx, a); err != nil {
		t.logger.Debug("action rejected", "player", playerID, "action", a.Type, "amount", a.Amount, "err", err)
		return err
	}

	moved := t.applyAction(idx, a)
	t.state.Players[idx].HasActed = true
	t.state.LastAction = &PlayerAction{
		PlayerID: playerID,
		Type:     a.Type,
		Amount:   moved,
		Round:    t.state.Round,
	}
	t.logger.Debug("action applied", "player", playerID, "action", a.Type, "moved", moved, "pot", t.state.Pot)

	switch {
	case t.countNotFolded() <= 1:
		t.settle()
	case t.roundComplete():
		t.completeRound()
	case idx == t.state.ActivePlayerIndex:
		t.advance(idx)
	}
	t.notify()
	return nil
}

// CanAct reports whether it is playerID's turn and they are able to act.
func (t *Table) CanAct(playerID string) bool {
	if !t.inProgress() {
		return false
	}
	idx := t.state.FindPlayerIndex(playerID)
	return idx != -1 && idx == t.state.ActivePlayerIndex && t.state.Players[idx].canAct()
}

// ValidActions lists the action kinds playerID may submit now. Bets and
// raises are listed when their minimum size is affordable. A disconnected
// player still in the hand can only fold.
func (t *Table) ValidActions(playerID string) []ActionType {
	if t.inProgress() {
		if idx := t.state.FindPlayerIndex(playerID); idx != -1 {
			if p := t.state.Players[idx]; p.inHand() && !p.IsConnected {
				return []ActionType{ActionFold}
			}
		}
	}
	if !t.CanAct(playerID) {
		return nil
	}
	idx := t.state.ActivePlayerIndex
	s := t.state
	probes := []Action{
		{Type: ActionFold},
		{Type: ActionCheck},
		{Type: ActionCall},
		{Type: ActionBet, Amount: s.BigBlind},
		{Type: ActionRaise, Amount: s.CurrentBet + s.LastRaiseSize},
		{Type: ActionAllIn},
	}
	var valid []ActionType
	for _, a := range probes {
		if t.checkAction(idx, a) == nil {
			valid = append(valid, a.Type)
		}
	}
	return valid
}

func (t *Table) setActive(idx int) {
	t.state.ActivePlayerIndex = idx
	if idx == -1 {
		t.state.TurnStartedAt = time.Time{}
		return
	}
	t.state.TurnStartedAt = t.now()
}

func (t *Table) notify() {
	if len(t.observers) == 0 {
		return
	}
	for _, o := range t.observers {
		o.OnStateChange(t.Snapshot())
	}
}
