package poker

import (
	"errors"
	"reflect"
	"slices"
	"testing"
)

func TestNewTableValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  TableConfig
	}{
		{"no big blind", TableConfig{SmallBlind: 5}},
		{"small above big", TableConfig{SmallBlind: 20, BigBlind: 10}},
		{"no small blind", TableConfig{BigBlind: 10}},
		{"one seat", TableConfig{SmallBlind: 5, BigBlind: 10, MaxSeats: 1}},
		{"too many seats", TableConfig{SmallBlind: 5, BigBlind: 10, MaxSeats: 11}},
		{"negative timeout", TableConfig{SmallBlind: 5, BigBlind: 10, ActionTimeout: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTable(tt.cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	tb, err := NewTable(TableConfig{SmallBlind: 5, BigBlind: 10}, WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	s := tb.Snapshot()
	if s.TableID == "" {
		t.Error("expected a generated table id")
	}
	if s.ActionTimeout != DefaultActionTimeout {
		t.Errorf("expected default timeout, got %s", s.ActionTimeout)
	}
	if !s.HandComplete || s.ActivePlayerIndex != -1 {
		t.Error("a new table has no hand in progress")
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	tb := newTestTable(t, []string{"a", "b"}, []uint{1000, 1000}, WithLogger(nil))
	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	mustAct(t, tb, "a", fold)
	if !tb.Snapshot().HandComplete {
		t.Fatal("expected the hand to be over")
	}
}

func TestSeating(t *testing.T) {
	tb := newTestTable(t, []string{"a", "b"}, []uint{100, 100})
	if err := tb.SeatPlayer("a", "again", 100, false); !errors.Is(err, ErrDuplicatePlayer) {
		t.Errorf("expected ErrDuplicatePlayer, got %v", err)
	}
	if err := tb.SeatPlayer("c", "broke", 0, false); !errors.Is(err, ErrInsufficientChips) {
		t.Errorf("expected ErrInsufficientChips, got %v", err)
	}
	if err := tb.RemovePlayer("a"); err != nil {
		t.Fatal(err)
	}
	if err := tb.SeatPlayer("c", "C", 100, true); err != nil {
		t.Fatal(err)
	}
	s := tb.Snapshot()
	if s.Players[0].ID != "c" || s.Players[0].Seat != 0 || !s.Players[0].IsAI {
		t.Errorf("expected c in the freed seat 0, got %+v", s.Players[0])
	}
	if err := tb.RemovePlayer("zz"); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("expected ErrPlayerNotFound, got %v", err)
	}

	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	if err := tb.SeatPlayer("d", "D", 100, false); !errors.Is(err, ErrHandInProgress) {
		t.Errorf("expected ErrHandInProgress, got %v", err)
	}
	if err := tb.RemovePlayer("b"); !errors.Is(err, ErrHandInProgress) {
		t.Errorf("expected ErrHandInProgress, got %v", err)
	}
}

func TestTableFull(t *testing.T) {
	tb, err := NewTable(TableConfig{SmallBlind: 1, BigBlind: 2, MaxSeats: 2}, WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	_ = tb.SeatPlayer("a", "A", 10, false)
	_ = tb.SeatPlayer("b", "B", 10, false)
	if err := tb.SeatPlayer("c", "C", 10, false); !errors.Is(err, ErrTableFull) {
		t.Fatalf("expected ErrTableFull, got %v", err)
	}
}

func TestStartNewHandSetupErrors(t *testing.T) {
	tb := newTestTable(t, []string{"a"}, []uint{100})
	before := tb.Snapshot()
	if err := tb.StartNewHand(); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Fatalf("expected ErrNotEnoughPlayers, got %v", err)
	}
	if !reflect.DeepEqual(before, tb.Snapshot()) {
		t.Fatal("failed start must not change the table")
	}
	if err := tb.ProcessAction("a", check); !errors.Is(err, ErrNoHandInProgress) {
		t.Fatalf("expected ErrNoHandInProgress, got %v", err)
	}

	tb = newTestTable(t, []string{"a", "b"}, []uint{100, 100})
	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	if err := tb.StartNewHand(); !errors.Is(err, ErrHandInProgress) {
		t.Fatalf("expected ErrHandInProgress, got %v", err)
	}
}

func TestStartNewHandDealsAndPostsBlinds(t *testing.T) {
	tb := newTestTable(t, []string{"a", "b", "c", "d"}, []uint{1000, 1000, 1000, 1000})
	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	s := tb.Snapshot()
	if s.Round != PreFlop || s.HandComplete {
		t.Fatalf("expected a running preflop, got %s complete=%v", s.Round, s.HandComplete)
	}
	if len(s.Deck) != 52-8 {
		t.Errorf("expected %d cards left, got %d", 52-8, len(s.Deck))
	}
	for _, p := range s.Players {
		if len(p.HoleCards) != 2 {
			t.Errorf("%s has %d hole cards", p.ID, len(p.HoleCards))
		}
	}
	if !s.Players[0].IsDealer || !s.Players[1].IsSmallBlind || !s.Players[2].IsBigBlind {
		t.Errorf("unexpected roles: %+v", s.Players)
	}
	if s.Players[1].CurrentBet != 5 || s.Players[2].CurrentBet != 10 {
		t.Errorf("blinds not posted: sb %d bb %d", s.Players[1].CurrentBet, s.Players[2].CurrentBet)
	}
	if s.Pot != 15 || s.CurrentBet != 10 || s.LastRaiseSize != 10 {
		t.Errorf("pot %d bet %d raise %d", s.Pot, s.CurrentBet, s.LastRaiseSize)
	}
	if activeID(s) != "d" {
		t.Errorf("first to act preflop must follow the big blind, got %s", activeID(s))
	}
	if !s.TurnStartedAt.Equal(testTime) {
		t.Errorf("turn clock not started: %s", s.TurnStartedAt)
	}
}

func TestHeadsUpTurnOrder(t *testing.T) {
	tb := newTestTable(t, []string{"a", "b"}, []uint{1000, 1000})
	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	s := tb.Snapshot()
	if !s.Players[0].IsDealer || !s.Players[0].IsSmallBlind || !s.Players[1].IsBigBlind {
		t.Fatalf("heads-up the dealer posts the small blind: %+v", s.Players)
	}
	if activeID(s) != "a" {
		t.Fatalf("heads-up the dealer acts first preflop, got %s", activeID(s))
	}
	mustAct(t, tb, "a", call)
	mustAct(t, tb, "b", check)

	s = tb.Snapshot()
	if s.Round != Flop || len(s.CommunityCards) != 3 {
		t.Fatalf("expected the flop, got %s with %d cards", s.Round, len(s.CommunityCards))
	}
	if activeID(s) != "b" {
		t.Fatalf("heads-up the dealer acts last after the flop, got %s", activeID(s))
	}
	mustAct(t, tb, "b", check)
	mustAct(t, tb, "a", check)
	if s = tb.Snapshot(); s.Round != Turn || len(s.CommunityCards) != 4 {
		t.Fatalf("expected the turn, got %s", s.Round)
	}
}

func TestBigBlindOption(t *testing.T) {
	tb := newTestTable(t, []string{"a", "b", "c"}, []uint{1000, 1000, 1000})
	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	mustAct(t, tb, "a", call)
	mustAct(t, tb, "b", call)

	s := tb.Snapshot()
	if s.Round != PreFlop || activeID(s) != "c" {
		t.Fatalf("big blind must get the option, got %s on %s", activeID(s), s.Round)
	}
	valid := tb.ValidActions("c")
	if !slices.Contains(valid, ActionCheck) || !slices.Contains(valid, ActionRaise) {
		t.Fatalf("big blind option must allow check and raise, got %v", valid)
	}
	mustAct(t, tb, "c", check)

	s = tb.Snapshot()
	if s.Round != Flop {
		t.Fatalf("expected the flop, got %s", s.Round)
	}
	if activeID(s) != "b" {
		t.Fatalf("first to act after the flop sits left of the button, got %s", activeID(s))
	}
	if s.CurrentBet != 0 || s.LastRaiseSize != 10 {
		t.Fatalf("street must reset betting: bet %d raise %d", s.CurrentBet, s.LastRaiseSize)
	}
	for _, p := range s.Players {
		if p.CurrentBet != 0 || p.HasActed {
			t.Fatalf("street must reset %s", p.ID)
		}
	}
}

func TestRejectedActionsLeaveStateUntouched(t *testing.T) {
	tb := newTestTable(t, []string{"a", "b", "c"}, []uint{1000, 1000, 1000})
	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name   string
		player string
		action Action
		err    error
	}{
		{"unknown player", "zz", call, ErrPlayerNotFound},
		{"out of turn", "b", call, ErrNotPlayersTurn},
		{"check facing bet", "a", check, ErrCannotCheckFacingBet},
		{"bet after blinds", "a", bet(50), ErrBetAlreadyOpened},
		{"raise too small", "a", raiseTo(15), ErrBelowMinimumRaise},
		{"raise too big", "a", raiseTo(5000), ErrInsufficientChips},
		{"unknown action", "a", Action{Type: "dance"}, ErrUnknownAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tb.Snapshot()
			err := tb.ProcessAction(tt.player, tt.action)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if !reflect.DeepEqual(before, tb.Snapshot()) {
				t.Fatal("rejected action changed the table")
			}
		})
	}
}

func TestPostflopBetValidation(t *testing.T) {
	tb := newTestTable(t, []string{"a", "b"}, []uint{1000, 45})
	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	mustAct(t, tb, "a", call)
	mustAct(t, tb, "b", check)

	if err := tb.ProcessAction("b", raiseTo(40)); !errors.Is(err, ErrNoBetToRaise) {
		t.Errorf("expected ErrNoBetToRaise, got %v", err)
	}
	if err := tb.ProcessAction("b", call); !errors.Is(err, ErrNothingToCall) {
		t.Errorf("expected ErrNothingToCall, got %v", err)
	}
	if err := tb.ProcessAction("b", bet(5)); !errors.Is(err, ErrBelowMinimumBet) {
		t.Errorf("expected ErrBelowMinimumBet, got %v", err)
	}
	if err := tb.ProcessAction("b", bet(36)); !errors.Is(err, ErrInsufficientChips) {
		t.Errorf("expected ErrInsufficientChips, got %v", err)
	}
	mustAct(t, tb, "b", bet(20))

	s := tb.Snapshot()
	if s.CurrentBet != 20 || s.LastRaiseSize != 20 || activeID(s) != "a" {
		t.Fatalf("bet not applied: bet %d raise %d active %s", s.CurrentBet, s.LastRaiseSize, activeID(s))
	}
	if err := tb.ProcessAction("a", raiseTo(30)); !errors.Is(err, ErrBelowMinimumRaise) {
		t.Errorf("expected ErrBelowMinimumRaise, got %v", err)
	}
	mustAct(t, tb, "a", raiseTo(40))

	s = tb.Snapshot()
	if s.LastRaiseSize != 20 || s.CurrentBet != 40 {
		t.Fatalf("raise not applied: bet %d raise %d", s.CurrentBet, s.LastRaiseSize)
	}
	// b has 15 behind after betting 20 and cannot cover the raise
	if err := tb.ProcessAction("b", call); !errors.Is(err, ErrInsufficientChips) {
		t.Errorf("expected ErrInsufficientChips, got %v", err)
	}
	if valid := tb.ValidActions("b"); !reflect.DeepEqual(valid, []ActionType{ActionFold, ActionAllIn}) {
		t.Errorf("expected fold and all-in, got %v", valid)
	}
}

func TestShortAllInDoesNotReopenAction(t *testing.T) {
	tb := newTestTable(t, []string{"a", "b", "c"}, []uint{1000, 1000, 150})
	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	mustAct(t, tb, "a", raiseTo(100))
	mustAct(t, tb, "b", call)
	mustAct(t, tb, "c", allIn)

	s := tb.Snapshot()
	if s.CurrentBet != 150 || s.LastRaiseSize != 90 {
		t.Fatalf("short all-in must lift the bet only: bet %d raise %d", s.CurrentBet, s.LastRaiseSize)
	}
	if activeID(s) != "a" {
		t.Fatalf("expected a to act, got %s", activeID(s))
	}
	if err := tb.ProcessAction("a", raiseTo(400)); !errors.Is(err, ErrActionNotReopened) {
		t.Fatalf("expected ErrActionNotReopened, got %v", err)
	}
	if err := tb.ProcessAction("a", allIn); !errors.Is(err, ErrActionNotReopened) {
		t.Fatalf("expected ErrActionNotReopened for a shove, got %v", err)
	}
	if valid := tb.ValidActions("a"); !reflect.DeepEqual(valid, []ActionType{ActionFold, ActionCall}) {
		t.Fatalf("expected fold and call, got %v", valid)
	}
	mustAct(t, tb, "a", call)
	mustAct(t, tb, "b", call)

	s = tb.Snapshot()
	if s.Round != Flop || s.Pot != 450 {
		t.Fatalf("expected the flop with 450, got %s with %d", s.Round, s.Pot)
	}
}

func TestFullAllInReopensAction(t *testing.T) {
	tb := newTestTable(t, []string{"a", "b", "c"}, []uint{1000, 1000, 250})
	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	mustAct(t, tb, "a", raiseTo(100))
	mustAct(t, tb, "b", call)
	mustAct(t, tb, "c", allIn)

	s := tb.Snapshot()
	if s.CurrentBet != 250 || s.LastRaiseSize != 150 {
		t.Fatalf("full all-in must count as a raise: bet %d raise %d", s.CurrentBet, s.LastRaiseSize)
	}
	if valid := tb.ValidActions("a"); !slices.Contains(valid, ActionRaise) {
		t.Fatalf("action must be reopened, got %v", valid)
	}
	mustAct(t, tb, "a", raiseTo(400))
}

func TestCanActAndValidActions(t *testing.T) {
	tb := newTestTable(t, []string{"a", "b", "c"}, []uint{1000, 1000, 1000})
	if tb.CanAct("a") || tb.ValidActions("a") != nil {
		t.Fatal("nobody acts before the first hand")
	}
	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	if !tb.CanAct("a") || tb.CanAct("b") || tb.CanAct("zz") {
		t.Fatal("only a may act")
	}
	want := []ActionType{ActionFold, ActionCall, ActionRaise, ActionAllIn}
	if got := tb.ValidActions("a"); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := tb.ValidActions("b"); got != nil {
		t.Fatalf("out of turn player has no actions, got %v", got)
	}
	before := tb.Snapshot()
	_ = tb.ValidActions("a")
	_ = tb.CanAct("a")
	if !reflect.DeepEqual(before, tb.Snapshot()) {
		t.Fatal("reads must not change the table")
	}
}

func TestDisconnectedPlayersAreSkipped(t *testing.T) {
	tb := newTestTable(t, []string{"a", "b", "c"}, []uint{1000, 1000, 1000})
	if err := tb.SetConnected("b", false); err != nil {
		t.Fatal(err)
	}
	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	mustAct(t, tb, "a", call)
	if s := tb.Snapshot(); activeID(s) != "c" {
		t.Fatalf("disconnected small blind must be skipped, got %s", activeID(s))
	}
	mustAct(t, tb, "c", check)

	s := tb.Snapshot()
	if s.Round != PreFlop || s.ActivePlayerIndex != -1 || s.HandComplete {
		t.Fatalf("small blind still owes 5, expected a wait on preflop, got %q on %s", activeID(s), s.Round)
	}
	if !s.TurnStartedAt.Equal(testTime) {
		t.Errorf("expected the wait to start at %s, got %s", testTime, s.TurnStartedAt)
	}
	if got := tb.ValidActions("b"); !reflect.DeepEqual(got, []ActionType{ActionFold}) {
		t.Fatalf("disconnected player can only fold, got %v", got)
	}
	if err := tb.ProcessAction("b", call); !errors.Is(err, ErrPlayerDisconnected) {
		t.Fatalf("expected ErrPlayerDisconnected, got %v", err)
	}
	if err := tb.ProcessAction("c", check); !errors.Is(err, ErrNotPlayersTurn) {
		t.Fatalf("expected ErrNotPlayersTurn, got %v", err)
	}

	mustAct(t, tb, "b", fold)
	s = tb.Snapshot()
	if s.Round != Flop || activeID(s) != "c" {
		t.Fatalf("expected c first on the flop, got %s on %s", activeID(s), s.Round)
	}
	if err := tb.SetConnected("zz", true); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestDisconnectedPlayerOwingChipsBlocksRound(t *testing.T) {
	tb := newTestTable(t, []string{"a", "b", "c"}, []uint{1000, 1000, 1000})
	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	mustAct(t, tb, "a", raiseTo(500))
	if err := tb.SetConnected("c", false); err != nil {
		t.Fatal(err)
	}
	mustAct(t, tb, "b", fold)

	s := tb.Snapshot()
	if s.HandComplete || s.Round != PreFlop || s.ActivePlayerIndex != -1 {
		t.Fatalf("big blind owes 490, round must stay open, got %q on %s", activeID(s), s.Round)
	}
	for _, a := range []Action{call, raiseTo(1000), allIn} {
		if err := tb.ProcessAction("c", a); !errors.Is(err, ErrPlayerDisconnected) {
			t.Fatalf("%s: expected ErrPlayerDisconnected, got %v", a.Type, err)
		}
	}
	if !reflect.DeepEqual(s, tb.Snapshot()) {
		t.Fatal("rejected actions changed the table")
	}

	mustAct(t, tb, "c", fold)
	s = tb.Snapshot()
	if !s.HandComplete {
		t.Fatal("expected the hand to be over")
	}
	if a, b, c := player(t, s, "a").Chips, player(t, s, "b").Chips, player(t, s, "c").Chips; a != 1015 || b != 995 || c != 990 {
		t.Fatalf("expected 1015/995/990, got %d/%d/%d", a, b, c)
	}
}

func TestDisconnectedPlayerFoldsOutOfTurn(t *testing.T) {
	tb := newTestTable(t, []string{"a", "b", "c"}, []uint{1000, 1000, 1000})
	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	mustAct(t, tb, "a", raiseTo(500))
	if err := tb.SetConnected("c", false); err != nil {
		t.Fatal(err)
	}
	mustAct(t, tb, "c", fold)
	s := tb.Snapshot()
	if activeID(s) != "b" || s.Round != PreFlop || !player(t, s, "c").IsFolded {
		t.Fatalf("fold out of turn must keep b to act, got %s on %s", activeID(s), s.Round)
	}
	if err := tb.ProcessAction("c", fold); !errors.Is(err, ErrPlayerAlreadyFolded) {
		t.Fatalf("expected ErrPlayerAlreadyFolded, got %v", err)
	}
	mustAct(t, tb, "b", call)
	if s := tb.Snapshot(); s.Round != Flop || activeID(s) != "b" {
		t.Fatalf("expected b first on the flop, got %s on %s", activeID(s), s.Round)
	}
}

func TestReconnectedPlayerTakesTheTurn(t *testing.T) {
	tb := newTestTable(t, []string{"a", "b", "c"}, []uint{1000, 1000, 1000})
	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	mustAct(t, tb, "a", raiseTo(500))
	if err := tb.SetConnected("c", false); err != nil {
		t.Fatal(err)
	}
	mustAct(t, tb, "b", fold)
	if err := tb.SetConnected("c", true); err != nil {
		t.Fatal(err)
	}
	if s := tb.Snapshot(); activeID(s) != "c" || !tb.CanAct("c") {
		t.Fatalf("reconnected big blind must act, got %q", activeID(s))
	}
	mustAct(t, tb, "c", call)
	if s := tb.Snapshot(); s.Round != Flop || activeID(s) != "c" || s.Pot != 1005 {
		t.Fatalf("expected c first on the flop with pot 1005, got %s on %s pot %d", activeID(s), s.Round, s.Pot)
	}
}

func TestDisconnectedActivePlayerCanOnlyFold(t *testing.T) {
	tb := newTestTable(t, []string{"a", "b", "c"}, []uint{1000, 1000, 1000})
	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	if err := tb.SetConnected("a", false); err != nil {
		t.Fatal(err)
	}
	before := tb.Snapshot()
	if activeID(before) != "a" {
		t.Fatalf("a stays active until folded, got %q", activeID(before))
	}
	if tb.CanAct("a") {
		t.Error("disconnected player cannot act")
	}
	if got := tb.ValidActions("a"); !reflect.DeepEqual(got, []ActionType{ActionFold}) {
		t.Fatalf("expected only fold, got %v", got)
	}
	for _, a := range []Action{check, call, raiseTo(20), allIn} {
		if err := tb.ProcessAction("a", a); !errors.Is(err, ErrPlayerDisconnected) {
			t.Fatalf("%s: expected ErrPlayerDisconnected, got %v", a.Type, err)
		}
	}
	if !reflect.DeepEqual(before, tb.Snapshot()) {
		t.Fatal("rejected actions changed the table")
	}
	mustAct(t, tb, "a", fold)
	if s := tb.Snapshot(); activeID(s) != "b" {
		t.Fatalf("expected b to act, got %s", activeID(s))
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	tb := newTestTable(t, []string{"a", "b"}, []uint{1000, 1000})
	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	s := tb.Snapshot()
	s.Players[0].Chips = 1
	s.Players[0].HoleCards[0] = s.Players[1].HoleCards[0]
	s.Deck[0] = s.Deck[1]
	again := tb.Snapshot()
	if again.Players[0].Chips == 1 || again.Players[0].HoleCards[0] == again.Players[1].HoleCards[0] || again.Deck[0] == again.Deck[1] {
		t.Fatal("snapshot aliases table state")
	}
}

func TestViewForRedactsHoleCards(t *testing.T) {
	tb := newTestTable(t, []string{"a", "b"}, []uint{1000, 1000})
	if err := tb.StartNewHand(); err != nil {
		t.Fatal(err)
	}
	v := tb.Snapshot().ViewFor("a")
	if v.Deck != nil {
		t.Error("view must not expose the deck")
	}
	if len(player(t, v, "a").HoleCards) != 2 || player(t, v, "b").HoleCards != nil {
		t.Error("view must only show the viewer's cards")
	}
}
