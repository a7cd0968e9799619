package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/holdem/domain/deck"
	"github.com/luca-patrignani/holdem/domain/poker"
	"github.com/luca-patrignani/holdem/ledger"
)

func main() {
	getenv, envErr := environment()
	cfg, err := parseConfig(os.Args[1:], getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "holdem: %v\n", err)
		os.Exit(2)
	}

	if cfg.Debug {
		pterm.DefaultLogger.Level = pterm.LogLevelDebug
	}
	// Create a new slog logger with the default PTerm logger
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))
	if envErr != nil {
		logger.Warn("ignoring env file", "err", envErr)
	}

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Hold", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("em", pterm.FgDarkGray.ToStyle()),
	).Render()

	history := ledger.NewHistory()
	opts := []poker.TableOption{
		poker.WithLogger(logger),
		poker.WithObserver(history),
	}
	if cfg.Seeded {
		src := deck.NewSeededSource(cfg.Seed, logger)
		opts = append(opts, poker.WithDeckFactory(func() (*deck.Deck, error) {
			return deck.NewShuffledDeck(src), nil
		}))
	}
	table, err := poker.NewTable(poker.TableConfig{
		SmallBlind: cfg.SmallBlind,
		BigBlind:   cfg.BigBlind,
	}, opts...)
	if err != nil {
		logger.Error("could not create the table", "err", err)
		os.Exit(2)
	}
	for _, name := range cfg.Players {
		if err := table.SeatPlayer(name, name, cfg.Stack, false); err != nil {
			logger.Error("could not seat player", "player", name, "err", err)
			os.Exit(2)
		}
	}
	pterm.Info.Printfln("Table %s, blinds %d/%d", table.Snapshot().TableID, cfg.SmallBlind, cfg.BigBlind)

	for {
		if err := table.StartNewHand(); err != nil {
			if errors.Is(err, poker.ErrNotEnoughPlayers) {
				break
			}
			logger.Error("could not start the hand", "err", err)
			os.Exit(1)
		}
		if err := playHand(table); err != nil {
			logger.Error("hand aborted", "err", err)
			os.Exit(1)
		}

		s := table.Snapshot()
		printState(s.ViewFor(""), getWinnerPanel(s))
		if next, _ := pterm.DefaultInteractiveConfirm.WithDefaultText("Deal the next hand?").WithDefaultValue(true).Show(); !next {
			break
		}
	}

	if err := history.Verify(); err != nil {
		logger.Error("hand history corrupted", "err", err)
		os.Exit(1)
	}
	logger.Info("hand history verified", "blocks", history.Len())
	printStandings(table.Snapshot())
}

// playHand asks the active player for an action until the hand is settled.
// Only the active player's hole cards are shown.
func playHand(table *poker.Table) error {
	for s := table.Snapshot(); !s.HandComplete; s = table.Snapshot() {
		p, ok := s.ActivePlayer()
		if !ok {
			return fmt.Errorf("hand %d has nobody to act", s.HandNumber)
		}
		var panels []pterm.Panel
		if s.LastAction != nil {
			panels = append(panels, getActionPanel(*s.LastAction, s))
		}
		printState(s.ViewFor(p.ID), panels...)

		if err := inputAction(table, s, p); err != nil {
			return err
		}
	}
	return nil
}

func inputAction(table *poker.Table, s poker.GameState, p poker.Player) error {
	valid := table.ValidActions(p.ID)
	options := make([]string, len(valid))
	for i, a := range valid {
		options[i] = string(a)
	}
	area, _ := pterm.DefaultArea.Start()
	defer area.Stop()
	for {
		selected, err := pterm.DefaultInteractiveSelect.
			WithDefaultText(pterm.Sprintf("%s, select your next action", pterm.LightCyan(p.Name))).
			WithOptions(options).
			Show()
		if err != nil {
			return err
		}
		action := poker.Action{Type: poker.ActionType(selected)}
		switch action.Type {
		case poker.ActionBet:
			action.Amount, err = inputAmount("Enter the amount to bet", s.BigBlind)
		case poker.ActionRaise:
			action.Amount, err = inputAmount("Enter the total to raise to", s.CurrentBet+s.LastRaiseSize)
		}
		if err != nil {
			area.Update()
			pterm.Error.Printfln("Invalid amount: %s", err)
			continue
		}

		if err := table.ProcessAction(p.ID, action); err != nil {
			area.Update()
			pterm.Error.Printfln("Invalid action: %s", err)
			continue
		}
		return nil
	}
}

func inputAmount(prompt string, minimum uint) (uint, error) {
	text, err := pterm.DefaultInteractiveTextInput.
		WithDefaultText(fmt.Sprintf("%s (at least %d)", prompt, minimum)).
		WithDefaultValue(strconv.FormatUint(uint64(minimum), 10)).
		Show()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(text, 10, 0)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}
