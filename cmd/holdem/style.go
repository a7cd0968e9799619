package main

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/holdem/domain/deck"
	"github.com/luca-patrignani/holdem/domain/poker"
)

func cardString(c deck.Card) string {
	if c.Suit().IsRed() {
		return pterm.LightRed(c.String())
	}
	return pterm.LightWhite(c.String())
}

func cardsString(cards []deck.Card) string {
	if len(cards) == 0 {
		return "?? - ??"
	}
	s := make([]string, len(cards))
	for i, c := range cards {
		s[i] = cardString(c)
	}
	return strings.Join(s, " - ")
}

func getActionPanel(pa poker.PlayerAction, s poker.GameState) pterm.Panel {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	name := pa.PlayerID
	if idx := s.FindPlayerIndex(pa.PlayerID); idx != -1 {
		name = s.Players[idx].Name
	}
	actionString := ""
	switch pa.Type {
	case poker.ActionBet, poker.ActionRaise, poker.ActionCall, poker.ActionAllIn:
		actionString = pterm.Sprintfln("%s %s, %d chips in", name, pa.Type, pa.Amount)
	default:
		actionString = pterm.Sprintfln("%s performed action: %s", name, pa.Type)
	}
	return pterm.Panel{Data: pbox.WithTitle(pterm.LightYellow("|LAST ACTION|")).WithTitleTopCenter().Sprintf(actionString)}
}

func getWinnerPanel(s poker.GameState) pterm.Panel {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	infoString := ""
	for _, w := range s.Winners {
		if w.Hand == nil {
			infoString += pterm.Sprintfln("%s won %d taking down the pot", pterm.LightCyan(w.Name), w.Amount)
		} else {
			infoString += pterm.Sprintfln("%s won %d with %s", pterm.LightCyan(w.Name), w.Amount, w.Hand.Description)
		}
		if w.Refunded > 0 {
			infoString += pterm.Sprintfln("  %d uncalled returned", w.Refunded)
		}
	}
	return pterm.Panel{Data: pbox.WithTitle(pterm.LightGreen("|SHOWDOWN|")).WithTitleTopCenter().Sprintf(infoString)}
}

func printState(s poker.GameState, additionalPanel ...pterm.Panel) {
	var panels []pterm.Panel
	var mainPlayer pterm.Panel
	active, _ := s.ActivePlayer()
	for _, p := range s.Players {
		if s.HandComplete || p.ID != active.ID {
			panels = append(panels, pterm.Panel{Data: printPlayerInfo(p, false)})
		} else {
			mainPlayer = pterm.Panel{Data: printPlayerInfo(p, true)}
		}
	}
	board := pterm.Panel{Data: printBoardInfo(s)}
	dashboard := []pterm.Panel{mainPlayer}
	dashboard = append(dashboard, additionalPanel...)

	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		panels,
		{board},
		dashboard,
	}).Render()
}

func printPlayerInfo(p poker.Player, main bool) string {
	hpadding := 4
	if main {
		hpadding = 10
	}
	pbox := pterm.DefaultBox.WithHorizontalPadding(hpadding).WithTopPadding(1).WithBottomPadding(1)
	var status string
	switch {
	case p.IsFolded:
		status = pterm.LightRed("Folded")
	case p.IsAllIn:
		status = pterm.LightYellow("All-in")
	case !p.IsConnected:
		status = pterm.Gray("Away")
	default:
		status = pterm.LightGreen("Active")
	}
	title := p.Name
	switch {
	case p.IsDealer:
		title += " (D)"
	case p.IsSmallBlind:
		title += " (SB)"
	case p.IsBigBlind:
		title += " (BB)"
	}
	hand := pterm.BgGreen.Sprint(cardsString(p.HoleCards))
	return pbox.WithTitle(title).WithTitleTopLeft().Sprintf("%s\nCurrent Bet: %d\nBankroll: %d\n%s\n", status, p.CurrentBet, p.Chips, hand)
}

func printBoardInfo(s poker.GameState) string {
	board := ""
	for _, c := range s.CommunityCards {
		board += cardString(c) + " - "
	}
	board += " Pot: " + strconv.FormatUint(uint64(s.Pot), 10) + " | "
	for i, p := range s.SidePots {
		board += " Pot" + strconv.Itoa(i) + ": " + strconv.FormatUint(uint64(p.Amount), 10) + " | "
	}
	return pterm.BgGreen.Sprint("\n" + board + string(s.Round) + "\n")
}

func printStandings(s poker.GameState) {
	data := pterm.TableData{{"Player", "Chips"}}
	for _, p := range s.Players {
		data = append(data, []string{p.Name, strconv.FormatUint(uint64(p.Chips), 10)})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
