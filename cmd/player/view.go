package main

import (
	"fmt"
	"io"
	"strings"

	"partycards/internal/cards"
	"partycards/internal/domain"
)

// viewKey changes whenever the screen would show something new. Countdown
// ticks only change it every ten seconds.
func viewKey(s *domain.Session) string {
	timer := -1
	if s.TimerDeadline != nil {
		timer = *s.TimerDeadline / 10
	}
	return fmt.Sprintf("%s|%d|%d|%d|%v|%s|%d|%s|%d",
		s.DisplayPhase(), s.Round, len(s.Players), len(s.Submissions),
		s.StreamMode, s.RoundWinnerID, timer, s.Local.Notice, len(s.History))
}

func render(w io.Writer, s *domain.Session) {
	self := ""
	if s.Local.CurrentPlayer != nil {
		self = s.Local.CurrentPlayer.ID
	}

	fmt.Fprintln(w, strings.Repeat("-", 40))
	if s.Local.Notice != "" {
		fmt.Fprintf(w, "! %s\n", s.Local.Notice)
	}
	phase := s.DisplayPhase()
	if phase == domain.PhaseLobby {
		fmt.Fprintln(w, "Not in a room. Type 'host' or 'join CODE'.")
		return
	}

	code := s.RoomCode
	if s.StreamMode {
		code = "******"
	}
	fmt.Fprintf(w, "Room %s  %s", code, phase)
	if s.Round > 0 {
		fmt.Fprintf(w, "  round %d", s.Round)
	}
	if s.TimerDeadline != nil {
		fmt.Fprintf(w, "  %ds left", *s.TimerDeadline)
	}
	fmt.Fprintln(w)

	for i, p := range s.Players {
		tags := make([]string, 0, 4)
		if p.ID == self {
			tags = append(tags, "you")
		}
		if p.IsHost {
			tags = append(tags, "host")
		}
		if p.IsAutomated {
			tags = append(tags, "bot")
		}
		if s.Phase.IsActive() && s.IsJudge(p.ID) {
			tags = append(tags, "judge")
		}
		label := ""
		if len(tags) > 0 {
			label = " (" + strings.Join(tags, ", ") + ")"
		}
		fmt.Fprintf(w, "  %d. %s%s  %d pts\n", i+1, p.DisplayName, label, s.Scoreboard[p.ID])
	}

	switch phase {
	case domain.PhaseWaiting:
		switch {
		case s.Local.IsHost && s.CanStart():
			fmt.Fprintf(w, "%d/%d players. 'start' deals.\n", len(s.Players), s.Config.MaxPlayers)
		case s.Local.IsHost:
			fmt.Fprintf(w, "%d/%d players needed. 'bot' adds a bot.\n", len(s.Players), s.Config.MinPlayers)
		default:
			fmt.Fprintln(w, "Waiting for the host.")
		}

	case domain.PhasePlaying:
		fmt.Fprintf(w, "\n  %s\n\n", s.CurrentPrompt)
		_, submitted := s.Submissions[self]
		switch {
		case s.IsJudge(self):
			fmt.Fprintf(w, "You are judging. %d/%d answers in.\n", len(s.Submissions), s.RequiredSubmissions())
		case submitted:
			fmt.Fprintf(w, "Answer sent. %d/%d answers in.\n", len(s.Submissions), s.RequiredSubmissions())
		default:
			for i, card := range s.Hands[self] {
				fmt.Fprintf(w, "  [%d] %s\n", i+1, card)
			}
			fmt.Fprintln(w, "'play N' submits a card.")
		}

	case domain.PhaseVoting:
		fmt.Fprintf(w, "\n  %s\n\n", s.CurrentPrompt)
		for i, id := range s.RevealOrder {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, cards.Fill(s.CurrentPrompt, s.Submissions[id]))
		}
		if s.IsJudge(self) {
			fmt.Fprintln(w, "'pick N' chooses the winner.")
		}

	case domain.PhaseResults:
		if len(s.History) > 0 {
			last := s.History[len(s.History)-1]
			winner, err := s.GetPlayer(last.WinnerID)
			if err != nil {
				fmt.Fprintln(w, "\nNo winner this round.")
				break
			}
			fmt.Fprintf(w, "\n%s wins the round: %s\n", winner.DisplayName, cards.Fill(last.Prompt, last.Answer()))
		}

	case domain.PhaseGameOver:
		stats := domain.Stats(s)
		fmt.Fprintf(w, "\nGame over after %d rounds.\n", stats.TotalRounds)
		for i, p := range stats.Players {
			fmt.Fprintf(w, "  %d. %s  %d pts  %d wins (%.0f%%)\n", i+1, p.DisplayName, p.Score, p.Wins, p.WinRate)
		}
	}
}
