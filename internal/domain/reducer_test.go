package domain

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"
)

const testPrompt = "Gosto de ______"

func mustReduce(t *testing.T, s *Session, ev Event) *Session {
	t.Helper()
	next, err := Reduce(s, ev)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", ev.EventName(), err)
	}
	return next
}

// seatedSession returns a WAITING room hosted by p1 with n players.
func seatedSession(t *testing.T, n int) *Session {
	t.Helper()
	s := mustReduce(t, NewSession(DefaultGameConfig()), CreateRoom{
		RoomCode: "abc123",
		Host:     NewPlayer("p1", "Player 1"),
	})
	for i := 2; i <= n; i++ {
		s = mustReduce(t, s, AddPlayer{Player: NewPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("Player %d", i))})
	}
	return s
}

// startedSession returns a PLAYING session where p1 judges and every player
// holds three distinct cards.
func startedSession(t *testing.T, n int) *Session {
	t.Helper()
	s := seatedSession(t, n)
	order := make([]string, 0, n)
	hands := make(map[string][]string, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("p%d", i)
		order = append(order, id)
		hands[id] = []string{id + "-a", id + "-b", id + "-c"}
	}
	return mustReduce(t, s, StartGame{
		TurnOrder: order,
		Hands:     hands,
		DrawPile:  []string{"d1", "d2", "d3", "d4", "d5"},
		Prompt:    testPrompt,
	})
}

func submitAll(t *testing.T, s *Session) *Session {
	t.Helper()
	for _, p := range s.PendingPlayers() {
		s = mustReduce(t, s, SubmitAnswer{PlayerID: p.ID, Card: s.Hands[p.ID][0]})
	}
	return s
}

func TestCreateAndJoinRoom(t *testing.T) {
	s := seatedSession(t, 1)
	if s.Phase != PhaseWaiting {
		t.Fatalf("expected WAITING, got %s", s.Phase)
	}
	if s.RoomCode != "ABC123" {
		t.Fatalf("expected normalized room code, got %q", s.RoomCode)
	}
	if !s.Local.IsHost || s.Local.CurrentPlayer == nil || !s.Local.CurrentPlayer.IsHost {
		t.Fatalf("expected local host identity, got %+v", s.Local)
	}

	peer := mustReduce(t, NewSession(DefaultGameConfig()), JoinRoom{RoomCode: "ABC123", Player: NewPlayer("p2", "Player 2")})
	if peer.Local.IsHost {
		t.Fatalf("joiner must not be host")
	}
	if peer.Phase != PhaseWaiting || len(peer.Players) != 1 {
		t.Fatalf("unexpected joiner state: %s %d", peer.Phase, len(peer.Players))
	}
}

func TestRoomEntryRejections(t *testing.T) {
	lobby := NewSession(DefaultGameConfig())
	tests := []struct {
		name string
		ev   Event
		want error
	}{
		{"missing room code", CreateRoom{Host: NewPlayer("p1", "Player 1")}, ErrMissingRoomCode},
		{"short room code", JoinRoom{RoomCode: "AB", Player: NewPlayer("p1", "Player 1")}, ErrInvalidRoomCode},
		{"missing name", JoinRoom{RoomCode: "ABC123", Player: NewPlayer("p1", "  ")}, ErrMissingName},
		{"symbols in name", CreateRoom{RoomCode: "ABC123", Host: NewPlayer("p1", "<script>")}, ErrInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reduce(lobby, tt.ev)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if got != lobby {
				t.Fatalf("rejected event must return the original session")
			}
		})
	}
}

func TestRoomCodeImmutable(t *testing.T) {
	s := NewSession(DefaultGameConfig())
	s.RoomCode = "ABC123"
	if _, err := Reduce(s, CreateRoom{RoomCode: "XYZ789", Host: NewPlayer("p1", "Player 1")}); !errors.Is(err, ErrRoomCodeImmutable) {
		t.Fatalf("expected ErrRoomCodeImmutable, got %v", err)
	}
}

func TestAddPlayer(t *testing.T) {
	t.Run("duplicate id", func(t *testing.T) {
		s := seatedSession(t, 2)
		if _, err := Reduce(s, AddPlayer{Player: NewPlayer("p2", "Again")}); !errors.Is(err, ErrDuplicatePlayer) {
			t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
		}
	})
	t.Run("room full", func(t *testing.T) {
		s := seatedSession(t, 3)
		cfg := s.Config
		cfg.MaxPlayers = 3
		s = mustReduce(t, s, SetConfig{Config: cfg})
		if _, err := Reduce(s, AddPlayer{Player: NewPlayer("p4", "Player 4")}); !errors.Is(err, ErrRoomFull) {
			t.Fatalf("expected ErrRoomFull, got %v", err)
		}
	})
	t.Run("game in progress", func(t *testing.T) {
		s := startedSession(t, 3)
		if _, err := Reduce(s, AddPlayer{Player: NewPlayer("p9", "Late")}); !errors.Is(err, ErrGameInProgress) {
			t.Fatalf("expected ErrGameInProgress, got %v", err)
		}
	})
	t.Run("defaults", func(t *testing.T) {
		s := seatedSession(t, 2)
		if score, ok := s.Scoreboard["p2"]; !ok || score != 0 {
			t.Fatalf("expected zero score entry, got %d %v", score, ok)
		}
		if hand, ok := s.Hands["p2"]; !ok || hand == nil {
			t.Fatalf("expected empty hand entry")
		}
	})
}

func TestRemovePlayerDropsEntries(t *testing.T) {
	s := startedSession(t, 4)
	s = mustReduce(t, s, SubmitAnswer{PlayerID: "p3", Card: "p3-a"})
	s = mustReduce(t, s, RemovePlayer{PlayerID: "p3"})

	if s.HasPlayer("p3") {
		t.Fatalf("player still seated")
	}
	if _, ok := s.Scoreboard["p3"]; ok {
		t.Fatalf("score entry not removed")
	}
	if _, ok := s.Hands["p3"]; ok {
		t.Fatalf("hand entry not removed")
	}
	if _, ok := s.Submissions["p3"]; ok {
		t.Fatalf("submission not removed")
	}
	if _, err := Reduce(s, RemovePlayer{PlayerID: "p3"}); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestSetConfig(t *testing.T) {
	s := seatedSession(t, 3)
	cfg := s.Config
	cfg.WinningScore = 1
	s = mustReduce(t, s, SetConfig{Config: cfg})
	if s.Config.WinningScore != 1 {
		t.Fatalf("config not applied")
	}

	cfg.HandSize = 99
	if _, err := Reduce(s, SetConfig{Config: cfg}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}

	started := startedSession(t, 3)
	if _, err := Reduce(started, SetConfig{Config: DefaultGameConfig()}); !errors.Is(err, ErrGameInProgress) {
		t.Fatalf("expected ErrGameInProgress, got %v", err)
	}
}

func TestStartGame(t *testing.T) {
	t.Run("not enough players", func(t *testing.T) {
		s := seatedSession(t, 2)
		_, err := Reduce(s, StartGame{TurnOrder: []string{"p1", "p2"}, Prompt: testPrompt})
		if !errors.Is(err, ErrNotEnoughPlayers) {
			t.Fatalf("expected ErrNotEnoughPlayers, got %v", err)
		}
	})
	t.Run("turn order mismatch", func(t *testing.T) {
		s := seatedSession(t, 3)
		_, err := Reduce(s, StartGame{TurnOrder: []string{"p1", "p2", "p9"}, Prompt: testPrompt})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
	t.Run("deals and opens round", func(t *testing.T) {
		s := seatedSession(t, 3)
		s = mustReduce(t, s, StartGame{
			TurnOrder: []string{"p3", "p1", "p2"},
			Hands:     map[string][]string{"p1": {"a"}, "p2": {"b"}, "p3": {"c"}},
			DrawPile:  []string{"d"},
			Prompt:    testPrompt,
		})
		if s.Phase != PhasePlaying || s.Round != 1 {
			t.Fatalf("expected PLAYING round 1, got %s %d", s.Phase, s.Round)
		}
		if s.JudgeID != "p3" || s.Players[0].ID != "p3" {
			t.Fatalf("expected turn order applied with p3 judging")
		}
		if s.TimerDeadline == nil || *s.TimerDeadline != s.Config.RoundTimeoutSec {
			t.Fatalf("expected round timer, got %v", s.TimerDeadline)
		}
		if len(s.UsedPrompts) != 1 || s.CurrentPrompt != testPrompt {
			t.Fatalf("prompt not recorded")
		}
	})
}

func TestSubmitAnswerPolicies(t *testing.T) {
	s := startedSession(t, 4)
	tests := []struct {
		name string
		ev   SubmitAnswer
		want error
	}{
		{"judge", SubmitAnswer{PlayerID: "p1", Card: "p1-a"}, ErrJudgeCannotSubmit},
		{"unknown player", SubmitAnswer{PlayerID: "p9", Card: "x"}, ErrPlayerNotFound},
		{"card not in hand", SubmitAnswer{PlayerID: "p2", Card: "p3-a"}, ErrCardNotInHand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Reduce(s, tt.ev); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	t.Run("wrong phase", func(t *testing.T) {
		w := seatedSession(t, 3)
		if _, err := Reduce(w, SubmitAnswer{PlayerID: "p2", Card: "x"}); !errors.Is(err, ErrInvalidPhase) {
			t.Fatalf("expected ErrInvalidPhase, got %v", err)
		}
	})
	t.Run("removes card from hand", func(t *testing.T) {
		next := mustReduce(t, s, SubmitAnswer{PlayerID: "p2", Card: "p2-b"})
		if !reflect.DeepEqual(next.Hands["p2"], []string{"p2-a", "p2-c"}) {
			t.Fatalf("unexpected hand %v", next.Hands["p2"])
		}
		if !reflect.DeepEqual(s.Hands["p2"], []string{"p2-a", "p2-b", "p2-c"}) {
			t.Fatalf("reducer mutated its input: %v", s.Hands["p2"])
		}
	})
}

func TestSubmissionIdempotence(t *testing.T) {
	s := startedSession(t, 4)
	once := mustReduce(t, s, SubmitAnswer{PlayerID: "p2", Card: "p2-a"})

	for _, card := range []string{"p2-a", "p2-b"} {
		twice, err := Reduce(once, SubmitAnswer{PlayerID: "p2", Card: card})
		if !errors.Is(err, ErrAlreadySubmitted) {
			t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
		}
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("second submission changed state")
		}
	}
}

func TestJudgeExclusion(t *testing.T) {
	s := startedSession(t, 4)
	for round := 0; round < 3; round++ {
		s = submitAll(t, s)
		if _, ok := s.Submissions[s.JudgeID]; ok {
			t.Fatalf("round %d: judge %s has a submission", s.Round, s.JudgeID)
		}
		s = mustReduce(t, s, BeginVoting{RevealOrder: s.RefillsNeeded()})
		s = mustReduce(t, s, resolveVoting(s))
		s.DrawPile = append(s.DrawPile, fmt.Sprintf("r%d-1", round), fmt.Sprintf("r%d-2", round), fmt.Sprintf("r%d-3", round))
		s = mustReduce(t, s, NextRound{Prompt: fmt.Sprintf("Round %d ______", round)})
	}
}

// resolveVoting picks the first revealed answer as the winner.
func resolveVoting(s *Session) Event {
	if len(s.RevealOrder) == 0 {
		return SkipRound{}
	}
	return SelectWinner{JudgeID: s.JudgeID, WinnerID: s.RevealOrder[0]}
}

func TestBeginVotingRevealOrder(t *testing.T) {
	s := submitAll(t, startedSession(t, 4))
	tests := []struct {
		name  string
		order []string
	}{
		{"missing entry", []string{"p2", "p3"}},
		{"duplicate entry", []string{"p2", "p2", "p3"}},
		{"foreign entry", []string{"p2", "p3", "p1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Reduce(s, BeginVoting{RevealOrder: tt.order}); !errors.Is(err, ErrInvalidRevealOrder) {
				t.Fatalf("expected ErrInvalidRevealOrder, got %v", err)
			}
		})
	}

	v := mustReduce(t, s, BeginVoting{RevealOrder: []string{"p4", "p2", "p3"}})
	if v.Phase != PhaseVoting {
		t.Fatalf("expected VOTING, got %s", v.Phase)
	}
	if v.TimerDeadline == nil || *v.TimerDeadline != v.Config.VotingTimeoutSec {
		t.Fatalf("expected voting timer")
	}
}

func TestSelectWinnerPolicies(t *testing.T) {
	s := submitAll(t, startedSession(t, 4))
	s = mustReduce(t, s, BeginVoting{RevealOrder: []string{"p2", "p3", "p4"}})

	if _, err := Reduce(s, SelectWinner{JudgeID: "p2", WinnerID: "p3"}); !errors.Is(err, ErrNotJudge) {
		t.Fatalf("expected ErrNotJudge, got %v", err)
	}
	if _, err := Reduce(s, SelectWinner{JudgeID: "p1", WinnerID: "p1"}); !errors.Is(err, ErrNoSubmission) {
		t.Fatalf("expected ErrNoSubmission, got %v", err)
	}

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := mustReduce(t, s, SelectWinner{JudgeID: "p1", WinnerID: "p3", At: at})
	if r.Phase != PhaseResults || r.RoundWinnerID != "p3" || r.Scoreboard["p3"] != 1 {
		t.Fatalf("unexpected results state: %s %q %d", r.Phase, r.RoundWinnerID, r.Scoreboard["p3"])
	}
	if len(r.History) != 1 || r.History[0].Answer() != "p3-a" || !r.History[0].Timestamp.Equal(at) {
		t.Fatalf("unexpected history %+v", r.History)
	}

	// duplicate selection is guarded by the phase
	if _, err := Reduce(r, SelectWinner{JudgeID: "p1", WinnerID: "p3"}); !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase, got %v", err)
	}
}

func TestWinThresholdAndRotation(t *testing.T) {
	tests := []struct {
		name         string
		winningScore int
		want         Phase
	}{
		{"below threshold", 2, PhaseResults},
		{"reaches threshold", 1, PhaseGameOver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seatedSession(t, 4)
			cfg := s.Config
			cfg.WinningScore = tt.winningScore
			s = mustReduce(t, s, SetConfig{Config: cfg})
			s = mustReduce(t, s, StartGame{
				TurnOrder: []string{"p1", "p2", "p3", "p4"},
				Hands:     map[string][]string{"p1": {"a"}, "p2": {"b"}, "p3": {"c"}, "p4": {"d"}},
				DrawPile:  []string{"e", "f", "g"},
				Prompt:    testPrompt,
			})
			s = submitAll(t, s)
			s = mustReduce(t, s, BeginVoting{RevealOrder: []string{"p2", "p3", "p4"}})
			s = mustReduce(t, s, SelectWinner{JudgeID: "p1", WinnerID: "p2"})
			if s.Phase != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, s.Phase)
			}
			if tt.want != PhaseResults {
				return
			}

			s = mustReduce(t, s, NextRound{Prompt: "Nunca ______"})
			if s.Phase != PhasePlaying || s.JudgeID != "p2" || s.Round != 2 {
				t.Fatalf("expected PLAYING round 2 judged by p2, got %s round %d judge %s", s.Phase, s.Round, s.JudgeID)
			}
			for id, want := range map[string][]string{"p1": {"a"}, "p2": {"e"}, "p3": {"f"}, "p4": {"g"}} {
				if !reflect.DeepEqual(s.Hands[id], want) {
					t.Fatalf("hand %s = %v, want %v", id, s.Hands[id], want)
				}
			}
			if len(s.Submissions) != 0 || len(s.RevealOrder) != 0 || s.RoundWinnerID != "" {
				t.Fatalf("round state not cleared")
			}
		})
	}
}

func TestJudgeRotationWraps(t *testing.T) {
	s := startedSession(t, 3)
	want := []string{"p2", "p3", "p1", "p2"}
	for _, judge := range want {
		s = submitAll(t, s)
		s = mustReduce(t, s, BeginVoting{RevealOrder: s.RefillsNeeded()})
		s = mustReduce(t, s, resolveVoting(s))
		if s.Phase == PhaseGameOver {
			t.Fatalf("unexpected game over")
		}
		s.DrawPile = append(s.DrawPile, "x1-"+judge, "x2-"+judge)
		s = mustReduce(t, s, NextRound{Prompt: testPrompt, Wrapped: true})
		if s.JudgeID != judge {
			t.Fatalf("expected judge %s, got %s", judge, s.JudgeID)
		}
	}
}

func TestNextRoundDrawPileExhausted(t *testing.T) {
	s := startedSession(t, 4)
	s.DrawPile = []string{"only"}
	s = submitAll(t, s)
	s = mustReduce(t, s, BeginVoting{RevealOrder: []string{"p2", "p3", "p4"}})
	s = mustReduce(t, s, SelectWinner{JudgeID: "p1", WinnerID: "p2"})
	s = mustReduce(t, s, NextRound{Prompt: testPrompt})
	if s.Phase != PhaseGameOver {
		t.Fatalf("expected GAME_OVER, got %s", s.Phase)
	}
	if len(s.Hands["p2"]) != 2 {
		t.Fatalf("partial refill dealt: %v", s.Hands["p2"])
	}
}

func TestNextRoundPromptWraparound(t *testing.T) {
	s := submitAll(t, startedSession(t, 3))
	s = mustReduce(t, s, BeginVoting{RevealOrder: []string{"p2", "p3"}})
	s = mustReduce(t, s, SelectWinner{JudgeID: "p1", WinnerID: "p2"})
	s = mustReduce(t, s, NextRound{Prompt: testPrompt, Wrapped: true})
	if !reflect.DeepEqual(s.UsedPrompts, []string{testPrompt}) {
		t.Fatalf("expected used set reset to the new prompt, got %v", s.UsedPrompts)
	}
}

func TestSkipRound(t *testing.T) {
	s := startedSession(t, 3)
	s = mustReduce(t, s, BeginVoting{})
	s = mustReduce(t, s, SkipRound{})
	if s.Phase != PhaseResults || s.RoundWinnerID != "" || len(s.History) != 1 {
		t.Fatalf("unexpected skip state: %s %q %d", s.Phase, s.RoundWinnerID, len(s.History))
	}

	withAnswers := submitAll(t, startedSession(t, 3))
	withAnswers = mustReduce(t, withAnswers, BeginVoting{RevealOrder: []string{"p2", "p3"}})
	if _, err := Reduce(withAnswers, SkipRound{}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestEndGameAndReset(t *testing.T) {
	s := startedSession(t, 3)
	s = mustReduce(t, s, EndGame{Reason: "players left"})
	if s.Phase != PhaseGameOver || s.TimerDeadline != nil {
		t.Fatalf("expected untimed GAME_OVER")
	}
	if _, err := Reduce(s, EndGame{}); !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("expected ErrInvalidPhase, got %v", err)
	}

	r := mustReduce(t, s, ResetGame{})
	if r.Phase != PhaseLobby || len(r.Players) != 0 || r.RoomCode != "" {
		t.Fatalf("reset did not clear the room")
	}
	if r.Local.CurrentPlayer == nil || r.Local.CurrentPlayer.ID != "p1" {
		t.Fatalf("reset must keep the local identity")
	}
}

func TestAssignJudgeReturnsSubmission(t *testing.T) {
	s := startedSession(t, 4)
	s = mustReduce(t, s, SubmitAnswer{PlayerID: "p2", Card: "p2-a"})
	s = mustReduce(t, s, RemovePlayer{PlayerID: "p1"})
	if s.JudgeValid() {
		t.Fatalf("expected a dangling judge")
	}
	if s.DisplayPhase() != PhasePlaying {
		t.Fatalf("host keeps the real phase")
	}
	observer := s.Clone()
	observer.Local.IsHost = false
	if observer.DisplayPhase() != PhaseWaiting {
		t.Fatalf("observers fall back to the waiting room")
	}

	s = mustReduce(t, s, AssignJudge{JudgeID: "p2"})
	if s.JudgeID != "p2" {
		t.Fatalf("judge not assigned")
	}
	if _, ok := s.Submissions["p2"]; ok {
		t.Fatalf("new judge kept a submission")
	}
	if len(s.Hands["p2"]) != 3 {
		t.Fatalf("card not returned: %v", s.Hands["p2"])
	}
}

func TestTickAndTimer(t *testing.T) {
	s := startedSession(t, 3)
	three := 3
	s = mustReduce(t, s, SetTimer{Seconds: &three})
	for i := 0; i < 5; i++ {
		s = mustReduce(t, s, Tick{})
	}
	if s.TimerDeadline == nil || *s.TimerDeadline != 0 {
		t.Fatalf("expected countdown to stop at zero, got %v", s.TimerDeadline)
	}
	s = mustReduce(t, s, SetTimer{})
	if s.TimerDeadline != nil {
		t.Fatalf("expected timer cleared")
	}
}

func TestScoreMonotonicAndNoDuplicateCards(t *testing.T) {
	s := seatedSession(t, 4)
	cfg := s.Config
	cfg.WinningScore = 10
	s = mustReduce(t, s, SetConfig{Config: cfg})

	deck := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		deck = append(deck, fmt.Sprintf("card-%02d", i))
	}
	hands := map[string][]string{}
	for i, id := range []string{"p1", "p2", "p3", "p4"} {
		hands[id] = deck[i*3 : i*3+3]
	}
	s = mustReduce(t, s, StartGame{
		TurnOrder: []string{"p1", "p2", "p3", "p4"},
		Hands:     hands,
		DrawPile:  deck[12:],
		Prompt:    testPrompt,
	})

	prev := map[string]int{}
	for s.Phase != PhaseGameOver {
		assertUniqueCards(t, s)
		for id, score := range s.Scoreboard {
			if score < prev[id] {
				t.Fatalf("score of %s decreased from %d to %d", id, prev[id], score)
			}
			prev[id] = score
		}

		switch s.Phase {
		case PhasePlaying:
			s = submitAll(t, s)
			s = mustReduce(t, s, BeginVoting{RevealOrder: s.RefillsNeeded()})
		case PhaseVoting:
			s = mustReduce(t, s, resolveVoting(s))
		case PhaseResults:
			s = mustReduce(t, s, NextRound{Prompt: testPrompt, Wrapped: true})
		}
	}
	assertUniqueCards(t, s)
}

func assertUniqueCards(t *testing.T, s *Session) {
	t.Helper()
	seen := map[string]string{}
	note := func(card, where string) {
		if prev, ok := seen[card]; ok {
			t.Fatalf("card %q in both %s and %s", card, prev, where)
		}
		seen[card] = where
	}
	for id, hand := range s.Hands {
		for _, c := range hand {
			note(c, "hand "+id)
		}
	}
	for _, c := range s.DrawPile {
		note(c, "draw pile")
	}
	for id, c := range s.Submissions {
		note(c, "submission "+id)
	}
	for _, r := range s.History {
		if r.Round == s.Round {
			continue // the open round's submissions are already counted
		}
		for id, c := range r.Submissions {
			note(c, fmt.Sprintf("round %d by %s", r.Round, id))
		}
	}
}

func TestUnknownEvent(t *testing.T) {
	s := NewSession(DefaultGameConfig())
	got, err := Reduce(s, nil)
	if !errors.Is(err, ErrUnknownEvent) || got != s {
		t.Fatalf("expected ErrUnknownEvent with original session, got %v", err)
	}
}
