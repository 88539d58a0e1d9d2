package domain

import (
	"cmp"
	"slices"
)

// MatchStats summarizes a session's history for the scoreboard
type MatchStats struct {
	TotalRounds  int           `json:"totalRounds"`
	TotalPlayers int           `json:"totalPlayers"`
	Players      []PlayerStats `json:"players"`
	LeaderID     string        `json:"leaderId,omitempty"`
}

// Stats computes per-player wins and win rates, best player first.
func Stats(s *Session) MatchStats {
	wins := make(map[string]int)
	for _, r := range s.History {
		if r.WinnerID != "" {
			wins[r.WinnerID]++
		}
	}

	out := MatchStats{
		TotalRounds:  len(s.History),
		TotalPlayers: len(s.Players),
		Players:      make([]PlayerStats, 0, len(s.Players)),
	}
	for _, p := range s.Players {
		ps := PlayerStats{
			PlayerID:    p.ID,
			DisplayName: p.DisplayName,
			Wins:        wins[p.ID],
			Score:       s.Scoreboard[p.ID],
			IsAutomated: p.IsAutomated,
		}
		if out.TotalRounds > 0 {
			ps.WinRate = float64(ps.Wins) * 100 / float64(out.TotalRounds)
		}
		out.Players = append(out.Players, ps)
	}

	// stable so ties keep turn order
	slices.SortStableFunc(out.Players, func(a, b PlayerStats) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(out.Players) > 0 && out.Players[0].Score > 0 {
		out.LeaderID = out.Players[0].PlayerID
	}
	return out
}
