package domain

import (
	"maps"
	"time"
)

// RoundRecord is one finished round in the match history
type RoundRecord struct {
	Round       int               `json:"round"`
	Prompt      string            `json:"prompt"`
	Submissions map[string]string `json:"submissions"`
	WinnerID    string            `json:"winnerId,omitempty"` // empty when the round was skipped
	Timestamp   time.Time         `json:"timestamp"`
}

func newRoundRecord(s *Session, winnerID string, at time.Time) RoundRecord {
	return RoundRecord{
		Round:       s.Round,
		Prompt:      s.CurrentPrompt,
		Submissions: maps.Clone(s.Submissions),
		WinnerID:    winnerID,
		Timestamp:   at,
	}
}

// Answer returns the card the winner played, if any
func (r RoundRecord) Answer() string {
	if r.WinnerID == "" {
		return ""
	}
	return r.Submissions[r.WinnerID]
}
