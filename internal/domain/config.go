package domain

import "fmt"

// GameConfig holds configurable match parameters
type GameConfig struct {
	MaxPlayers        int `json:"maxPlayers"`
	MinPlayers        int `json:"minPlayers"`
	HandSize          int `json:"handSize"`
	WinningScore      int `json:"winningScore"`
	RoundTimeoutSec   int `json:"roundTimeoutSec"`   // 0 disables the round timer
	VotingTimeoutSec  int `json:"votingTimeoutSec"`  // 0 disables the voting timer
	ResultsDisplaySec int `json:"resultsDisplaySec"` // delay before the next round
}

// DefaultGameConfig returns the default match settings
func DefaultGameConfig() GameConfig {
	return GameConfig{
		MaxPlayers:        8,
		MinPlayers:        3,
		HandSize:          10,
		WinningScore:      5,
		RoundTimeoutSec:   120,
		VotingTimeoutSec:  60,
		ResultsDisplaySec: 10,
	}
}

// Validate checks every field against its allowed range.
func (c GameConfig) Validate() error {
	switch {
	case c.HandSize < 3 || c.HandSize > 15:
		return fmt.Errorf("%w: hand size must be between 3 and 15", ErrInvalidConfig)
	case c.WinningScore < 1 || c.WinningScore > 10:
		return fmt.Errorf("%w: winning score must be between 1 and 10", ErrInvalidConfig)
	case c.MaxPlayers < 3 || c.MaxPlayers > 12:
		return fmt.Errorf("%w: max players must be between 3 and 12", ErrInvalidConfig)
	case c.MinPlayers < 3 || c.MinPlayers > c.MaxPlayers:
		return fmt.Errorf("%w: min players must be between 3 and max players", ErrInvalidConfig)
	case c.RoundTimeoutSec < 0 || c.RoundTimeoutSec > 600:
		return fmt.Errorf("%w: round timer must be between 0 and 600 seconds", ErrInvalidConfig)
	case c.VotingTimeoutSec < 0 || c.VotingTimeoutSec > 600:
		return fmt.Errorf("%w: voting timer must be between 0 and 600 seconds", ErrInvalidConfig)
	case c.ResultsDisplaySec < 0 || c.ResultsDisplaySec > 60:
		return fmt.Errorf("%w: results delay must be between 0 and 60 seconds", ErrInvalidConfig)
	}
	return nil
}

// timerFor returns a countdown pointer, or nil when seconds disables it.
func timerFor(seconds int) *int {
	if seconds <= 0 {
		return nil
	}
	v := seconds
	return &v
}
