package domain

import (
	"net/url"
	"time"
)

// Player represents a participant in the room
type Player struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	IsHost      bool      `json:"isHost"`
	IsAutomated bool      `json:"isAutomated"`
	AvatarRef   string    `json:"avatarRef,omitempty"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// NewPlayer creates a new human player with the given ID and display name
func NewPlayer(id, displayName string) Player {
	return Player{
		ID:          id,
		DisplayName: displayName,
		AvatarRef:   AvatarFor(displayName),
		JoinedAt:    time.Now().UTC(),
	}
}

// AvatarFor builds the generated-avatar reference for a display name.
func AvatarFor(displayName string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(displayName) + "&background=random"
}

// PlayerStats is a per-player summary for the scoreboard
type PlayerStats struct {
	PlayerID    string  `json:"playerId"`
	DisplayName string  `json:"displayName"`
	Wins        int     `json:"wins"`
	WinRate     float64 `json:"winRate"`
	Score       int     `json:"score"`
	IsAutomated bool    `json:"isAutomated"`
}
