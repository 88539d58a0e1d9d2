package domain

import (
	"maps"
	"slices"
)

// Local holds per-client state that is never part of the replicated truth
type Local struct {
	CurrentPlayer *Player `json:"-"`
	IsHost        bool    `json:"-"`
	Notice        string  `json:"-"` // transient user-visible message
}

// Session is the root aggregate of a match. It is only mutated through Reduce.
type Session struct {
	Phase         Phase               `json:"phase"`
	RoomCode      string              `json:"roomCode"`
	Config        GameConfig          `json:"config"`
	Players       []Player            `json:"players"`
	JudgeID       string              `json:"judgeId"`
	Round         int                 `json:"round"`
	CurrentPrompt string              `json:"currentPrompt"`
	UsedPrompts   []string            `json:"usedPrompts"`
	Hands         map[string][]string `json:"hands"`
	DrawPile      []string            `json:"drawPile"`
	Submissions   map[string]string   `json:"submissions"`
	RevealOrder   []string            `json:"revealOrder"`
	RoundWinnerID string              `json:"roundWinnerId,omitempty"`
	Scoreboard    map[string]int      `json:"scoreboard"`
	History       []RoundRecord       `json:"history"`
	TimerDeadline *int                `json:"timerDeadline,omitempty"`
	StreamMode    bool                `json:"streamMode"`
	Seq           int64               `json:"seq"`

	Local Local `json:"-"`
}

// NewSession creates an empty session in the lobby
func NewSession(cfg GameConfig) *Session {
	return &Session{
		Phase:       PhaseLobby,
		Config:      cfg,
		Players:     make([]Player, 0),
		UsedPrompts: make([]string, 0),
		Hands:       make(map[string][]string),
		DrawPile:    make([]string, 0),
		Submissions: make(map[string]string),
		RevealOrder: make([]string, 0),
		Scoreboard:  make(map[string]int),
		History:     make([]RoundRecord, 0),
	}
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	out := *s
	out.Players = slices.Clone(s.Players)
	out.UsedPrompts = slices.Clone(s.UsedPrompts)
	out.DrawPile = slices.Clone(s.DrawPile)
	out.RevealOrder = slices.Clone(s.RevealOrder)
	out.Submissions = maps.Clone(s.Submissions)
	out.Scoreboard = maps.Clone(s.Scoreboard)

	out.Hands = make(map[string][]string, len(s.Hands))
	for id, hand := range s.Hands {
		out.Hands[id] = slices.Clone(hand)
	}

	out.History = make([]RoundRecord, len(s.History))
	for i, r := range s.History {
		r.Submissions = maps.Clone(r.Submissions)
		out.History[i] = r
	}

	if s.TimerDeadline != nil {
		v := *s.TimerDeadline
		out.TimerDeadline = &v
	}
	if s.Local.CurrentPlayer != nil {
		p := *s.Local.CurrentPlayer
		out.Local.CurrentPlayer = &p
	}

	out.ensureMaps()
	return &out
}

// ensureMaps replaces nil collections, which arrive from sparse snapshots.
func (s *Session) ensureMaps() {
	if s.Players == nil {
		s.Players = make([]Player, 0)
	}
	if s.UsedPrompts == nil {
		s.UsedPrompts = make([]string, 0)
	}
	if s.Hands == nil {
		s.Hands = make(map[string][]string)
	}
	if s.DrawPile == nil {
		s.DrawPile = make([]string, 0)
	}
	if s.Submissions == nil {
		s.Submissions = make(map[string]string)
	}
	if s.RevealOrder == nil {
		s.RevealOrder = make([]string, 0)
	}
	if s.Scoreboard == nil {
		s.Scoreboard = make(map[string]int)
	}
	if s.History == nil {
		s.History = make([]RoundRecord, 0)
	}
}

// GetPlayer returns a player by ID
func (s *Session) GetPlayer(playerID string) (Player, error) {
	if i := s.playerIndex(playerID); i >= 0 {
		return s.Players[i], nil
	}
	return Player{}, ErrPlayerNotFound
}

// HasPlayer reports whether the player is in the room
func (s *Session) HasPlayer(playerID string) bool {
	return s.playerIndex(playerID) >= 0
}

func (s *Session) playerIndex(playerID string) int {
	return slices.IndexFunc(s.Players, func(p Player) bool { return p.ID == playerID })
}

// GetPlayerIDs returns player IDs in turn order
func (s *Session) GetPlayerIDs() []string {
	ids := make([]string, 0, len(s.Players))
	for _, p := range s.Players {
		ids = append(ids, p.ID)
	}
	return ids
}

// HostID returns the id of the player flagged as host, if any
func (s *Session) HostID() string {
	for _, p := range s.Players {
		if p.IsHost {
			return p.ID
		}
	}
	return ""
}

// IsJudge checks if the given player is the current judge
func (s *Session) IsJudge(playerID string) bool {
	return playerID != "" && s.JudgeID == playerID
}

// RequiredSubmissions is the number of answers that completes a round.
func (s *Session) RequiredSubmissions() int {
	required := len(s.Players)
	if s.HasPlayer(s.JudgeID) {
		required--
	}
	return required
}

// PendingPlayers returns non-judge players without a submission, in turn order.
func (s *Session) PendingPlayers() []Player {
	pending := make([]Player, 0)
	for _, p := range s.Players {
		if p.ID == s.JudgeID {
			continue
		}
		if _, ok := s.Submissions[p.ID]; !ok {
			pending = append(pending, p)
		}
	}
	return pending
}

// AllSubmitted checks if every non-judge player has submitted
func (s *Session) AllSubmitted() bool {
	return len(s.Submissions) >= s.RequiredSubmissions()
}

// JudgeValid reports whether the judge assignment is consistent for the current phase.
func (s *Session) JudgeValid() bool {
	if !s.Phase.IsActive() {
		return true
	}
	return s.HasPlayer(s.JudgeID)
}

// DisplayPhase is the phase a client should render. Observers fall back to
// the waiting room while the judge assignment is broken.
func (s *Session) DisplayPhase() Phase {
	if !s.JudgeValid() && !s.Local.IsHost {
		return PhaseWaiting
	}
	return s.Phase
}

// CanStart checks if the host may start the match
func (s *Session) CanStart() bool {
	return s.Phase == PhaseWaiting &&
		len(s.Players) >= s.Config.MinPlayers &&
		len(s.Players) <= s.Config.MaxPlayers
}

// Snapshot returns the replicated view of the session (local fields cleared).
func (s *Session) Snapshot() *Session {
	out := s.Clone()
	out.Local = Local{}
	return out
}
