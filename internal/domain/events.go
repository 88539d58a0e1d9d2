package domain

import "time"

// Event is a transition request for the reducer. The set of events is closed;
// Reduce handles every implementation.
type Event interface {
	EventName() string
	isEvent()
}

// CreateRoom opens a room with the local player as host
type CreateRoom struct {
	RoomCode string
	Host     Player
}

// JoinRoom enters an existing room as a peer
type JoinRoom struct {
	RoomCode string
	Player   Player
}

// AddPlayer registers another participant in the waiting room
type AddPlayer struct {
	Player Player
}

// RemovePlayer drops a participant with their score, hand and submission
type RemovePlayer struct {
	PlayerID string
}

// SetConfig replaces the match settings before the game starts
type SetConfig struct {
	Config GameConfig
}

// SetStreamMode toggles whether the room code is hidden on screen
type SetStreamMode struct {
	Enabled bool
}

// StartGame deals the first round. TurnOrder[0] becomes the first judge.
type StartGame struct {
	TurnOrder []string
	Hands     map[string][]string
	DrawPile  []string
	Prompt    string
	Wrapped   bool // prompt deck was exhausted and the used set resets
}

// SubmitAnswer plays one card from a player's hand
type SubmitAnswer struct {
	PlayerID string
	Card     string
}

// BeginVoting fixes the reveal order and opens judging
type BeginVoting struct {
	RevealOrder []string
}

// SelectWinner awards the round to the owner of a submission
type SelectWinner struct {
	JudgeID  string
	WinnerID string
	At       time.Time
}

// SkipRound closes a voting phase that received no submissions
type SkipRound struct {
	At time.Time
}

// NextRound refills hands, rotates the judge and opens a new prompt
type NextRound struct {
	Prompt  string
	Wrapped bool
}

// EndGame stops an active match early
type EndGame struct {
	Reason string
}

// AssignJudge replaces a judge that no longer references a player
type AssignJudge struct {
	JudgeID string
}

// Tick advances the phase countdown by one second
type Tick struct{}

// SetTimer overrides the phase countdown. Nil clears it.
type SetTimer struct {
	Seconds *int
}

// SetNotice records a transient message for the local user
type SetNotice struct {
	Message string
}

// ResetGame returns the client to the lobby
type ResetGame struct{}

// ApplySnapshot merges an authoritative snapshot from the host
type ApplySnapshot struct {
	Snapshot *Session
}

func (CreateRoom) EventName() string    { return "CREATE_ROOM" }
func (JoinRoom) EventName() string      { return "JOIN_ROOM" }
func (AddPlayer) EventName() string     { return "ADD_PLAYER" }
func (RemovePlayer) EventName() string  { return "REMOVE_PLAYER" }
func (SetConfig) EventName() string     { return "SET_CONFIG" }
func (SetStreamMode) EventName() string { return "SET_STREAM_MODE" }
func (StartGame) EventName() string     { return "START_GAME" }
func (SubmitAnswer) EventName() string  { return "SUBMIT_ANSWER" }
func (BeginVoting) EventName() string   { return "BEGIN_VOTING" }
func (SelectWinner) EventName() string  { return "SELECT_WINNER" }
func (SkipRound) EventName() string     { return "SKIP_ROUND" }
func (NextRound) EventName() string     { return "NEXT_ROUND" }
func (EndGame) EventName() string       { return "END_GAME" }
func (AssignJudge) EventName() string   { return "ASSIGN_JUDGE" }
func (Tick) EventName() string          { return "TICK" }
func (SetTimer) EventName() string      { return "SET_TIMER" }
func (SetNotice) EventName() string     { return "SET_NOTICE" }
func (ResetGame) EventName() string     { return "RESET_GAME" }
func (ApplySnapshot) EventName() string { return "APPLY_SNAPSHOT" }

func (CreateRoom) isEvent()    {}
func (JoinRoom) isEvent()      {}
func (AddPlayer) isEvent()     {}
func (RemovePlayer) isEvent()  {}
func (SetConfig) isEvent()     {}
func (SetStreamMode) isEvent() {}
func (StartGame) isEvent()     {}
func (SubmitAnswer) isEvent()  {}
func (BeginVoting) isEvent()   {}
func (SelectWinner) isEvent()  {}
func (SkipRound) isEvent()     {}
func (NextRound) isEvent()     {}
func (EndGame) isEvent()       {}
func (AssignJudge) isEvent()   {}
func (Tick) isEvent()          {}
func (SetTimer) isEvent()      {}
func (SetNotice) isEvent()     {}
func (ResetGame) isEvent()     {}
func (ApplySnapshot) isEvent() {}
