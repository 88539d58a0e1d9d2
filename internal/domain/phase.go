package domain

// Phase represents the current phase of a match
type Phase string

const (
	PhaseLobby    Phase = "LOBBY"     // No room yet
	PhaseWaiting  Phase = "WAITING"   // In a room, waiting for the host to start
	PhasePlaying  Phase = "PLAYING"   // Non-judges submit answers
	PhaseVoting   Phase = "VOTING"    // Judge picks the winning answer
	PhaseResults  Phase = "RESULTS"   // Round winner shown before the next round
	PhaseGameOver Phase = "GAME_OVER" // Someone reached the winning score
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// IsActive reports whether a round is in progress and a judge must exist.
func (p Phase) IsActive() bool {
	return p == PhasePlaying || p == PhaseVoting || p == PhaseResults
}

// IsConfigurable reports whether the host may still change the game config.
func (p Phase) IsConfigurable() bool {
	return p == PhaseLobby || p == PhaseWaiting
}

var validTransitions = map[Phase][]Phase{
	PhaseLobby:    {PhaseWaiting},
	PhaseWaiting:  {PhasePlaying, PhaseLobby},
	PhasePlaying:  {PhaseVoting, PhaseGameOver, PhaseLobby},
	PhaseVoting:   {PhaseResults, PhaseGameOver, PhaseLobby},
	PhaseResults:  {PhasePlaying, PhaseGameOver, PhaseLobby},
	PhaseGameOver: {PhaseLobby},
}

// CanTransitionTo checks if a transition from current phase to target phase is valid
func (p Phase) CanTransitionTo(target Phase) bool {
	for _, phase := range validTransitions[p] {
		if phase == target {
			return true
		}
	}
	return false
}
