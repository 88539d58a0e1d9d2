package domain

import "errors"

// Domain errors
var (
	ErrRoomFull            = errors.New("room is full")
	ErrGameInProgress      = errors.New("game already in progress")
	ErrNotEnoughPlayers    = errors.New("not enough players to start")
	ErrTooManyPlayers      = errors.New("too many players to start")
	ErrMissingName         = errors.New("player name is required")
	ErrInvalidName         = errors.New("player name is invalid")
	ErrMissingRoomCode     = errors.New("room code is required")
	ErrInvalidRoomCode     = errors.New("room code is invalid")
	ErrRoomCodeImmutable   = errors.New("room code is already set")
	ErrInvalidConfig       = errors.New("invalid game configuration")
	ErrInvalidPhase        = errors.New("invalid action for current phase")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrDuplicatePlayer     = errors.New("player already in room")
	ErrNotHost             = errors.New("only host can perform this action")
	ErrNotJudge            = errors.New("only the judge can select the winner")
	ErrJudgeCannotSubmit   = errors.New("the judge cannot submit an answer")
	ErrAlreadySubmitted    = errors.New("already submitted this round")
	ErrCardNotInHand       = errors.New("card is not in the player's hand")
	ErrNoSubmission        = errors.New("selected player has no submission")
	ErrNoCurrentPlayer     = errors.New("no local player")
	ErrJudgeMissing        = errors.New("judge does not reference an existing player")
	ErrDrawPileExhausted   = errors.New("draw pile exhausted")
	ErrUnknownEvent        = errors.New("unknown event")
	ErrInvalidRevealOrder  = errors.New("reveal order does not match submissions")
	ErrInvalidTransition   = errors.New("invalid phase transition")
	ErrTransportFailure    = errors.New("transport failure")
	ErrDeckTooSmallToStart = errors.New("not enough cards to deal every hand")
)

// ErrorKind groups errors by how they are surfaced to the user.
type ErrorKind string

const (
	KindNone          ErrorKind = ""
	KindUserInput     ErrorKind = "USER_INPUT"
	KindAuthorization ErrorKind = "AUTHORIZATION"
	KindIntegrity     ErrorKind = "INTEGRITY"
	KindTransport     ErrorKind = "TRANSPORT"
	KindResource      ErrorKind = "RESOURCE"
	KindRejected      ErrorKind = "REJECTED"
)

// Classify maps an error onto the error taxonomy.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotHost), errors.Is(err, ErrNotJudge):
		return KindAuthorization
	case errors.Is(err, ErrJudgeMissing), errors.Is(err, ErrInvalidRevealOrder):
		return KindIntegrity
	case errors.Is(err, ErrTransportFailure):
		return KindTransport
	case errors.Is(err, ErrDrawPileExhausted), errors.Is(err, ErrDeckTooSmallToStart):
		return KindResource
	case errors.Is(err, ErrMissingName), errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrMissingRoomCode), errors.Is(err, ErrInvalidRoomCode),
		errors.Is(err, ErrRoomFull), errors.Is(err, ErrGameInProgress),
		errors.Is(err, ErrNotEnoughPlayers), errors.Is(err, ErrTooManyPlayers),
		errors.Is(err, ErrInvalidConfig):
		return KindUserInput
	default:
		return KindRejected
	}
}
