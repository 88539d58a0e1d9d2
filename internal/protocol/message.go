package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"partycards/internal/domain"
)

// MessageType tags a wire message
type MessageType string

const (
	TypePlayerJoin      MessageType = "PLAYER_JOIN"
	TypePlayerLeave     MessageType = "PLAYER_LEAVE"
	TypeAnswerSubmitted MessageType = "ANSWER_SUBMITTED"
	TypeWinnerSelected  MessageType = "WINNER_SELECTED"
	TypeStateSnapshot   MessageType = "STATE_SNAPSHOT"
	TypeSnapshotRequest MessageType = "SNAPSHOT_REQUEST"
)

var (
	ErrMalformedMessage = errors.New("malformed message")
	ErrUnknownMessage   = errors.New("unknown message type")
)

// Envelope is the wire form of every message
type Envelope struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Sender    string          `json:"sender"`
	Timestamp int64           `json:"timestamp"` // unix milliseconds
}

// Message is one of the six protocol messages.
type Message interface {
	Type() MessageType
	isMessage()
}

// PlayerJoin announces a participant. The payload is the player itself.
type PlayerJoin struct {
	Player domain.Player
}

// PlayerLeave removes a participant. RemovedBy differs from PlayerID when the
// player was evicted; Reason explains a rejected join.
type PlayerLeave struct {
	PlayerID  string `json:"playerId"`
	RemovedBy string `json:"removedBy,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// AnswerSubmitted carries a played card
type AnswerSubmitted struct {
	PlayerID string `json:"playerId"`
	Card     string `json:"card"`
}

// WinnerSelected carries the judge's choice
type WinnerSelected struct {
	JudgeID  string `json:"judgeId"`
	WinnerID string `json:"winnerId"`
}

// StateSnapshot carries the host's full session
type StateSnapshot struct {
	Session *domain.Session
}

// SnapshotRequest asks the host for a fresh snapshot
type SnapshotRequest struct{}

func (PlayerJoin) Type() MessageType      { return TypePlayerJoin }
func (PlayerLeave) Type() MessageType     { return TypePlayerLeave }
func (AnswerSubmitted) Type() MessageType { return TypeAnswerSubmitted }
func (WinnerSelected) Type() MessageType  { return TypeWinnerSelected }
func (StateSnapshot) Type() MessageType   { return TypeStateSnapshot }
func (SnapshotRequest) Type() MessageType { return TypeSnapshotRequest }

func (PlayerJoin) isMessage()      {}
func (PlayerLeave) isMessage()     {}
func (AnswerSubmitted) isMessage() {}
func (WinnerSelected) isMessage()  {}
func (StateSnapshot) isMessage()   {}
func (SnapshotRequest) isMessage() {}

// Encode wraps msg in an envelope and serializes it.
func Encode(msg Message, sender string, at time.Time) ([]byte, error) {
	var payload any
	switch m := msg.(type) {
	case PlayerJoin:
		payload = m.Player
	case StateSnapshot:
		if m.Session == nil {
			return nil, fmt.Errorf("%w: empty snapshot", ErrMalformedMessage)
		}
		payload = m.Session
	case SnapshotRequest:
		payload = nil
	case PlayerLeave, AnswerSubmitted, WinnerSelected:
		payload = m
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownMessage, msg)
	}

	env := Envelope{Type: msg.Type(), Sender: sender, Timestamp: at.UnixMilli()}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", msg.Type(), err)
		}
		env.Payload = raw
	}
	return json.Marshal(env)
}

// Decode parses an envelope and its typed payload.
func Decode(data []byte) (Message, Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, env, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	var (
		msg Message
		err error
	)
	switch env.Type {
	case TypePlayerJoin:
		var p domain.Player
		err = unmarshalPayload(env, &p)
		if err == nil && p.ID == "" {
			err = fmt.Errorf("%w: player without id", ErrMalformedMessage)
		}
		msg = PlayerJoin{Player: p}
	case TypePlayerLeave:
		var m PlayerLeave
		err = unmarshalPayload(env, &m)
		msg = m
	case TypeAnswerSubmitted:
		var m AnswerSubmitted
		err = unmarshalPayload(env, &m)
		msg = m
	case TypeWinnerSelected:
		var m WinnerSelected
		err = unmarshalPayload(env, &m)
		msg = m
	case TypeStateSnapshot:
		var s domain.Session
		err = unmarshalPayload(env, &s)
		msg = StateSnapshot{Session: &s}
	case TypeSnapshotRequest:
		msg = SnapshotRequest{}
	default:
		return nil, env, fmt.Errorf("%w: %q", ErrUnknownMessage, env.Type)
	}
	if err != nil {
		return nil, env, err
	}
	return msg, env, nil
}

func unmarshalPayload(env Envelope, v any) error {
	if len(env.Payload) == 0 {
		return fmt.Errorf("%w: %s without payload", ErrMalformedMessage, env.Type)
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedMessage, env.Type, err)
	}
	return nil
}
