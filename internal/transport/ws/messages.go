package ws

import "time"

// Relay API error codes
const (
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeRoomExists     = "ROOM_EXISTS"
	ErrCodeRoomNotFound   = "ROOM_NOT_FOUND"
	ErrCodeMissingCode    = "MISSING_ROOM_CODE"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

// CreateRoomRequest is the body of POST /api/rooms. An empty code lets the
// relay pick one.
type CreateRoomRequest struct {
	RoomCode string `json:"roomCode,omitempty"`
}

// CreateRoomResponse carries the host token for the new room
type CreateRoomResponse struct {
	RoomCode   string    `json:"roomCode"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expiresAt"`
	InviteLink string    `json:"inviteLink"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
