package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"partycards/internal/domain"
	"partycards/internal/relay"
	"partycards/internal/transport/ws"
)

// Response is a standard API response
type Response struct {
	Success bool          `json:"success"`
	Data    interface{}   `json:"data,omitempty"`
	Error   *ws.ErrorInfo `json:"error,omitempty"`
}

// RoomExistsResponse is the response for checking if room exists
type RoomExistsResponse struct {
	Exists bool `json:"exists"`
}

// HealthResponse is the response for health check
type HealthResponse struct {
	Status string `json:"status"`
}

// handleCreateRoom handles POST /api/rooms
func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req ws.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.sendError(w, http.StatusBadRequest, ws.ErrCodeInvalidRequest, "Invalid request body")
		return
	}

	room, token, expires, err := s.hub.CreateRoom(req.RoomCode)
	switch {
	case err == nil:
	case errors.Is(err, relay.ErrRoomExists):
		s.sendError(w, http.StatusConflict, ws.ErrCodeRoomExists, "Room already exists")
		return
	case errors.Is(err, domain.ErrInvalidRoomCode), errors.Is(err, domain.ErrMissingRoomCode):
		s.sendError(w, http.StatusBadRequest, ws.ErrCodeInvalidRequest, err.Error())
		return
	default:
		s.logger.Error("create room failed", "error", err)
		s.sendError(w, http.StatusInternalServerError, ws.ErrCodeInternalError, "Failed to create room")
		return
	}

	// Build invite link
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	inviteLink := scheme + "://" + r.Host + "/join/" + room.Code()

	s.sendSuccess(w, &ws.CreateRoomResponse{
		RoomCode:   room.Code(),
		Token:      token,
		ExpiresAt:  expires,
		InviteLink: inviteLink,
	})
}

// handleGetRoom handles GET /api/rooms/{roomCode}
func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	roomCode := chi.URLParam(r, "roomCode")
	if roomCode == "" {
		s.sendError(w, http.StatusBadRequest, ws.ErrCodeMissingCode, "Room code is required")
		return
	}

	room, err := s.hub.Room(roomCode)
	if err != nil {
		s.sendError(w, http.StatusNotFound, ws.ErrCodeRoomNotFound, "Room not found")
		return
	}

	s.sendSuccess(w, room.Info())
}

// handleRoomExists handles GET /api/rooms/{roomCode}/exists
func (s *Server) handleRoomExists(w http.ResponseWriter, r *http.Request) {
	_, err := s.hub.Room(chi.URLParam(r, "roomCode"))

	s.sendSuccess(w, &RoomExistsResponse{
		Exists: err == nil,
	})
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &HealthResponse{
		Status: "ok",
	})
}

// handleStats handles GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, s.hub.Stats())
}

// sendSuccess sends a successful JSON response
func (s *Server) sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&Response{
		Success: true,
		Data:    data,
	})
}

// sendError sends an error JSON response
func (s *Server) sendError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{
		Success: false,
		Error: &ws.ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}
