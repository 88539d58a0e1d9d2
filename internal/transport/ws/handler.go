package ws

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"partycards/internal/relay"
)

// Member is a relay-side websocket connection. It joins its room before the
// upgrade, so messages relayed in between wait in its send buffer.
type Member struct {
	*link
	id string
}

func newMember(logger *slog.Logger) *Member {
	id := uuid.New().String()
	return &Member{link: newLink(nil, logger.With("memberId", id)), id: id}
}

// ID returns the member id
func (m *Member) ID() string {
	return m.id
}

// Send implements relay.Member
func (m *Member) Send(data []byte) bool {
	return m.enqueue(data)
}

var _ relay.Member = (*Member)(nil)

// Handler upgrades room connections and attaches them to the hub
type Handler struct {
	hub      *relay.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *relay.Hub, logger *slog.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Clients are terminal programs and browsers on any origin
				return true
			},
		},
		logger: logger,
	}
}

// ServeHTTP handles GET /ws?roomCode=...[&token=...]. A token marks the
// room's host connection.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	roomCode := r.URL.Query().Get("roomCode")
	if roomCode == "" {
		http.Error(w, "roomCode is required", http.StatusBadRequest)
		return
	}
	token := r.URL.Query().Get("token")
	isHost := token != ""

	room, err := h.hub.Room(roomCode)
	if err != nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	member := newMember(h.logger)
	if isHost {
		_, err = h.hub.ConnectHost(room.Code(), token, member)
	} else {
		_, err = h.hub.ConnectPeer(room.Code(), member)
	}
	if err != nil {
		h.logger.Info("connection refused", "roomCode", room.Code(), "host", isHost, "error", err)
		http.Error(w, err.Error(), refusalStatus(err))
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		h.hub.Disconnect(room, member)
		return
	}
	member.conn = conn

	h.logger.Info("websocket connected",
		"roomCode", room.Code(),
		"memberId", member.ID(),
		"host", isHost,
	)

	go member.writePump()
	member.readPump(func(data []byte) {
		if dropped := room.Broadcast(member, data); dropped > 0 {
			h.logger.Warn("relay dropped message", "roomCode", room.Code(), "dropped", dropped)
		}
	})

	h.hub.Disconnect(room, member)
	member.Close()
}

func refusalStatus(err error) int {
	switch {
	case errors.Is(err, relay.ErrInvalidToken), errors.Is(err, relay.ErrNoSecret):
		return http.StatusUnauthorized
	case errors.Is(err, relay.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, relay.ErrHostConnected):
		return http.StatusConflict
	default:
		return http.StatusForbidden
	}
}
