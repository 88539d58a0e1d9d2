// Package relay is the rendezvous server for rooms. It admits one host and
// up to a fixed number of peers per room and forwards every message to all
// other members without inspecting it.
package relay

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"partycards/internal/domain"
)

const (
	// DefaultMaxMembers is the member cap when none is configured
	DefaultMaxMembers = 12

	// DefaultStaleRoomTimeout is how long an empty room is kept
	DefaultStaleRoomTimeout = 2 * time.Hour

	cleanupInterval = 10 * time.Minute
)

// HubConfig configures a Hub
type HubConfig struct {
	MaxMembers       int
	StaleRoomTimeout time.Duration
}

// Stats summarizes the hub
type Stats struct {
	ActiveRooms  int `json:"activeRooms"`
	TotalMembers int `json:"totalMembers"`
}

// Hub manages all open rooms
type Hub struct {
	rooms  map[string]*Room
	mu     sync.RWMutex
	cfg    HubConfig
	tokens *TokenIssuer
	logger *slog.Logger
	done   chan struct{}
	once   sync.Once
}

// NewHub creates a hub and starts its cleanup loop
func NewHub(cfg HubConfig, tokens *TokenIssuer, logger *slog.Logger) *Hub {
	if cfg.MaxMembers <= 0 {
		cfg.MaxMembers = DefaultMaxMembers
	}
	if cfg.StaleRoomTimeout <= 0 {
		cfg.StaleRoomTimeout = DefaultStaleRoomTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	hub := &Hub{
		rooms:  make(map[string]*Room),
		cfg:    cfg,
		tokens: tokens,
		logger: logger,
		done:   make(chan struct{}),
	}

	go hub.cleanupLoop()

	return hub
}

// CreateRoom registers a room and returns it with a host token. An empty
// code asks the hub to pick a unique one.
func (h *Hub) CreateRoom(code string) (*Room, string, time.Time, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if code == "" {
		for attempts := 0; attempts < 10; attempts++ {
			code = domain.GenerateRoomCode()
			if _, exists := h.rooms[code]; !exists {
				break
			}
		}
	} else {
		var err error
		if code, err = domain.ValidateRoomCode(code); err != nil {
			return nil, "", time.Time{}, err
		}
	}
	if _, exists := h.rooms[code]; exists {
		return nil, "", time.Time{}, fmt.Errorf("%w: %s", ErrRoomExists, code)
	}

	token, expires, err := h.tokens.Issue(code)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	room := newRoom(code, h.cfg.MaxMembers, time.Now())
	h.rooms[code] = room
	h.logger.Info("room created", "roomCode", code)

	return room, token, expires, nil
}

// Room returns a room by code
func (h *Hub) Room(code string) (*Room, error) {
	code, err := domain.ValidateRoomCode(code)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// VerifyHost checks a host token for the room
func (h *Hub) VerifyHost(code, token string) error {
	return h.tokens.Verify(token, code)
}

// ConnectHost attaches the host connection of a room.
func (h *Hub) ConnectHost(code, token string, m Member) (*Room, error) {
	room, err := h.Room(code)
	if err != nil {
		return nil, err
	}
	if err := h.VerifyHost(room.Code(), token); err != nil {
		return nil, err
	}
	if err := room.attachHost(m); err != nil {
		return nil, err
	}
	h.logger.Info("host connected", "roomCode", room.Code(), "memberId", m.ID())
	return room, nil
}

// ConnectPeer attaches a peer connection to a room.
func (h *Hub) ConnectPeer(code string, m Member) (*Room, error) {
	room, err := h.Room(code)
	if err != nil {
		return nil, err
	}
	if err := room.join(m); err != nil {
		return nil, err
	}
	h.logger.Info("peer connected", "roomCode", room.Code(), "memberId", m.ID(), "members", room.Size())
	return room, nil
}

// Disconnect detaches m. When the host leaves the room is closed for everyone.
func (h *Hub) Disconnect(room *Room, m Member) {
	if !room.leave(m) {
		h.logger.Debug("peer disconnected", "roomCode", room.Code(), "memberId", m.ID())
		return
	}
	h.DeleteRoom(room.Code())
}

// DeleteRoom closes and removes a room
func (h *Hub) DeleteRoom(code string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[code]; ok {
		room.close()
		delete(h.rooms, code)
		h.logger.Info("room closed", "roomCode", code)
	}
}

// Stats returns room and member counts
func (h *Hub) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := Stats{ActiveRooms: len(h.rooms)}
	for _, room := range h.rooms {
		stats.TotalMembers += room.Size()
	}
	return stats
}

// Close shuts down the hub and all rooms
func (h *Hub) Close() {
	h.once.Do(func() { close(h.done) })

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, room := range h.rooms {
		room.close()
	}
	h.rooms = make(map[string]*Room)
}

// cleanupLoop periodically removes stale rooms
func (h *Hub) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case now := <-ticker.C:
			h.cleanupStaleRooms(now)
		}
	}
}

// cleanupStaleRooms removes rooms that have been empty for too long
func (h *Hub) cleanupStaleRooms(now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := 0
	for code, room := range h.rooms {
		since, empty := room.idleSince()
		if empty && now.Sub(since) > h.cfg.StaleRoomTimeout {
			room.close()
			delete(h.rooms, code)
			removed++
			h.logger.Info("stale room cleaned up", "roomCode", code)
		}
	}
	return removed
}
