package relay

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomExists    = errors.New("room already exists")
	ErrRoomFull      = errors.New("room is full")
	ErrRoomClosed    = errors.New("room is closed")
	ErrHostConnected = errors.New("room already has a host")
)

// Member is one connection attached to a room.
type Member interface {
	ID() string
	// Send queues data for delivery and reports whether it was accepted.
	Send(data []byte) bool
	Close() error
}

// Room fans every message out to all other members. It knows nothing about
// the game; the host's node is the authority.
type Room struct {
	code       string
	maxMembers int
	createdAt  time.Time

	mu         sync.RWMutex
	host       Member
	members    map[string]Member
	lastActive time.Time
	closed     bool
}

// RoomInfo is a point-in-time view of a room.
type RoomInfo struct {
	RoomCode  string    `json:"roomCode"`
	Members   int       `json:"members"`
	HasHost   bool      `json:"hasHost"`
	CanJoin   bool      `json:"canJoin"`
	CreatedAt time.Time `json:"createdAt"`
}

func newRoom(code string, maxMembers int, now time.Time) *Room {
	return &Room{
		code:       code,
		maxMembers: maxMembers,
		createdAt:  now,
		members:    make(map[string]Member),
		lastActive: now,
	}
}

// Code returns the room code
func (r *Room) Code() string {
	return r.code
}

// Info returns the room's current state
func (r *Room) Info() RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RoomInfo{
		RoomCode:  r.code,
		Members:   len(r.members),
		HasHost:   r.host != nil,
		CanJoin:   r.canJoinLocked(),
		CreatedAt: r.createdAt,
	}
}

// Size returns the number of connected members
func (r *Room) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// CanJoin reports whether a peer would currently be admitted.
func (r *Room) CanJoin() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.canJoinLocked()
}

func (r *Room) canJoinLocked() bool {
	return !r.closed && r.host != nil && len(r.members) < r.maxMembers
}

func (r *Room) attachHost(m Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRoomClosed
	}
	if r.host != nil {
		return ErrHostConnected
	}
	r.host = m
	r.members[m.ID()] = m
	r.lastActive = time.Now()
	return nil
}

func (r *Room) join(m Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.closed:
		return ErrRoomClosed
	case r.host == nil:
		return ErrRoomNotFound
	case len(r.members) >= r.maxMembers:
		return ErrRoomFull
	}
	r.members[m.ID()] = m
	r.lastActive = time.Now()
	return nil
}

// leave detaches m and reports whether it was the host.
func (r *Room) leave(m Member) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.members[m.ID()] != m {
		return false
	}
	delete(r.members, m.ID())
	r.lastActive = time.Now()
	return r.host == m
}

// Broadcast delivers data to every member except from and returns the number
// of members that rejected it.
func (r *Room) Broadcast(from Member, data []byte) int {
	r.mu.RLock()
	targets := make([]Member, 0, len(r.members))
	for _, m := range r.members {
		if m != from {
			targets = append(targets, m)
		}
	}
	r.mu.RUnlock()

	dropped := 0
	for _, m := range targets {
		if !m.Send(data) {
			dropped++
		}
	}
	return dropped
}

// close disconnects every member. Messages already queued are still flushed
// by the members' write pumps.
func (r *Room) close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	members := r.members
	r.members = make(map[string]Member)
	r.host = nil
	r.mu.Unlock()

	for _, m := range members {
		m.Close()
	}
}

func (r *Room) idleSince() (time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastActive, len(r.members) == 0
}
