// Package transport defines the peer mesh the replication protocol runs on.
// Implementations make no ordering, delivery or exactly-once guarantees.
package transport

import (
	"context"
	"errors"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomExists   = errors.New("room already exists")
	ErrClosed       = errors.New("connection closed")
)

// Transport opens connections to a room namespace.
type Transport interface {
	// CreateRoom opens the host side of a room.
	CreateRoom(ctx context.Context, roomCode string) (Conn, error)
	// JoinRoom connects a peer to an existing room.
	JoinRoom(ctx context.Context, roomCode string) (Conn, error)
}

// Conn is one participant's link to the mesh.
type Conn interface {
	// Broadcast sends data to every other participant in the room.
	Broadcast(data []byte) error
	// OnMessage installs the receive handler. The handler may be called from
	// any goroutine and must not block.
	OnMessage(handler func(data []byte))
	Close() error
}
