// Package memory is an in-process star mesh. Peers link only to the host
// connection, which relays every message to all other links except the one
// it came from.
package memory

import (
	"context"
	"math/rand"
	"sync"

	"partycards/internal/transport"
)

// Network is a set of in-process rooms.
type Network struct {
	mu       sync.Mutex
	rooms    map[string]*hostConn
	dropRate float64
	rng      *rand.Rand
}

// Option configures a Network
type Option func(*Network)

// WithDropRate discards each delivery with probability p.
func WithDropRate(p float64, seed int64) Option {
	return func(n *Network) {
		n.dropRate = p
		n.rng = rand.New(rand.NewSource(seed))
	}
}

// NewNetwork creates an empty network
func NewNetwork(opts ...Option) *Network {
	n := &Network{rooms: make(map[string]*hostConn)}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

var _ transport.Transport = (*Network)(nil)

// CreateRoom registers the host connection for roomCode.
func (n *Network) CreateRoom(ctx context.Context, roomCode string) (transport.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.rooms[roomCode]; ok {
		return nil, transport.ErrRoomExists
	}
	h := &hostConn{
		endpoint: newEndpoint(n),
		network:  n,
		roomCode: roomCode,
		peers:    make(map[*peerConn]bool),
	}
	n.rooms[roomCode] = h
	return h, nil
}

// JoinRoom links a new peer to the room's host.
func (n *Network) JoinRoom(ctx context.Context, roomCode string) (transport.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n.mu.Lock()
	h, ok := n.rooms[roomCode]
	n.mu.Unlock()
	if !ok {
		return nil, transport.ErrRoomNotFound
	}

	p := &peerConn{endpoint: newEndpoint(n), host: h}
	if !h.link(p) {
		return nil, transport.ErrRoomNotFound
	}
	return p, nil
}

// Rooms returns the number of open rooms
func (n *Network) Rooms() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.rooms)
}

func (n *Network) drop() bool {
	if n.dropRate <= 0 {
		return false
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.rng.Float64() < n.dropRate
}

func (n *Network) removeRoom(roomCode string, h *hostConn) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.rooms[roomCode] == h {
		delete(n.rooms, roomCode)
	}
}

// endpoint is the receive side shared by hosts and peers. Deliveries are
// queued and handed to the handler on a dedicated goroutine.
type endpoint struct {
	network *Network
	mu      sync.Mutex
	handler func([]byte)
	queue   chan []byte
	done    chan struct{}
	once    sync.Once
}

const queueSize = 256

func newEndpoint(n *Network) *endpoint {
	e := &endpoint{
		network: n,
		queue:   make(chan []byte, queueSize),
		done:    make(chan struct{}),
	}
	go e.run()
	return e
}

func (e *endpoint) OnMessage(handler func([]byte)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handler = handler
}

func (e *endpoint) run() {
	for {
		select {
		case <-e.done:
			return
		case data := <-e.queue:
			if data == nil {
				e.shutdown()
				return
			}
			e.mu.Lock()
			h := e.handler
			e.mu.Unlock()
			if h != nil {
				h(data)
			}
		}
	}
}

// deliver enqueues a copy of data. Full queues and lossy networks drop it.
func (e *endpoint) deliver(data []byte) {
	if e.network.drop() {
		return
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	select {
	case <-e.done:
	case e.queue <- buf:
	default:
	}
}

func (e *endpoint) closed() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

func (e *endpoint) shutdown() {
	e.once.Do(func() { close(e.done) })
}

// finish shuts the endpoint down after everything already queued is handled.
func (e *endpoint) finish() {
	select {
	case <-e.done:
	case e.queue <- nil:
	}
}

// hostConn is the hub of a room.
type hostConn struct {
	*endpoint
	network  *Network
	roomCode string

	peersMu sync.RWMutex
	peers   map[*peerConn]bool
}

func (h *hostConn) link(p *peerConn) bool {
	h.peersMu.Lock()
	defer h.peersMu.Unlock()
	if h.closed() {
		return false
	}
	h.peers[p] = true
	return true
}

func (h *hostConn) unlink(p *peerConn) {
	h.peersMu.Lock()
	defer h.peersMu.Unlock()
	delete(h.peers, p)
}

// Broadcast sends the host's own message to every peer.
func (h *hostConn) Broadcast(data []byte) error {
	if h.closed() {
		return transport.ErrClosed
	}
	h.relay(data, nil)
	return nil
}

// relay forwards data to every peer except from.
func (h *hostConn) relay(data []byte, from *peerConn) {
	h.peersMu.RLock()
	defer h.peersMu.RUnlock()
	for p := range h.peers {
		if p != from {
			p.deliver(data)
		}
	}
}

// receive handles a message sent by a peer: the host consumes it and
// forwards it to everyone else.
func (h *hostConn) receive(data []byte, from *peerConn) {
	h.deliver(data)
	h.relay(data, from)
}

func (h *hostConn) Close() error {
	h.network.removeRoom(h.roomCode, h)
	h.shutdown()

	h.peersMu.Lock()
	peers := h.peers
	h.peers = make(map[*peerConn]bool)
	h.peersMu.Unlock()
	for p := range peers {
		p.finish()
	}
	return nil
}

// peerConn is a spoke linked only to the host.
type peerConn struct {
	*endpoint
	host *hostConn
}

func (p *peerConn) Broadcast(data []byte) error {
	if p.closed() || p.host.closed() {
		return transport.ErrClosed
	}
	p.host.receive(data, p)
	return nil
}

func (p *peerConn) Close() error {
	p.host.unlink(p)
	p.shutdown()
	return nil
}
