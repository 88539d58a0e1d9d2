package ws

import (
	"bytes"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Snapshots carry every hand.
	maxMessageSize = 512 * 1024

	// Size of the send channel buffer
	sendBufferSize = 256
)

// link owns one websocket connection and its read and write pumps. It is
// shared by relay members and client connections.
type link struct {
	conn   *websocket.Conn
	send   chan []byte
	logger *slog.Logger
	mu     sync.Mutex
	closed bool
}

func newLink(conn *websocket.Conn, logger *slog.Logger) *link {
	return &link{
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		logger: logger,
	}
}

// enqueue queues data for the write pump and reports whether it was accepted.
func (l *link) enqueue(data []byte) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return false
	}

	select {
	case l.send <- data:
		return true
	default:
		// Buffer full, message dropped
		l.logger.Warn("send buffer full, message dropped")
		return false
	}
}

func (l *link) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// Close stops accepting messages. The write pump flushes what is queued,
// sends a close frame and closes the connection.
func (l *link) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}

	l.closed = true
	close(l.send)
	return nil
}

// readPump delivers every received message to handle until the connection fails.
func (l *link) readPump(handle func([]byte)) {
	l.conn.SetReadLimit(maxMessageSize)
	l.conn.SetReadDeadline(time.Now().Add(pongWait))
	l.conn.SetPongHandler(func(string) error {
		l.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := l.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				l.logger.Debug("websocket read error", "error", err)
			}
			return
		}

		// the write pump may coalesce queued messages, one per line
		for _, part := range bytes.Split(message, []byte{'\n'}) {
			if len(part) > 0 {
				handle(part)
			}
		}
	}
}

// writePump pumps messages from the send channel to the websocket connection
func (l *link) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		l.conn.Close()
	}()

	for {
		select {
		case message, ok := <-l.send:
			l.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				l.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			w, err := l.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(l.send)
			for i := 0; i < n; i++ {
				next, ok := <-l.send
				if !ok {
					break
				}
				w.Write([]byte{'\n'})
				w.Write(next)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			l.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := l.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
