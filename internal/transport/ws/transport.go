package ws

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"partycards/internal/transport"
)

// Transport connects to rooms through a relay server.
type Transport struct {
	baseURL *url.URL
	client  *http.Client
	dialer  *websocket.Dialer
	logger  *slog.Logger
}

var _ transport.Transport = (*Transport)(nil)

// NewTransport creates a client for the relay at baseURL (http or https).
func NewTransport(baseURL string, logger *slog.Logger) (*Transport, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse relay url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("relay url must be http or https, got %q", baseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{
		baseURL: u,
		client:  &http.Client{},
		dialer:  websocket.DefaultDialer,
		logger:  logger,
	}, nil
}

// CreateRoom registers the room with the relay, then connects as its host.
func (t *Transport) CreateRoom(ctx context.Context, roomCode string) (transport.Conn, error) {
	body, err := json.Marshal(CreateRoomRequest{RoomCode: roomCode})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL.String()+"/api/rooms", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		Success bool               `json:"success"`
		Data    CreateRoomResponse `json:"data"`
		Error   *ErrorInfo         `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("create room: decode response: %w", err)
	}
	if !out.Success {
		if out.Error != nil && out.Error.Code == ErrCodeRoomExists {
			return nil, transport.ErrRoomExists
		}
		return nil, fmt.Errorf("create room: status %d: %+v", resp.StatusCode, out.Error)
	}

	return t.dial(ctx, out.Data.RoomCode, out.Data.Token)
}

// JoinRoom connects to an existing room as a peer.
func (t *Transport) JoinRoom(ctx context.Context, roomCode string) (transport.Conn, error) {
	return t.dial(ctx, roomCode, "")
}

func (t *Transport) dial(ctx context.Context, roomCode, token string) (transport.Conn, error) {
	u := *t.baseURL
	u.Scheme = "ws"
	if t.baseURL.Scheme == "https" {
		u.Scheme = "wss"
	}
	u.Path += "/ws"
	q := url.Values{"roomCode": {roomCode}}
	if token != "" {
		q.Set("token", token)
	}
	u.RawQuery = q.Encode()

	conn, resp, err := t.dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			switch resp.StatusCode {
			case http.StatusNotFound:
				return nil, transport.ErrRoomNotFound
			case http.StatusForbidden:
				return nil, fmt.Errorf("join room: %w: room is not accepting players", transport.ErrClosed)
			}
		}
		return nil, fmt.Errorf("dial relay: %w", err)
	}

	c := &clientConn{link: newLink(conn, t.logger.With("roomCode", roomCode))}
	go c.writePump()
	go func() {
		c.readPump(c.dispatch)
		c.Close()
	}()
	return c, nil
}

// clientConn is the node side of a relay connection.
type clientConn struct {
	*link
	handlerMu sync.RWMutex
	handler   func([]byte)
}

func (c *clientConn) Broadcast(data []byte) error {
	if c.isClosed() {
		return transport.ErrClosed
	}
	if !c.enqueue(data) {
		return fmt.Errorf("%w: send buffer full", transport.ErrClosed)
	}
	return nil
}

func (c *clientConn) OnMessage(handler func([]byte)) {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()
	c.handler = handler
}

func (c *clientConn) dispatch(data []byte) {
	c.handlerMu.RLock()
	h := c.handler
	c.handlerMu.RUnlock()
	if h != nil {
		h(data)
	}
}
