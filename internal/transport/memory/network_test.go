package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"partycards/internal/transport"
)

type inbox struct {
	mu   sync.Mutex
	msgs []string
}

func (b *inbox) handler(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, string(data))
}

func (b *inbox) snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.msgs...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within a second")
}

func TestHostRelaysToEveryoneButSender(t *testing.T) {
	ctx := context.Background()
	n := NewNetwork()

	host, err := n.CreateRoom(ctx, "ROOM01")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	var hostIn, aIn, bIn inbox
	host.OnMessage(hostIn.handler)

	a, err := n.JoinRoom(ctx, "ROOM01")
	if err != nil {
		t.Fatalf("JoinRoom: %v", err)
	}
	a.OnMessage(aIn.handler)
	b, _ := n.JoinRoom(ctx, "ROOM01")
	b.OnMessage(bIn.handler)

	if err := a.Broadcast([]byte("from-a")); err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	waitFor(t, func() bool { return len(hostIn.snapshot()) == 1 && len(bIn.snapshot()) == 1 })
	if got := aIn.snapshot(); len(got) != 0 {
		t.Fatalf("sender received its own message: %v", got)
	}

	host.Broadcast([]byte("from-host"))
	waitFor(t, func() bool { return len(aIn.snapshot()) == 1 && len(bIn.snapshot()) == 2 })
	if got := hostIn.snapshot(); len(got) != 1 {
		t.Fatalf("host received its own broadcast: %v", got)
	}
}

func TestRoomLifecycle(t *testing.T) {
	ctx := context.Background()
	n := NewNetwork()

	if _, err := n.JoinRoom(ctx, "NOPE00"); !errors.Is(err, transport.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
	host, _ := n.CreateRoom(ctx, "ROOM02")
	if _, err := n.CreateRoom(ctx, "ROOM02"); !errors.Is(err, transport.ErrRoomExists) {
		t.Fatalf("expected ErrRoomExists, got %v", err)
	}
	peer, _ := n.JoinRoom(ctx, "ROOM02")

	host.Close()
	if n.Rooms() != 0 {
		t.Fatalf("room not removed on host close")
	}
	if err := peer.Broadcast([]byte("x")); !errors.Is(err, transport.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := host.Broadcast([]byte("x")); !errors.Is(err, transport.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestDropRate(t *testing.T) {
	ctx := context.Background()
	n := NewNetwork(WithDropRate(1, 1))
	host, _ := n.CreateRoom(ctx, "ROOM03")
	var hostIn inbox
	host.OnMessage(hostIn.handler)
	peer, _ := n.JoinRoom(ctx, "ROOM03")

	for i := 0; i < 10; i++ {
		peer.Broadcast([]byte("lost"))
	}
	time.Sleep(30 * time.Millisecond)
	if got := hostIn.snapshot(); len(got) != 0 {
		t.Fatalf("expected every message dropped, got %d", len(got))
	}
}
