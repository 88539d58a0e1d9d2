package protocol

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"partycards/internal/authority"
	"partycards/internal/bot"
	"partycards/internal/cards"
	"partycards/internal/domain"
	"partycards/internal/transport"
)

// ErrNodeClosed is returned by calls made after Close.
var ErrNodeClosed = errors.New("node closed")

const inboxSize = 256

// Options configures a Node
type Options struct {
	Logger *slog.Logger
	Supply *cards.Supply

	// Config is the game configuration a new room starts with.
	Config domain.GameConfig

	// Second is the length of one countdown second.
	Second time.Duration

	BotThinkMin time.Duration
	BotThinkMax time.Duration

	// OnChange receives a copy of the session after every change. It runs on
	// the node's loop and must not call back into the node synchronously.
	OnChange func(*domain.Session)
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Supply == nil {
		o.Supply = cards.NewSupply(cards.DefaultCatalogue(), nil)
	}
	if o.Config == (domain.GameConfig{}) {
		o.Config = domain.DefaultGameConfig()
	}
	if o.Second <= 0 {
		o.Second = time.Second
	}
	if o.BotThinkMax <= 0 {
		o.BotThinkMin, o.BotThinkMax = 1500*time.Millisecond, 4*time.Second
	}
	return o
}

// Node is one client's replica of the session. All state is owned by a single
// loop goroutine; public methods post work to it and wait for the result.
// When the local player hosts the room, the node also runs the coordinator.
type Node struct {
	id        string
	transport transport.Transport
	opts      Options
	logger    *slog.Logger

	inbox     chan func()
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	// owned by the loop
	session  *domain.Session
	conn     transport.Conn
	coord    *authority.Coordinator
	sched    *authority.Scheduler
	applying bool
	lastSeq  int64
	seq      int64
}

// NewNode creates a node and starts its loop.
func NewNode(t transport.Transport, opts Options) *Node {
	opts = opts.withDefaults()
	id := uuid.NewString()
	n := &Node{
		id:        id,
		transport: t,
		opts:      opts,
		logger:    opts.Logger.With("node", id[:8]),
		inbox:     make(chan func(), inboxSize),
		done:      make(chan struct{}),
		session:   domain.NewSession(opts.Config),
	}

	n.wg.Add(1)
	go n.run()
	return n
}

// ID returns the sender id stamped on outgoing messages
func (n *Node) ID() string {
	return n.id
}

func (n *Node) run() {
	defer n.wg.Done()

	ticker := time.NewTicker(n.opts.Second)
	defer ticker.Stop()

	for {
		select {
		case <-n.done:
			return
		case f := <-n.inbox:
			f()
		case <-ticker.C:
			n.tick()
		}
	}
}

// post queues f for the loop. It reports false once the node is closed.
func (n *Node) post(f func()) bool {
	select {
	case <-n.done:
		return false
	case n.inbox <- f:
		return true
	}
}

// do runs f on the loop and waits for its result.
func (n *Node) do(f func() error) error {
	errc := make(chan error, 1)
	if !n.post(func() { errc <- f() }) {
		return ErrNodeClosed
	}
	select {
	case err := <-errc:
		return err
	case <-n.done:
		return ErrNodeClosed
	}
}

// Close leaves the room and stops the loop.
func (n *Node) Close() error {
	n.do(func() error {
		if n.conn != nil {
			n.leave()
		}
		return nil
	})
	n.closeOnce.Do(func() { close(n.done) })
	n.wg.Wait()
	return nil
}

// State returns a copy of the local session.
func (n *Node) State() *domain.Session {
	var out *domain.Session
	if err := n.do(func() error {
		out = n.session.Clone()
		return nil
	}); err != nil {
		return nil
	}
	return out
}

// CreateRoom opens a new room with the local player as host and returns its code.
func (n *Node) CreateRoom(ctx context.Context, displayName string) (string, error) {
	name, err := domain.ValidatePlayerName(displayName)
	if err != nil {
		return "", n.reject(err)
	}
	code := domain.GenerateRoomCode()

	conn, err := n.transport.CreateRoom(ctx, code)
	if err != nil {
		return "", n.reject(fmt.Errorf("%w: create room: %v", domain.ErrTransportFailure, err))
	}

	err = n.do(func() error {
		host := domain.NewPlayer(uuid.NewString(), name)
		if err := n.apply(domain.CreateRoom{RoomCode: code, Host: host}); err != nil {
			conn.Close()
			return n.fail(err)
		}
		n.attach(conn, true)
		n.logger.Info("room created", "roomCode", code, "playerId", host.ID)
		return nil
	})
	return code, err
}

// JoinRoom connects to an existing room as a peer.
func (n *Node) JoinRoom(ctx context.Context, roomCode, displayName string) error {
	name, err := domain.ValidatePlayerName(displayName)
	if err != nil {
		return n.reject(err)
	}
	code, err := domain.ValidateRoomCode(roomCode)
	if err != nil {
		return n.reject(err)
	}

	conn, err := n.transport.JoinRoom(ctx, code)
	if err != nil {
		return n.reject(fmt.Errorf("%w: join room: %v", domain.ErrTransportFailure, err))
	}

	return n.do(func() error {
		p := domain.NewPlayer(uuid.NewString(), name)
		if err := n.apply(domain.JoinRoom{RoomCode: code, Player: p}); err != nil {
			conn.Close()
			return n.fail(err)
		}
		n.attach(conn, false)
		n.send(PlayerJoin{Player: p})
		n.logger.Info("joined room", "roomCode", code, "playerId", p.ID)
		return nil
	})
}

// SetConfig changes the match settings. Host only.
func (n *Node) SetConfig(cfg domain.GameConfig) error {
	return n.do(func() error {
		if err := n.requireHost(); err != nil {
			return err
		}
		if err := n.coord.CheckConfig(cfg); err != nil {
			return n.fail(err)
		}
		if err := n.apply(domain.SetConfig{Config: cfg}); err != nil {
			return n.fail(err)
		}
		n.broadcastSnapshot()
		return nil
	})
}

// SetStreamMode hides or shows the room code for everyone. Host only.
func (n *Node) SetStreamMode(enabled bool) error {
	return n.do(func() error {
		if err := n.requireHost(); err != nil {
			return err
		}
		if err := n.apply(domain.SetStreamMode{Enabled: enabled}); err != nil {
			return n.fail(err)
		}
		n.broadcastSnapshot()
		return nil
	})
}

// AddBot seats an automated player. Host only.
func (n *Node) AddBot() (domain.Player, error) {
	var p domain.Player
	err := n.do(func() error {
		if err := n.requireHost(); err != nil {
			return err
		}
		p = bot.NewPlayer(n.session.Players)
		if err := n.apply(domain.AddPlayer{Player: p}); err != nil {
			return n.fail(err)
		}
		n.logger.Info("bot added", "playerId", p.ID, "name", p.DisplayName)
		n.send(PlayerJoin{Player: p})
		n.broadcastSnapshot()
		return nil
	})
	return p, err
}

// RemovePlayer evicts another player. Host only; removing yourself is Leave.
func (n *Node) RemovePlayer(playerID string) error {
	return n.do(func() error {
		if playerID == n.selfID() {
			n.leave()
			return nil
		}
		if err := n.requireHost(); err != nil {
			return err
		}
		if err := n.apply(domain.RemovePlayer{PlayerID: playerID}); err != nil {
			return n.fail(err)
		}
		n.cancelBot(playerID)
		n.send(PlayerLeave{PlayerID: playerID, RemovedBy: n.selfID()})
		n.settle()
		return nil
	})
}

// Leave announces departure, closes the connection and returns to the lobby.
func (n *Node) Leave() error {
	return n.do(func() error {
		n.leave()
		return nil
	})
}

// StartGame deals the first round. Host only.
func (n *Node) StartGame() error {
	return n.do(func() error {
		if err := n.requireHost(); err != nil {
			return err
		}
		ev, err := n.coord.StartGame(n.session)
		if err != nil {
			return n.fail(err)
		}
		if err := n.apply(ev); err != nil {
			return n.fail(err)
		}
		n.settle()
		return nil
	})
}

// SubmitAnswer plays a card from the local player's hand.
func (n *Node) SubmitAnswer(card string) error {
	return n.do(func() error {
		self := n.selfID()
		if self == "" {
			return n.fail(domain.ErrNoCurrentPlayer)
		}
		if err := n.apply(domain.SubmitAnswer{PlayerID: self, Card: card}); err != nil {
			return n.fail(err)
		}
		n.send(AnswerSubmitted{PlayerID: self, Card: card})
		if n.isHost() {
			n.settle()
		} else {
			n.send(SnapshotRequest{})
		}
		return nil
	})
}

// SelectWinner picks the round winner. Only the judge may call it.
func (n *Node) SelectWinner(winnerID string) error {
	return n.do(func() error {
		self := n.selfID()
		if self == "" {
			return n.fail(domain.ErrNoCurrentPlayer)
		}
		if n.session.Phase != domain.PhaseVoting {
			return n.fail(domain.ErrInvalidPhase)
		}
		if !n.session.IsJudge(self) {
			return n.fail(domain.ErrNotJudge)
		}
		if _, ok := n.session.Submissions[winnerID]; !ok {
			return n.fail(domain.ErrNoSubmission)
		}

		if !n.isHost() {
			n.send(WinnerSelected{JudgeID: self, WinnerID: winnerID})
			return nil
		}
		ev, err := n.coord.SelectWinner(n.session, self, winnerID)
		if err != nil {
			return n.fail(err)
		}
		if err := n.apply(ev); err != nil {
			return n.fail(err)
		}
		n.settle()
		return nil
	})
}

// Reset returns to the lobby. On the host this closes the room for everyone.
func (n *Node) Reset() error {
	return n.do(func() error {
		if !n.isHost() {
			n.leave()
			return nil
		}
		n.apply(domain.ResetGame{})
		n.seq++
		snap := n.session.Snapshot()
		snap.Seq = n.seq
		n.send(StateSnapshot{Session: snap})
		n.detach()
		return nil
	})
}

// RequestSnapshot asks the host for a fresh snapshot.
func (n *Node) RequestSnapshot() error {
	return n.do(func() error {
		if n.conn == nil {
			return n.fail(fmt.Errorf("%w: not connected", domain.ErrTransportFailure))
		}
		n.send(SnapshotRequest{})
		return nil
	})
}

// attach installs conn and, for the host, the coordinator and scheduler.
func (n *Node) attach(conn transport.Conn, host bool) {
	n.conn = conn
	n.lastSeq = 0
	n.seq = 0
	conn.OnMessage(func(data []byte) {
		n.post(func() { n.handle(conn, data) })
	})

	if host {
		n.coord = authority.NewCoordinator(n.opts.Supply, n.logger)
		n.sched = authority.NewScheduler(
			func(f func()) { n.post(f) },
			func() (domain.Phase, int) { return n.session.Phase, n.session.Round },
			n.logger,
		)
	}
}

func (n *Node) detach() {
	if n.sched != nil {
		n.sched.Stop()
	}
	if n.conn != nil {
		if err := n.conn.Close(); err != nil {
			n.logger.Debug("close connection", "error", err)
		}
	}
	n.conn = nil
	n.coord = nil
	n.sched = nil
}

func (n *Node) leave() {
	if self := n.selfID(); self != "" && n.conn != nil {
		n.send(PlayerLeave{PlayerID: self, RemovedBy: self})
	}
	n.detach()
	n.apply(domain.ResetGame{})
}

// dissolve drops the room after it was closed elsewhere.
func (n *Node) dissolve(notice string) {
	n.detach()
	n.apply(domain.ResetGame{})
	n.apply(domain.SetNotice{Message: notice})
}

func (n *Node) handle(from transport.Conn, data []byte) {
	if from != n.conn {
		return // late delivery on a closed connection
	}
	msg, env, err := Decode(data)
	if err != nil {
		n.logger.Warn("dropping message", "error", err)
		return
	}
	if env.Sender == n.id {
		return
	}
	n.logger.Debug("message received", "type", env.Type, "sender", env.Sender)

	switch m := msg.(type) {
	case PlayerJoin:
		n.onPlayerJoin(m)
	case PlayerLeave:
		n.onPlayerLeave(m)
	case AnswerSubmitted:
		n.onAnswerSubmitted(m)
	case WinnerSelected:
		n.onWinnerSelected(m)
	case StateSnapshot:
		n.onSnapshot(m)
	case SnapshotRequest:
		if n.isHost() {
			n.broadcastSnapshot()
		}
	}
}

func (n *Node) onPlayerJoin(m PlayerJoin) {
	p := m.Player
	p.IsHost = false
	if n.session.HasPlayer(p.ID) {
		if n.isHost() {
			n.broadcastSnapshot()
		}
		return
	}

	err := n.apply(domain.AddPlayer{Player: p})
	if !n.isHost() {
		return
	}
	if err != nil {
		n.logger.Info("join rejected", "playerId", p.ID, "error", err)
		n.send(PlayerLeave{PlayerID: p.ID, RemovedBy: n.selfID(), Reason: err.Error()})
		return
	}
	n.logger.Info("player joined", "playerId", p.ID, "name", p.DisplayName)
	n.broadcastSnapshot()
}

func (n *Node) onPlayerLeave(m PlayerLeave) {
	self := n.selfID()
	if m.PlayerID == self {
		if m.RemovedBy == self {
			return
		}
		notice := "you were removed from the room"
		if m.Reason != "" {
			notice = m.Reason
		}
		n.logger.Info("removed from room", "reason", notice)
		n.dissolve(notice)
		return
	}

	leaving, err := n.session.GetPlayer(m.PlayerID)
	if err != nil {
		return
	}
	n.apply(domain.RemovePlayer{PlayerID: m.PlayerID})
	if leaving.IsHost && !n.isHost() {
		n.dissolve("the host left the room")
		return
	}
	if n.isHost() {
		n.settle()
	}
}

func (n *Node) onAnswerSubmitted(m AnswerSubmitted) {
	if err := n.apply(domain.SubmitAnswer{PlayerID: m.PlayerID, Card: m.Card}); err != nil && n.isHost() {
		n.logger.Debug("submission ignored", "playerId", m.PlayerID, "error", err)
	}
	if n.isHost() {
		n.settle()
	}
}

func (n *Node) onWinnerSelected(m WinnerSelected) {
	if !n.isHost() {
		return
	}
	ev, err := n.coord.SelectWinner(n.session, m.JudgeID, m.WinnerID)
	if err != nil {
		n.logger.Debug("winner selection ignored", "judgeId", m.JudgeID, "error", err)
		n.broadcastSnapshot()
		return
	}
	n.apply(ev)
	n.settle()
}

func (n *Node) onSnapshot(m StateSnapshot) {
	if n.isHost() {
		n.logger.Warn("ignoring snapshot from another host")
		return
	}
	snap := m.Session
	if snap.Seq < n.lastSeq {
		n.logger.Warn("dropping stale snapshot", "seq", snap.Seq, "lastSeq", n.lastSeq)
		return
	}
	if snap.Phase == domain.PhaseLobby {
		n.dissolve("the host closed the room")
		return
	}

	n.applying = true
	defer func() { n.applying = false }()
	if err := n.apply(domain.ApplySnapshot{Snapshot: snap}); err != nil {
		return
	}
	n.lastSeq = snap.Seq
}

// settle runs the host's follow-up decisions after a change, arms the next
// deferred steps and publishes the result.
func (n *Node) settle() {
	if !n.isHost() {
		return
	}
	for i := 0; i < 4; i++ {
		ev, ok := n.coord.MinimumPlayers(n.session)
		if !ok {
			ev, ok = n.coord.CheckIntegrity(n.session)
		}
		if !ok {
			ev, ok = n.coord.AfterSubmission(n.session)
		}
		if !ok || n.apply(ev) != nil {
			break
		}
	}
	n.arm()
	n.broadcastSnapshot()
}

// arm schedules the deferred steps of the current phase. Scheduling is keyed
// by phase and round, so calling it again does not stack duplicates.
func (n *Node) arm() {
	s := n.session
	switch s.Phase {
	case domain.PhaseResults:
		delay := time.Duration(s.Config.ResultsDisplaySec) * n.opts.Second
		n.sched.Schedule(authority.TaskKey{Phase: s.Phase, Round: s.Round, Name: "next-round"}, delay, n.nextRound)

	case domain.PhasePlaying, domain.PhaseVoting:
		for _, action := range n.coord.PlanBots(s) {
			action := action
			key := authority.TaskKey{Phase: s.Phase, Round: s.Round, Name: action.Name()}
			delay := n.coord.ThinkingDelay(n.opts.BotThinkMin, n.opts.BotThinkMax)
			n.sched.Schedule(key, delay, func() { n.runBot(action) })
		}
	}
	n.logger.Debug("tasks armed", "phase", s.Phase, "round", s.Round, "pending", n.sched.Pending())
}

// cancelBot disarms the decisions still owed by a removed player.
func (n *Node) cancelBot(playerID string) {
	s := n.session
	for _, action := range []authority.BotAction{{PlayerID: playerID}, {PlayerID: playerID, Judge: true}} {
		n.sched.Cancel(authority.TaskKey{Phase: s.Phase, Round: s.Round, Name: action.Name()})
	}
}

func (n *Node) nextRound() {
	ev, ok := n.coord.NextRound(n.session)
	if !ok {
		return
	}
	n.apply(ev)
	n.settle()
}

func (n *Node) runBot(action authority.BotAction) {
	if action.Judge {
		if ev, ok := n.coord.BotJudge(n.session); ok {
			n.apply(ev)
		}
		n.settle()
		return
	}

	ev, ok := n.coord.BotAnswer(n.session, action.PlayerID)
	if !ok {
		return
	}
	if n.apply(ev) == nil {
		sub := ev.(domain.SubmitAnswer)
		n.send(AnswerSubmitted{PlayerID: sub.PlayerID, Card: sub.Card})
	}
	n.settle()
}

// tick advances the countdown. Only the host acts when it reaches zero.
func (n *Node) tick() {
	deadline := n.session.TimerDeadline
	if deadline == nil || *deadline == 0 {
		return
	}
	n.apply(domain.Tick{})
	if !n.isHost() || *n.session.TimerDeadline > 0 {
		return
	}

	events := n.coord.Timeout(n.session)
	if len(events) == 0 {
		return
	}
	for _, ev := range events {
		if err := n.apply(ev); err != nil {
			n.logger.Warn("timeout step rejected", "event", ev.EventName(), "error", err)
		}
	}
	n.settle()
}

// apply runs ev through the reducer and publishes the new state locally.
func (n *Node) apply(ev domain.Event) error {
	next, err := domain.Reduce(n.session, ev)
	if err != nil {
		n.logger.Debug("event rejected", "event", ev.EventName(), "error", err)
		return err
	}
	n.session = next
	if n.opts.OnChange != nil {
		n.opts.OnChange(next.Clone())
	}
	return nil
}

func (n *Node) broadcastSnapshot() {
	if n.applying || !n.isHost() || n.conn == nil {
		return
	}
	n.seq++
	snap := n.session.Snapshot()
	snap.Seq = n.seq
	n.send(StateSnapshot{Session: snap})
}

func (n *Node) send(msg Message) {
	if n.conn == nil {
		return
	}
	data, err := Encode(msg, n.id, time.Now())
	if err != nil {
		n.logger.Error("encode message", "type", msg.Type(), "error", err)
		return
	}
	if err := n.conn.Broadcast(data); err != nil {
		n.logger.Warn("broadcast failed", "type", msg.Type(), "error", err)
	}
}

func (n *Node) requireHost() error {
	if !n.isHost() {
		return n.fail(domain.ErrNotHost)
	}
	return nil
}

func (n *Node) isHost() bool {
	return n.session.Local.IsHost && n.coord != nil
}

func (n *Node) selfID() string {
	if p := n.session.Local.CurrentPlayer; p != nil {
		return p.ID
	}
	return ""
}

// fail records err as the user-visible notice and returns it. Refused actions
// are routine; failures of the room itself are logged as warnings.
func (n *Node) fail(err error) error {
	switch kind := domain.Classify(err); kind {
	case domain.KindTransport, domain.KindIntegrity, domain.KindResource:
		n.logger.Warn("action failed", "kind", kind, "error", err)
	default:
		n.logger.Debug("action refused", "kind", kind, "error", err)
	}
	n.apply(domain.SetNotice{Message: err.Error()})
	return err
}

// reject is fail for callers outside the loop.
func (n *Node) reject(err error) error {
	n.do(func() error { return n.fail(err) })
	return err
}
