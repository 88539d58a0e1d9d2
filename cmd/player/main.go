package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"partycards/internal/config"
	"partycards/internal/domain"
	"partycards/internal/logging"
	"partycards/internal/protocol"
	"partycards/internal/transport/ws"
)

const usage = `commands:
  host                 create a room
  join CODE            join a room
  bot                  add a bot (host)
  kick N               remove player N (host)
  stream on|off        hide the room code (host)
  start                deal the first round (host)
  play N               submit card N from your hand
  pick N               choose answer N as the winner (judge)
  sync                 ask the host for the latest state
  leave                leave the room
  quit                 exit`

func main() {
	cfg := config.Load()

	// logs go to stderr so they do not interleave with the board
	logger := logging.NewWithWriter(os.Stderr, cfg.Logging).With("service", "player")

	game, err := cfg.GameDefaults()
	if err != nil {
		logger.Warn("invalid game settings in environment, using defaults", "error", err)
	}

	tr, err := ws.NewTransport(cfg.Client.RelayURL, logger)
	if err != nil {
		logger.Error("invalid relay url", "error", err)
		os.Exit(1)
	}

	board := &screen{out: os.Stdout}
	node := protocol.NewNode(tr, protocol.Options{
		Logger:      logger,
		Config:      game,
		BotThinkMin: cfg.Bots.MinThink,
		BotThinkMax: cfg.Bots.MaxThink,
		OnChange:    board.update,
	})
	defer node.Close()

	in := bufio.NewScanner(os.Stdin)
	name := cfg.Client.PlayerName
	for name == "" {
		fmt.Print("Your name: ")
		if !in.Scan() {
			return
		}
		name = strings.TrimSpace(in.Text())
	}

	fmt.Println(usage)
	for in.Scan() {
		line := strings.Fields(in.Text())
		if len(line) == 0 {
			continue
		}
		if line[0] == "quit" {
			return
		}
		if err := run(node, name, line); err != nil {
			fmt.Fprintf(os.Stdout, "! %s\n", err)
		}
	}
}

func run(node *protocol.Node, name string, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch args[0] {
	case "host":
		code, err := node.CreateRoom(ctx, name)
		if err == nil {
			fmt.Printf("Room %s is open.\n", code)
		}
		return err
	case "join":
		if len(args) < 2 {
			return fmt.Errorf("usage: join CODE")
		}
		return node.JoinRoom(ctx, args[1], name)
	case "bot":
		_, err := node.AddBot()
		return err
	case "kick":
		p, err := pickPlayer(node.State(), args)
		if err != nil {
			return err
		}
		return node.RemovePlayer(p.ID)
	case "stream":
		return node.SetStreamMode(len(args) > 1 && args[1] == "on")
	case "start":
		return node.StartGame()
	case "play":
		s := node.State()
		card, err := pickIndex(s.Hands[selfID(s)], args)
		if err != nil {
			return err
		}
		return node.SubmitAnswer(card)
	case "pick":
		winner, err := pickIndex(node.State().RevealOrder, args)
		if err != nil {
			return err
		}
		return node.SelectWinner(winner)
	case "sync":
		return node.RequestSnapshot()
	case "leave":
		return node.Leave()
	case "help":
		fmt.Println(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q, try 'help'", args[0])
	}
}

func selfID(s *domain.Session) string {
	if s.Local.CurrentPlayer == nil {
		return ""
	}
	return s.Local.CurrentPlayer.ID
}

// pickIndex resolves a 1-based index argument against items.
func pickIndex(items []string, args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("usage: %s N", args[0])
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 || n > len(items) {
		return "", fmt.Errorf("pick a number between 1 and %d", len(items))
	}
	return items[n-1], nil
}

func pickPlayer(s *domain.Session, args []string) (domain.Player, error) {
	ids := s.GetPlayerIDs()
	id, err := pickIndex(ids, args)
	if err != nil {
		return domain.Player{}, err
	}
	return s.GetPlayer(id)
}

// screen redraws the board when the visible state changes.
type screen struct {
	mu   sync.Mutex
	out  io.Writer
	last string
}

func (sc *screen) update(s *domain.Session) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	key := viewKey(s)
	if key == sc.last {
		return
	}
	sc.last = key
	render(sc.out, s)
}
