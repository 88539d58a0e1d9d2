package authority

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"time"

	"partycards/internal/bot"
	"partycards/internal/cards"
	"partycards/internal/domain"
)

// Coordinator makes the host-only decisions of a match. Every method is a
// pure function of the session passed in and returns reducer events; it never
// mutates the session itself.
type Coordinator struct {
	supply *cards.Supply
	agent  *bot.Agent
	logger *slog.Logger
	now    func() time.Time
}

// NewCoordinator creates a coordinator drawing randomness from supply.
func NewCoordinator(supply *cards.Supply, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		supply: supply,
		agent:  bot.NewAgent(supply.Rand()),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// StartGame shuffles the turn order, deals every hand and draws the first prompt.
func (c *Coordinator) StartGame(s *domain.Session) (domain.Event, error) {
	if s.Phase != domain.PhaseWaiting {
		return nil, domain.ErrInvalidPhase
	}
	if len(s.Players) < s.Config.MinPlayers {
		return nil, domain.ErrNotEnoughPlayers
	}
	if len(s.Players) > s.Config.MaxPlayers {
		return nil, domain.ErrTooManyPlayers
	}

	order := cards.Shuffle(c.supply.Rand(), s.GetPlayerIDs())
	hands, pile, err := c.supply.DealHands(order, s.Config.HandSize)
	if errors.Is(err, cards.ErrDeckTooSmall) {
		return nil, fmt.Errorf("%w: %d players x %d cards", domain.ErrDeckTooSmallToStart, len(order), s.Config.HandSize)
	}
	if err != nil {
		return nil, err
	}
	prompt, wrapped := c.supply.DrawPrompt(nil)

	c.logger.Info("starting game",
		"roomCode", s.RoomCode,
		"players", len(order),
		"judgeId", order[0],
	)
	return domain.StartGame{
		TurnOrder: order,
		Hands:     hands,
		DrawPile:  pile,
		Prompt:    prompt,
		Wrapped:   wrapped,
	}, nil
}

// CheckConfig validates cfg and rejects settings whose full room could not be
// dealt from the catalogue.
func (c *Coordinator) CheckConfig(cfg domain.GameConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	need, have := cfg.MaxPlayers*cfg.HandSize, len(c.supply.Catalogue().Answers)
	if need > have {
		return fmt.Errorf("%w: a full room needs %d answer cards, the deck has %d", domain.ErrInvalidConfig, need, have)
	}
	return nil
}

// AfterSubmission opens voting once every non-judge player has answered.
func (c *Coordinator) AfterSubmission(s *domain.Session) (domain.Event, bool) {
	if s.Phase != domain.PhasePlaying {
		return nil, false
	}
	required := s.RequiredSubmissions()
	if required <= 0 || len(s.Submissions) < required {
		return nil, false
	}
	return domain.BeginVoting{RevealOrder: c.revealOrder(submitters(s))}, true
}

// SelectWinner turns a judge's choice into a reducer event.
func (c *Coordinator) SelectWinner(s *domain.Session, judgeID, winnerID string) (domain.Event, error) {
	if s.Phase != domain.PhaseVoting {
		return nil, domain.ErrInvalidPhase
	}
	if !s.IsJudge(judgeID) {
		return nil, domain.ErrNotJudge
	}
	if _, ok := s.Submissions[winnerID]; !ok {
		return nil, domain.ErrNoSubmission
	}
	return domain.SelectWinner{JudgeID: judgeID, WinnerID: winnerID, At: c.now()}, nil
}

// Timeout resolves a phase whose countdown reached zero. In PLAYING every
// missing player submits their first card and voting opens; in VOTING a
// uniformly random submission wins, or the round is skipped when empty.
func (c *Coordinator) Timeout(s *domain.Session) []domain.Event {
	switch s.Phase {
	case domain.PhasePlaying:
		events := make([]domain.Event, 0)
		ids := submitters(s)
		for _, p := range s.PendingPlayers() {
			hand := s.Hands[p.ID]
			if len(hand) == 0 {
				continue
			}
			events = append(events, domain.SubmitAnswer{PlayerID: p.ID, Card: hand[0]})
			ids = append(ids, p.ID)
		}
		c.logger.Info("round timed out", "roomCode", s.RoomCode, "round", s.Round, "autoSubmitted", len(events))
		return append(events, domain.BeginVoting{RevealOrder: c.revealOrder(ids)})

	case domain.PhaseVoting:
		if len(s.Submissions) == 0 {
			c.logger.Info("voting timed out with no answers", "roomCode", s.RoomCode, "round", s.Round)
			return []domain.Event{domain.SkipRound{At: c.now()}}
		}
		ids := submitters(s)
		winner := ids[c.supply.Rand().Intn(len(ids))]
		c.logger.Info("voting timed out", "roomCode", s.RoomCode, "round", s.Round, "winnerId", winner)
		return []domain.Event{domain.SelectWinner{JudgeID: s.JudgeID, WinnerID: winner, At: c.now()}}
	}
	return nil
}

// NextRound draws the prompt for the following round.
func (c *Coordinator) NextRound(s *domain.Session) (domain.Event, bool) {
	if s.Phase != domain.PhaseResults {
		return nil, false
	}
	if refills := s.RefillsNeeded(); len(refills) > len(s.DrawPile) {
		c.logger.Warn("ending game, cannot refill hands",
			"roomCode", s.RoomCode,
			"refills", len(refills),
			"drawPile", len(s.DrawPile),
			"error", domain.ErrDrawPileExhausted,
		)
		return domain.EndGame{Reason: domain.ErrDrawPileExhausted.Error()}, true
	}
	prompt, wrapped := c.supply.DrawPrompt(s.UsedPrompts)
	if wrapped {
		c.logger.Info("prompt deck exhausted, reshuffling", "roomCode", s.RoomCode)
	}
	return domain.NextRound{Prompt: prompt, Wrapped: wrapped}, true
}

// CheckIntegrity repairs a judge that no longer references a seated player.
func (c *Coordinator) CheckIntegrity(s *domain.Session) (domain.Event, bool) {
	if s.JudgeValid() || len(s.Players) == 0 {
		return nil, false
	}
	judge := s.Players[0].ID
	c.logger.Warn("judge integrity violated, reassigning",
		"roomCode", s.RoomCode,
		"phase", s.Phase,
		"missingJudgeId", s.JudgeID,
		"judgeId", judge,
		"error", domain.ErrJudgeMissing,
	)
	return domain.AssignJudge{JudgeID: judge}, true
}

// MinimumPlayers ends an active match that lost too many players to continue.
func (c *Coordinator) MinimumPlayers(s *domain.Session) (domain.Event, bool) {
	if !s.Phase.IsActive() || len(s.Players) >= 2 {
		return nil, false
	}
	c.logger.Info("ending game, not enough players", "roomCode", s.RoomCode, "players", len(s.Players))
	return domain.EndGame{Reason: "not enough players"}, true
}

// BotAction is a pending decision of an automated participant.
type BotAction struct {
	PlayerID string
	Judge    bool
}

// Name identifies the action within its phase and round.
func (a BotAction) Name() string {
	if a.Judge {
		return "bot-judge:" + a.PlayerID
	}
	return "bot-answer:" + a.PlayerID
}

// PlanBots lists the bots that still owe a decision in the current phase.
func (c *Coordinator) PlanBots(s *domain.Session) []BotAction {
	actions := make([]BotAction, 0)
	switch s.Phase {
	case domain.PhasePlaying:
		for _, p := range s.PendingPlayers() {
			if p.IsAutomated {
				actions = append(actions, BotAction{PlayerID: p.ID})
			}
		}
	case domain.PhaseVoting:
		if judge, err := s.GetPlayer(s.JudgeID); err == nil && judge.IsAutomated {
			actions = append(actions, BotAction{PlayerID: judge.ID, Judge: true})
		}
	}
	return actions
}

// BotAnswer picks the card a bot submits.
func (c *Coordinator) BotAnswer(s *domain.Session, playerID string) (domain.Event, bool) {
	if s.Phase != domain.PhasePlaying || s.IsJudge(playerID) {
		return nil, false
	}
	if _, done := s.Submissions[playerID]; done {
		return nil, false
	}
	card, ok := c.agent.ChooseAnswer(s.CurrentPrompt, s.Hands[playerID])
	if !ok {
		return nil, false
	}
	return domain.SubmitAnswer{PlayerID: playerID, Card: card}, true
}

// BotJudge picks the winner for a bot judge.
func (c *Coordinator) BotJudge(s *domain.Session) (domain.Event, bool) {
	if s.Phase != domain.PhaseVoting {
		return nil, false
	}
	winner, ok := c.agent.ChooseWinner(s.CurrentPrompt, s.Submissions, s.RevealOrder)
	if !ok {
		return nil, false
	}
	return domain.SelectWinner{JudgeID: s.JudgeID, WinnerID: winner, At: c.now()}, true
}

// ThinkingDelay returns a random bot pause in [lo, hi].
func (c *Coordinator) ThinkingDelay(lo, hi time.Duration) time.Duration {
	return bot.ThinkingDelay(c.supply.Rand(), lo, hi)
}

func (c *Coordinator) revealOrder(ids []string) []string {
	sorted := slices.Clone(ids)
	sort.Strings(sorted)
	return cards.Shuffle(c.supply.Rand(), sorted)
}

// submitters returns the ids with a submission, sorted for reproducible shuffles.
func submitters(s *domain.Session) []string {
	ids := make([]string, 0, len(s.Submissions))
	for id := range s.Submissions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
