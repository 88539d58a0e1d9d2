package domain

import (
	"fmt"
	"slices"
)

// Reduce applies ev to a copy of s and returns the copy. When the event is
// rejected the original session is returned together with the error, so a
// rejected intent never changes state.
func Reduce(s *Session, ev Event) (*Session, error) {
	if s == nil {
		s = NewSession(DefaultGameConfig())
	}
	next := s.Clone()

	var err error
	switch e := ev.(type) {
	case CreateRoom:
		err = next.createRoom(e)
	case JoinRoom:
		err = next.joinRoom(e)
	case AddPlayer:
		err = next.addPlayer(e.Player)
	case RemovePlayer:
		err = next.removePlayer(e.PlayerID)
	case SetConfig:
		err = next.setConfig(e.Config)
	case SetStreamMode:
		next.StreamMode = e.Enabled
	case StartGame:
		err = next.startGame(e)
	case SubmitAnswer:
		err = next.submitAnswer(e.PlayerID, e.Card)
	case BeginVoting:
		err = next.beginVoting(e.RevealOrder)
	case SelectWinner:
		err = next.selectWinner(e)
	case SkipRound:
		err = next.skipRound(e)
	case NextRound:
		err = next.nextRound(e)
	case EndGame:
		err = next.endGame()
	case AssignJudge:
		err = next.assignJudge(e.JudgeID)
	case Tick:
		if next.TimerDeadline != nil && *next.TimerDeadline > 0 {
			*next.TimerDeadline--
		}
	case SetTimer:
		next.TimerDeadline = nil
		if e.Seconds != nil {
			next.TimerDeadline = timerFor(*e.Seconds)
		}
	case SetNotice:
		next.Local.Notice = e.Message
	case ResetGame:
		next = next.reset()
	case ApplySnapshot:
		next = MergeSnapshot(next, e.Snapshot)
	default:
		err = fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}

	if err != nil {
		return s, err
	}
	return next, nil
}

func (s *Session) transition(target Phase) error {
	if !s.Phase.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Phase, target)
	}
	s.Phase = target
	return nil
}

func (s *Session) createRoom(e CreateRoom) error {
	if s.Phase != PhaseLobby {
		return ErrInvalidPhase
	}
	code, err := ValidateRoomCode(e.RoomCode)
	if err != nil {
		return err
	}
	if s.RoomCode != "" && s.RoomCode != code {
		return ErrRoomCodeImmutable
	}
	if _, err := ValidatePlayerName(e.Host.DisplayName); err != nil {
		return err
	}

	host := e.Host
	host.IsHost = true
	s.RoomCode = code
	s.Players = []Player{host}
	s.Scoreboard = map[string]int{host.ID: 0}
	s.Hands = map[string][]string{host.ID: {}}
	s.Local.CurrentPlayer = &host
	s.Local.IsHost = true
	return s.transition(PhaseWaiting)
}

func (s *Session) joinRoom(e JoinRoom) error {
	if s.Phase != PhaseLobby {
		return ErrInvalidPhase
	}
	code, err := ValidateRoomCode(e.RoomCode)
	if err != nil {
		return err
	}
	if s.RoomCode != "" && s.RoomCode != code {
		return ErrRoomCodeImmutable
	}
	if _, err := ValidatePlayerName(e.Player.DisplayName); err != nil {
		return err
	}

	p := e.Player
	p.IsHost = false
	s.RoomCode = code
	s.Players = []Player{p}
	s.Scoreboard = map[string]int{p.ID: 0}
	s.Hands = map[string][]string{p.ID: {}}
	s.Local.CurrentPlayer = &p
	s.Local.IsHost = false
	return s.transition(PhaseWaiting)
}

func (s *Session) addPlayer(p Player) error {
	if p.ID == "" {
		return ErrPlayerNotFound
	}
	if s.HasPlayer(p.ID) {
		return ErrDuplicatePlayer
	}
	switch {
	case s.Phase == PhaseLobby:
		return ErrInvalidPhase
	case s.Phase != PhaseWaiting:
		return ErrGameInProgress
	case len(s.Players) >= s.Config.MaxPlayers:
		return ErrRoomFull
	}

	s.Players = append(s.Players, p)
	if _, ok := s.Scoreboard[p.ID]; !ok {
		s.Scoreboard[p.ID] = 0
	}
	if _, ok := s.Hands[p.ID]; !ok {
		s.Hands[p.ID] = []string{}
	}
	return nil
}

func (s *Session) removePlayer(playerID string) error {
	i := s.playerIndex(playerID)
	if i < 0 {
		return ErrPlayerNotFound
	}

	s.Players = slices.Delete(s.Players, i, i+1)
	delete(s.Scoreboard, playerID)
	delete(s.Hands, playerID)
	delete(s.Submissions, playerID)
	s.RevealOrder = slices.DeleteFunc(s.RevealOrder, func(id string) bool { return id == playerID })
	if s.RoundWinnerID == playerID {
		s.RoundWinnerID = ""
	}
	return nil
}

func (s *Session) setConfig(cfg GameConfig) error {
	if !s.Phase.IsConfigurable() {
		return ErrGameInProgress
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.MaxPlayers < len(s.Players) {
		return fmt.Errorf("%w: max players below current player count", ErrInvalidConfig)
	}
	s.Config = cfg
	return nil
}

func (s *Session) startGame(e StartGame) error {
	if s.Phase != PhaseWaiting {
		return ErrInvalidPhase
	}
	if len(s.Players) < s.Config.MinPlayers {
		return ErrNotEnoughPlayers
	}
	if len(s.Players) > s.Config.MaxPlayers {
		return ErrTooManyPlayers
	}
	if !samePlayers(s.GetPlayerIDs(), e.TurnOrder) {
		return fmt.Errorf("%w: turn order does not match players", ErrInvalidTransition)
	}

	ordered := make([]Player, 0, len(s.Players))
	for _, id := range e.TurnOrder {
		p, _ := s.GetPlayer(id)
		ordered = append(ordered, p)
	}
	s.Players = ordered

	s.Hands = make(map[string][]string, len(ordered))
	s.Scoreboard = make(map[string]int, len(ordered))
	for _, p := range ordered {
		s.Hands[p.ID] = slices.Clone(e.Hands[p.ID])
		s.Scoreboard[p.ID] = 0
	}
	s.DrawPile = slices.Clone(e.DrawPile)
	s.History = make([]RoundRecord, 0)
	s.UsedPrompts = make([]string, 0)

	s.JudgeID = e.TurnOrder[0]
	s.Round = 1
	s.openRound(e.Prompt, e.Wrapped)
	return s.transition(PhasePlaying)
}

// openRound clears the previous round and installs a fresh prompt.
func (s *Session) openRound(prompt string, wrapped bool) {
	if wrapped {
		s.UsedPrompts = make([]string, 0)
	}
	s.CurrentPrompt = prompt
	if prompt != "" && !slices.Contains(s.UsedPrompts, prompt) {
		s.UsedPrompts = append(s.UsedPrompts, prompt)
	}
	s.Submissions = make(map[string]string)
	s.RevealOrder = make([]string, 0)
	s.RoundWinnerID = ""
	s.TimerDeadline = timerFor(s.Config.RoundTimeoutSec)
}

func (s *Session) submitAnswer(playerID, card string) error {
	if s.Phase != PhasePlaying {
		return ErrInvalidPhase
	}
	if !s.HasPlayer(playerID) {
		return ErrPlayerNotFound
	}
	if s.IsJudge(playerID) {
		return ErrJudgeCannotSubmit
	}
	if _, ok := s.Submissions[playerID]; ok {
		return ErrAlreadySubmitted
	}
	hand := s.Hands[playerID]
	i := slices.Index(hand, card)
	if i < 0 {
		return ErrCardNotInHand
	}

	s.Hands[playerID] = slices.Delete(hand, i, i+1)
	s.Submissions[playerID] = card
	return nil
}

func (s *Session) beginVoting(order []string) error {
	if s.Phase != PhasePlaying {
		return ErrInvalidPhase
	}
	if len(order) != len(s.Submissions) {
		return ErrInvalidRevealOrder
	}
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if _, ok := s.Submissions[id]; !ok || seen[id] {
			return ErrInvalidRevealOrder
		}
		seen[id] = true
	}

	s.RevealOrder = slices.Clone(order)
	s.TimerDeadline = timerFor(s.Config.VotingTimeoutSec)
	return s.transition(PhaseVoting)
}

func (s *Session) selectWinner(e SelectWinner) error {
	if s.Phase != PhaseVoting {
		return ErrInvalidPhase
	}
	if !s.IsJudge(e.JudgeID) {
		return ErrNotJudge
	}
	if _, ok := s.Submissions[e.WinnerID]; !ok {
		return ErrNoSubmission
	}

	s.Scoreboard[e.WinnerID]++
	s.RoundWinnerID = e.WinnerID
	s.History = append(s.History, newRoundRecord(s, e.WinnerID, e.At))

	if s.Scoreboard[e.WinnerID] >= s.Config.WinningScore {
		s.TimerDeadline = nil
		return s.transition(PhaseGameOver)
	}
	s.TimerDeadline = timerFor(s.Config.ResultsDisplaySec)
	return s.transition(PhaseResults)
}

func (s *Session) skipRound(e SkipRound) error {
	if s.Phase != PhaseVoting {
		return ErrInvalidPhase
	}
	if len(s.Submissions) > 0 {
		return fmt.Errorf("%w: round has submissions", ErrInvalidTransition)
	}

	s.RoundWinnerID = ""
	s.History = append(s.History, newRoundRecord(s, "", e.At))
	s.TimerDeadline = timerFor(s.Config.ResultsDisplaySec)
	return s.transition(PhaseResults)
}

// RefillsNeeded lists the players owed a replacement card, in turn order.
func (s *Session) RefillsNeeded() []string {
	ids := make([]string, 0, len(s.Submissions))
	for _, p := range s.Players {
		if p.ID == s.JudgeID {
			continue
		}
		if _, ok := s.Submissions[p.ID]; ok {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// NextJudge returns the index successor of the current judge, wrapping to the
// first player. A judge that is no longer seated hands over to index 0.
func (s *Session) NextJudge() string {
	if len(s.Players) == 0 {
		return ""
	}
	i := s.playerIndex(s.JudgeID)
	if i < 0 {
		return s.Players[0].ID
	}
	return s.Players[(i+1)%len(s.Players)].ID
}

func (s *Session) nextRound(e NextRound) error {
	if s.Phase != PhaseResults {
		return ErrInvalidPhase
	}
	if len(s.Players) == 0 {
		return ErrNotEnoughPlayers
	}

	refills := s.RefillsNeeded()
	if len(refills) > len(s.DrawPile) {
		s.TimerDeadline = nil
		return s.transition(PhaseGameOver)
	}
	for _, id := range refills {
		s.Hands[id] = append(s.Hands[id], s.DrawPile[0])
		s.DrawPile = s.DrawPile[1:]
	}

	s.JudgeID = s.NextJudge()
	s.Round++
	s.openRound(e.Prompt, e.Wrapped)
	return s.transition(PhasePlaying)
}

func (s *Session) endGame() error {
	if !s.Phase.IsActive() {
		return ErrInvalidPhase
	}
	s.TimerDeadline = nil
	return s.transition(PhaseGameOver)
}

func (s *Session) assignJudge(judgeID string) error {
	if !s.Phase.IsActive() {
		return ErrInvalidPhase
	}
	if !s.HasPlayer(judgeID) {
		return ErrPlayerNotFound
	}

	// a judge never holds a submission; give the card back
	if card, ok := s.Submissions[judgeID]; ok {
		s.Hands[judgeID] = append(s.Hands[judgeID], card)
		delete(s.Submissions, judgeID)
		s.RevealOrder = slices.DeleteFunc(s.RevealOrder, func(id string) bool { return id == judgeID })
	}
	s.JudgeID = judgeID
	return nil
}

func (s *Session) reset() *Session {
	out := NewSession(s.Config)
	out.Local = s.Local
	out.Local.IsHost = false
	if s.Local.CurrentPlayer != nil {
		p := *s.Local.CurrentPlayer
		p.IsHost = false
		out.Local.CurrentPlayer = &p
	}
	return out
}

func samePlayers(ids, order []string) bool {
	if len(ids) != len(order) {
		return false
	}
	a := slices.Clone(ids)
	b := slices.Clone(order)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}
