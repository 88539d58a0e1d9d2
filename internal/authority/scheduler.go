package authority

import (
	"log/slog"
	"sync"
	"time"

	"partycards/internal/domain"
)

// TaskKey identifies a deferred step. A task only runs while the session is
// still in the phase and round it was armed for.
type TaskKey struct {
	Phase domain.Phase
	Round int
	Name  string
}

// Scheduler arms deferred steps and hands them to the owner's event loop when
// they fire. Tasks whose phase or round has moved on are dropped on arrival.
type Scheduler struct {
	mu     sync.Mutex
	timers map[TaskKey]*time.Timer
	post   func(func())
	state  func() (domain.Phase, int)
	logger *slog.Logger
}

// NewScheduler creates a scheduler. post must run the function on the
// goroutine that owns the session; state reports its phase and round there.
func NewScheduler(post func(func()), state func() (domain.Phase, int), logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		timers: make(map[TaskKey]*time.Timer),
		post:   post,
		state:  state,
		logger: logger,
	}
}

// Schedule arms run after delay. It reports false when the same task is
// already armed, so re-entered transitions do not stack duplicate steps.
func (s *Scheduler) Schedule(key TaskKey, delay time.Duration, run func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.timers[key]; ok {
		return false
	}
	s.timers[key] = time.AfterFunc(delay, func() {
		s.post(func() { s.fire(key, run) })
	})
	return true
}

func (s *Scheduler) fire(key TaskKey, run func()) {
	s.mu.Lock()
	_, armed := s.timers[key]
	delete(s.timers, key)
	s.mu.Unlock()

	if !armed {
		return
	}
	phase, round := s.state()
	if phase != key.Phase || round != key.Round {
		s.logger.Debug("dropping stale task",
			"task", key.Name,
			"taskPhase", key.Phase,
			"taskRound", key.Round,
			"phase", phase,
			"round", round,
		)
		return
	}
	run()
}

// Cancel disarms a task. It is a no-op for unknown keys.
func (s *Scheduler) Cancel(key TaskKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}
}

// Pending returns the number of armed tasks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop disarms every task.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}
