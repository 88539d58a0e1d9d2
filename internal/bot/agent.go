package bot

import (
	"math/rand"
	"time"
)

// Agent makes the decisions of an automated participant.
// It is not safe for concurrent use; the owning node calls it from its loop.
type Agent struct {
	scorer *Scorer
	tuning Tuning
	rng    *rand.Rand
}

// NewAgent creates an agent with the default tuning.
func NewAgent(rng *rand.Rand) *Agent {
	return NewAgentWithTuning(rng, DefaultTuning, DefaultKeywords)
}

// NewAgentWithTuning creates an agent with custom weights.
func NewAgentWithTuning(rng *rand.Rand, tuning Tuning, keywords []string) *Agent {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Agent{
		scorer: NewScorer(tuning, keywords),
		tuning: tuning,
		rng:    rng,
	}
}

// ChooseAnswer picks a card from hand, mostly the best ranked one.
func (a *Agent) ChooseAnswer(prompt string, hand []string) (string, bool) {
	if len(hand) == 0 {
		return "", false
	}
	c := a.pick(a.scorer.Rank(prompt, hand), a.tuning.AnswerPicks)
	return c.Text, true
}

// ChooseWinner picks the owner of the funniest submission. order is the
// reveal order; ids without a submission are skipped.
func (a *Agent) ChooseWinner(prompt string, submissions map[string]string, order []string) (string, bool) {
	ids := make([]string, 0, len(order))
	texts := make([]string, 0, len(order))
	for _, id := range order {
		if card, ok := submissions[id]; ok {
			ids = append(ids, id)
			texts = append(texts, card)
		}
	}
	if len(ids) == 0 {
		return "", false
	}
	c := a.pick(a.scorer.Rank(prompt, texts), a.tuning.JudgePicks)
	return ids[c.Index], true
}

// pick draws from the top len(weights) candidates with the given odds.
func (a *Agent) pick(ranked []Candidate, weights []float64) Candidate {
	n := min(len(ranked), len(weights))
	if n <= 1 {
		return ranked[0]
	}

	total := 0.0
	for _, w := range weights[:n] {
		total += w
	}
	r := a.rng.Float64() * total
	for i, w := range weights[:n] {
		if r < w {
			return ranked[i]
		}
		r -= w
	}
	return ranked[n-1]
}

// ThinkingDelay returns a random pause in [lo, hi].
func ThinkingDelay(rng *rand.Rand, lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rng.Int63n(int64(hi-lo)+1))
}
