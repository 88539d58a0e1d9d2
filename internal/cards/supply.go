package cards

import (
	"errors"
	"math/rand"
	"time"
)

// ErrDeckTooSmall is returned when the answer deck cannot fill every hand.
var ErrDeckTooSmall = errors.New("not enough answer cards to deal")

// Supply hands out prompts and answer cards from a catalogue.
// It is stateless apart from its random source.
type Supply struct {
	catalogue Catalogue
	rng       *rand.Rand
}

// NewSupply constructs a Supply with the provided rng or a time-seeded default.
func NewSupply(catalogue Catalogue, rng *rand.Rand) *Supply {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Supply{catalogue: catalogue, rng: rng}
}

// Rand exposes the supply's random source so callers share one seeded stream.
func (s *Supply) Rand() *rand.Rand {
	return s.rng
}

// Catalogue returns the catalogue backing this supply.
func (s *Supply) Catalogue() Catalogue {
	return s.catalogue
}

// DrawPrompt picks a prompt uniformly among those not in used.
// When every prompt has been used it picks from the whole catalogue and
// reports wrapped so the caller can reset its used set.
func (s *Supply) DrawPrompt(used []string) (prompt string, wrapped bool) {
	if len(s.catalogue.Prompts) == 0 {
		return "", false
	}

	usedSet := make(map[string]bool, len(used))
	for _, p := range used {
		usedSet[p] = true
	}

	available := make([]string, 0, len(s.catalogue.Prompts))
	for _, p := range s.catalogue.Prompts {
		if !usedSet[p] {
			available = append(available, p)
		}
	}

	if len(available) == 0 {
		return s.catalogue.Prompts[s.rng.Intn(len(s.catalogue.Prompts))], true
	}
	return available[s.rng.Intn(len(available))], false
}

// DealHands shuffles the full answer deck once and deals handSize cards to
// each player in order. The rest of the deck is returned as the draw pile.
func (s *Supply) DealHands(playerIDs []string, handSize int) (map[string][]string, []string, error) {
	deck := Shuffle(s.rng, s.catalogue.Answers)
	if handSize < 0 || len(playerIDs)*handSize > len(deck) {
		return nil, nil, ErrDeckTooSmall
	}

	hands := make(map[string][]string, len(playerIDs))
	idx := 0
	for _, id := range playerIDs {
		hands[id] = append([]string{}, deck[idx:idx+handSize]...)
		idx += handSize
	}

	return hands, append([]string{}, deck[idx:]...), nil
}

// Shuffle returns a uniformly permuted copy of items.
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
