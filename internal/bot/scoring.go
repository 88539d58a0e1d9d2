package bot

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Candidate is a scored card. Index points back into the ranked input.
type Candidate struct {
	Index int
	Text  string
	Score float64
}

// Scorer rates how well an answer fits a prompt.
type Scorer struct {
	tuning   Tuning
	keywords map[string]bool
}

// NewScorer creates a scorer with the given weights and keyword list.
func NewScorer(tuning Tuning, keywords []string) *Scorer {
	kw := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		kw[strings.ToLower(k)] = true
	}
	return &Scorer{tuning: tuning, keywords: kw}
}

// Score returns the heuristic value of answer for prompt. Higher is better.
func (s *Scorer) Score(prompt, answer string) float64 {
	words := tokenize(answer)
	promptWords := make(map[string]bool)
	for _, w := range tokenize(prompt) {
		promptWords[w] = true
	}

	var hits, overlap int
	for _, w := range words {
		if s.keywords[w] {
			hits++
		}
		// short words are articles and prepositions
		if utf8.RuneCountInString(w) >= 4 && promptWords[w] {
			overlap++
		}
	}

	closeness := 0.0
	if ideal := float64(s.tuning.IdealLength); ideal > 0 {
		diff := math.Abs(float64(utf8.RuneCountInString(answer)) - ideal)
		closeness = math.Max(0, 1-diff/ideal)
	}

	return float64(hits)*s.tuning.KeywordWeight +
		closeness*s.tuning.LengthWeight +
		float64(overlap)*s.tuning.OverlapWeight
}

// Rank scores every text and sorts best first. Ties keep input order.
func (s *Scorer) Rank(prompt string, texts []string) []Candidate {
	ranked := make([]Candidate, 0, len(texts))
	for i, t := range texts {
		ranked = append(ranked, Candidate{Index: i, Text: t, Score: s.Score(prompt, t)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
