package bot

// Tuning weighs the signals a bot uses to rank answer cards.
type Tuning struct {
	KeywordWeight float64 // per keyword found in the answer
	LengthWeight  float64 // scaled by closeness to IdealLength
	OverlapWeight float64 // per answer word already present in the prompt
	IdealLength   int     // characters

	// AnswerPicks and JudgePicks are the odds of choosing the best, second
	// and third ranked candidate.
	AnswerPicks []float64
	JudgePicks  []float64
}

// DefaultTuning favours short punchy answers and penalizes echoing the prompt.
var DefaultTuning = Tuning{
	KeywordWeight: 2.0,
	LengthWeight:  1.0,
	OverlapWeight: -0.75,
	IdealLength:   18,
	AnswerPicks:   []float64{0.7, 0.2, 0.1},
	JudgePicks:    []float64{0.6, 0.3, 0.1},
}

// DefaultKeywords are words the bots find funny.
var DefaultKeywords = []string{
	"ex", "sogra", "pelado", "boleto", "velório", "enterro", "mãe", "vizinho",
	"pix", "ketchup", "peruca", "calcinha", "fantasma", "coach", "tio",
	"dentadura", "miojo", "pombo", "karaokê", "ressaca",
}
