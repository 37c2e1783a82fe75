package sentiment

import "strings"

// Tone is the three-way label produced by the finance-tone classifier.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
	ToneNegative Tone = "negative"
)

// ToneClassifier labels financial text as positive, neutral, or negative
// using domain word lists. It stands in for an externally trained
// finance-tone model behind the same three-label contract.
type ToneClassifier struct {
	positive map[string]bool
	negative map[string]bool
}

// financePositive and financeNegative are tone-bearing terms as they appear
// in financial news headlines.
var financePositive = []string{
	"beat", "beats", "exceeded", "exceeds", "outperform", "outperformed",
	"upgrade", "upgraded", "buy", "bullish", "rally", "rallied", "surge",
	"surged", "soar", "soared", "gain", "gains", "gained", "jump", "jumped",
	"record", "profit", "profits", "profitable", "growth", "grew", "strong",
	"strength", "momentum", "dividend", "buyback", "breakthrough", "approval",
	"approved", "win", "wins", "won", "expansion", "expands", "raised",
	"raises", "boost", "boosted", "optimistic", "upbeat", "recovery",
	"rebound", "rebounded", "milestone", "accelerating", "robust",
}

var financeNegative = []string{
	"miss", "missed", "misses", "shortfall", "underperform", "underperformed",
	"downgrade", "downgraded", "sell", "bearish", "slump", "slumped", "plunge",
	"plunged", "sink", "sank", "drop", "dropped", "fall", "fell", "falls",
	"decline", "declined", "declines", "loss", "losses", "lawsuit", "probe",
	"investigation", "fraud", "recall", "bankruptcy", "default", "layoff",
	"layoffs", "cut", "cuts", "warning", "warns", "warned", "weak", "weakness",
	"slowdown", "slowing", "concern", "concerns", "risk", "risks", "crash",
	"crashed", "tumble", "tumbled", "halted", "delisted", "downturn",
}

// NewToneClassifier builds the classifier's word sets.
func NewToneClassifier() *ToneClassifier {
	c := &ToneClassifier{
		positive: make(map[string]bool, len(financePositive)),
		negative: make(map[string]bool, len(financeNegative)),
	}
	for _, w := range financePositive {
		c.positive[w] = true
	}
	for _, w := range financeNegative {
		c.negative[w] = true
	}
	return c
}

// Classify labels the text by tallying tone-bearing terms. A negator
// directly before a term flips its polarity. Equal or zero tallies are
// neutral.
func (c *ToneClassifier) Classify(text string) Tone {
	tokens := tokenize(text)

	pos, neg := 0, 0
	for i, tok := range tokens {
		negated := i > 0 && negators[tokens[i-1]]
		switch {
		case c.positive[tok]:
			if negated {
				neg++
			} else {
				pos++
			}
		case c.negative[tok]:
			if negated {
				pos++
			} else {
				neg++
			}
		}
	}

	switch {
	case pos > neg:
		return TonePositive
	case neg > pos:
		return ToneNegative
	default:
		return ToneNeutral
	}
}

// Score maps a tone label to the dashboard's [0,1] sentiment scale.
func (t Tone) Score() float64 {
	switch t {
	case TonePositive:
		return 1
	case ToneNegative:
		return 0
	default:
		return 0.5
	}
}

// negators flip the polarity of the following token.
var negators = map[string]bool{
	"not": true, "no": true, "never": true, "without": true,
	"isnt": true, "wasnt": true, "doesnt": true, "didnt": true,
	"wont": true, "cant": true, "couldnt": true, "shouldnt": true,
}

// tokenize lowercases and splits text into alphanumeric words, dropping
// punctuation (apostrophes are removed, so "isn't" becomes "isnt").
func tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '\'':
			// drop
		default:
			if b.Len() > 0 {
				tokens = append(tokens, b.String())
				b.Reset()
			}
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}
