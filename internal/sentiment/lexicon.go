package sentiment

import "math"

// LexiconAnalyzer scores general-purpose text with a valence lexicon and
// produces a compound score in [-1,1], the convention used by rule-based
// social-media sentiment analyzers. Callers rescale to [0,1] with
// (compound+1)/2.
type LexiconAnalyzer struct {
	valence map[string]float64
}

// valenceLexicon maps words to signed intensities on roughly a -4..4 scale.
var valenceLexicon = map[string]float64{
	// positive
	"good": 1.9, "great": 3.1, "excellent": 3.2, "amazing": 2.8,
	"awesome": 3.1, "love": 3.2, "loved": 2.9, "like": 1.5, "best": 3.2,
	"happy": 2.7, "win": 2.8, "winning": 2.4, "winner": 2.8, "profit": 2.2,
	"gain": 1.8, "gains": 1.8, "up": 1.1, "bull": 1.6, "bullish": 2.3,
	"buy": 1.3, "moon": 2.0, "rocket": 1.9, "strong": 2.3, "solid": 1.9,
	"beat": 1.6, "growth": 1.7, "opportunity": 1.8, "rich": 1.9,
	"confident": 2.2, "hope": 1.9, "hype": 1.2, "nice": 1.8, "perfect": 3.0,
	"success": 2.7, "successful": 2.7, "easy": 1.3, "free": 1.4,
	"green": 1.2, "rally": 1.7, "recovery": 1.6, "upgrade": 1.7,

	// negative
	"bad": -2.5, "terrible": -3.1, "awful": -3.0, "horrible": -3.0,
	"hate": -2.7, "hated": -2.6, "worst": -3.1, "sad": -2.1, "angry": -2.3,
	"lose": -2.2, "losing": -2.2, "loser": -2.5, "loss": -1.9,
	"losses": -1.9, "down": -1.1, "bear": -1.4, "bearish": -2.3,
	"sell": -1.2, "crash": -2.6, "dump": -1.8, "scam": -2.9, "fraud": -3.0,
	"weak": -1.9, "miss": -1.5, "missed": -1.5, "fear": -2.2,
	"scared": -2.2, "worried": -2.0, "worry": -2.0, "panic": -2.6,
	"risky": -1.5, "risk": -1.1, "debt": -1.4, "broke": -2.1,
	"bankrupt": -3.2, "bankruptcy": -3.2, "red": -1.1, "drop": -1.4,
	"plunge": -2.2, "tank": -1.8, "tanked": -2.0, "downgrade": -1.7,
	"overvalued": -1.6, "bubble": -1.5, "warning": -1.6, "avoid": -1.7,
}

// boosters scale the valence of the following word.
var boosters = map[string]float64{
	"very": 0.293, "really": 0.293, "extremely": 0.293, "incredibly": 0.293,
	"absolutely": 0.293, "so": 0.293, "super": 0.293, "totally": 0.293,
	"slightly": -0.293, "somewhat": -0.293, "barely": -0.293, "kinda": -0.293,
}

// NewLexiconAnalyzer builds the analyzer over the built-in lexicon.
func NewLexiconAnalyzer() *LexiconAnalyzer {
	return &LexiconAnalyzer{valence: valenceLexicon}
}

// Compound scores text in [-1,1]: 0 for empty or valence-free text,
// approaching ±1 as signed word intensities accumulate. Negators flip and
// dampen the following valence word; boosters amplify or attenuate it.
func (a *LexiconAnalyzer) Compound(text string) float64 {
	tokens := tokenize(text)

	var sum float64
	for i, tok := range tokens {
		v, ok := a.valence[tok]
		if !ok {
			continue
		}
		if i > 0 {
			prev := tokens[i-1]
			if b, ok := boosters[prev]; ok {
				if v > 0 {
					v += b
				} else {
					v -= b
				}
			}
			if negators[prev] || (i > 1 && negators[tokens[i-2]]) {
				v *= -0.74
			}
		}
		sum += v
	}

	if sum == 0 {
		return 0
	}
	// Normalize to (-1,1); the constant keeps single-word texts away from
	// the extremes.
	return sum / math.Sqrt(sum*sum+15)
}
