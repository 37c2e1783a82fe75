// Package sentiment aggregates three independently failing signal sources
// for a ticker: news-article tone, social-post sentiment, and search
// interest. Every fetcher degrades to an empty result on failure so a dead
// provider never blocks a dashboard render.
package sentiment

// Pipelines holds the process-wide NLP state: the finance-tone classifier
// used for news headlines and the general-purpose lexicon analyzer used for
// social posts. Build it once with NewPipelines before first use and inject
// it into the Aggregator; it is read-only afterwards and safe for
// concurrent use.
type Pipelines struct {
	Tone    *ToneClassifier
	Lexicon *LexiconAnalyzer
}

// NewPipelines constructs the classifier lexicons. This is the only place
// NLP state is initialized; it lives until process exit.
func NewPipelines() *Pipelines {
	return &Pipelines{
		Tone:    NewToneClassifier(),
		Lexicon: NewLexiconAnalyzer(),
	}
}
