// Package dashboard composes one render of the stock dashboard: prices,
// sentiment panels, prediction, and the buy/sell/hold suggestion.
package dashboard

// Suggestion is the trading hint shown on the dashboard.
type Suggestion string

const (
	SuggestionBuy  Suggestion = "Buy"
	SuggestionSell Suggestion = "Sell"
	SuggestionHold Suggestion = "Hold"
)

// suggestionThreshold is the fractional band around the latest price within
// which the prediction is treated as noise.
const suggestionThreshold = 0.01

// DeriveSuggestion compares the predicted price against the latest price:
// more than 1% above is a Buy, more than 1% below is a Sell, anything
// within the band is a Hold. When either price is unavailable the answer is
// Hold — without both numbers there is no basis to act.
func DeriveSuggestion(latest, predicted float64, haveLatest, havePredicted bool) Suggestion {
	if !haveLatest || !havePredicted {
		return SuggestionHold
	}
	switch {
	case predicted > latest*(1+suggestionThreshold):
		return SuggestionBuy
	case predicted < latest*(1-suggestionThreshold):
		return SuggestionSell
	default:
		return SuggestionHold
	}
}
