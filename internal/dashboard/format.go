package dashboard

import (
	"fmt"
	"strings"
)

// FormatPrice formats a price as a fixed two-decimal string, or "N/A" when
// the value is unavailable.
func FormatPrice(p float64, have bool) string {
	if !have {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", p)
}

// FormatVolume formats a share volume with B/M/K suffixes.
func FormatVolume(v int64) string {
	f := float64(v)
	switch {
	case f >= 1e9:
		return fmt.Sprintf("%.1fB", f/1e9)
	case f >= 1e6:
		return fmt.Sprintf("%.1fM", f/1e6)
	case f >= 1e3:
		return fmt.Sprintf("%.1fK", f/1e3)
	default:
		return fmt.Sprintf("%d", v)
	}
}

// Text renders the snapshot as a console block: header, metric line, and
// the three sentiment panels.
func (s *Snapshot) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s) — %s\n", s.Stock.Name, s.Stock.Ticker, s.Stock.Sector)
	fmt.Fprintf(&b, "Latest: %s  Predicted: %s  Suggestion: %s\n",
		FormatPrice(s.LatestPrice, s.HasLatestPrice),
		FormatPrice(s.Prediction.Price, s.Prediction.Source != ""),
		s.Suggestion,
	)
	if s.Prediction.Source != "" {
		fmt.Fprintf(&b, "Prediction source: %s\n", s.Prediction.Source)
	}

	if len(s.History) > 0 {
		first, last := s.History[0], s.History[len(s.History)-1]
		fmt.Fprintf(&b, "History: %d bars, %s to %s, close %.2f → %.2f\n",
			len(s.History),
			first.Date.Format("2006-01-02"), last.Date.Format("2006-01-02"),
			first.Close, last.Close,
		)
	} else {
		b.WriteString("History: no data\n")
	}

	b.WriteString("\nNews Sentiment\n")
	if len(s.News) == 0 {
		b.WriteString("  no news sentiment available\n")
	}
	for _, n := range s.News {
		fmt.Fprintf(&b, "  %s  %.2f  %s\n", n.Date.Format("2006-01-02"), n.Score, n.Title)
	}

	b.WriteString("\nSocial Sentiment\n")
	if len(s.Social) == 0 {
		b.WriteString("  no social sentiment available\n")
	}
	for _, p := range s.Social {
		fmt.Fprintf(&b, "  %.2f  %s\n", p.Score, p.Text)
	}

	b.WriteString("\nSearch Interest (7d)\n")
	if len(s.Trends) == 0 {
		b.WriteString("  no trend data available\n")
	}
	for _, tp := range s.Trends {
		fmt.Fprintf(&b, "  %s  %d\n", tp.Date.Format("2006-01-02"), tp.Value)
	}

	return b.String()
}
