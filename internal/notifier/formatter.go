package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"Canari/internal/calculator"
	"Canari/internal/model"
)

const maxHeadlines = 3

func actionIcon(a model.Action) string {
	switch a {
	case model.ActionStrongBuy:
		return "🚀"
	case model.ActionBuy:
		return "📈"
	case model.ActionSell:
		return "📉"
	case model.ActionStrongSell:
		return "🔻"
	default:
		return "⏸"
	}
}

// FormatAnalysis formats a full analysis as a Telegram message.
func FormatAnalysis(a *model.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 <b>%s</b> | %s\n\n", html.EscapeString(a.Symbol), a.LastUpdated.Format("2006-01-02 15:04"))
	if q := a.Quote; q != nil {
		fmt.Fprintf(&b, "Price: $%.2f (%+.2f, %+.2f%%)\n", q.CurrentPrice, q.Change, q.ChangePercent)
		if high, low, err := calculator.SeriesRange(q.ChartData); err == nil {
			fmt.Fprintf(&b, "Range: $%.2f - $%.2f\n", low, high)
		}
		if q.Source != "" {
			fmt.Fprintf(&b, "Source: %s\n", q.Source)
		}
	}
	fmt.Fprintf(&b, "Sentiment: %+.2f (%s) from %d articles\n\n", a.Sentiment.Score, a.Sentiment.Summary, len(a.News))

	fmt.Fprintf(&b, "%s <b>%s</b> (confidence: %s)\n",
		actionIcon(a.Recommendation.Action), a.Recommendation.Action, a.Recommendation.Confidence)

	if len(a.News) > 0 {
		b.WriteString("\n<b>Headlines:</b>\n")
		for i, art := range a.News {
			if i == maxHeadlines {
				break
			}
			score := ""
			if art.Sentiment != nil {
				score = fmt.Sprintf(" (%+.2f)", *art.Sentiment)
			}
			fmt.Fprintf(&b, "• %s%s\n", html.EscapeString(art.Title), score)
		}
	}
	return b.String()
}

// FormatAlert formats a short alert for a strong signal.
func FormatAlert(a *model.Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>%s: %s</b>\n", actionIcon(a.Recommendation.Action), html.EscapeString(a.Symbol), a.Recommendation.Action)
	if q := a.Quote; q != nil {
		fmt.Fprintf(&b, "Price: $%.2f (%+.2f%%)\n", q.CurrentPrice, q.ChangePercent)
	}
	fmt.Fprintf(&b, "Sentiment: %+.2f (%s)\n", a.Sentiment.Score, a.Sentiment.Summary)
	return b.String()
}

// FormatDigest formats a one-line-per-symbol summary of a watchlist scan.
func FormatDigest(results []*model.Analysis, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗒 <b>Watchlist scan</b> | %s\n\n", at.Format("2006-01-02 15:04"))
	if len(results) == 0 {
		b.WriteString("No results.")
		return b.String()
	}
	for _, a := range results {
		change := 0.0
		if a.Quote != nil {
			change = a.Quote.ChangePercent
		}
		fmt.Fprintf(&b, "%s %s: %s (sentiment %+.2f, %+.2f%%)\n",
			actionIcon(a.Recommendation.Action), html.EscapeString(a.Symbol), a.Recommendation.Action, a.Sentiment.Score, change)
	}
	return b.String()
}

// FormatWatchlist lists the watched symbols.
func FormatWatchlist(symbols []string) string {
	if len(symbols) == 0 {
		return "👀 Watchlist is empty. Use /add SYMBOL."
	}
	return fmt.Sprintf("👀 <b>Watchlist</b> (%d)\n%s", len(symbols), html.EscapeString(strings.Join(symbols, ", ")))
}
