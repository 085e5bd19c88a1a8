package model

import "time"

// Article is a single news item. Providers build it; nothing mutates it afterwards.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Source      string    `json:"source,omitempty"`
	// Sentiment is nil until a provider or the scorer assigns a value in [-1, 1].
	Sentiment *float64 `json:"sentiment,omitempty"`
}

// ScoringText returns the text the lexicon scorer reads.
func (a Article) ScoringText() string {
	return a.Title + " " + a.Description
}

// WithSentiment returns a copy of the article carrying the given score.
func (a Article) WithSentiment(score float64) Article {
	a.Sentiment = &score
	return a
}

// Summary is the coarse label attached to an aggregate sentiment score.
type Summary string

const (
	SummaryPositive Summary = "Positive"
	SummaryNeutral  Summary = "Neutral"
	SummaryNegative Summary = "Negative"
	SummaryNoData   Summary = "No sentiment data available"
)

// SentimentResult is the aggregate sentiment of a batch of articles.
type SentimentResult struct {
	Score   float64 `json:"score"`
	Summary Summary `json:"summary"`
}
