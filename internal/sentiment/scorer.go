package sentiment

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"Canari/internal/model"
)

const (
	// DefaultThreshold separates Positive/Negative from Neutral.
	DefaultThreshold = 0.2
	// LooseThreshold is the narrower boundary some dashboards prefer.
	LooseThreshold = 0.05
)

// Scorer computes keyword-based sentiment over batches of articles.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	lexicon   *Lexicon
	threshold float64
}

// NewScorer creates a Scorer. threshold must lie in (0, 1).
func NewScorer(lexicon *Lexicon, threshold float64) (*Scorer, error) {
	if lexicon == nil {
		return nil, fmt.Errorf("lexicon is required")
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("threshold must be in (0, 1), got %v", threshold)
	}
	return &Scorer{lexicon: lexicon, threshold: threshold}, nil
}

var defaultScorer = &Scorer{lexicon: defaultLexicon, threshold: DefaultThreshold}

// Default returns a Scorer using DefaultLexicon and DefaultThreshold.
func Default() *Scorer { return defaultScorer }

// Score is shorthand for Default().Score.
func Score(articles []model.Article) model.SentimentResult {
	return defaultScorer.Score(articles)
}

// Threshold returns the classification boundary.
func (s *Scorer) Threshold() float64 { return s.threshold }

// Score averages the per-article scores of articles and clamps the result to [-1, 1].
// An empty batch yields score 0 with SummaryNoData.
func (s *Scorer) Score(articles []model.Article) model.SentimentResult {
	if len(articles) == 0 {
		return model.SentimentResult{Score: 0, Summary: model.SummaryNoData}
	}

	scores := make([]float64, len(articles))
	for i, a := range articles {
		scores[i] = s.ScoreText(a.ScoringText())
	}
	// Summing in sorted order and rounding off float noise keeps the result
	// independent of article order, including averages that sit on the threshold.
	sort.Float64s(scores)
	var total float64
	for _, v := range scores {
		total += v
	}
	avg := roundScore(total / float64(len(scores)))

	return model.SentimentResult{
		Score:   Clamp(avg),
		Summary: s.Classify(avg),
	}
}

// ScoreText returns the raw, unclamped contribution of one text.
func (s *Scorer) ScoreText(text string) float64 {
	var score float64
	for _, tok := range tokenize(strings.ToLower(text)) {
		score += s.lexicon.Weight(tok)
	}
	return score
}

// ScoreArticle returns the contribution of one article clamped to [-1, 1].
func (s *Scorer) ScoreArticle(a model.Article) float64 {
	return Clamp(s.ScoreText(a.ScoringText()))
}

// Annotate returns copies of articles where those without a sentiment get ScoreArticle.
// Provider-assigned sentiment is kept as is.
func (s *Scorer) Annotate(articles []model.Article) []model.Article {
	out := make([]model.Article, len(articles))
	for i, a := range articles {
		if a.Sentiment == nil {
			a = a.WithSentiment(s.ScoreArticle(a))
		}
		out[i] = a
	}
	return out
}

// Classify maps a score to its summary label.
func (s *Scorer) Classify(score float64) model.Summary {
	switch {
	case score > s.threshold:
		return model.SummaryPositive
	case score < -s.threshold:
		return model.SummaryNegative
	default:
		return model.SummaryNeutral
	}
}

// Clamp bounds v to [-1, 1].
func Clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func roundScore(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}

// tokenize splits on anything that is not an ASCII word character, which gives the
// same whole-word boundaries as a \b regular expression.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !isWordChar(r)
	})
}

func isWordChar(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
