package sentiment

import (
	"fmt"
	"strings"
)

// Lexicon is an immutable word -> weight table split into a positive and a negative set.
type Lexicon struct {
	positive map[string]float64
	negative map[string]float64
}

// NewLexicon builds a Lexicon from raw word lists. Keys are trimmed and lower-cased.
// Every key must be a single word and every weight strictly positive.
func NewLexicon(positive, negative map[string]float64) (*Lexicon, error) {
	pos, err := normalize(positive)
	if err != nil {
		return nil, fmt.Errorf("positive lexicon: %w", err)
	}
	neg, err := normalize(negative)
	if err != nil {
		return nil, fmt.Errorf("negative lexicon: %w", err)
	}
	return &Lexicon{positive: pos, negative: neg}, nil
}

func normalize(words map[string]float64) (map[string]float64, error) {
	out := make(map[string]float64, len(words))
	for w, weight := range words {
		key := strings.ToLower(strings.TrimSpace(w))
		if key == "" {
			return nil, fmt.Errorf("empty word")
		}
		if len(tokenize(key)) != 1 || tokenize(key)[0] != key {
			return nil, fmt.Errorf("%q is not a single word", w)
		}
		if weight <= 0 {
			return nil, fmt.Errorf("%q: weight must be positive, got %v", w, weight)
		}
		out[key] = weight
	}
	return out, nil
}

// Weight returns the signed weight of a normalized token: positive words count up,
// negative words count down. A word listed in both sets nets out.
func (l *Lexicon) Weight(token string) float64 {
	return l.positive[token] - l.negative[token]
}

// Size returns the number of positive and negative entries.
func (l *Lexicon) Size() (positive, negative int) {
	return len(l.positive), len(l.negative)
}

var defaultPositive = map[string]float64{
	"bull": 0.8, "bullish": 0.8, "surge": 0.7, "soar": 0.7, "rally": 0.6,
	"gain": 0.5, "gains": 0.5, "profit": 0.6, "profits": 0.6, "growth": 0.5,
	"rise": 0.4, "rising": 0.4, "up": 0.3, "increase": 0.4, "strong": 0.5,
	"buy": 0.6, "upgrade": 0.7, "outperform": 0.6, "beat": 0.5, "beats": 0.5,
	"positive": 0.4, "optimistic": 0.5, "confident": 0.4, "success": 0.5,
	"excellent": 0.7, "outstanding": 0.8, "breakthrough": 0.7, "innovation": 0.5,
}

var defaultNegative = map[string]float64{
	"bear": 0.8, "bearish": 0.8, "crash": 0.9, "plunge": 0.8, "tumble": 0.7,
	"fall": 0.5, "falling": 0.5, "drop": 0.5, "decline": 0.5, "loss": 0.6,
	"losses": 0.6, "down": 0.3, "decrease": 0.4, "weak": 0.5, "sell": 0.6,
	"downgrade": 0.7, "underperform": 0.6, "miss": 0.5, "misses": 0.5,
	"negative": 0.4, "concern": 0.4, "concerns": 0.4, "risk": 0.5, "risks": 0.5,
	"warning": 0.6, "challenge": 0.4, "challenges": 0.4, "trouble": 0.6,
}

var defaultLexicon = mustLexicon(defaultPositive, defaultNegative)

func mustLexicon(positive, negative map[string]float64) *Lexicon {
	l, err := NewLexicon(positive, negative)
	if err != nil {
		panic(err)
	}
	return l
}

// DefaultLexicon returns the built-in financial news lexicon.
func DefaultLexicon() *Lexicon { return defaultLexicon }
