package strategy

import "Canari/internal/model"

// Rule is one row of the recommendation decision table. A rule matches when both
// predicates hold.
type Rule struct {
	Sentiment      func(score float64) bool
	PriceChange    func(pct float64) bool
	Recommendation model.Recommendation
}

// Rules is evaluated top to bottom; the first matching rule wins.
var Rules = []Rule{
	{above(0.3), above(2), model.Recommendation{Action: model.ActionStrongBuy, Confidence: model.ConfidenceHigh}},
	{above(0.1), above(0), model.Recommendation{Action: model.ActionBuy, Confidence: model.ConfidenceMedium}},
	{below(-0.3), below(-2), model.Recommendation{Action: model.ActionStrongSell, Confidence: model.ConfidenceHigh}},
	{below(-0.1), below(0), model.Recommendation{Action: model.ActionSell, Confidence: model.ConfidenceMedium}},
}

// DefaultRecommendation applies when no rule matches.
var DefaultRecommendation = model.Recommendation{Action: model.ActionHold, Confidence: model.ConfidenceMedium}

func above(limit float64) func(float64) bool { return func(v float64) bool { return v > limit } }
func below(limit float64) func(float64) bool { return func(v float64) bool { return v < limit } }

// Recommend maps an aggregate sentiment score and a price change percent to a Recommendation.
func Recommend(sentimentScore, priceChangePercent float64) model.Recommendation {
	for _, r := range Rules {
		if r.Sentiment(sentimentScore) && r.PriceChange(priceChangePercent) {
			return r.Recommendation
		}
	}
	return DefaultRecommendation
}

// SentimentAction is the sentiment-only badge shown next to the score: BUY above
// threshold, SELL below -threshold, HOLD otherwise.
func SentimentAction(score, threshold float64) model.Action {
	switch {
	case score > threshold:
		return model.ActionBuy
	case score < -threshold:
		return model.ActionSell
	default:
		return model.ActionHold
	}
}
