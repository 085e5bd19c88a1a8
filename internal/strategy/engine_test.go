package strategy

import (
	"testing"

	"Canari/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestRecommend_DecisionTable(t *testing.T) {
	tests := []struct {
		sentiment  float64
		change     float64
		action     model.Action
		confidence model.Confidence
	}{
		{0.35, 3, model.ActionStrongBuy, model.ConfidenceHigh},
		{0.0, 0, model.ActionHold, model.ConfidenceMedium},
		{-0.35, -3, model.ActionStrongSell, model.ConfidenceHigh},
		// Strong sentiment with a modest move falls through to BUY.
		{0.35, 1, model.ActionBuy, model.ConfidenceMedium},
		{0.35, 2, model.ActionBuy, model.ConfidenceMedium},
		{0.3, 3, model.ActionBuy, model.ConfidenceMedium},
		{0.11, 0.01, model.ActionBuy, model.ConfidenceMedium},
		{0.1, 5, model.ActionHold, model.ConfidenceMedium},
		{-0.35, -1, model.ActionSell, model.ConfidenceMedium},
		{-0.3, -3, model.ActionSell, model.ConfidenceMedium},
		{-0.11, -0.01, model.ActionSell, model.ConfidenceMedium},
		{-0.1, -5, model.ActionHold, model.ConfidenceMedium},
		// Sentiment and price disagree.
		{0.8, -4, model.ActionHold, model.ConfidenceMedium},
		{-0.8, 4, model.ActionHold, model.ConfidenceMedium},
		{0.5, 0, model.ActionHold, model.ConfidenceMedium},
	}
	for _, tt := range tests {
		got := Recommend(tt.sentiment, tt.change)
		assert.Equal(t, tt.action, got.Action, "sentiment %.2f change %.2f", tt.sentiment, tt.change)
		assert.Equal(t, tt.confidence, got.Confidence, "sentiment %.2f change %.2f", tt.sentiment, tt.change)
	}
}

func TestRecommend_Idempotent(t *testing.T) {
	first := Recommend(0.2, 1.5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Recommend(0.2, 1.5))
	}
}

func TestSentimentAction(t *testing.T) {
	assert.Equal(t, model.ActionBuy, SentimentAction(0.25, 0.2))
	assert.Equal(t, model.ActionHold, SentimentAction(0.2, 0.2))
	assert.Equal(t, model.ActionHold, SentimentAction(-0.2, 0.2))
	assert.Equal(t, model.ActionSell, SentimentAction(-0.25, 0.2))
	assert.Equal(t, model.ActionBuy, SentimentAction(0.06, 0.05))
}
