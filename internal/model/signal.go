package model

// Action is the discrete trading suggestion shown on the dashboard.
type Action string

const (
	ActionStrongBuy  Action = "STRONG BUY"
	ActionBuy        Action = "BUY"
	ActionHold       Action = "HOLD"
	ActionSell       Action = "SELL"
	ActionStrongSell Action = "STRONG SELL"
)

// IsStrong reports whether the action warrants an alert.
func (a Action) IsStrong() bool {
	return a == ActionStrongBuy || a == ActionStrongSell
}

// Confidence is the coarse confidence tier of a recommendation.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
)

// Recommendation combines an action with its confidence tier.
type Recommendation struct {
	Action     Action     `json:"action"`
	Confidence Confidence `json:"confidence"`
}
