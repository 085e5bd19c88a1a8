package recorder

import (
	"context"
	"time"

	"Canari/internal/model"
)

// AnalysisRecord is one stored analysis as read back for the history view.
type AnalysisRecord struct {
	ID             string                `json:"id"`
	Symbol         string                `json:"symbol"`
	Timestamp      time.Time             `json:"timestamp"`
	Price          float64               `json:"price"`
	ChangePercent  float64               `json:"changePercent"`
	PriceSource    string                `json:"priceSource"`
	Sentiment      model.SentimentResult `json:"sentiment"`
	Recommendation model.Recommendation  `json:"recommendation"`
	ArticleCount   int                   `json:"articleCount"`
}

// Recorder persists analyses for later review.
type Recorder interface {
	RecordAnalysis(ctx context.Context, a *model.Analysis) error
	RecentAnalyses(ctx context.Context, symbol string, limit int) ([]AnalysisRecord, error)
	Close() error
}
