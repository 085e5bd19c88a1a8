package analysis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"Canari/internal/collector"
	"Canari/internal/model"
	"Canari/internal/recorder"
	"Canari/internal/sentiment"
	"Canari/internal/strategy"
)

// Observer receives completed analyses, typically the metrics package.
type Observer interface {
	ObserveAnalysis(a *model.Analysis)
}

// Service runs the fetch, score and recommend pipeline for one symbol.
type Service struct {
	collector *collector.Collector
	scorer    *sentiment.Scorer
	recorder  recorder.Recorder
	observer  Observer
	now       func() time.Time
}

// NewService creates a Service. rec and obs may be nil.
func NewService(c *collector.Collector, scorer *sentiment.Scorer, rec recorder.Recorder, obs Observer) *Service {
	if scorer == nil {
		scorer = sentiment.Default()
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Service{collector: c, scorer: scorer, recorder: rec, observer: obs, now: time.Now}
}

// Analyze fetches price and news for symbol and derives the sentiment and recommendation.
func (s *Service) Analyze(ctx context.Context, symbol string) (*model.Analysis, error) {
	sym, err := model.ParseSymbol(symbol)
	if err != nil {
		return nil, err
	}

	snap, err := s.collector.Collect(ctx, sym)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", sym, err)
	}

	news := s.scorer.Annotate(snap.News)
	result := s.scorer.Score(news)

	var change float64
	if snap.Quote != nil {
		change = snap.Quote.ChangePercent
	}

	a := &model.Analysis{
		ID:              uuid.NewString(),
		Symbol:          sym,
		Quote:           snap.Quote,
		News:            news,
		Sentiment:       result,
		Recommendation:  strategy.Recommend(result.Score, change),
		SentimentAction: strategy.SentimentAction(result.Score, s.scorer.Threshold()),
		LastUpdated:     s.now(),
	}

	if err := s.recorder.RecordAnalysis(ctx, a); err != nil {
		log.Printf("[ERROR] failed to record analysis for %s: %v", sym, err)
	}
	if s.observer != nil {
		s.observer.ObserveAnalysis(a)
	}

	log.Printf("[INFO] analysis %s: sentiment=%.2f (%s) change=%.2f%% -> %s",
		sym, result.Score, result.Summary, change, a.Recommendation.Action)
	return a, nil
}

// Quote returns the current quote without scoring news.
func (s *Service) Quote(ctx context.Context, symbol string) (*model.StockQuote, error) {
	sym, err := model.ParseSymbol(symbol)
	if err != nil {
		return nil, err
	}
	q, err := s.collector.Price.FetchQuote(ctx, sym)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", sym, err)
	}
	return q, nil
}

// News returns recent articles for symbol, each carrying a sentiment value.
func (s *Service) News(ctx context.Context, symbol string) ([]model.Article, error) {
	sym, err := model.ParseSymbol(symbol)
	if err != nil {
		return nil, err
	}
	articles, err := s.collector.News.FetchNews(ctx, sym, s.collector.NewsLimit)
	if err != nil {
		return nil, fmt.Errorf("news %s: %w", sym, err)
	}
	return s.scorer.Annotate(articles), nil
}

// History returns previously recorded analyses for symbol, newest first.
func (s *Service) History(ctx context.Context, symbol string, limit int) ([]recorder.AnalysisRecord, error) {
	sym, err := model.ParseSymbol(symbol)
	if err != nil {
		return nil, err
	}
	return s.recorder.RecentAnalyses(ctx, sym, limit)
}

// ScoreArticles scores a caller-supplied batch of articles.
func (s *Service) ScoreArticles(articles []model.Article) model.SentimentResult {
	return s.scorer.Score(articles)
}

// Recommend maps a sentiment score and price change to a recommendation.
func (s *Service) Recommend(sentimentScore, priceChangePercent float64) model.Recommendation {
	return strategy.Recommend(sentimentScore, priceChangePercent)
}

// Threshold is the classification threshold of the underlying scorer.
func (s *Service) Threshold() float64 {
	return s.scorer.Threshold()
}
