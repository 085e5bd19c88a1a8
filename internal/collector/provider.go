package collector

import (
	"context"

	"Canari/internal/model"
)

// PriceProvider fetches a quote and intraday chart for a symbol.
type PriceProvider interface {
	FetchQuote(ctx context.Context, symbol string) (*model.StockQuote, error)
	Name() string
}

// NewsProvider fetches recent news articles about a symbol.
type NewsProvider interface {
	FetchNews(ctx context.Context, symbol string, limit int) ([]model.Article, error)
	Name() string
}

// Observer is notified about provider outcomes. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveFetch(provider, kind string, err error)
	ObserveFallback(kind string)
}

const (
	KindPrice = "price"
	KindNews  = "news"
)
