package collector

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"Canari/internal/model"
)

// DefaultNewsLimit is the number of articles requested per analysis.
const DefaultNewsLimit = 20

// Collector fetches the price series and news batch for a symbol.
type Collector struct {
	Price     PriceProvider
	News      NewsProvider
	NewsLimit int
}

// NewCollector creates a new Collector.
func NewCollector(price PriceProvider, news NewsProvider, newsLimit int) *Collector {
	if newsLimit <= 0 {
		newsLimit = DefaultNewsLimit
	}
	return &Collector{Price: price, News: news, NewsLimit: newsLimit}
}

// Collect fetches quote and news concurrently and returns once both have finished.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.MarketSnapshot, error) {
	var (
		quote *model.StockQuote
		news  []model.Article
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q, err := c.Price.FetchQuote(gctx, symbol)
		if err != nil {
			return fmt.Errorf("fetch quote: %w", err)
		}
		quote = q
		return nil
	})
	g.Go(func() error {
		a, err := c.News.FetchNews(gctx, symbol, c.NewsLimit)
		if err != nil {
			return fmt.Errorf("fetch news: %w", err)
		}
		news = a
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if news == nil {
		news = []model.Article{}
	}
	return &model.MarketSnapshot{Quote: quote, News: news}, nil
}
