package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"Canari/internal/calculator"
	"Canari/internal/model"
)

// alpacaClient is the subset of *marketdata.Client the Alpaca providers use.
type alpacaClient interface {
	GetNews(req marketdata.GetNewsRequest) ([]marketdata.News, error)
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

func newAlpacaClient(apiKey, apiSecret, dataURL string) *marketdata.Client {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	return marketdata.NewClient(opts)
}

// AlpacaPriceProvider implements PriceProvider with Alpaca market data bars.
type AlpacaPriceProvider struct {
	client alpacaClient
	Now    func() time.Time
}

// NewAlpacaPriceProvider creates a provider using the IEX feed available to free accounts.
func NewAlpacaPriceProvider(apiKey, apiSecret, dataURL string) *AlpacaPriceProvider {
	return &AlpacaPriceProvider{client: newAlpacaClient(apiKey, apiSecret, dataURL), Now: time.Now}
}

func (p *AlpacaPriceProvider) Name() string { return "alpaca" }

func (p *AlpacaPriceProvider) FetchQuote(ctx context.Context, symbol string) (*model.StockQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := p.Now()

	daily, err := p.client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     now.AddDate(0, 0, -10),
		End:       now,
		Feed:      "iex",
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca daily bars: %w", err)
	}
	if len(daily) < 2 {
		return nil, fmt.Errorf("alpaca: %w", model.ErrNoData)
	}
	last := daily[len(daily)-1]
	prevClose := daily[len(daily)-2].Close

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	minutes, err := p.client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneMin,
		Start:     last.Timestamp,
		End:       now,
		Feed:      "iex",
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca minute bars: %w", err)
	}

	points := make([]model.PricePoint, 0, len(minutes))
	for _, b := range minutes {
		points = append(points, model.PricePoint{Time: b.Timestamp, Price: b.Close})
	}
	current := last.Close
	if len(points) > 0 {
		current = points[len(points)-1].Price
	}

	change, pct, err := calculator.CalculateChange(prevClose, current)
	if err != nil {
		return nil, fmt.Errorf("alpaca: %w", err)
	}
	return &model.StockQuote{
		Symbol:        symbol,
		CurrentPrice:  current,
		Change:        change,
		ChangePercent: pct,
		ChartData:     points,
		Source:        p.Name(),
		FetchedAt:     now,
	}, nil
}

// AlpacaNewsProvider implements NewsProvider with the Alpaca news endpoint.
type AlpacaNewsProvider struct {
	client alpacaClient
}

// NewAlpacaNewsProvider creates an Alpaca news provider.
func NewAlpacaNewsProvider(apiKey, apiSecret, dataURL string) *AlpacaNewsProvider {
	return &AlpacaNewsProvider{client: newAlpacaClient(apiKey, apiSecret, dataURL)}
}

func (p *AlpacaNewsProvider) Name() string { return "alpaca" }

func (p *AlpacaNewsProvider) FetchNews(ctx context.Context, symbol string, limit int) ([]model.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	news, err := p.client.GetNews(marketdata.GetNewsRequest{
		Symbols:    []string{symbol},
		TotalLimit: limit,
		Sort:       marketdata.SortDesc,
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca news: %w", err)
	}

	articles := make([]model.Article, 0, len(news))
	for _, n := range news {
		source := n.Author
		if source == "" {
			source = "Alpaca"
		}
		articles = append(articles, model.Article{
			Title:       n.Headline,
			Description: stripHTML(n.Summary),
			URL:         n.URL,
			PublishedAt: n.CreatedAt,
			Source:      source,
		})
	}
	return articles, nil
}
