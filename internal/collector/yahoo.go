package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"Canari/internal/calculator"
	"Canari/internal/model"
)

// YahooPriceProvider implements PriceProvider using the Yahoo Finance chart API.
type YahooPriceProvider struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps dashboard symbol to Yahoo ticker
}

// NewYahooPriceProvider creates a new Yahoo Finance provider.
func NewYahooPriceProvider(proxyURL string) *YahooPriceProvider {
	return &YahooPriceProvider{
		BaseURL: "https://query1.finance.yahoo.com",
		Client:  newHTTPClient(proxyURL),
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooPriceProvider) Name() string { return "yahoo" }

func (f *YahooPriceProvider) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (f *YahooPriceProvider) FetchQuote(ctx context.Context, symbol string) (*model.StockQuote, error) {
	q := url.Values{}
	q.Set("region", "US")
	q.Set("lang", "en-US")
	q.Set("includePrePost", "false")
	q.Set("interval", "1m")
	q.Set("range", "1d")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	body, err := getBody(req, f.Client, "yahoo")
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: %w", model.ErrNoData)
	}

	result := chart.Chart.Result[0]
	var closes []*float64
	if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}

	points := make([]model.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // null bars
		}
		points = append(points, model.PricePoint{Time: time.Unix(ts, 0), Price: *closes[i]})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })

	current := result.Meta.RegularMarketPrice
	if current == 0 && len(points) > 0 {
		current = points[len(points)-1].Price
	}
	if current == 0 {
		return nil, fmt.Errorf("yahoo: %w", model.ErrNoData)
	}
	prev := result.Meta.PreviousClose
	if prev == 0 {
		prev = result.Meta.ChartPreviousClose
	}
	change, pct, err := calculator.CalculateChange(prev, current)
	if err != nil {
		return nil, fmt.Errorf("yahoo: %w", err)
	}

	return &model.StockQuote{
		Symbol:        symbol,
		CurrentPrice:  current,
		Change:        change,
		ChangePercent: pct,
		ChartData:     points,
		Source:        f.Name(),
		FetchedAt:     time.Now(),
	}, nil
}
