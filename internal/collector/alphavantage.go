package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"Canari/internal/model"
)

// AlphaVantagePriceProvider implements PriceProvider using the Alpha Vantage REST API.
type AlphaVantagePriceProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Limiter *rate.Limiter
}

// NewAlphaVantagePriceProvider creates a provider limited to the free tier's 5 requests per minute.
func NewAlphaVantagePriceProvider(apiKey, proxyURL string) *AlphaVantagePriceProvider {
	return &AlphaVantagePriceProvider{
		BaseURL: "https://www.alphavantage.co",
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
		Limiter: rate.NewLimiter(rate.Every(12*time.Second), 5),
	}
}

func (f *AlphaVantagePriceProvider) Name() string { return "alphavantage" }

type avGlobalQuote struct {
	Quote struct {
		Symbol        string `json:"01. symbol"`
		Price         string `json:"05. price"`
		PreviousClose string `json:"08. previous close"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
}

type avIntraday struct {
	Meta struct {
		TimeZone string `json:"6. Time Zone"`
	} `json:"Meta Data"`
	Series map[string]struct {
		Close string `json:"4. close"`
	} `json:"Time Series (5min)"`
}

// avStatus carries the throttle and error messages Alpha Vantage returns with HTTP 200.
type avStatus struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

func (s avStatus) err() error {
	switch {
	case s.ErrorMessage != "":
		return fmt.Errorf("alphavantage api error: %s", s.ErrorMessage)
	case s.Note != "":
		return fmt.Errorf("alphavantage throttled: %s", s.Note)
	case s.Information != "":
		return fmt.Errorf("alphavantage: %s", s.Information)
	}
	return nil
}

func (f *AlphaVantagePriceProvider) FetchQuote(ctx context.Context, symbol string) (*model.StockQuote, error) {
	body, err := f.query(ctx, url.Values{"function": {"GLOBAL_QUOTE"}, "symbol": {symbol}})
	if err != nil {
		return nil, err
	}
	var gq avGlobalQuote
	if err := json.Unmarshal(body, &gq); err != nil {
		return nil, fmt.Errorf("alphavantage decode quote: %w", err)
	}
	if gq.Quote.Price == "" {
		return nil, fmt.Errorf("alphavantage: %w", model.ErrNoData)
	}

	price, err := strconv.ParseFloat(gq.Quote.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("alphavantage price: %w", err)
	}
	change, err := strconv.ParseFloat(gq.Quote.Change, 64)
	if err != nil {
		return nil, fmt.Errorf("alphavantage change: %w", err)
	}
	pct, err := strconv.ParseFloat(strings.TrimSuffix(gq.Quote.ChangePercent, "%"), 64)
	if err != nil {
		return nil, fmt.Errorf("alphavantage change percent: %w", err)
	}

	quote := &model.StockQuote{
		Symbol:        symbol,
		CurrentPrice:  price,
		Change:        change,
		ChangePercent: pct,
		Source:        f.Name(),
		FetchedAt:     time.Now(),
	}

	chart, err := f.fetchIntraday(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] alphavantage intraday for %s failed, serving quote without chart: %v", symbol, err)
	} else {
		quote.ChartData = chart
	}
	return quote, nil
}

func (f *AlphaVantagePriceProvider) fetchIntraday(ctx context.Context, symbol string) ([]model.PricePoint, error) {
	body, err := f.query(ctx, url.Values{
		"function": {"TIME_SERIES_INTRADAY"},
		"symbol":   {symbol},
		"interval": {"5min"},
	})
	if err != nil {
		return nil, err
	}
	var series avIntraday
	if err := json.Unmarshal(body, &series); err != nil {
		return nil, fmt.Errorf("alphavantage decode intraday: %w", err)
	}

	loc := time.UTC
	if series.Meta.TimeZone != "" {
		if l, err := time.LoadLocation(series.Meta.TimeZone); err == nil {
			loc = l
		}
	}

	points := make([]model.PricePoint, 0, len(series.Series))
	for ts, bar := range series.Series {
		t, err := time.ParseInLocation("2006-01-02 15:04:05", ts, loc)
		if err != nil {
			continue
		}
		c, err := strconv.ParseFloat(bar.Close, 64)
		if err != nil {
			continue
		}
		points = append(points, model.PricePoint{Time: t, Price: c})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	return points, nil
}

func (f *AlphaVantagePriceProvider) query(ctx context.Context, params url.Values) ([]byte, error) {
	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("alphavantage rate limit: %w", err)
		}
	}
	params.Set("apikey", f.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+"/query?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	body, err := getBody(req, f.Client, "alphavantage")
	if err != nil {
		return nil, err
	}
	var status avStatus
	if err := json.Unmarshal(body, &status); err == nil {
		if err := status.err(); err != nil {
			return nil, err
		}
	}
	return body, nil
}
