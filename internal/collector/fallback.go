package collector

import (
	"context"
	"log"

	"Canari/internal/model"
)

// FallbackPriceProvider tries Primary once and serves Mock data when it fails.
type FallbackPriceProvider struct {
	Primary  PriceProvider
	Mock     PriceProvider
	Observer Observer
}

// NewFallbackPriceProvider wraps primary with a mock fallback.
func NewFallbackPriceProvider(primary PriceProvider, obs Observer) *FallbackPriceProvider {
	return &FallbackPriceProvider{Primary: primary, Mock: NewMockPriceProvider(), Observer: obs}
}

func (f *FallbackPriceProvider) Name() string { return f.Primary.Name() }

func (f *FallbackPriceProvider) FetchQuote(ctx context.Context, symbol string) (*model.StockQuote, error) {
	quote, err := f.Primary.FetchQuote(ctx, symbol)
	observeFetch(f.Observer, f.Primary.Name(), KindPrice, err)
	if err == nil {
		return quote, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	log.Printf("[WARN] %s quote for %s failed: %v, using mock data", f.Primary.Name(), symbol, err)
	if f.Observer != nil {
		f.Observer.ObserveFallback(KindPrice)
	}
	quote, err = f.Mock.FetchQuote(ctx, symbol)
	observeFetch(f.Observer, f.Mock.Name(), KindPrice, err)
	return quote, err
}

// FallbackNewsProvider tries Primary once and serves Mock articles when it fails.
type FallbackNewsProvider struct {
	Primary  NewsProvider
	Mock     NewsProvider
	Observer Observer
}

// NewFallbackNewsProvider wraps primary with a mock fallback.
func NewFallbackNewsProvider(primary NewsProvider, obs Observer) *FallbackNewsProvider {
	return &FallbackNewsProvider{Primary: primary, Mock: NewMockNewsProvider(), Observer: obs}
}

func (f *FallbackNewsProvider) Name() string { return f.Primary.Name() }

func (f *FallbackNewsProvider) FetchNews(ctx context.Context, symbol string, limit int) ([]model.Article, error) {
	articles, err := f.Primary.FetchNews(ctx, symbol, limit)
	observeFetch(f.Observer, f.Primary.Name(), KindNews, err)
	if err == nil {
		return articles, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	log.Printf("[WARN] %s news for %s failed: %v, using mock data", f.Primary.Name(), symbol, err)
	if f.Observer != nil {
		f.Observer.ObserveFallback(KindNews)
	}
	articles, err = f.Mock.FetchNews(ctx, symbol, limit)
	observeFetch(f.Observer, f.Mock.Name(), KindNews, err)
	return articles, err
}

func observeFetch(obs Observer, provider, kind string, err error) {
	if obs != nil {
		obs.ObserveFetch(provider, kind, err)
	}
}
