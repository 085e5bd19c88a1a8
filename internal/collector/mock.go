package collector

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"Canari/internal/calculator"
	"Canari/internal/model"
)

const (
	tradingMinutes = 390
	chartPoints    = 100
)

// MockPriceProvider generates a realistic-looking intraday random walk.
type MockPriceProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
	Now func() time.Time
}

// NewMockPriceProvider creates a mock seeded from the global source.
func NewMockPriceProvider() *MockPriceProvider {
	return NewSeededMockPriceProvider(rand.Uint64())
}

// NewSeededMockPriceProvider creates a deterministic mock.
func NewSeededMockPriceProvider(seed uint64) *MockPriceProvider {
	return &MockPriceProvider{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), Now: time.Now}
}

func (m *MockPriceProvider) Name() string { return "mock" }

func (m *MockPriceProvider) FetchQuote(_ context.Context, symbol string) (*model.StockQuote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	basePrice := 150 + m.rng.Float64()*200
	volatility := 0.02 + m.rng.Float64()*0.03 // 2-5%
	trend := (m.rng.Float64() - 0.5) * 0.1    // -5% to +5% over the session

	now := m.Now()
	price := basePrice
	chart := make([]model.PricePoint, 0, tradingMinutes)
	for i := 0; i < tradingMinutes; i++ {
		price += (m.rng.Float64()-0.5)*volatility*price + trend*price/tradingMinutes
		chart = append(chart, model.PricePoint{
			Time:  now.Add(-time.Duration(tradingMinutes-i) * time.Minute),
			Price: calculator.Round2(price),
		})
	}

	change, pct, err := calculator.CalculateChange(basePrice, price)
	if err != nil {
		return nil, err
	}
	return &model.StockQuote{
		Symbol:        symbol,
		CurrentPrice:  calculator.Round2(price),
		Change:        calculator.Round2(change),
		ChangePercent: calculator.Round2(pct),
		ChartData:     calculator.TrimTail(chart, chartPoints),
		Source:        m.Name(),
		FetchedAt:     now,
	}, nil
}

var mockNewsSources = []string{"Reuters", "Bloomberg", "CNBC", "MarketWatch", "Yahoo Finance", "Financial Times"}

var mockNewsTypes = []string{
	"earnings", "analysis", "upgrade", "downgrade", "merger", "acquisition",
	"regulatory", "market", "innovation", "partnership", "guidance", "lawsuit",
}

// mockHeadlines uses %[1]s for the symbol and %[2]d for a quarter number.
var mockHeadlines = map[string][]string{
	"earnings":   {"%[1]s Reports Q%[2]d Earnings", "%[1]s Beats/Misses Expectations"},
	"analysis":   {"Market Analysis: %[1]s Stock Outlook", "%[1]s Technical Analysis Update"},
	"upgrade":    {"Analysts Upgrade %[1]s Price Target", "%[1]s Gets Buy Rating from Major Bank"},
	"downgrade":  {"%[1]s Downgraded by Analysts", "Concerns Rise Over %[1]s Performance"},
	"regulatory": {"%[1]s Faces New Regulatory Requirements", "Government Policy Impact on %[1]s"},
	"innovation": {"%[1]s Announces New Technology", "%[1]s Innovation Could Boost Revenue"},
}

var mockFallbackHeadlines = []string{"%[1]s in the News", "Latest %[1]s Update"}

// MockNewsProvider generates 5-12 synthetic articles with per-type sentiment.
type MockNewsProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
	Now func() time.Time
}

// NewMockNewsProvider creates a mock seeded from the global source.
func NewMockNewsProvider() *MockNewsProvider {
	return NewSeededMockNewsProvider(rand.Uint64())
}

// NewSeededMockNewsProvider creates a deterministic mock.
func NewSeededMockNewsProvider(seed uint64) *MockNewsProvider {
	return &MockNewsProvider{rng: rand.New(rand.NewPCG(seed, seed^0xbf58476d1ce4e5b9)), Now: time.Now}
}

func (m *MockNewsProvider) Name() string { return "mock" }

// FetchNews ignores limit values above 12; the mock never produces more.
func (m *MockNewsProvider) FetchNews(_ context.Context, symbol string, limit int) ([]model.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.Now()
	n := 5 + m.rng.IntN(8)
	articles := make([]model.Article, 0, n)
	for i := 0; i < n; i++ {
		source := mockNewsSources[m.rng.IntN(len(mockNewsSources))]
		newsType := mockNewsTypes[m.rng.IntN(len(mockNewsTypes))]
		age := time.Duration(m.rng.Int64N(int64(2 * time.Hour)))

		options, ok := mockHeadlines[newsType]
		if !ok {
			options = mockFallbackHeadlines
		}
		title := fmt.Sprintf(options[m.rng.IntN(len(options))], symbol, 1+m.rng.IntN(4))

		var score float64
		switch newsType {
		case "earnings", "upgrade", "innovation", "partnership":
			score = 0.3 + m.rng.Float64()*0.5
		case "downgrade", "lawsuit", "regulatory":
			score = -0.3 - m.rng.Float64()*0.5
		default:
			score = (m.rng.Float64() - 0.5) * 0.8
		}

		articles = append(articles, model.Article{
			Title:       title,
			Description: fmt.Sprintf("Latest developments regarding %s and its %s activities. Market analysts are closely watching these developments.", symbol, newsType),
			URL:         fmt.Sprintf("https://example.com/news/%s-%s-%d-%d", strings.ToLower(symbol), newsType, now.UnixMilli(), i),
			PublishedAt: now.Add(-age),
			Source:      source,
		}.WithSentiment(calculator.Round2(score)))
	}

	sort.Slice(articles, func(i, j int) bool { return articles[i].PublishedAt.After(articles[j].PublishedAt) })
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}
