package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Canari/internal/analysis"
	"Canari/internal/collector"
	"Canari/internal/metrics"
	"Canari/internal/model"
	"Canari/internal/recorder"
	"Canari/internal/sentiment"
	"Canari/internal/strategy"
	"Canari/internal/watchlist"
)

type mockService struct {
	err     error
	history []recorder.AnalysisRecord
	gotLim  int
}

func (m *mockService) Analyze(_ context.Context, symbol string) (*model.Analysis, error) {
	sym, err := model.ParseSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return &model.Analysis{
		ID:             "id-1",
		Symbol:         sym,
		Quote:          &model.StockQuote{Symbol: sym, CurrentPrice: 123.45, ChangePercent: 2.5},
		News:           []model.Article{},
		Sentiment:      model.SentimentResult{Score: 0.4, Summary: model.SummaryPositive},
		Recommendation: model.Recommendation{Action: model.ActionStrongBuy, Confidence: model.ConfidenceHigh},
	}, nil
}

func (m *mockService) Quote(_ context.Context, symbol string) (*model.StockQuote, error) {
	sym, err := model.ParseSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return &model.StockQuote{Symbol: sym, CurrentPrice: 10}, nil
}

func (m *mockService) News(_ context.Context, symbol string) ([]model.Article, error) {
	if _, err := model.ParseSymbol(symbol); err != nil {
		return nil, err
	}
	return []model.Article{{Title: "Headline", URL: "https://x"}}, m.err
}

func (m *mockService) History(_ context.Context, symbol string, limit int) ([]recorder.AnalysisRecord, error) {
	if _, err := model.ParseSymbol(symbol); err != nil {
		return nil, err
	}
	m.gotLim = limit
	return m.history, nil
}

func (m *mockService) ScoreArticles(articles []model.Article) model.SentimentResult {
	return sentiment.Score(articles)
}

func (m *mockService) Recommend(s, c float64) model.Recommendation { return strategy.Recommend(s, c) }

func (m *mockService) Threshold() float64 { return sentiment.DefaultThreshold }

func newTestServer(t *testing.T, svc analysisService) *Server {
	t.Helper()
	wl, err := watchlist.NewManager("", []string{"AAPL", "TSLA"})
	require.NoError(t, err)
	return NewServer(svc, wl, metrics.NewRegistry())
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleAnalysis(t *testing.T) {
	srv := newTestServer(t, &mockService{})

	rec := do(t, srv, http.MethodGet, "/api/stocks/aapl/analysis", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "AAPL", body["symbol"])
	assert.Contains(t, body, "stockData")
	assert.Contains(t, body, "newsData")
	assert.Equal(t, map[string]any{"action": "STRONG BUY", "confidence": "High"}, body["recommendation"])
}

func TestHandleAnalysis_Errors(t *testing.T) {
	srv := newTestServer(t, &mockService{})
	rec := do(t, srv, http.MethodGet, "/api/stocks/bad$sym/analysis", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid symbol")

	srv = newTestServer(t, &mockService{err: errors.New("yahoo: status 503")})
	rec = do(t, srv, http.MethodGet, "/api/stocks/AAPL/analysis", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"yahoo: status 503"}`, rec.Body.String())
}

func TestHandleQuoteAndNews(t *testing.T) {
	srv := newTestServer(t, &mockService{})

	rec := do(t, srv, http.MethodGet, "/api/stocks/msft/quote", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"symbol":"MSFT"`)

	rec = do(t, srv, http.MethodGet, "/api/stocks/MSFT/news", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Headline"`)
}

func TestHandleHistory(t *testing.T) {
	svc := &mockService{history: []recorder.AnalysisRecord{{ID: "a1", Symbol: "AAPL"}}}
	srv := newTestServer(t, svc)

	rec := do(t, srv, http.MethodGet, "/api/stocks/AAPL/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultHistoryLimit, svc.gotLim)
	assert.Contains(t, rec.Body.String(), `"id":"a1"`)

	rec = do(t, srv, http.MethodGet, "/api/stocks/AAPL/history?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, svc.gotLim)

	for _, q := range []string{"0", "101", "ten"} {
		rec = do(t, srv, http.MethodGet, "/api/stocks/AAPL/history?limit="+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestHandlePopularStocks(t *testing.T) {
	srv := newTestServer(t, &mockService{})
	rec := do(t, srv, http.MethodGet, "/api/stocks/popular", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stocks []model.PopularStock
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stocks))
	assert.Len(t, stocks, 5)
	assert.Equal(t, "Tesla Inc.", stocks[1].Name)
}

func TestHandleScoreSentiment(t *testing.T) {
	srv := newTestServer(t, &mockService{})

	rec := do(t, srv, http.MethodPost, "/api/sentiment",
		`{"articles":[{"title":"Shares crash on weak guidance","url":"https://x"},{"title":"Analysts issue downgrade","url":"https://y"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Score   float64 `json:"score"`
		Summary string  `json:"summary"`
		Action  string  `json:"action"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	// (-1.4 + -0.7) / 2
	assert.InDelta(t, -1.0, res.Score, 1e-9)
	assert.Equal(t, "Negative", res.Summary)
	assert.Equal(t, "SELL", res.Action)

	rec = do(t, srv, http.MethodPost, "/api/sentiment", `{"articles":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No sentiment data available")

	rec = do(t, srv, http.MethodPost, "/api/sentiment", `{"articles":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleScoreSentiment_MalformedArticleIsEmptyText(t *testing.T) {
	srv := newTestServer(t, &mockService{})

	rec := do(t, srv, http.MethodPost, "/api/sentiment",
		`{"articles":[{"title":"strong rally"},{"title":123},"not an article"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Score   float64 `json:"score"`
		Summary string  `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	// strong + rally, then two empty records
	assert.InDelta(t, 1.1/3, res.Score, 1e-9)
	assert.Equal(t, "Positive", res.Summary)
}

func TestHandleRecommendation(t *testing.T) {
	srv := newTestServer(t, &mockService{})

	tests := []struct {
		query string
		code  int
		want  string
	}{
		{"sentiment=0.35&change=3", http.StatusOK, `{"action":"STRONG BUY","confidence":"High"}`},
		{"sentiment=0&change=0", http.StatusOK, `{"action":"HOLD","confidence":"Medium"}`},
		{"sentiment=-0.35&change=-3", http.StatusOK, `{"action":"STRONG SELL","confidence":"High"}`},
		{"sentiment=abc&change=1", http.StatusBadRequest, `{"error":"sentiment must be a number"}`},
		{"sentiment=0.2", http.StatusBadRequest, `{"error":"change must be a number"}`},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, "/api/recommendation?"+tt.query, "")
			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestWatchlistRoutes(t *testing.T) {
	srv := newTestServer(t, &mockService{})

	rec := do(t, srv, http.MethodGet, "/api/watchlist", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"symbols":["AAPL","TSLA"]}`, rec.Body.String())

	rec = do(t, srv, http.MethodPost, "/api/watchlist", `{"symbol":"nvda"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"symbols":["AAPL","TSLA","NVDA"]}`, rec.Body.String())

	rec = do(t, srv, http.MethodPost, "/api/watchlist", `{"symbol":"NVDA"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/watchlist", `{"symbol":"no way"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodDelete, "/api/watchlist/tsla", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, srv, http.MethodDelete, "/api/watchlist/TSLA", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, &mockService{})

	rec := do(t, srv, http.MethodGet, "/health/live", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	do(t, srv, http.MethodGet, "/api/stocks/popular", "")
	rec = do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `canari_http_requests_total{method="GET",route="/api/stocks/popular",status_code="200"} 1`)
}

func TestAnalysisEndToEnd(t *testing.T) {
	now := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	price := collector.NewSeededMockPriceProvider(11)
	price.Now = func() time.Time { return now }
	news := collector.NewSeededMockNewsProvider(11)
	news.Now = func() time.Time { return now }

	reg := metrics.NewRegistry()
	am := metrics.NewAnalysis(reg)
	svc := analysis.NewService(collector.NewCollector(price, news, 10), sentiment.Default(), nil, am)

	wl, err := watchlist.NewManager("", nil)
	require.NoError(t, err)
	srv := NewServer(svc, wl, reg)

	rec := do(t, srv, http.MethodGet, "/api/stocks/GOOGL/analysis", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var a model.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	assert.Equal(t, "GOOGL", a.Symbol)
	require.NotNil(t, a.Quote)
	assert.Len(t, a.Quote.ChartData, 100)
	assert.NotEmpty(t, a.News)
	assert.GreaterOrEqual(t, a.Sentiment.Score, -1.0)
	assert.LessOrEqual(t, a.Sentiment.Score, 1.0)
	assert.Equal(t, strategy.Recommend(a.Sentiment.Score, a.Quote.ChangePercent), a.Recommendation)

	rec = do(t, srv, http.MethodGet, "/metrics", "")
	assert.Contains(t, rec.Body.String(), fmt.Sprintf(`canari_analysis_total{action=%q} 1`, a.Recommendation.Action))
}
