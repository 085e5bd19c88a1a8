package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Canari/internal/model"
)

func TestAnalysisMetrics(t *testing.T) {
	reg := NewRegistry()
	m := NewAnalysis(reg)

	m.ObserveFetch("yahoo", "price", nil)
	m.ObserveFetch("yahoo", "price", errors.New("timeout"))
	m.ObserveFetch("yahoo", "price", errors.New("timeout"))
	m.ObserveFallback("price")
	m.ObserveAnalysis(&model.Analysis{
		Sentiment:      model.SentimentResult{Score: 0.4},
		Recommendation: model.Recommendation{Action: model.ActionStrongBuy},
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderFetches.WithLabelValues("yahoo", "price", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProviderFetches.WithLabelValues("yahoo", "price", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fallbacks.WithLabelValues("price")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Analyses.WithLabelValues("STRONG BUY")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SentimentScore))
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	reg := NewRegistry()
	m := NewHTTPMetrics(reg)

	var passedErrs []error
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				passedErrs = append(passedErrs, err)
			}
			return err
		}
	})
	e.Use(m.Middleware())
	e.GET("/api/stocks/:symbol/quote", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/api/fail", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad")
	})
	e.GET("/api/boom", func(c echo.Context) error {
		return errors.New("boom")
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", echo.WrapHandler(Handler(reg)))

	for _, path := range []string{"/api/stocks/AAPL/quote", "/api/stocks/TSLA/quote", "/api/fail", "/api/boom", "/health/live"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/stocks/:symbol/quote", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/fail", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/boom", "500")))
	assert.Len(t, passedErrs, 2, "handler errors reach outer middleware")
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlightGauge))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "canari_http_requests_total")
	assert.NotContains(t, rec.Body.String(), `route="/health/live"`)
}
