package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"Canari/internal/metrics"
	"Canari/internal/model"
	"Canari/internal/recorder"
	"Canari/internal/watchlist"
)

type analysisService interface {
	Analyze(ctx context.Context, symbol string) (*model.Analysis, error)
	Quote(ctx context.Context, symbol string) (*model.StockQuote, error)
	News(ctx context.Context, symbol string) ([]model.Article, error)
	History(ctx context.Context, symbol string, limit int) ([]recorder.AnalysisRecord, error)
	ScoreArticles(articles []model.Article) model.SentimentResult
	Recommend(sentimentScore, priceChangePercent float64) model.Recommendation
	Threshold() float64
}

type Server struct {
	echo      *echo.Echo
	svc       analysisService
	watchlist *watchlist.Manager
	registry  *prometheus.Registry
	startTime time.Time
}

// NewServer wires routes for the dashboard API. reg may be nil to disable /metrics.
func NewServer(svc analysisService, wl *watchlist.Manager, reg *prometheus.Registry) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:      e,
		svc:       svc,
		watchlist: wl,
		registry:  reg,
		startTime: time.Now(),
	}
	srv.registerRoutes()
	return srv
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

func (s *Server) Start(addr string) error {
	log.Printf("[INFO] HTTP server listening on %s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

func (s *Server) httpMetrics() *metrics.HTTPMetrics {
	if s.registry == nil {
		return nil
	}
	return metrics.NewHTTPMetrics(s.registry)
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors to status codes: bad input is 400, anything
// else from the providers is 502.
func respondError(c echo.Context, err error) error {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, model.ErrInvalidSymbol):
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	default:
		log.Printf("[ERROR] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	return c.JSON(status, errorResponse{Error: err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}
