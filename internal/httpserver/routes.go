package httpserver

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"Canari/internal/metrics"
)

func (s *Server) registerRoutes() {
	s.echo.Use(requestLogger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE"},
	}))
	if m := s.httpMetrics(); m != nil {
		s.echo.Use(m.Middleware())
		s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler(s.registry)))
	}

	s.echo.GET("/health/live", s.handleLiveness)

	api := s.echo.Group("/api")
	api.GET("/stocks/popular", s.handlePopularStocks)
	api.GET("/stocks/:symbol/analysis", s.handleAnalysis)
	api.GET("/stocks/:symbol/quote", s.handleQuote)
	api.GET("/stocks/:symbol/news", s.handleNews)
	api.GET("/stocks/:symbol/history", s.handleHistory)
	api.POST("/sentiment", s.handleScoreSentiment)
	api.GET("/recommendation", s.handleRecommendation)
	api.GET("/watchlist", s.handleListWatchlist)
	api.POST("/watchlist", s.handleAddWatchlist)
	api.DELETE("/watchlist/:symbol", s.handleRemoveWatchlist)
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Printf("[WARN] %s %s %d %v: %v", v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			log.Printf("[INFO] %s %s %d %v", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	})
}
