package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"Canari/internal/watchlist"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

func (s *Server) handlePopularStocks(c echo.Context) error {
	return c.JSON(http.StatusOK, watchlist.PopularStocks())
}

func (s *Server) handleAnalysis(c echo.Context) error {
	a, err := s.svc.Analyze(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (s *Server) handleQuote(c echo.Context) error {
	q, err := s.svc.Quote(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

func (s *Server) handleNews(c echo.Context) error {
	news, err := s.svc.News(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, news)
}

func (s *Server) handleHistory(c echo.Context) error {
	limit := defaultHistoryLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxHistoryLimit {
			return badRequest(c, "limit must be an integer between 1 and 100")
		}
		limit = n
	}
	records, err := s.svc.History(c.Request().Context(), c.Param("symbol"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, records)
}
