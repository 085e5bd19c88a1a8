package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"Canari/internal/model"
)

type watchlistResponse struct {
	Symbols []string `json:"symbols"`
}

type addSymbolRequest struct {
	Symbol string `json:"symbol"`
}

func (s *Server) handleListWatchlist(c echo.Context) error {
	return c.JSON(http.StatusOK, watchlistResponse{Symbols: s.watchlist.List()})
}

func (s *Server) handleAddWatchlist(c echo.Context) error {
	var req addSymbolRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "body must be {\"symbol\": \"...\"}")
	}
	added, err := s.watchlist.Add(req.Symbol)
	if err != nil {
		if errors.Is(err, model.ErrInvalidSymbol) {
			return respondError(c, err)
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	return c.JSON(status, watchlistResponse{Symbols: s.watchlist.List()})
}

func (s *Server) handleRemoveWatchlist(c echo.Context) error {
	removed, err := s.watchlist.Remove(c.Param("symbol"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	if !removed {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "symbol not on watchlist"})
	}
	return c.NoContent(http.StatusNoContent)
}
