package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"Canari/internal/model"
	"Canari/internal/strategy"
)

type scoreRequest struct {
	Articles []json.RawMessage `json:"articles"`
}

// decodeArticles decodes each record on its own. A record that does not decode
// still counts toward the average as an article with empty text.
func decodeArticles(raw []json.RawMessage) []model.Article {
	articles := make([]model.Article, len(raw))
	for i, r := range raw {
		var a model.Article
		if err := json.Unmarshal(r, &a); err != nil {
			continue
		}
		articles[i] = a
	}
	return articles
}

type scoreResponse struct {
	model.SentimentResult
	Action model.Action `json:"action"`
}

func (s *Server) handleScoreSentiment(c echo.Context) error {
	var req scoreRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "body must be {\"articles\": [...]}")
	}
	result := s.svc.ScoreArticles(decodeArticles(req.Articles))
	return c.JSON(http.StatusOK, scoreResponse{
		SentimentResult: result,
		Action:          strategy.SentimentAction(result.Score, s.svc.Threshold()),
	})
}

func (s *Server) handleRecommendation(c echo.Context) error {
	score, err := strconv.ParseFloat(c.QueryParam("sentiment"), 64)
	if err != nil {
		return badRequest(c, "sentiment must be a number")
	}
	change, err := strconv.ParseFloat(c.QueryParam("change"), 64)
	if err != nil {
		return badRequest(c, "change must be a number")
	}
	return c.JSON(http.StatusOK, s.svc.Recommend(score, change))
}
