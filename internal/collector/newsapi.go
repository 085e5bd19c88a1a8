package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"Canari/internal/model"
)

// NewsAPIProvider implements NewsProvider using newsapi.org.
type NewsAPIProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewNewsAPIProvider creates a NewsAPI provider.
func NewNewsAPIProvider(apiKey, proxyURL string) *NewsAPIProvider {
	return &NewsAPIProvider{
		BaseURL: "https://newsapi.org",
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (p *NewsAPIProvider) Name() string { return "newsapi" }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

func (p *NewsAPIProvider) FetchNews(ctx context.Context, symbol string, limit int) ([]model.Article, error) {
	q := url.Values{}
	q.Set("q", symbol)
	q.Set("language", "en")
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/v2/everything?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	var result newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("newsapi decode (status %d): %w", resp.StatusCode, err)
	}
	if result.Status != "ok" {
		return nil, fmt.Errorf("newsapi api error: %s: %s", result.Code, result.Message)
	}

	articles := make([]model.Article, 0, len(result.Articles))
	for _, a := range result.Articles {
		if a.Title == "" || a.URL == "" {
			continue
		}
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		articles = append(articles, model.Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			PublishedAt: published,
			Source:      a.Source.Name,
		})
	}
	return articles, nil
}
