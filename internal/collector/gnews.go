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

// GNewsProvider implements NewsProvider using gnews.io.
type GNewsProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewGNewsProvider creates a GNews provider.
func NewGNewsProvider(apiKey, proxyURL string) *GNewsProvider {
	return &GNewsProvider{
		BaseURL: "https://gnews.io",
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (p *GNewsProvider) Name() string { return "gnews" }

type gnewsResponse struct {
	TotalArticles int `json:"totalArticles"`
	Articles      []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
	Errors json.RawMessage `json:"errors"`
}

func (p *GNewsProvider) FetchNews(ctx context.Context, symbol string, limit int) ([]model.Article, error) {
	q := url.Values{}
	q.Set("q", symbol)
	q.Set("lang", "en")
	q.Set("sortby", "publishedAt")
	q.Set("max", strconv.Itoa(limit))
	q.Set("apikey", p.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/api/v4/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gnews fetch: %w", err)
	}
	defer resp.Body.Close()

	var result gnewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("gnews decode (status %d): %w", resp.StatusCode, err)
	}
	if len(result.Errors) > 0 && string(result.Errors) != "null" {
		return nil, fmt.Errorf("gnews api error: %s", string(result.Errors))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gnews: status %d", resp.StatusCode)
	}

	articles := make([]model.Article, 0, len(result.Articles))
	for _, a := range result.Articles {
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
