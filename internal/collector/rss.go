package collector

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"Canari/internal/model"
)

// RSSNewsProvider implements NewsProvider on top of the Google News RSS search feed.
type RSSNewsProvider struct {
	BaseURL string
	parser  *gofeed.Parser
}

// NewRSSNewsProvider creates a provider that needs no API key.
func NewRSSNewsProvider(proxyURL string) *RSSNewsProvider {
	parser := gofeed.NewParser()
	parser.Client = newHTTPClient(proxyURL)
	return &RSSNewsProvider{
		BaseURL: "https://news.google.com",
		parser:  parser,
	}
}

func (p *RSSNewsProvider) Name() string { return "rss" }

func (p *RSSNewsProvider) FetchNews(ctx context.Context, symbol string, limit int) ([]model.Article, error) {
	q := url.Values{}
	q.Set("q", symbol+" stock")
	q.Set("hl", "en-US")
	q.Set("gl", "US")
	q.Set("ceid", "US:en")

	feed, err := p.parser.ParseURLWithContext(p.BaseURL+"/rss/search?"+q.Encode(), ctx)
	if err != nil {
		return nil, fmt.Errorf("rss fetch: %w", err)
	}

	articles := make([]model.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" || item.Title == "" {
			continue
		}
		title, source := splitPublisher(item.Title)
		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		}
		articles = append(articles, model.Article{
			Title:       title,
			Description: stripHTML(item.Description),
			URL:         item.Link,
			PublishedAt: published,
			Source:      source,
		})
	}

	sort.SliceStable(articles, func(i, j int) bool { return articles[i].PublishedAt.After(articles[j].PublishedAt) })
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

// splitPublisher splits Google News titles of the form "Headline - Publisher".
func splitPublisher(title string) (headline, publisher string) {
	if idx := strings.LastIndex(title, " - "); idx > 0 {
		return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
	}
	return title, ""
}

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// stripHTML removes tags, unescapes entities and collapses whitespace.
func stripHTML(s string) string {
	s = htmlTagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}
