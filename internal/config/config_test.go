package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, "yahoo", cfg.Providers.Price)
	assert.Equal(t, "rss", cfg.Providers.News)
	assert.Equal(t, 20, cfg.Providers.NewsLimit)
	assert.Equal(t, 0.2, cfg.Sentiment.Threshold)
	assert.Equal(t, []string{"AAPL", "TSLA", "GOOGL", "MSFT", "AMZN"}, cfg.Watchlist.Symbols)
	assert.Empty(t, cfg.Database.SQLitePath)
	assert.False(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
providers:
  price: alphavantage
  news: newsapi
  news_limit: 10
alphavantage:
  api_key: from-file
sentiment:
  threshold: 0.05
watchlist:
  symbols: [NVDA]
`)
	t.Setenv("ALPHAVANTAGE_API_KEY", "from-env")
	t.Setenv("NEWSAPI_API_KEY", "news-key")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("LISTEN_ADDR", ":9090")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AlphaVantage.APIKey)
	assert.Equal(t, "news-key", cfg.NewsAPI.APIKey)
	assert.Equal(t, 10, cfg.Providers.NewsLimit)
	assert.Equal(t, 0.05, cfg.Sentiment.Threshold)
	assert.Equal(t, []string{"NVDA"}, cfg.Watchlist.Symbols)
	assert.Equal(t, "/tmp/x.db", cfg.Database.SQLitePath)
	assert.Equal(t, ":9090", cfg.Server.ListenAddr)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_BadThresholdEnv(t *testing.T) {
	t.Setenv("SENTIMENT_THRESHOLD", "high")
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "SENTIMENT_THRESHOLD")
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "providers: [unterminated"))
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	base := func(t *testing.T) *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"unknown price provider", func(c *Config) { c.Providers.Price = "bloomberg" }, "providers.price"},
		{"unknown news provider", func(c *Config) { c.Providers.News = "twitter" }, "providers.news"},
		{"alphavantage without key", func(c *Config) { c.Providers.Price = "alphavantage" }, "alphavantage.api_key"},
		{"newsapi without key", func(c *Config) { c.Providers.News = "newsapi" }, "newsapi.api_key"},
		{"gnews without key", func(c *Config) { c.Providers.News = "gnews" }, "gnews.api_key"},
		{"alpaca without secret", func(c *Config) {
			c.Providers.News = "alpaca"
			c.Alpaca.APIKey = "k"
		}, "alpaca.api_key"},
		{"threshold too high", func(c *Config) { c.Sentiment.Threshold = 1 }, "sentiment.threshold"},
		{"threshold negative", func(c *Config) { c.Sentiment.Threshold = -0.2 }, "sentiment.threshold"},
		{"news limit", func(c *Config) { c.Providers.NewsLimit = 500 }, "news_limit"},
		{"telegram half set", func(c *Config) { c.Telegram.BotToken = "t" }, "telegram"},
		{"mock providers", func(c *Config) {
			c.Providers.Price = "mock"
			c.Providers.News = "mock"
		}, ""},
		{"alpaca complete", func(c *Config) {
			c.Providers.Price = "alpaca"
			c.Alpaca.APIKey = "k"
			c.Alpaca.APISecret = "s"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, DefaultPath, Path())
	t.Setenv("CONFIG_PATH", "/etc/canari.yaml")
	assert.Equal(t, "/etc/canari.yaml", Path())
}
