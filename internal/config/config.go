package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"Canari/internal/watchlist"
)

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "configs/config.yaml"

var (
	priceProviders = []string{"mock", "yahoo", "alphavantage", "alpaca"}
	newsProviders  = []string{"mock", "newsapi", "gnews", "rss", "alpaca"}
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	Providers struct {
		Price     string `yaml:"price"`
		News      string `yaml:"news"`
		NewsLimit int    `yaml:"news_limit"`
	} `yaml:"providers"`
	AlphaVantage struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"alphavantage"`
	NewsAPI struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"newsapi"`
	GNews struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"gnews"`
	Alpaca struct {
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
		DataURL   string `yaml:"data_url"`
	} `yaml:"alpaca"`
	Sentiment struct {
		Threshold float64 `yaml:"threshold"`
	} `yaml:"sentiment"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		ScanCron     string `yaml:"scan_cron"`
		NotifyDigest bool   `yaml:"notify_digest"`
	} `yaml:"schedule"`
	Watchlist struct {
		StateFile string   `yaml:"state_file"`
		Symbols   []string `yaml:"symbols"`
	} `yaml:"watchlist"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Path returns the config file location, honoring CONFIG_PATH.
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	overrides := []struct {
		env string
		dst *string
	}{
		{"ALPHAVANTAGE_API_KEY", &cfg.AlphaVantage.APIKey},
		{"NEWSAPI_API_KEY", &cfg.NewsAPI.APIKey},
		{"GNEWS_API_KEY", &cfg.GNews.APIKey},
		{"ALPACA_API_KEY", &cfg.Alpaca.APIKey},
		{"ALPACA_API_SECRET", &cfg.Alpaca.APISecret},
		{"TELEGRAM_BOT_TOKEN", &cfg.Telegram.BotToken},
		{"TELEGRAM_CHAT_ID", &cfg.Telegram.ChatID},
		{"HTTPS_PROXY", &cfg.Proxy},
		{"PRICE_PROVIDER", &cfg.Providers.Price},
		{"NEWS_PROVIDER", &cfg.Providers.News},
		{"LISTEN_ADDR", &cfg.Server.ListenAddr},
		{"SQLITE_PATH", &cfg.Database.SQLitePath},
		{"CRON_SCAN", &cfg.Schedule.ScanCron},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
	if v := os.Getenv("SENTIMENT_THRESHOLD"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("SENTIMENT_THRESHOLD: %w", err)
		}
		cfg.Sentiment.Threshold = t
	}

	// Defaults
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Providers.Price == "" {
		cfg.Providers.Price = "yahoo"
	}
	if cfg.Providers.News == "" {
		cfg.Providers.News = "rss"
	}
	if cfg.Providers.NewsLimit == 0 {
		cfg.Providers.NewsLimit = 20
	}
	if cfg.Sentiment.Threshold == 0 {
		cfg.Sentiment.Threshold = 0.2
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 */30 14-21 * * 1-5"
	}
	if cfg.Watchlist.StateFile == "" {
		cfg.Watchlist.StateFile = "data/watchlist.json"
	}
	if len(cfg.Watchlist.Symbols) == 0 {
		cfg.Watchlist.Symbols = watchlist.DefaultSymbols()
	}

	return cfg, nil
}

// TelegramEnabled reports whether alerts and chat commands are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != ""
}

// Validate checks provider selection, credentials and numeric ranges.
func (c *Config) Validate() error {
	if !contains(priceProviders, c.Providers.Price) {
		return fmt.Errorf("providers.price: unknown provider %q (want one of %v)", c.Providers.Price, priceProviders)
	}
	if !contains(newsProviders, c.Providers.News) {
		return fmt.Errorf("providers.news: unknown provider %q (want one of %v)", c.Providers.News, newsProviders)
	}

	switch c.Providers.Price {
	case "alphavantage":
		if c.AlphaVantage.APIKey == "" {
			return fmt.Errorf("alphavantage.api_key is required for the alphavantage price provider")
		}
	case "alpaca":
		if err := c.requireAlpaca(); err != nil {
			return err
		}
	}
	switch c.Providers.News {
	case "newsapi":
		if c.NewsAPI.APIKey == "" {
			return fmt.Errorf("newsapi.api_key is required for the newsapi news provider")
		}
	case "gnews":
		if c.GNews.APIKey == "" {
			return fmt.Errorf("gnews.api_key is required for the gnews news provider")
		}
	case "alpaca":
		if err := c.requireAlpaca(); err != nil {
			return err
		}
	}

	if c.Sentiment.Threshold <= 0 || c.Sentiment.Threshold >= 1 {
		return fmt.Errorf("sentiment.threshold must be in (0, 1), got %v", c.Sentiment.Threshold)
	}
	if c.Providers.NewsLimit < 1 || c.Providers.NewsLimit > 100 {
		return fmt.Errorf("providers.news_limit must be between 1 and 100, got %d", c.Providers.NewsLimit)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

func (c *Config) requireAlpaca() error {
	if c.Alpaca.APIKey == "" || c.Alpaca.APISecret == "" {
		return fmt.Errorf("alpaca.api_key and alpaca.api_secret are required for alpaca providers")
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
