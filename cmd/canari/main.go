package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Canari/internal/analysis"
	"Canari/internal/collector"
	"Canari/internal/config"
	"Canari/internal/httpserver"
	"Canari/internal/metrics"
	"Canari/internal/notifier"
	"Canari/internal/recorder"
	"Canari/internal/scheduler"
	"Canari/internal/sentiment"
	"Canari/internal/watchlist"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] Canari starting...")

	// Load config
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	reg := metrics.NewRegistry()
	am := metrics.NewAnalysis(reg)

	// Init providers, each falling back to mock data on failure
	price := collector.NewFallbackPriceProvider(newPriceProvider(cfg), am)
	news := collector.NewFallbackNewsProvider(newNewsProvider(cfg), am)
	log.Printf("[INFO] price source: %s, news source: %s", price.Name(), news.Name())
	col := collector.NewCollector(price, news, cfg.Providers.NewsLimit)

	scorer, err := sentiment.NewScorer(sentiment.DefaultLexicon(), cfg.Sentiment.Threshold)
	if err != nil {
		log.Fatalf("[FATAL] init scorer: %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	svc := analysis.NewService(col, scorer, rec, am)

	wl, err := watchlist.NewManager(cfg.Watchlist.StateFile, cfg.Watchlist.Symbols)
	if err != nil {
		log.Fatalf("[FATAL] init watchlist: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Telegram notifier
	var n notifier.Notifier = notifier.NoopNotifier{}
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
	} else {
		log.Println("[INFO] Telegram not configured, alerts disabled")
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, svc, wl, n, cfg.Schedule.NotifyDigest)
	if err := sched.RegisterAll(cfg.Schedule.ScanCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, scanning watchlist now")
		go sched.RunScanNow()
	}

	srv := httpserver.NewServer(svc, wl, reg)
	go func() {
		if err := srv.Start(cfg.Server.ListenAddr); err != nil {
			log.Printf("[ERROR] http server: %v", err)
			cancel()
		}
	}()

	log.Println("[INFO] Canari is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] %v", err)
	}
	cancel()
	log.Println("[INFO] Canari stopped")
}

func newPriceProvider(cfg *config.Config) collector.PriceProvider {
	switch cfg.Providers.Price {
	case "yahoo":
		return collector.NewYahooPriceProvider(cfg.Proxy)
	case "alphavantage":
		return collector.NewAlphaVantagePriceProvider(cfg.AlphaVantage.APIKey, cfg.Proxy)
	case "alpaca":
		return collector.NewAlpacaPriceProvider(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.DataURL)
	default:
		return collector.NewMockPriceProvider()
	}
}

func newNewsProvider(cfg *config.Config) collector.NewsProvider {
	switch cfg.Providers.News {
	case "newsapi":
		return collector.NewNewsAPIProvider(cfg.NewsAPI.APIKey, cfg.Proxy)
	case "gnews":
		return collector.NewGNewsProvider(cfg.GNews.APIKey, cfg.Proxy)
	case "rss":
		return collector.NewRSSNewsProvider(cfg.Proxy)
	case "alpaca":
		return collector.NewAlpacaNewsProvider(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.DataURL)
	default:
		return collector.NewMockNewsProvider()
	}
}
