package scheduler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"Canari/internal/model"
	"Canari/internal/notifier"
	"Canari/internal/watchlist"
)

// Analyzer runs one analysis. Implemented by *analysis.Service.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.Analysis, error)
}

// Scheduler runs the periodic watchlist scan and serves chat commands.
type Scheduler struct {
	Cron         *cron.Cron
	Analyzer     Analyzer
	Watchlist    *watchlist.Manager
	Notifier     notifier.Notifier
	NotifyDigest bool
	Ctx          context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, an Analyzer, wl *watchlist.Manager, n notifier.Notifier, digest bool) *Scheduler {
	if n == nil {
		n = notifier.NoopNotifier{}
	}
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Analyzer:     an,
		Watchlist:    wl,
		Notifier:     n,
		NotifyDigest: digest,
		Ctx:          ctx,
	}
}

// RegisterAll registers the watchlist scan.
func (s *Scheduler) RegisterAll(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the watchlist scan immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	symbols := s.Watchlist.List()
	log.Printf("[INFO] scanning watchlist (%d symbols)", len(symbols))

	results := s.Scan(s.Ctx, symbols)
	for _, a := range results {
		if a.Recommendation.Action.IsStrong() {
			s.trySend(notifier.FormatAlert(a))
		}
	}
	if s.NotifyDigest {
		s.trySend(notifier.FormatDigest(results, time.Now()))
	}
}

// Scan analyzes symbols one after another and returns the successful results.
// Symbols run sequentially to stay inside free-tier provider limits.
func (s *Scheduler) Scan(ctx context.Context, symbols []string) []*model.Analysis {
	results := make([]*model.Analysis, 0, len(symbols))
	for _, sym := range symbols {
		if ctx.Err() != nil {
			break
		}
		a, err := s.Analyzer.Analyze(ctx, sym)
		if err != nil {
			log.Printf("[ERROR] scan %s: %v", sym, err)
			continue
		}
		results = append(results, a)
	}
	return results
}

const helpText = "Available commands:\n" +
	"• /analyze SYMBOL\n" +
	"• /watchlist\n" +
	"• /add SYMBOL\n" +
	"• /remove SYMBOL"

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	// Telegram appends @botname to commands in group chats.
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch name {
	case "/analyze":
		if arg == "" {
			return "Usage: /analyze SYMBOL"
		}
		a, err := s.Analyzer.Analyze(s.Ctx, arg)
		if err != nil {
			return commandError("analyze", err)
		}
		return notifier.FormatAnalysis(a)
	case "/watchlist":
		return notifier.FormatWatchlist(s.Watchlist.List())
	case "/add":
		if arg == "" {
			return "Usage: /add SYMBOL"
		}
		added, err := s.Watchlist.Add(arg)
		if err != nil {
			return commandError("add", err)
		}
		if !added {
			return fmt.Sprintf("%s is already on the watchlist", model.NormalizeSymbol(arg))
		}
		return fmt.Sprintf("✅ added %s\n\n%s", model.NormalizeSymbol(arg), notifier.FormatWatchlist(s.Watchlist.List()))
	case "/remove":
		if arg == "" {
			return "Usage: /remove SYMBOL"
		}
		removed, err := s.Watchlist.Remove(arg)
		if err != nil {
			return commandError("remove", err)
		}
		if !removed {
			return fmt.Sprintf("%s is not on the watchlist", model.NormalizeSymbol(arg))
		}
		return fmt.Sprintf("🗑 removed %s\n\n%s", model.NormalizeSymbol(arg), notifier.FormatWatchlist(s.Watchlist.List()))
	default:
		return helpText
	}
}

func commandError(cmd string, err error) string {
	if errors.Is(err, model.ErrInvalidSymbol) {
		return "❌ invalid symbol"
	}
	log.Printf("[ERROR] command %s: %v", cmd, err)
	return fmt.Sprintf("❌ %s failed: %s", cmd, html.EscapeString(err.Error()))
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
