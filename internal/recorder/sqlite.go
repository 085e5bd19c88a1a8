package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"Canari/internal/model"
)

// SQLiteRecorder persists analyses and their scored articles to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so dashboard history reads don't block the scheduler's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id                TEXT PRIMARY KEY,
			symbol            TEXT NOT NULL,
			timestamp         INTEGER NOT NULL,
			price             REAL,
			change            REAL,
			change_percent    REAL,
			price_source      TEXT,
			sentiment_score   REAL,
			sentiment_summary TEXT,
			action            TEXT,
			confidence        TEXT,
			sentiment_action  TEXT,
			article_count     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_symbol_ts ON analyses(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS analysis_articles (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id  TEXT NOT NULL REFERENCES analyses(id) ON DELETE CASCADE,
			title        TEXT,
			url          TEXT,
			source       TEXT,
			published_at INTEGER,
			sentiment    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_analysis ON analysis_articles(analysis_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(ctx context.Context, a *model.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var price, change, pct float64
	var source string
	if q := a.Quote; q != nil {
		price, change, pct, source = q.CurrentPrice, q.Change, q.ChangePercent, q.Source
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO analyses
		(id, symbol, timestamp, price, change, change_percent, price_source,
		 sentiment_score, sentiment_summary, action, confidence, sentiment_action, article_count)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		a.ID, a.Symbol, a.LastUpdated.Unix(), price, change, pct, source,
		a.Sentiment.Score, string(a.Sentiment.Summary),
		string(a.Recommendation.Action), string(a.Recommendation.Confidence),
		string(a.SentimentAction), len(a.News),
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	for _, art := range a.News {
		var sentiment sql.NullFloat64
		if art.Sentiment != nil {
			sentiment = sql.NullFloat64{Float64: *art.Sentiment, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO analysis_articles
			(analysis_id, title, url, source, published_at, sentiment)
			VALUES (?,?,?,?,?,?)`,
			a.ID, art.Title, art.URL, art.Source, art.PublishedAt.Unix(), sentiment,
		)
		if err != nil {
			return fmt.Errorf("insert article: %w", err)
		}
	}
	return tx.Commit()
}

// RecentAnalyses returns up to limit analyses for symbol, newest first.
// An empty symbol returns analyses of every symbol.
func (r *SQLiteRecorder) RecentAnalyses(ctx context.Context, symbol string, limit int) ([]AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, symbol, timestamp, price, change_percent, price_source,
		sentiment_score, sentiment_summary, action, confidence, article_count
		FROM analyses WHERE (? = '' OR symbol = ?)
		ORDER BY timestamp DESC, rowid DESC LIMIT ?`, symbol, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	records := []AnalysisRecord{}
	for rows.Next() {
		var (
			rec                         AnalysisRecord
			ts                          int64
			summary, action, confidence string
		)
		if err := rows.Scan(&rec.ID, &rec.Symbol, &ts, &rec.Price, &rec.ChangePercent, &rec.PriceSource,
			&rec.Sentiment.Score, &summary, &action, &confidence, &rec.ArticleCount); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		rec.Timestamp = time.Unix(ts, 0)
		rec.Sentiment.Summary = model.Summary(summary)
		rec.Recommendation = model.Recommendation{Action: model.Action(action), Confidence: model.Confidence(confidence)}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
