package analytics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// timeLayout is how timestamps are stored: sortable text that SQLite's date
// functions understand.
const timeLayout = "2006-01-02 15:04:05"

func ts(t time.Time) string { return t.UTC().Format(timeLayout) }

// Store provides database operations for analytics.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the analytics database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL;", "PRAGMA busy_timeout=5000;"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			visitor_id TEXT NOT NULL,
			session_id TEXT NOT NULL,
			ip_hash TEXT NOT NULL,
			browser TEXT NOT NULL,
			os TEXT NOT NULL,
			device TEXT NOT NULL,
			path TEXT NOT NULL,
			referrer TEXT NOT NULL DEFAULT '',
			timestamp TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS bot_visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			bot_name TEXT NOT NULL,
			ip_hash TEXT NOT NULL,
			user_agent TEXT NOT NULL,
			path TEXT NOT NULL,
			timestamp TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS share_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			platform TEXT NOT NULL,
			path TEXT NOT NULL,
			visitor_id TEXT NOT NULL,
			timestamp TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
		CREATE INDEX IF NOT EXISTS idx_visits_visitor_id ON visits(visitor_id);
		CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);
		CREATE INDEX IF NOT EXISTS idx_bot_visits_timestamp ON bot_visits(timestamp);
		CREATE INDEX IF NOT EXISTS idx_share_events_timestamp ON share_events(timestamp);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// currentSchemaVersion is the latest schema version. Increment when adding migrations.
const currentSchemaVersion = 1

func (s *Store) migrate() error {
	verStr, err := s.GetSetting("schema_version")
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	version := 0
	if verStr != "" {
		version, err = strconv.Atoi(verStr)
		if err != nil {
			return fmt.Errorf("parse schema version %q: %w", verStr, err)
		}
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported %d", version, currentSchemaVersion)
	}
	return s.SetSetting("schema_version", strconv.Itoa(currentSchemaVersion))
}

// GetSetting retrieves a setting value by key. Returns empty string if not found.
func (s *Store) GetSetting(key string) (string, error) {
	var val string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return val, err
}

// SetSetting stores a setting value by key (upsert).
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (s *Store) SaveVisit(ctx context.Context, v *Visit) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO visits
		(visitor_id, session_id, ip_hash, browser, os, device, path, referrer, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.VisitorID, v.SessionID, v.IPHash, v.Browser, v.OS, v.Device, v.Path, v.Referrer, ts(v.Timestamp))
	return err
}

func (s *Store) SaveBotVisit(ctx context.Context, bv *BotVisit) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO bot_visits
		(bot_name, ip_hash, user_agent, path, timestamp) VALUES (?, ?, ?, ?, ?)`,
		bv.BotName, bv.IPHash, bv.UserAgent, bv.Path, ts(bv.Timestamp))
	return err
}

func (s *Store) SaveShare(ctx context.Context, e *ShareEvent) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO share_events
		(platform, path, visitor_id, timestamp) VALUES (?, ?, ?, ?)`,
		e.Platform, e.Path, e.VisitorID, ts(e.Timestamp))
	return err
}

func (s *Store) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func (s *Store) dimension(ctx context.Context, query string, args ...any) ([]DimensionStat, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []DimensionStat{}
	for rows.Next() {
		var d DimensionStat
		if err := rows.Scan(&d.Name, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) pages(ctx context.Context, query string, args ...any) ([]PageStat, error) {
	dims, err := s.dimension(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	out := make([]PageStat, len(dims))
	for i, d := range dims {
		out[i] = PageStat{Path: d.Name, Views: d.Count}
	}
	return out, nil
}

func (s *Store) series(ctx context.Context, bucket string, from, to string) ([]DailyView, error) {
	dims, err := s.dimension(ctx, `SELECT strftime('`+bucket+`', timestamp) AS d, COUNT(*)
		FROM visits WHERE timestamp >= ? AND timestamp < ? GROUP BY d ORDER BY d`, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]DailyView, len(dims))
	for i, d := range dims {
		out[i] = DailyView{Date: d.Name, Views: d.Count}
	}
	return out, nil
}

func (s *Store) latest(ctx context.Context, from, to string) ([]LatestPageVisit, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, timestamp, browser FROM visits
		WHERE timestamp >= ? AND timestamp < ? ORDER BY timestamp DESC, id DESC LIMIT 20`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LatestPageVisit{}
	for rows.Next() {
		var v LatestPageVisit
		if err := rows.Scan(&v.Path, &v.Timestamp, &v.Browser); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Granularity selects the bucket size of Stats.DailyViews.
type Granularity int

const (
	Daily Granularity = iota
	Hourly
	Monthly
)

func (g Granularity) bucket() string {
	switch g {
	case Hourly:
		return "%H:00"
	case Monthly:
		return "%Y-%m"
	default:
		return "%Y-%m-%d"
	}
}

// GetStats returns aggregated statistics for [from, to). The independent
// aggregate queries run concurrently.
func (s *Store) GetStats(ctx context.Context, from, to time.Time, g Granularity) (*Stats, error) {
	stats := &Stats{
		Period:        from.Format("2006-01-02") + " to " + to.Format("2006-01-02"),
		TopPages:      []PageStat{},
		LatestPages:   []LatestPageVisit{},
		BrowserStats:  []DimensionStat{},
		OSStats:       []DimensionStat{},
		DeviceStats:   []DimensionStat{},
		ReferrerStats: []DimensionStat{},
		ShareStats:    []DimensionStat{},
		TopShared:     []PageStat{},
		DailyViews:    []DailyView{},
	}
	f, t := ts(from), ts(to)

	var mu sync.Mutex
	var wg sync.WaitGroup
	var firstErr error

	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("%s: %w", name, err)
				}
				mu.Unlock()
			}
		}()
	}
	// set assigns under the lock; every query result is written through it.
	set := func(apply func()) {
		mu.Lock()
		apply()
		mu.Unlock()
	}
	dim := func(name, column, table, extra string, dst *[]DimensionStat) {
		run(name, func() error {
			rows, err := s.dimension(ctx, `SELECT `+column+`, COUNT(*) AS c FROM `+table+`
				WHERE timestamp >= ? AND timestamp < ? `+extra+`
				GROUP BY `+column+` ORDER BY c DESC, `+column+` LIMIT 10`, f, t)
			if err == nil {
				set(func() { *dst = rows })
			}
			return err
		})
	}

	run("count views", func() error {
		n, err := s.count(ctx, `SELECT COUNT(*) FROM visits WHERE timestamp >= ? AND timestamp < ?`, f, t)
		set(func() { stats.TotalViews = n })
		return err
	})
	run("count unique visitors", func() error {
		n, err := s.count(ctx, `SELECT COUNT(DISTINCT visitor_id) FROM visits WHERE timestamp >= ? AND timestamp < ?`, f, t)
		set(func() { stats.UniqueVisitors = n })
		return err
	})
	run("count shares", func() error {
		n, err := s.count(ctx, `SELECT COUNT(*) FROM share_events WHERE timestamp >= ? AND timestamp < ?`, f, t)
		set(func() { stats.TotalShares = n })
		return err
	})
	run("top pages", func() error {
		rows, err := s.pages(ctx, `SELECT path, COUNT(*) AS c FROM visits
			WHERE timestamp >= ? AND timestamp < ? GROUP BY path ORDER BY c DESC, path LIMIT 10`, f, t)
		if err == nil {
			set(func() { stats.TopPages = rows })
		}
		return err
	})
	run("top shared", func() error {
		rows, err := s.pages(ctx, `SELECT path, COUNT(*) AS c FROM share_events
			WHERE timestamp >= ? AND timestamp < ? GROUP BY path ORDER BY c DESC, path LIMIT 10`, f, t)
		if err == nil {
			set(func() { stats.TopShared = rows })
		}
		return err
	})
	run("latest pages", func() error {
		rows, err := s.latest(ctx, f, t)
		if err == nil {
			set(func() { stats.LatestPages = rows })
		}
		return err
	})
	run("views series", func() error {
		rows, err := s.series(ctx, g.bucket(), f, t)
		if err == nil {
			set(func() { stats.DailyViews = rows })
		}
		return err
	})
	dim("browser stats", "browser", "visits", "", &stats.BrowserStats)
	dim("os stats", "os", "visits", "", &stats.OSStats)
	dim("device stats", "device", "visits", "", &stats.DeviceStats)
	dim("referrer stats", "referrer", "visits", "AND referrer != ''", &stats.ReferrerStats)
	dim("share stats", "platform", "share_events", "", &stats.ShareStats)

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return stats, nil
}

// GetBotStats returns aggregated bot statistics for [from, to).
func (s *Store) GetBotStats(ctx context.Context, from, to time.Time) (*BotStats, error) {
	f, t := ts(from), ts(to)
	stats := &BotStats{Period: from.Format("2006-01-02") + " to " + to.Format("2006-01-02")}

	var err error
	if stats.TotalVisits, err = s.count(ctx, `SELECT COUNT(*) FROM bot_visits WHERE timestamp >= ? AND timestamp < ?`, f, t); err != nil {
		return nil, fmt.Errorf("count bot visits: %w", err)
	}
	if stats.TopBots, err = s.dimension(ctx, `SELECT bot_name, COUNT(*) AS c FROM bot_visits
		WHERE timestamp >= ? AND timestamp < ? GROUP BY bot_name ORDER BY c DESC, bot_name LIMIT 10`, f, t); err != nil {
		return nil, fmt.Errorf("top bots: %w", err)
	}
	if stats.TopPages, err = s.pages(ctx, `SELECT path, COUNT(*) AS c FROM bot_visits
		WHERE timestamp >= ? AND timestamp < ? GROUP BY path ORDER BY c DESC, path LIMIT 10`, f, t); err != nil {
		return nil, fmt.Errorf("top bot pages: %w", err)
	}
	return stats, nil
}

// GetRealtimeVisitors returns the number of unique visitors in the last 5 minutes.
func (s *Store) GetRealtimeVisitors(ctx context.Context) (int, error) {
	cutoff := ts(time.Now().Add(-5 * time.Minute))
	return s.count(ctx, `SELECT COUNT(DISTINCT visitor_id) FROM visits WHERE timestamp >= ?`, cutoff)
}

// CleanupOldVisits removes visits, bot visits and share events older than the
// retention period.
func (s *Store) CleanupOldVisits(ctx context.Context, retentionDays int) error {
	cutoff := ts(time.Now().AddDate(0, 0, -retentionDays))
	for _, table := range []string{"visits", "bot_visits", "share_events"} {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE timestamp < ?`, cutoff); err != nil {
			return fmt.Errorf("cleanup %s: %w", table, err)
		}
	}
	return nil
}

// StartCleanupScheduler runs periodic cleanup of old data. Returns a stop function.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := s.CleanupOldVisits(context.Background(), retentionDays); err != nil {
					log.Printf("analytics cleanup: %v", err)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { once.Do(func() { close(done) }) }
}
