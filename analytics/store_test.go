package analytics

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := InitSalt(s); err != nil {
		t.Fatalf("InitSalt: %v", err)
	}
	return s
}

func TestSettings(t *testing.T) {
	s := setupTestStore(t)

	if v, err := s.GetSetting("missing"); err != nil || v != "" {
		t.Fatalf("GetSetting(missing) = %q, %v", v, err)
	}
	if err := s.SetSetting("k", "one"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSetting("k", "two"); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.GetSetting("k"); v != "two" {
		t.Errorf("GetSetting(k) = %q, want two", v)
	}
	if v, _ := s.GetSetting("schema_version"); v != "1" {
		t.Errorf("schema_version = %q, want 1", v)
	}
}

func TestNewStoreRejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetSetting("schema_version", "99"); err != nil {
		t.Fatal(err)
	}
	s.Close()
	if _, err := NewStore(path); err == nil {
		t.Fatal("expected error opening a newer schema")
	}
}

func TestGetStats(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	visits := []Visit{
		{VisitorID: "a", Browser: "Chrome", OS: "Android", Device: "Mobile", Path: "/blog/foods-to-avoid-during-pregnancy/", Referrer: "Google"},
		{VisitorID: "a", Browser: "Chrome", OS: "Android", Device: "Mobile", Path: "/guides/food-safety/", Referrer: ""},
		{VisitorID: "b", Browser: "Safari", OS: "iOS", Device: "Mobile", Path: "/blog/foods-to-avoid-during-pregnancy/", Referrer: "Direct"},
	}
	for i := range visits {
		visits[i].SessionID = "s"
		visits[i].IPHash = "h"
		visits[i].Timestamp = now
		if err := s.SaveVisit(ctx, &visits[i]); err != nil {
			t.Fatalf("SaveVisit: %v", err)
		}
	}
	old := Visit{VisitorID: "c", SessionID: "s", IPHash: "h", Browser: "Firefox", OS: "Linux", Device: "Desktop", Path: "/", Timestamp: now.AddDate(0, 0, -40)}
	if err := s.SaveVisit(ctx, &old); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"twitter", "copy", "copy"} {
		if err := s.SaveShare(ctx, &ShareEvent{Platform: p, Path: "/blog/foods-to-avoid-during-pregnancy/", VisitorID: "a", Timestamp: now}); err != nil {
			t.Fatalf("SaveShare: %v", err)
		}
	}

	stats, err := s.GetStats(ctx, now.AddDate(0, 0, -7), now.Add(time.Hour), Daily)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalViews != 3 {
		t.Errorf("TotalViews = %d, want 3", stats.TotalViews)
	}
	if stats.UniqueVisitors != 2 {
		t.Errorf("UniqueVisitors = %d, want 2", stats.UniqueVisitors)
	}
	if stats.TotalShares != 3 {
		t.Errorf("TotalShares = %d, want 3", stats.TotalShares)
	}
	if len(stats.TopPages) == 0 || stats.TopPages[0].Path != "/blog/foods-to-avoid-during-pregnancy/" || stats.TopPages[0].Views != 2 {
		t.Errorf("TopPages = %+v", stats.TopPages)
	}
	if len(stats.ShareStats) != 2 || stats.ShareStats[0].Name != "copy" || stats.ShareStats[0].Count != 2 {
		t.Errorf("ShareStats = %+v", stats.ShareStats)
	}
	if len(stats.TopShared) != 1 || stats.TopShared[0].Views != 3 {
		t.Errorf("TopShared = %+v", stats.TopShared)
	}
	if len(stats.ReferrerStats) != 2 {
		t.Errorf("ReferrerStats should skip internal referrers: %+v", stats.ReferrerStats)
	}
	if len(stats.BrowserStats) != 2 || stats.BrowserStats[0].Name != "Chrome" {
		t.Errorf("BrowserStats = %+v", stats.BrowserStats)
	}
	if len(stats.DailyViews) != 1 || stats.DailyViews[0].Views != 3 || stats.DailyViews[0].Date != now.Format("2006-01-02") {
		t.Errorf("DailyViews = %+v", stats.DailyViews)
	}
	if len(stats.LatestPages) != 3 {
		t.Errorf("LatestPages = %d, want 3", len(stats.LatestPages))
	}

	rt, err := s.GetRealtimeVisitors(ctx)
	if err != nil || rt != 2 {
		t.Errorf("GetRealtimeVisitors = %d, %v", rt, err)
	}
}

func TestGetStatsEmpty(t *testing.T) {
	s := setupTestStore(t)
	now := time.Now()
	stats, err := s.GetStats(context.Background(), now.AddDate(0, 0, -1), now, Monthly)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TopPages == nil || stats.ShareStats == nil || stats.DailyViews == nil {
		t.Error("empty stats should use empty slices, not nil")
	}
}

func TestBotStatsAndCleanup(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, ts := range []time.Time{now, now, now.AddDate(0, 0, -100)} {
		if err := s.SaveBotVisit(ctx, &BotVisit{BotName: "Googlebot", IPHash: "h", UserAgent: "Googlebot/2.1", Path: "/", Timestamp: ts}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.SaveShare(ctx, &ShareEvent{Platform: "facebook", Path: "/", VisitorID: "v", Timestamp: now.AddDate(0, 0, -100)}); err != nil {
		t.Fatal(err)
	}

	bots, err := s.GetBotStats(ctx, now.AddDate(0, 0, -1), now.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if bots.TotalVisits != 2 || len(bots.TopBots) != 1 || bots.TopBots[0].Count != 2 {
		t.Errorf("bots = %+v", bots)
	}

	if err := s.CleanupOldVisits(ctx, 90); err != nil {
		t.Fatal(err)
	}
	all, err := s.GetBotStats(ctx, now.AddDate(-1, 0, 0), now.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if all.TotalVisits != 2 {
		t.Errorf("after cleanup TotalVisits = %d, want 2", all.TotalVisits)
	}
	n, err := s.count(ctx, `SELECT COUNT(*) FROM share_events`)
	if err != nil || n != 0 {
		t.Errorf("share events after cleanup = %d, %v", n, err)
	}
}

func TestCleanupSchedulerStop(t *testing.T) {
	s := setupTestStore(t)
	stop := s.StartCleanupScheduler(30, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	stop()
	stop()
}
