package analytics

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler records page views and serves analytics statistics.
type Handler struct {
	store    *Store
	siteHost string
	now      func() time.Time
}

// NewHandler creates a Handler. siteURL is used to recognise internal referrers.
func NewHandler(store *Store, siteURL string) *Handler {
	host := ""
	if u, err := url.Parse(siteURL); err == nil {
		host = u.Hostname()
	}
	return &Handler{store: store, siteHost: host, now: time.Now}
}

// Input limits for recorded fields.
const (
	maxPathLen      = 2048
	maxReferrerLen  = 2048
	maxUserAgentLen = 512
)

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// tracked reports whether a response is a page view worth recording.
func tracked(c echo.Context) bool {
	req := c.Request()
	if req.Method != http.MethodGet || c.Response().Status != http.StatusOK {
		return false
	}
	if req.Header.Get("DNT") == "1" || req.Header.Get("Sec-GPC") == "1" {
		return false
	}
	// htmx fragment swaps are not page views
	if req.Header.Get("HX-Request") == "true" {
		return false
	}
	ct := c.Response().Header().Get(echo.HeaderContentType)
	return strings.HasPrefix(ct, echo.MIMETextHTML)
}

// Middleware records a visit for every successful HTML page view whose path is
// not rejected by skip.
func (h *Handler) Middleware(skip func(path string) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil || (skip != nil && skip(c.Request().URL.Path)) || !tracked(c) {
				return err
			}
			if rerr := h.Record(c.Request().Context(), c.RealIP(), c.Request().UserAgent(), c.Request().URL.Path, c.Request().Referer()); rerr != nil {
				c.Logger().Errorf("record visit: %v", rerr)
			}
			return nil
		}
	}
}

// Record stores one page view. Bots are stored separately.
func (h *Handler) Record(ctx context.Context, ip, userAgent, path, referrer string) error {
	userAgent = truncate(userAgent, maxUserAgentLen)
	path = truncate(path, maxPathLen)
	now := h.now().UTC()

	if IsBot(userAgent) {
		return h.store.SaveBotVisit(ctx, &BotVisit{
			BotName:   ExtractBotName(userAgent),
			IPHash:    HashIP(ip),
			UserAgent: userAgent,
			Path:      path,
			Timestamp: now,
		})
	}

	visitorID := GenerateVisitorID(ip, userAgent)
	browser, os, device := ParseUserAgent(userAgent)
	return h.store.SaveVisit(ctx, &Visit{
		VisitorID: visitorID,
		SessionID: GenerateSessionID(visitorID, now),
		IPHash:    HashIP(ip),
		Browser:   browser,
		OS:        os,
		Device:    device,
		Path:      path,
		Referrer:  CleanReferrer(truncate(referrer, maxReferrerLen), h.siteHost),
		Timestamp: now,
	})
}

// RecordShare stores a share button use. Requests with Do-Not-Track and bot
// user agents are ignored.
func (h *Handler) RecordShare(c echo.Context, platform, path string) {
	req := c.Request()
	if req.Header.Get("DNT") == "1" || IsBot(req.UserAgent()) {
		return
	}
	err := h.store.SaveShare(req.Context(), &ShareEvent{
		Platform:  platform,
		Path:      truncate(path, maxPathLen),
		VisitorID: GenerateVisitorID(c.RealIP(), truncate(req.UserAgent(), maxUserAgentLen)),
		Timestamp: h.now().UTC(),
	})
	if err != nil {
		c.Logger().Errorf("record share: %v", err)
	}
}

// Period is a parsed ?period= selection.
type Period struct {
	Name        string
	Days        int
	Granularity Granularity
}

// ParsePeriod maps today, week, month and year to a Period, defaulting to week.
func ParsePeriod(period string) Period {
	switch period {
	case "today":
		return Period{Name: period, Days: 1, Granularity: Hourly}
	case "month":
		return Period{Name: period, Days: 30, Granularity: Daily}
	case "year":
		return Period{Name: period, Days: 365, Granularity: Monthly}
	default:
		return Period{Name: "week", Days: 7, Granularity: Daily}
	}
}

// Range returns the [from, to) window of p ending at now.
func (p Period) Range(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	if p.Granularity == Hourly {
		return now.Truncate(time.Hour).Add(-23 * time.Hour), now.Add(time.Second)
	}
	from := now.AddDate(0, 0, -p.Days).Truncate(24 * time.Hour)
	to := now.Add(24 * time.Hour).Truncate(24 * time.Hour)
	return from, to
}

// StatsResponse is the JSON response for the stats endpoint.
type StatsResponse struct {
	Stats    *Stats    `json:"stats"`
	Bots     *BotStats `json:"bots"`
	Realtime int       `json:"realtime_visitors"`
	Period   string    `json:"period"`
	Days     int       `json:"period_days"`
}

// Summary loads everything the dashboard shows for period.
func (h *Handler) Summary(ctx context.Context, period string) (*StatsResponse, error) {
	p := ParsePeriod(period)
	from, to := p.Range(h.now())

	stats, err := h.store.GetStats(ctx, from, to, p.Granularity)
	if err != nil {
		return nil, err
	}
	if p.Granularity == Hourly {
		stats.DailyViews = fillHourlyData(stats.DailyViews, from)
	}
	bots, err := h.store.GetBotStats(ctx, from, to)
	if err != nil {
		return nil, err
	}
	realtime, err := h.store.GetRealtimeVisitors(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsResponse{Stats: stats, Bots: bots, Realtime: realtime, Period: p.Name, Days: p.Days}, nil
}

// GetStats returns analytics statistics as JSON.
func (h *Handler) GetStats(c echo.Context) error {
	resp, err := h.Summary(c.Request().Context(), c.QueryParam("period"))
	if err != nil {
		c.Logger().Errorf("Failed to get stats: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, resp)
}

// fillHourlyData ensures all 24 hourly slots are present, filling gaps with zero.
func fillHourlyData(sparse []DailyView, from time.Time) []DailyView {
	dataMap := make(map[string]int, len(sparse))
	for _, v := range sparse {
		dataMap[v.Date] = v.Views
	}
	result := make([]DailyView, 24)
	for i := 0; i < 24; i++ {
		label := fmt.Sprintf("%02d:00", from.Add(time.Duration(i)*time.Hour).Hour())
		result[i] = DailyView{Date: label, Views: dataMap[label]}
	}
	return result
}

// RegisterRoutes mounts the JSON API on an authenticated admin group.
func (h *Handler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/api/stats", h.GetStats)
}
