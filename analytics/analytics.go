// Package analytics records privacy-first page views and share events
// server-side and aggregates them for the admin dashboard.
package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
)

// salt holds the per-installation random salt for IP hashing, protected by sync.Once.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads or generates a persistent salt for IP hashing.
// Must be called once at startup before any requests are served.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if s == "" {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				initErr = fmt.Errorf("generate salt: %w", err)
				return
			}
			s = hex.EncodeToString(b)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("store hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

func hash16(parts ...string) string {
	h := sha256.New()
	h.Write([]byte(salt.value + strings.Join(parts, "|")))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Visit is a single human page view.
type Visit struct {
	VisitorID string
	SessionID string
	IPHash    string
	Browser   string
	OS        string
	Device    string
	Path      string
	Referrer  string
	Timestamp time.Time
}

// BotVisit is a single crawler page view.
type BotVisit struct {
	BotName   string
	IPHash    string
	UserAgent string
	Path      string
	Timestamp time.Time
}

// ShareEvent is one use of a share button.
type ShareEvent struct {
	Platform  string
	Path      string
	VisitorID string
	Timestamp time.Time
}

// Stats holds aggregated analytics data.
type Stats struct {
	Period         string            `json:"period"`
	UniqueVisitors int               `json:"unique_visitors"`
	TotalViews     int               `json:"total_views"`
	TotalShares    int               `json:"total_shares"`
	TopPages       []PageStat        `json:"top_pages"`
	LatestPages    []LatestPageVisit `json:"latest_pages"`
	BrowserStats   []DimensionStat   `json:"browsers"`
	OSStats        []DimensionStat   `json:"os"`
	DeviceStats    []DimensionStat   `json:"devices"`
	ReferrerStats  []DimensionStat   `json:"referrers"`
	ShareStats     []DimensionStat   `json:"shares"`
	TopShared      []PageStat        `json:"top_shared"`
	DailyViews     []DailyView       `json:"daily_views"`
}

// BotStats holds aggregated bot analytics data.
type BotStats struct {
	Period      string          `json:"period"`
	TotalVisits int             `json:"total_visits"`
	TopBots     []DimensionStat `json:"top_bots"`
	TopPages    []PageStat      `json:"top_pages"`
}

type PageStat struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

type LatestPageVisit struct {
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
	Browser   string `json:"browser"`
}

// DimensionStat is one row of a breakdown (browser, OS, platform, ...).
type DimensionStat struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DailyView struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// HashIP creates a salted SHA-256 hash of an IP address.
func HashIP(ip string) string {
	return hash16(ip)
}

// GenerateVisitorID creates a salted visitor ID from IP and User-Agent.
func GenerateVisitorID(ip, userAgent string) string {
	return hash16(ip, userAgent)
}

// GenerateSessionID derives a daily session ID from a visitor ID.
func GenerateSessionID(visitorID string, now time.Time) string {
	return hash16(visitorID, now.UTC().Format("2006-01-02"))
}

// ParseUserAgent extracts browser, OS, and device from User-Agent string.
func ParseUserAgent(ua string) (browser, os, device string) {
	ua = strings.ToLower(ua)

	// more specific patterns before generic ones
	switch {
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	case strings.Contains(ua, "opera") || strings.Contains(ua, "opr/"):
		browser = "Opera"
	case strings.Contains(ua, "edg"):
		browser = "Edge"
	case strings.Contains(ua, "samsungbrowser"):
		browser = "Samsung Internet"
	case strings.Contains(ua, "chrome") || strings.Contains(ua, "crios"):
		browser = "Chrome"
	case strings.Contains(ua, "safari"):
		browser = "Safari"
	default:
		browser = "Other"
	}

	// Android UAs contain "linux"
	switch {
	case strings.Contains(ua, "windows"):
		os = "Windows"
	case strings.Contains(ua, "android"):
		os = "Android"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		os = "iOS"
	case strings.Contains(ua, "macintosh") || strings.Contains(ua, "mac os"):
		os = "macOS"
	case strings.Contains(ua, "linux"):
		os = "Linux"
	default:
		os = "Other"
	}

	// iPad UAs contain "mobile"
	switch {
	case strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad"):
		device = "Tablet"
	case strings.Contains(ua, "mobile"):
		device = "Mobile"
	default:
		device = "Desktop"
	}

	return
}

// knownBots is ordered: the first matching pattern names the bot.
var knownBots = []struct{ pattern, name string }{
	{"googlebot", "Googlebot"},
	{"bingbot", "Bingbot"},
	{"yandex", "Yandex"},
	{"baidu", "Baidu"},
	{"duckduckbot", "DuckDuckBot"},
	{"facebookexternalhit", "Facebook"},
	{"twitterbot", "Twitterbot"},
	{"linkedinbot", "LinkedIn"},
	{"pinterestbot", "Pinterest"},
	{"ahrefsbot", "Ahrefs"},
	{"semrushbot", "SEMrush"},
	{"mj12bot", "Majestic"},
	{"dotbot", "Moz"},
	{"slurp", "Yahoo Slurp"},
	{"crawler", "Generic Crawler"},
	{"spider", "Generic Spider"},
}

// IsBot checks if the User-Agent is likely a bot/crawler.
func IsBot(ua string) bool {
	ua = strings.ToLower(ua)
	if ua == "" {
		return true
	}
	for _, p := range []string{"bot", "crawl", "spider", "slurp", "scrape", "facebookexternalhit", "curl/", "wget/"} {
		if strings.Contains(ua, p) {
			return true
		}
	}
	return false
}

// ExtractBotName extracts the bot name from User-Agent string.
func ExtractBotName(ua string) string {
	ua = strings.ToLower(ua)
	for _, b := range knownBots {
		if strings.Contains(ua, b.pattern) {
			return b.name
		}
	}
	if strings.Contains(ua, "bot") {
		return "Other Bot"
	}
	return "Unknown"
}

var referrerDomainRegex = regexp.MustCompile(`^https?://(?:www\.)?([^/:]+)`)

var shortLinks = map[string]string{
	"t.co":    "Twitter",
	"lnkd.in": "LinkedIn",
}

var searchAndSocial = []struct{ needle, name string }{
	{"google.", "Google"},
	{"bing.", "Bing"},
	{"duckduckgo.", "DuckDuckGo"},
	{"yahoo.", "Yahoo"},
	{"facebook.", "Facebook"},
	{"twitter.", "Twitter"},
	{"linkedin.", "LinkedIn"},
	{"pinterest.", "Pinterest"},
}

// CleanReferrer reduces a referrer URL to a source name. Referrers from
// siteHost count as internal navigation and return "".
func CleanReferrer(ref, siteHost string) string {
	if ref == "" {
		return "Direct"
	}
	matches := referrerDomainRegex.FindStringSubmatch(ref)
	if len(matches) < 2 {
		return "Other"
	}
	domain := strings.ToLower(matches[1])
	if siteHost != "" && domain == strings.TrimPrefix(strings.ToLower(siteHost), "www.") {
		return ""
	}
	if name, ok := shortLinks[domain]; ok {
		return name
	}
	for _, s := range searchAndSocial {
		if strings.Contains(domain, s.needle) {
			return s.name
		}
	}
	return domain
}
