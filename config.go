package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/safemama/site/share"
)

// EnvPrefix prefixes environment overrides: SAFEMAMA_URL -> url.
const EnvPrefix = "SAFEMAMA_"

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name          string `koanf:"name"`           // Site name (default "SafeMama")
	URL           string `koanf:"url"`            // Canonical URL (default "http://localhost:3000")
	Description   string `koanf:"description"`    // Site description for RSS and meta tags
	Author        string `koanf:"author"`         // Publisher name for JSON-LD
	AppStoreURL   string `koanf:"app_store_url"`  // iOS badge link
	PlayStoreURL  string `koanf:"play_store_url"` // Android badge link
	TwitterHandle string `koanf:"twitter_handle"` // e.g. "@safemamaapp"

	Addr       string `koanf:"addr"`        // Listen address (default ":3000")
	ContentDir string `koanf:"content_dir"` // Optional on-disk pages; embedded pages when empty
	StaticDir  string `koanf:"static_dir"`  // User static assets served under /public (default "public")

	AnalyticsEnabled       bool   `koanf:"analytics_enabled"`
	AnalyticsDatabasePath  string `koanf:"analytics_db"`             // default "data/analytics.db"
	AnalyticsRetentionDays int    `koanf:"analytics_retention_days"` // default 365

	AdminPassword string `koanf:"admin_password"` // Required when analytics is enabled
	SessionSecret string `koanf:"session_secret"` // Required when analytics is enabled
	CookieSecure  bool   `koanf:"cookie_secure"`  // Set true for HTTPS

	ContentCacheTTL time.Duration `koanf:"content_cache_ttl"` // default 5m
	ShareResetDelay time.Duration `koanf:"share_reset_delay"` // Copied indicator duration (default 2s)
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() SiteConfig {
	var c SiteConfig
	c.AnalyticsEnabled = true
	c.setDefaults()
	return c
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "SafeMama"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimRight(c.URL, "/")
	if c.Description == "" {
		c.Description = "Check food and product safety during pregnancy in seconds."
	}
	if c.Author == "" {
		c.Author = c.Name
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.AnalyticsRetentionDays == 0 {
		c.AnalyticsRetentionDays = 365
	}
	if c.ContentCacheTTL == 0 {
		c.ContentCacheTTL = 5 * time.Minute
	}
	if c.ShareResetDelay <= 0 {
		c.ShareResetDelay = share.DefaultResetDelay
	}
}

// Validate reports configuration that cannot be served.
func (c *SiteConfig) Validate() error {
	var errs []error
	if !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		errs = append(errs, fmt.Errorf("url %q must be absolute (http or https)", c.URL))
	}
	if c.AnalyticsEnabled {
		if c.AdminPassword == "" {
			errs = append(errs, errors.New("admin_password is required when analytics is enabled"))
		}
		if c.SessionSecret == "" {
			errs = append(errs, errors.New("session_secret is required when analytics is enabled"))
		}
	}
	if c.AnalyticsRetentionDays < 0 {
		errs = append(errs, errors.New("analytics_retention_days must be non-negative"))
	}
	return errors.Join(errs...)
}

// LoadConfig reads configuration from the YAML file at path (skipped when it
// does not exist), then overlays SAFEMAMA_* environment variables.
func LoadConfig(path string) (SiteConfig, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return cfg, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return cfg, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithContent serves pages from fsys instead of the configured source.
func WithContent(fsys fs.FS) Option {
	return func(a *App) {
		a.contentFS = fsys
	}
}
