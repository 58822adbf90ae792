// Package site is the SafeMama marketing site: blog articles, the pregnancy
// safety guide series and comparison pages, with share buttons, SEO metadata
// and privacy-friendly analytics.
//
// Templates are supplied through ViewFuncs so the HTTP layer never imports a
// concrete markup package; cmd/safemama wires in the views package.
package site

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/safemama/site/analytics"
	"github.com/safemama/site/content"
	"github.com/safemama/site/views"
)

// ViewFuncs holds the page components the handlers render.
type ViewFuncs struct {
	Home           func(p views.Page, guides, posts []content.Article) templ.Component
	Blog           func(p views.Page, posts []content.Article, activeTag string, tags []string) templ.Component
	Guides         func(p views.Page, guides []content.Article) templ.Component
	Article        func(p views.Page, d views.ArticleData) templ.Component
	CopyButton     func(d views.CopyData) templ.Component
	AdminLogin     func(p views.Page, showError bool) templ.Component
	AdminDashboard func(p views.Page, stats *analytics.StatsResponse) templ.Component
	NotFound       func(p views.Page) templ.Component
	ServerError    func(p views.Page) templ.Component
}

// DefaultViews returns the views package components.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:           views.Home,
		Blog:           views.Blog,
		Guides:         views.Guides,
		Article:        views.Article,
		CopyButton:     views.CopyButton,
		AdminLogin:     views.AdminLogin,
		AdminDashboard: views.AdminDashboard,
		NotFound:       views.NotFound,
		ServerError:    views.ServerError,
	}
}

// App wires together the content cache, analytics, handlers, middleware and
// views.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Cache  *ContentCache
	Views  ViewFuncs

	analyticsStore   *analytics.Store
	analyticsHandler *analytics.Handler
	stopCleanup      func()
	loginLimiter     *Limiter
	shareLimiter     *Limiter
	og               *ogCache
	customRoutes     []func(*App)
	contentFS        fs.FS
}

// New creates an App with the given configuration and views.
func New(cfg SiteConfig, v ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  v,
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup validates the configuration, opens the analytics store and registers
// middleware and routes. Start calls it; tests call it directly and drive
// a.Echo with httptest.
func (a *App) Setup() error {
	if err := a.Config.Validate(); err != nil {
		return fmt.Errorf("site: invalid config: %w", err)
	}

	if a.contentFS == nil {
		a.contentFS = content.Source(a.Config.ContentDir)
	}
	a.Cache = NewContentCache(a.contentFS, a.Config.ContentCacheTTL)
	if _, err := a.Cache.Library(); err != nil {
		return fmt.Errorf("site: load content: %w", err)
	}

	a.loginLimiter = NewLimiter(5, time.Minute)
	a.shareLimiter = NewLimiter(30, time.Minute)
	a.og = newOGCache()

	if a.Config.AnalyticsEnabled {
		store, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("site: init analytics: %w", err)
		}
		a.analyticsStore = store
		if err := analytics.InitSalt(store); err != nil {
			return fmt.Errorf("site: init analytics salt: %w", err)
		}
		a.analyticsHandler = analytics.NewHandler(store, a.Config.URL)
		if a.Config.AnalyticsRetentionDays > 0 {
			a.stopCleanup = store.StartCleanupScheduler(a.Config.AnalyticsRetentionDays, 24*time.Hour)
		}
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the app up and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/public/share.js", a.handleAsset("share.js"))
	e.GET("/public/site.css", a.handleAsset("site.css"))
	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleAsset("favicon.svg"))
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/og/default.jpg", a.handleOGDefault)
	e.GET("/og/:section/:file", a.handleOG)

	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:slug/", a.handleArticle(content.KindBlog))
	e.GET("/guides/", a.handleGuides)
	e.GET("/guides/:slug/", a.handleArticle(content.KindGuide))
	e.GET("/compare/:slug/", a.handleArticle(content.KindCompare))

	e.GET("/share/copy/", a.handleCopyFragment)
	e.POST("/share/copy/", a.handleCopy)
	e.GET("/share/:platform/", a.handleShare)

	if a.analyticsHandler != nil {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
		admin := e.Group("/admin", requireAdmin)
		a.analyticsHandler.RegisterRoutes(admin)
	}
}

// Close stops background work and closes the analytics store.
func (a *App) Close() error {
	if a.stopCleanup != nil {
		a.stopCleanup()
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.shareLimiter != nil {
		a.shareLimiter.Stop()
	}
	if a.analyticsStore != nil {
		return a.analyticsStore.Close()
	}
	return nil
}
