package site

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/safemama/site/content"
	"github.com/safemama/site/share"
	"github.com/safemama/site/views"
)

// CopyEvent is the HX-Trigger event share.js listens for; its payload
// carries the text to put on the clipboard.
const CopyEvent = "safemama:copy"

// redirectOpener captures the popup target so the handler can redirect the
// browser to it. share.js opens the same link in a sized popup instead.
type redirectOpener struct {
	target string
}

func (o *redirectOpener) Open(target string, _ share.WindowSize) {
	o.target = target
}

// headerClipboard hands the copied text to the browser through an HX-Trigger
// response header. The browser performs the actual clipboard write.
type headerClipboard struct {
	res *echo.Response
}

func (h headerClipboard) WriteText(_ context.Context, text string) error {
	payload, err := json.Marshal(map[string]any{CopyEvent: map[string]string{"text": text}})
	if err != nil {
		return err
	}
	h.res.Header().Set("HX-Trigger", string(payload))
	return nil
}

// sharedArticle resolves the ?path= or form path of a share request to a
// published page.
func (a *App) sharedArticle(c echo.Context) (content.Article, error) {
	lib, err := a.Cache.Library()
	if err != nil {
		return content.Article{}, err
	}
	p := c.QueryParam("path")
	if p == "" {
		p = c.FormValue("path")
	}
	if u, err := url.Parse(p); err == nil {
		p = u.Path
	}
	art, ok := lib.Find(p)
	if !ok {
		return content.Article{}, echo.ErrNotFound
	}
	return art, nil
}

func (a *App) sharePage(art content.Article) share.Page {
	return share.Page{URL: BuildURL(a.Config.URL, art.Path()), Title: art.Title}
}

func (a *App) recordShare(c echo.Context, platform share.Platform, path string) {
	if a.analyticsHandler == nil || !a.shareLimiter.Allow(c.RealIP()) {
		return
	}
	a.analyticsHandler.RecordShare(c, string(platform), path)
}

// handleShare redirects to the social network's share dialog for a page.
func (a *App) handleShare(c echo.Context) error {
	platform, err := share.ParsePlatform(c.Param("platform"))
	if err != nil || !platform.Social() {
		return echo.ErrNotFound
	}
	art, err := a.sharedArticle(c)
	if err != nil {
		return err
	}

	opener := &redirectOpener{}
	d := share.NewDispatcher(a.sharePage(art), nil, opener)
	defer d.Close()
	if err := d.Share(c.Request().Context(), platform); err != nil {
		return err
	}
	a.recordShare(c, platform, art.Path())
	return c.Redirect(http.StatusFound, opener.target)
}

// handleCopy copies the canonical URL of a page and returns the copied
// button fragment. Plain form posts are sent back to the page.
func (a *App) handleCopy(c echo.Context) error {
	art, err := a.sharedArticle(c)
	if err != nil {
		return err
	}
	if c.Request().Header.Get("HX-Request") != "true" {
		return c.Redirect(http.StatusSeeOther, art.Path())
	}

	d := share.NewDispatcher(a.sharePage(art), headerClipboard{res: c.Response()}, nil,
		share.WithResetDelay(a.Config.ShareResetDelay))
	defer d.Close()
	if err := d.Share(c.Request().Context(), share.Copy); err != nil {
		return err
	}
	a.recordShare(c, share.Copy, art.Path())
	return Render(c, a.Views.CopyButton(views.CopyData{
		State: d.State(),
		Path:  art.Path(),
		Reset: d.ResetDelay(),
	}))
}

// handleCopyFragment returns the idle copy button, swapped in by share.js
// once the copied indicator expires.
func (a *App) handleCopyFragment(c echo.Context) error {
	art, err := a.sharedArticle(c)
	if err != nil {
		return err
	}
	return Render(c, a.Views.CopyButton(views.CopyData{
		State: share.Idle,
		Path:  art.Path(),
		Reset: a.Config.ShareResetDelay,
	}))
}
