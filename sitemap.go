package site

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/safemama/site/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc      string  `xml:"loc"`
	LastMod  string  `xml:"lastmod,omitempty"`
	Priority float64 `xml:"priority,omitempty"`
}

func lastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func (a *App) renderSitemap(c echo.Context, lib *content.Library) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base), Priority: 1.0},
		{Loc: BuildURL(base, "blog"), Priority: 0.8},
		{Loc: BuildURL(base, "guides"), Priority: 0.8},
	}
	for _, kind := range []content.Kind{content.KindGuide, content.KindCompare, content.KindBlog} {
		for _, p := range lib.List(kind) {
			urls = append(urls, sitemapURL{
				Loc:      BuildURL(base, p.Path()),
				LastMod:  lastMod(p.LastModified()),
				Priority: 0.6,
			})
		}
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
