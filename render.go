package site

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/safemama/site/seo"
	"github.com/safemama/site/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

func (a *App) siteInfo() views.Site {
	return views.Site{
		Name:          a.Config.Name,
		URL:           a.Config.URL,
		Description:   a.Config.Description,
		AppStoreURL:   a.Config.AppStoreURL,
		PlayStoreURL:  a.Config.PlayStoreURL,
		TwitterHandle: a.Config.TwitterHandle,
	}
}

// page builds the common view data for the current request. Missing social
// fields are filled in from the site config.
func (a *App) page(c echo.Context, meta seo.Meta, jsonld ...map[string]any) views.Page {
	p := c.Request().URL.Path
	if meta.Canonical == "" {
		meta.Canonical = BuildURL(a.Config.URL, p)
	}
	if meta.Title == "" {
		meta.Title = a.Config.Name
	}
	if meta.Description == "" {
		meta.Description = a.Config.Description
	}
	meta.OG.SiteName = a.Config.Name
	if meta.OG.Image == "" {
		meta.OG.Image = BuildURL(a.Config.URL, "og", "default.jpg")
	}
	if meta.Twitter.Site == "" {
		meta.Twitter.Site = a.Config.TwitterHandle
	}
	blocks := make([]string, 0, len(jsonld))
	for _, j := range jsonld {
		blocks = append(blocks, seo.JSON(j))
	}
	return views.Page{Site: a.siteInfo(), Meta: meta, JSONLD: blocks, Path: p}
}
