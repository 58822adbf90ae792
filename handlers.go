package site

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/safemama/site/content"
	"github.com/safemama/site/seo"
	"github.com/safemama/site/share"
	"github.com/safemama/site/views"
)

func (a *App) handleHome(c echo.Context) error {
	lib, err := a.Cache.Library()
	if err != nil {
		return err
	}
	p := a.page(c, seo.Meta{Title: a.Config.Name + " | Pregnancy food and product safety"},
		seo.WebSite(a.Config.Name, BuildURL(a.Config.URL), a.Config.Description),
		seo.Organization(a.Config.Name, BuildURL(a.Config.URL), BuildURL(a.Config.URL, "favicon.svg")),
		seo.MobileApplication(a.Config.Name, a.Config.Description, a.Config.AppStoreURL, a.Config.PlayStoreURL),
	)
	return Render(c, a.Views.Home(p, lib.List(content.KindGuide), lib.List(content.KindBlog)))
}

func (a *App) handleBlog(c echo.Context) error {
	lib, err := a.Cache.Library()
	if err != nil {
		return err
	}
	tag := strings.ToLower(strings.TrimSpace(c.QueryParam("tag")))
	posts := lib.List(content.KindBlog)
	if tag != "" {
		filtered := posts[:0]
		for _, p := range posts {
			if p.HasTag(tag) {
				filtered = append(filtered, p)
			}
		}
		posts = filtered
	}
	meta := seo.Meta{
		Title:       "Blog | " + a.Config.Name,
		Description: "Evidence-based articles on what is safe to eat, drink and use during pregnancy.",
		Canonical:   BuildURL(a.Config.URL, "blog"),
	}
	return Render(c, a.Views.Blog(a.page(c, meta), posts, tag, lib.Tags()))
}

func (a *App) handleGuides(c echo.Context) error {
	lib, err := a.Cache.Library()
	if err != nil {
		return err
	}
	meta := seo.Meta{
		Title:       "Pregnancy safety guides | " + a.Config.Name,
		Description: "A five-part series on staying safe through pregnancy, from the first trimester to the workplace.",
	}
	return Render(c, a.Views.Guides(a.page(c, meta), lib.List(content.KindGuide)))
}

func (a *App) handleArticle(kind content.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		lib, err := a.Cache.Library()
		if err != nil {
			return err
		}
		art, err := lib.Get(kind, c.Param("slug"))
		if errors.Is(err, content.ErrNotFound) {
			return echo.ErrNotFound
		}
		if err != nil {
			return err
		}
		d := views.ArticleData{
			Article: art,
			Copy:    views.CopyData{State: share.Idle, Path: art.Path(), Reset: a.Config.ShareResetDelay},
		}
		if art.Series != "" {
			d.Series = lib.Series(art.Series)
		}
		if kind == content.KindBlog {
			d.Related = RelatedArticles(art, lib.List(content.KindBlog), 3)
		}
		return Render(c, a.Views.Article(a.articlePage(c, art), d))
	}
}

// articlePage builds the head metadata and structured data of an article.
func (a *App) articlePage(c echo.Context, art content.Article) views.Page {
	canonical := BuildURL(a.Config.URL, art.Path())
	image := a.ogImageURL(art)
	meta := seo.Meta{
		Title:       art.Title + " | " + a.Config.Name,
		Description: art.Description,
		Keywords:    art.Keywords,
		Canonical:   canonical,
		OG:          seo.OpenGraph{Title: art.Title, Description: art.Description, Image: image, Type: "article", URL: canonical},
		Twitter:     seo.Twitter{Image: image},
	}

	author := art.Author
	if author == "" {
		author = a.Config.Author
	}
	var modified string
	if lm := art.LastModified(); !lm.IsZero() {
		modified = lm.Format("2006-01-02")
	}
	article := seo.Article(seo.ArticleData{
		Headline:      art.Title,
		Description:   art.Description,
		URL:           canonical,
		ImageURL:      image,
		AuthorName:    author,
		PublisherName: a.Config.Name,
		DatePublished: art.DateString(),
		DateModified:  modified,
		Keywords:      art.Keywords,
	})

	crumbs := []seo.BreadcrumbItem{{Name: "Home", Item: BuildURL(a.Config.URL)}}
	switch art.Kind {
	case content.KindBlog:
		crumbs = append(crumbs, seo.BreadcrumbItem{Name: "Blog", Item: BuildURL(a.Config.URL, "blog")})
	case content.KindGuide:
		crumbs = append(crumbs, seo.BreadcrumbItem{Name: "Safety guides", Item: BuildURL(a.Config.URL, "guides")})
	}
	crumbs = append(crumbs, seo.BreadcrumbItem{Name: art.Title, Item: canonical})

	return a.page(c, meta, article, seo.BreadcrumbList(crumbs))
}

func (a *App) handleSitemap(c echo.Context) error {
	lib, err := a.Cache.Library()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, lib)
}

func (a *App) handleFeed(c echo.Context) error {
	lib, err := a.Cache.Library()
	if err != nil {
		return err
	}
	return a.renderRSS(c, lib.List(content.KindBlog))
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin/\n")
	b.WriteString("Disallow: /share/\n")
	b.WriteString("\nSitemap: " + a.Config.URL + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		p := a.page(c, seo.Meta{Title: "Page not found | " + a.Config.Name, NoIndex: true})
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(p))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		p := a.page(c, seo.Meta{Title: "Error | " + a.Config.Name, NoIndex: true})
		_ = RenderStatus(c, code, a.Views.ServerError(p))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
