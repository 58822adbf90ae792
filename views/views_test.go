package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/safemama/site/analytics"
	"github.com/safemama/site/content"
	"github.com/safemama/site/seo"
	"github.com/safemama/site/share"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func testPage(path string) Page {
	return Page{
		Site: Site{
			Name:        "SafeMama",
			URL:         "https://safemama.com",
			Description: "Pregnancy safety in seconds.",
			AppStoreURL: "https://apps.apple.com/app/id123",
		},
		Meta: seo.Meta{
			Title:       "Foods to Avoid",
			Description: "What not to eat",
			Canonical:   "https://safemama.com" + path,
		},
		JSONLD: []string{seo.JSON(seo.WebSite("SafeMama", "https://safemama.com", ""))},
		Path:   path,
	}
}

func loadArticle(t *testing.T, kind content.Kind, slug string) (content.Article, *content.Library) {
	t.Helper()
	lib, err := content.Load(content.Embedded())
	require.NoError(t, err)
	a, err := lib.Get(kind, slug)
	require.NoError(t, err)
	return a, lib
}

func TestArticlePage(t *testing.T) {
	t.Parallel()

	a, _ := loadArticle(t, content.KindBlog, "foods-to-avoid-during-pregnancy")
	doc := render(t, Article(testPage(a.Path()), ArticleData{
		Article: a,
		Copy:    CopyData{State: share.Idle, Path: a.Path(), Reset: 2 * time.Second},
	}))

	require.Equal(t, "Foods to Avoid", doc.Find("title").Text())
	require.Equal(t, "https://safemama.com/blog/foods-to-avoid-during-pregnancy/", doc.Find("link[rel=canonical]").AttrOr("href", ""))
	require.Equal(t, "What not to eat", doc.Find("meta[property='og:description']").AttrOr("content", ""))
	require.Equal(t, 1, doc.Find("script[type='application/ld+json']").Length())

	toc := doc.Find("nav.toc a[data-toc-link]")
	require.Equal(t, len(a.TOC), toc.Length(), "every TOC entry should render")
	toc.Each(func(_ int, s *goquery.Selection) {
		id := strings.TrimPrefix(s.AttrOr("href", ""), "#")
		require.Equal(t, 1, doc.Find("[id='"+id+"']").Length(), "TOC anchor #%s should match a heading", id)
	})

	twitter := doc.Find("a.share-twitter").First()
	require.Equal(t, "/share/twitter/?path=%2Fblog%2Ffoods-to-avoid-during-pregnancy%2F", twitter.AttrOr("href", ""))
	require.Equal(t, "width=600,height=400", twitter.AttrOr("data-share-popup", ""))
	require.Equal(t, 3, doc.Find(".share-bar").First().Find("a.share-link").Length(), "three social links per bar")

	copyForm := doc.Find("form[data-copy-button]").First()
	require.Equal(t, "/share/copy/", copyForm.AttrOr("action", ""))
	require.Equal(t, "idle", copyForm.AttrOr("data-state", ""))
	_, hasReset := copyForm.Attr("data-reset-ms")
	require.False(t, hasReset, "idle button has no pending reset")

	require.Equal(t, 1, doc.Find("table").Length(), "markdown tables render")
	require.Contains(t, doc.Find("footer .disclaimer").Text(), "not a substitute")
	require.Equal(t, "https://apps.apple.com/app/id123", doc.Find("footer a.store-badge").AttrOr("href", ""))
	require.Equal(t, 0, doc.Find("meta[name=csrf-token]").Length(), "public pages carry no CSRF token")
}

func TestCopyButtonCopiedState(t *testing.T) {
	t.Parallel()

	doc := render(t, CopyButton(CopyData{State: share.Copied, Path: "/blog/x/", Reset: 2 * time.Second}))
	form := doc.Find("form[data-copy-button]")
	require.Equal(t, 1, form.Length())
	require.Equal(t, "copied", form.AttrOr("data-state", ""))
	require.Equal(t, "2000", form.AttrOr("data-reset-ms", ""))
	require.Equal(t, "/blog/x/", form.Find("input[name=path]").AttrOr("value", ""))
	require.Equal(t, "Link copied", strings.TrimSpace(form.Find("button span").Text()))
	require.Equal(t, 1, form.Find("svg path").Length())
}

func TestGuideSeriesNav(t *testing.T) {
	t.Parallel()

	a, lib := loadArticle(t, content.KindGuide, "food-safety")
	doc := render(t, Article(testPage(a.Path()), ArticleData{Article: a, Series: lib.Series("safety-guide"), Copy: CopyData{Path: a.Path()}}))

	require.Equal(t, "/guides/first-trimester/", doc.Find("a.series-prev").AttrOr("href", ""))
	require.Equal(t, "/guides/exercise-safety/", doc.Find("a.series-next").AttrOr("href", ""))
	require.Equal(t, "/guides/", doc.Find("nav.breadcrumbs li a").Eq(1).AttrOr("href", ""))
}

func TestHomeAndBlog(t *testing.T) {
	t.Parallel()

	lib, err := content.Load(content.Embedded())
	require.NoError(t, err)

	home := render(t, Home(testPage("/"), lib.Series("safety-guide"), lib.List(content.KindBlog)))
	require.Equal(t, 5, home.Find("section.guides article.card").Length())
	require.LessOrEqual(t, home.Find("section.latest article.card").Length(), 3)

	blog := render(t, Blog(testPage("/blog/"), lib.List(content.KindBlog), "food", lib.Tags()))
	require.Equal(t, "food", strings.TrimSpace(blog.Find("nav.tags a.tag-active").Text()))
	require.Equal(t, "page", blog.Find("header a[href='/blog/']").AttrOr("aria-current", ""))
}

func TestAdminViews(t *testing.T) {
	t.Parallel()

	p := testPage("/admin/")
	p.CSRFToken = "tok"

	login := render(t, AdminLogin(p, true))
	require.Equal(t, "/admin/login/", login.Find("form.login").AttrOr("action", ""))
	require.Equal(t, "tok", login.Find("form.login input[name=_csrf]").AttrOr("value", ""))
	require.Equal(t, 1, login.Find(".form-error").Length())
	require.Equal(t, "tok", login.Find("meta[name=csrf-token]").AttrOr("content", ""))

	resp := &analytics.StatsResponse{
		Stats: &analytics.Stats{
			TotalViews:  12,
			TotalShares: 3,
			ShareStats:  []analytics.DimensionStat{{Name: "copy", Count: 2}, {Name: "twitter", Count: 1}},
		},
		Bots:   &analytics.BotStats{},
		Period: "month",
	}
	dash := render(t, AdminDashboard(p, resp))
	require.Equal(t, "12", dash.Find(".stat-card .stat-value").First().Text())
	require.Equal(t, "30 days", dash.Find("nav.periods a.tag-active").Text())
	require.Equal(t, 2, dash.Find(".stat-table table tbody tr").Length())

	disabled := render(t, AdminDashboard(p, nil))
	require.Contains(t, disabled.Find("main").Text(), "Analytics is disabled.")
}

func TestErrorPages(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Page not found", render(t, NotFound(testPage("/x/"))).Find("h1").Text())
	require.Equal(t, "Something went wrong", render(t, ServerError(testPage("/x/"))).Find("h1").Text())
}
