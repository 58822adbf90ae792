package views

import (
	"context"
	"net/url"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/safemama/site/content"
	"github.com/safemama/site/markdown"
)

// Home is the landing page: app pitch, the guide series and the latest posts.
func Home(p Page, guides, posts []content.Article) templ.Component {
	if len(posts) > 3 {
		posts = posts[:3]
	}
	return component(func(context.Context) g.Node {
		return Layout(p,
			h.Section(h.Class("hero"),
				h.H1(g.Text("Is it safe while pregnant? Check in seconds.")),
				h.P(h.Class("lead"), g.Text(p.Site.Description)),
				AppBadges(p.Site),
			),
			h.Section(h.Class("guides"), attr("aria-labelledby", "guides-heading"),
				h.H2(h.ID("guides-heading"), g.Text("Pregnancy safety guides")),
				h.Div(h.Class("card-grid"), g.Map(guides, card)),
			),
			g.If(len(posts) > 0, h.Section(h.Class("latest"), attr("aria-labelledby", "latest-heading"),
				h.H2(h.ID("latest-heading"), g.Text("Latest from the blog")),
				h.Div(h.Class("card-grid"), g.Map(posts, card)),
				h.P(h.A(h.Href("/blog/"), g.Text("All articles →"))),
			)),
		)
	})
}

// Blog lists posts, optionally filtered to activeTag.
func Blog(p Page, posts []content.Article, activeTag string, tags []string) templ.Component {
	return component(func(context.Context) g.Node {
		return Layout(p,
			h.H1(g.Text("Blog")),
			g.If(len(tags) > 0, h.Nav(h.Class("tags"), attr("aria-label", "Filter by tag"),
				h.A(h.Class(TagClass(activeTag == "")), h.Href("/blog/"), g.Text("All")),
				g.Map(tags, func(t string) g.Node {
					return h.A(h.Class(TagClass(t == activeTag)), h.Href("/blog/?"+url.Values{"tag": {t}}.Encode()), g.Text(t))
				}),
			)),
			g.If(len(posts) == 0, h.P(h.Class("empty"), g.Text("No articles yet."))),
			h.Div(h.Class("card-grid"), g.Map(posts, card)),
		)
	})
}

// Guides lists the safety guide series in reading order.
func Guides(p Page, guides []content.Article) templ.Component {
	return component(func(context.Context) g.Node {
		return Layout(p,
			h.H1(g.Text("Pregnancy safety guides")),
			h.P(h.Class("lead"), g.Text("Five short guides covering the questions expecting mothers ask most.")),
			h.Ol(h.Class("series"), g.Map(guides, func(a content.Article) g.Node {
				return h.Li(card(a))
			})),
		)
	})
}

// Article renders a blog post, guide or comparison page.
func Article(p Page, d ArticleData) templ.Component {
	a := d.Article
	return component(func(ctx context.Context) g.Node {
		return Layout(p,
			breadcrumbs(a),
			h.Div(h.Class("article-layout"),
				h.Aside(h.Class("article-aside"), TOC(a.TOC)),
				el("article", h.Class("article"),
					h.Header(
						h.H1(g.Text(a.Title)),
						h.P(h.Class("article-meta"),
							g.If(!a.Date.IsZero(), el("time", attr("datetime", a.DateString()), g.Text(formatDate(a.Date)))),
							g.If(!a.Date.IsZero(), g.Text(" · ")),
							g.Text(readingTime(a)),
						),
						ShareBar(d.Copy),
					),
					h.Div(h.Class("prose"), embed(ctx, markdown.Markdown(a.Body))),
					seriesNav(a, d.Series),
					h.Aside(h.Class("app-cta"),
						h.H2(g.Text("Check any food or product instantly")),
						h.P(g.Text("Scan a barcode with "+p.Site.Name+" to see whether it is safe during pregnancy.")),
						AppBadges(p.Site),
					),
					ShareBar(d.Copy),
				),
			),
			g.If(len(d.Related) > 0, h.Section(h.Class("related"),
				h.H2(g.Text("Related articles")),
				h.Div(h.Class("card-grid"), g.Map(d.Related, card)),
			)),
		)
	})
}

func breadcrumbs(a content.Article) g.Node {
	section := map[content.Kind]string{
		content.KindBlog:    "Blog",
		content.KindGuide:   "Safety guides",
		content.KindCompare: "Compare",
	}[a.Kind]
	items := []g.Node{h.Li(h.A(h.Href("/"), g.Text("Home")))}
	if a.Kind != content.KindCompare {
		items = append(items, h.Li(h.A(h.Href("/"+a.Kind.Section()+"/"), g.Text(section))))
	}
	items = append(items, h.Li(attr("aria-current", "page"), g.Text(a.Title)))
	return h.Nav(h.Class("breadcrumbs"), attr("aria-label", "Breadcrumb"), h.Ol(items...))
}

// seriesNav links the previous and next guide of a series.
func seriesNav(a content.Article, series []content.Article) g.Node {
	idx := -1
	for i, s := range series {
		if s.Slug == a.Slug && s.Kind == a.Kind {
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}
	var prev, next g.Node
	if idx > 0 {
		prev = h.A(h.Class("series-prev"), h.Rel("prev"), h.Href(series[idx-1].Path()), g.Text("← "+series[idx-1].Title))
	}
	if idx < len(series)-1 {
		next = h.A(h.Class("series-next"), h.Rel("next"), h.Href(series[idx+1].Path()), g.Text(series[idx+1].Title+" →"))
	}
	return h.Nav(h.Class("series-nav"), attr("aria-label", "Guide series"), prev, next)
}

// NotFound is the 404 page.
func NotFound(p Page) templ.Component {
	return component(func(context.Context) g.Node {
		return Layout(p,
			h.H1(g.Text("Page not found")),
			h.P(g.Text("The page you are looking for does not exist or has moved.")),
			h.P(h.A(h.Href("/guides/"), g.Text("Browse the safety guides")), g.Text(" or "), h.A(h.Href("/blog/"), g.Text("read the blog")), g.Text(".")),
		)
	})
}

// ServerError is the 500 page.
func ServerError(p Page) templ.Component {
	return component(func(context.Context) g.Node {
		return Layout(p,
			h.H1(g.Text("Something went wrong")),
			h.P(g.Text("Please try again in a moment.")),
		)
	})
}
