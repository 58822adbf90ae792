package views

import (
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/safemama/site/seo"
)

// Layout wraps body in the document shell: head metadata, JSON-LD, header
// and footer.
func Layout(p Page, body ...g.Node) g.Node {
	title := p.Meta.Title
	if title == "" {
		title = p.Site.Name
	}
	return h.Doctype(
		h.HTML(h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(title)),
				g.Map(p.Meta.Tags(), metaTag),
				g.If(p.Meta.Canonical != "", h.Link(h.Rel("canonical"), h.Href(p.Meta.Canonical))),
				g.If(p.CSRFToken != "", h.Meta(h.Name("csrf-token"), h.Content(p.CSRFToken))),
				h.Link(h.Rel("icon"), h.Type("image/svg+xml"), h.Href("/favicon.svg")),
				h.Link(h.Rel("alternate"), h.Type("application/rss+xml"), h.Title(p.Site.Name+" blog"), h.Href("/feed.xml")),
				h.Link(h.Rel("stylesheet"), h.Href("/public/site.css")),
				g.Map(p.JSONLD, func(block string) g.Node {
					return h.Script(h.Type("application/ld+json"), g.Raw(block))
				}),
				h.Script(h.Src("/public/share.js"), attr("defer")),
			),
			h.Body(
				Header(p),
				h.Main(h.ID("main"), g.Group(body)),
				Footer(p.Site),
			),
		),
	)
}

func metaTag(t seo.Tag) g.Node {
	if t.Property != "" {
		return h.Meta(attr("property", t.Property), h.Content(t.Content))
	}
	return h.Meta(h.Name(t.Name), h.Content(t.Content))
}

// Header is the top navigation bar.
func Header(p Page) g.Node {
	link := func(href, label string) g.Node {
		return h.A(h.Href(href), g.If(p.Path == href, attr("aria-current", "page")), g.Text(label))
	}
	return h.Header(h.Class("site-header"),
		h.Nav(attr("aria-label", "Main"),
			h.A(h.Class("brand"), h.Href("/"), g.Text(p.Site.Name)),
			link("/guides/", "Safety guides"),
			link("/blog/", "Blog"),
		),
	)
}

type footerSection struct {
	Title string
	Links [][2]string // href, label
}

// footerSections is the static link map of the site footer.
var footerSections = []footerSection{
	{"Safety guides", [][2]string{
		{"/guides/first-trimester/", "First trimester"},
		{"/guides/food-safety/", "Food safety"},
		{"/guides/exercise-safety/", "Exercise"},
		{"/guides/mental-health/", "Mental health"},
		{"/guides/workplace-safety/", "Workplace"},
	}},
	{"Learn", [][2]string{
		{"/blog/", "Blog"},
		{"/blog/foods-to-avoid-during-pregnancy/", "Foods to avoid"},
		{"/compare/safemama-vs-generic-food-apps/", "SafeMama vs other apps"},
		{"/feed.xml", "RSS feed"},
	}},
}

// Footer carries the link map, app-store badges and the medical disclaimer.
func Footer(s Site) g.Node {
	return h.Footer(h.Class("site-footer"),
		h.Div(h.Class("footer-grid"),
			h.Div(
				h.P(h.Class("brand"), g.Text(s.Name)),
				h.P(g.Text(s.Description)),
				AppBadges(s),
			),
			g.Map(footerSections, func(sec footerSection) g.Node {
				return h.Nav(attr("aria-label", sec.Title),
					h.H4(g.Text(sec.Title)),
					h.Ul(g.Map(sec.Links, func(l [2]string) g.Node {
						return h.Li(h.A(h.Href(l[0]), g.Text(l[1])))
					})),
				)
			}),
		),
		h.P(h.Class("disclaimer"),
			g.Text(s.Name+" provides general information only and is not a substitute for advice from your doctor, midwife or other qualified health professional."),
		),
		h.P(h.Class("copyright"), g.Text("© "+strconv.Itoa(time.Now().Year())+" "+s.Name)),
	)
}

// AppBadges links to the app store listings that are configured.
func AppBadges(s Site) g.Node {
	if s.AppStoreURL == "" && s.PlayStoreURL == "" {
		return nil
	}
	badge := func(href, label string) g.Node {
		if href == "" {
			return nil
		}
		return h.A(h.Class("store-badge"), h.Href(href), h.Rel("noopener"), h.Target("_blank"), g.Text(label))
	}
	return h.Div(h.Class("store-badges"),
		badge(s.AppStoreURL, "Download on the App Store"),
		badge(s.PlayStoreURL, "Get it on Google Play"),
	)
}
