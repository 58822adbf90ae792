package views

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/safemama/site/content"
)

// component adapts a gomponents tree to templ.Component, the type handlers
// render. build receives the render context so nested templ components can
// be embedded with embed.
func component(build func(ctx context.Context) g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return build(ctx).Render(w)
	})
}

type templNode struct {
	ctx context.Context
	c   templ.Component
}

func (n templNode) Render(w io.Writer) error { return n.c.Render(n.ctx, w) }

// embed places a templ component inside a gomponents tree.
func embed(ctx context.Context, c templ.Component) g.Node {
	return templNode{ctx: ctx, c: c}
}

// el and attr cover elements and attributes without a dedicated helper.
func el(name string, children ...g.Node) g.Node { return g.El(name, children...) }

func attr(name string, value ...string) g.Node { return g.Attr(name, value...) }

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

func readingTime(a content.Article) string {
	return strconv.Itoa(a.ReadingMinutes) + " min read"
}

// shareHref is the server endpoint that records the share and redirects to
// the network.
func shareHref(platform, path string) string {
	return "/share/" + platform + "/?" + url.Values{"path": {path}}.Encode()
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	base := "tag"
	if active {
		base += " tag-active"
	}
	return base
}

func card(a content.Article) g.Node {
	return el("article", h.Class("card"),
		h.H3(h.A(h.Href(a.Path()), g.Text(a.Title))),
		h.P(g.Text(a.Description)),
		h.P(h.Class("card-meta"),
			g.If(!a.Date.IsZero(), el("time", attr("datetime", a.DateString()), g.Text(formatDate(a.Date)))),
			g.If(!a.Date.IsZero(), g.Text(" · ")),
			g.Text(readingTime(a)),
		),
	)
}
