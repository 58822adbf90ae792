package views

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/safemama/site/share"
)

// ShareBar renders the social share links and the copy button for path.
// Social links go through the server so the share is recorded; share.js
// opens them in a popup of share.PopupSize.
func ShareBar(d CopyData) g.Node {
	return h.Div(h.Class("share-bar"), attr("aria-label", "Share this page"),
		h.Span(h.Class("share-label"), g.Text("Share")),
		g.Map(share.Platforms, func(p share.Platform) g.Node {
			if !p.Social() {
				return nil
			}
			return h.A(
				h.Class("share-link share-"+string(p)),
				h.Href(shareHref(string(p), d.Path)),
				h.Rel("noopener nofollow"),
				h.Target("_blank"),
				h.Data("share-popup", share.PopupSize.Features()),
				attr("aria-label", "Share on "+p.Label()),
				g.Text(p.Label()),
			)
		}),
		copyButton(d),
	)
}

// CopyButton is the copy-link fragment returned by /share/copy/. In the copied
// state it carries the reset delay; share.js swaps the idle fragment back in
// once it elapses.
func CopyButton(d CopyData) templ.Component {
	return component(func(context.Context) g.Node { return copyButton(d) })
}

func copyButton(d CopyData) g.Node {
	copied := d.State == share.Copied
	label := share.Copy.Label()
	if copied {
		label = "Link copied"
	}
	return el("form",
		h.Class("copy-button"),
		attr("method", "post"),
		attr("action", "/share/copy/"),
		h.Data("copy-button", ""),
		h.Data("path", d.Path),
		h.Data("state", d.State.String()),
		g.If(copied, h.Data("reset-ms", strconv.FormatInt(d.Reset.Milliseconds(), 10))),
		h.Input(h.Type("hidden"), h.Name("path"), h.Value(d.Path)),
		h.Button(h.Type("submit"), attr("aria-live", "polite"),
			g.If(copied, icon(iconCheck)),
			g.If(!copied, icon(iconLink)),
			h.Span(g.Text(label)),
		),
	)
}

const (
	iconCheck = "M20 6 9 17l-5-5"
	iconLink  = "M10 13a5 5 0 0 0 7.54.54l3-3a5 5 0 0 0-7.07-7.07l-1.72 1.71M14 11a5 5 0 0 0-7.54-.54l-3 3a5 5 0 0 0 7.07 7.07l1.71-1.71"
)

func icon(d string) g.Node {
	return el("svg",
		attr("xmlns", "http://www.w3.org/2000/svg"),
		attr("viewBox", "0 0 24 24"),
		attr("width", "18"), attr("height", "18"),
		attr("fill", "none"), attr("stroke", "currentColor"), attr("stroke-width", "2"),
		attr("aria-hidden", "true"),
		el("path", attr("d", d)),
	)
}
