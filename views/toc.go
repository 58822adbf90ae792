package views

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/safemama/site/content"
)

// TOC renders the in-page jump links of an article. share.js highlights the
// entry of the section in view.
func TOC(entries []content.TOCEntry) g.Node {
	if len(entries) == 0 {
		return nil
	}
	return h.Nav(h.Class("toc"), attr("aria-label", "Table of contents"),
		h.P(h.Class("toc-title"), g.Text("On this page")),
		h.Ol(g.Map(entries, func(e content.TOCEntry) g.Node {
			cls := "toc-item"
			if e.Completed {
				cls += " toc-completed"
			}
			return h.Li(h.Class(cls),
				h.A(h.Href("#"+e.AnchorID), h.Data("toc-link", ""), g.Text(e.Label)),
			)
		})),
	)
}
