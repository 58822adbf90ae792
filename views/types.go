package views

import (
	"time"

	"github.com/safemama/site/content"
	"github.com/safemama/site/seo"
	"github.com/safemama/site/share"
)

// Site holds site-wide settings every page needs. Nothing is hardcoded in
// templates that can come from here.
type Site struct {
	Name          string
	URL           string // canonical base, no trailing slash
	Description   string
	AppStoreURL   string
	PlayStoreURL  string
	TwitterHandle string
}

// Page is the per-request data passed to every full-page component.
type Page struct {
	Site      Site
	Meta      seo.Meta
	JSONLD    []string // marshalled schema.org blocks
	Path      string
	CSRFToken string // only set on admin pages
}

// ArticleData is everything the article template shows around the body.
type ArticleData struct {
	Article content.Article
	Related []content.Article
	Series  []content.Article // other pages in the guide series, in order
	Copy    CopyData
}

// CopyData drives the copy-link button fragment.
type CopyData struct {
	State share.State
	Path  string
	// Reset is how long the Copied state is shown before the browser swaps
	// the idle button back in.
	Reset time.Duration
}
