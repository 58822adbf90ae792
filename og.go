package site

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/safemama/site/content"
)

// Social preview cards are drawn as text on a small canvas with the 7x13
// bitmap face, then scaled up to the 1200x630 size the networks expect.
const (
	ogWidth     = 1200
	ogHeight    = 630
	ogScale     = 5
	ogMargin    = 12
	ogLineChars = (ogWidth/ogScale - 2*ogMargin) / 7
	ogMaxLines  = 3
	jpegQuality = 85
)

var (
	ogBackground = color.RGBA{R: 0xe8, G: 0x58, B: 0x7a, A: 0xff}
	ogInk        = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ogMuted      = color.RGBA{R: 0xfd, G: 0xe8, B: 0xee, A: 0xff}
)

// ogCache keeps rendered cards keyed by path and title, so a retitled page
// gets a fresh card.
type ogCache struct {
	mu    sync.Mutex
	cards map[string][]byte
}

func newOGCache() *ogCache {
	return &ogCache{cards: make(map[string][]byte)}
}

func (o *ogCache) get(key string, render func() ([]byte, error)) ([]byte, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if b, ok := o.cards[key]; ok {
		return b, nil
	}
	b, err := render()
	if err != nil {
		return nil, err
	}
	o.cards[key] = b
	return b, nil
}

// RenderOGCard draws a social preview card with the site name, title and
// host, encoded as JPEG.
func RenderOGCard(siteName, title, host string) ([]byte, error) {
	small := image.NewRGBA(image.Rect(0, 0, ogWidth/ogScale, ogHeight/ogScale))
	draw.Draw(small, small.Bounds(), image.NewUniform(ogBackground), image.Point{}, draw.Src)

	text := func(s string, c color.Color, y int) {
		d := font.Drawer{
			Dst:  small,
			Src:  image.NewUniform(c),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(ogMargin, y),
		}
		d.DrawString(s)
	}

	text(siteName, ogMuted, 24)
	for i, line := range wrapText(title, ogLineChars, ogMaxLines) {
		text(line, ogInk, 58+i*16)
	}
	text(host, ogMuted, ogHeight/ogScale-ogMargin)

	dst := image.NewRGBA(image.Rect(0, 0, ogWidth, ogHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), small, small.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// wrapText splits s into at most maxLines lines of at most width runes,
// ending with "..." when the text does not fit.
func wrapText(s string, width, maxLines int) []string {
	var lines [][]rune
	var cur []rune
	for _, w := range strings.Fields(s) {
		word := []rune(w)
		if len(word) > width {
			word = word[:width]
		}
		switch {
		case len(cur) == 0:
			cur = word
		case len(cur)+1+len(word) <= width:
			cur = append(append(cur, ' '), word...)
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := lines[maxLines-1]
		if len(last)+3 > width {
			last = last[:width-3]
		}
		lines[maxLines-1] = append(last[:len(last):len(last)], '.', '.', '.')
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string(l)
	}
	return out
}

// ogImageURL is the absolute social preview image of an article: its own
// og_image when set, otherwise a generated card.
func (a *App) ogImageURL(art content.Article) string {
	if art.OGImage != "" {
		if strings.HasPrefix(art.OGImage, "http://") || strings.HasPrefix(art.OGImage, "https://") {
			return art.OGImage
		}
		return a.Config.URL + "/" + strings.TrimPrefix(art.OGImage, "/")
	}
	return a.Config.URL + "/og/" + art.Kind.Section() + "/" + art.Slug + ".jpg"
}

func (a *App) siteHost() string {
	host := strings.TrimPrefix(strings.TrimPrefix(a.Config.URL, "https://"), "http://")
	return strings.TrimPrefix(host, "www.")
}

func (a *App) handleOG(c echo.Context) error {
	file := c.Param("file")
	if !strings.HasSuffix(file, ".jpg") {
		return echo.ErrNotFound
	}
	lib, err := a.Cache.Library()
	if err != nil {
		return err
	}
	art, ok := lib.Find("/" + c.Param("section") + "/" + strings.TrimSuffix(file, ".jpg") + "/")
	if !ok {
		return echo.ErrNotFound
	}
	b, err := a.og.get(art.Path()+"\x00"+art.Title, func() ([]byte, error) {
		return RenderOGCard(a.Config.Name, art.Title, a.siteHost())
	})
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/jpeg", b)
}

func (a *App) handleOGDefault(c echo.Context) error {
	b, err := a.og.get("default", func() ([]byte, error) {
		return RenderOGCard(a.Config.Name, a.Config.Description, a.siteHost())
	})
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/jpeg", b)
}
