// Package share turns a share click into a social-network popup or a
// clipboard copy, and tracks the short-lived "copied" feedback flag.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Platform identifies a share destination.
type Platform string

const (
	Facebook Platform = "facebook"
	Twitter  Platform = "twitter"
	LinkedIn Platform = "linkedin"
	Copy     Platform = "copy"
)

// Platforms lists every supported platform in display order.
var Platforms = []Platform{Facebook, Twitter, LinkedIn, Copy}

var (
	ErrUnknownPlatform = errors.New("share: unknown platform")
	ErrInvalidPageURL  = errors.New("share: page url must be absolute")
	ErrNotSocial       = errors.New("share: platform has no share url")
)

// ParsePlatform maps a platform tag to a Platform.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
	return p, nil
}

// Valid reports whether p is one of the supported platforms.
func (p Platform) Valid() bool {
	switch p {
	case Facebook, Twitter, LinkedIn, Copy:
		return true
	}
	return false
}

// Social reports whether p opens a third-party share popup.
func (p Platform) Social() bool {
	return p.Valid() && p != Copy
}

// Label is the human-readable platform name.
func (p Platform) Label() string {
	switch p {
	case Facebook:
		return "Facebook"
	case Twitter:
		return "Twitter"
	case LinkedIn:
		return "LinkedIn"
	case Copy:
		return "Copy link"
	}
	return string(p)
}

// Request is a single share action. It is built on click and consumed
// immediately.
type Request struct {
	Platform  Platform
	PageURL   string
	PageTitle string
}

// Validate checks the platform and that PageURL is an absolute http(s) URL.
func (r Request) Validate() error {
	if !r.Platform.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPlatform, r.Platform)
	}
	return validatePageURL(r.PageURL)
}

func validatePageURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPageURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidPageURL, raw)
	}
	return nil
}

// Target builds the popup destination for a social platform. Copy requests
// return ErrNotSocial.
func Target(r Request) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	u := encodeComponent(r.PageURL)
	switch r.Platform {
	case Facebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + u, nil
	case Twitter:
		return "https://twitter.com/intent/tweet?url=" + u + "&text=" + encodeComponent(r.PageTitle), nil
	case LinkedIn:
		return "https://www.linkedin.com/sharing/share-offsite/?url=" + u, nil
	}
	return "", ErrNotSocial
}

// WindowSize is the requested popup size in logical pixels.
type WindowSize struct {
	Width  int
	Height int
}

// PopupSize is the fixed size of every share popup.
var PopupSize = WindowSize{Width: 600, Height: 400}

// Features renders s as a window.open feature string.
func (s WindowSize) Features() string {
	return "width=" + strconv.Itoa(s.Width) + ",height=" + strconv.Itoa(s.Height)
}

const upperhex = "0123456789ABCDEF"

// encodeComponent percent-encodes s the way browsers encode a URI component,
// so generated links match what the share buttons produce client-side.
func encodeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
