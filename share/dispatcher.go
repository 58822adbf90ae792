package share

import (
	"context"
	"fmt"
	"time"
)

// Clipboard is a write-only clipboard capability supplied by the host.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Opener opens a popup window. Opening is fire-and-forget: hosts may refuse
// the popup and nothing is reported back.
type Opener interface {
	Open(target string, size WindowSize)
}

// Page is the page a dispatcher shares: its canonical absolute URL and title.
type Page struct {
	URL   string
	Title string
}

// Dispatcher executes share actions for one page instance and owns that
// page's copy feedback.
type Dispatcher struct {
	page      Page
	clipboard Clipboard
	opener    Opener
	feedback  *Feedback
}

type options struct {
	delay    time.Duration
	onChange func(State)
}

// Option configures a Dispatcher.
type Option func(*options)

// WithResetDelay overrides DefaultResetDelay.
func WithResetDelay(d time.Duration) Option {
	return func(o *options) { o.delay = d }
}

// WithOnChange registers a callback for feedback transitions.
func WithOnChange(fn func(State)) Option {
	return func(o *options) { o.onChange = fn }
}

// NewDispatcher creates a Dispatcher for page.
func NewDispatcher(page Page, clipboard Clipboard, opener Opener, opts ...Option) *Dispatcher {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Dispatcher{
		page:      page,
		clipboard: clipboard,
		opener:    opener,
		feedback:  NewFeedback(o.delay, o.onChange),
	}
}

// Page returns the page being shared.
func (d *Dispatcher) Page() Page {
	return d.page
}

// Share runs the action for platform. Social platforms open a popup sized
// PopupSize; Copy writes the page URL to the clipboard and sets the copied
// flag. A failed clipboard write leaves the state untouched.
func (d *Dispatcher) Share(ctx context.Context, platform Platform) error {
	req := Request{Platform: platform, PageURL: d.page.URL, PageTitle: d.page.Title}
	if err := req.Validate(); err != nil {
		return err
	}
	if platform.Social() {
		target, err := Target(req)
		if err != nil {
			return err
		}
		if d.opener != nil {
			d.opener.Open(target, PopupSize)
		}
		return nil
	}
	if d.clipboard == nil {
		return fmt.Errorf("share: no clipboard available")
	}
	if err := d.clipboard.WriteText(ctx, d.page.URL); err != nil {
		return fmt.Errorf("share: clipboard write: %w", err)
	}
	d.feedback.MarkCopied()
	return nil
}

// State returns the copy feedback state.
func (d *Dispatcher) State() State {
	return d.feedback.State()
}

// Copied reports whether the page URL was copied within the reset delay.
func (d *Dispatcher) Copied() bool {
	return d.feedback.Copied()
}

// ResetDelay returns how long the copied flag stays set.
func (d *Dispatcher) ResetDelay() time.Duration {
	return d.feedback.Delay()
}

// Close disposes the dispatcher's feedback timer.
func (d *Dispatcher) Close() {
	d.feedback.Close()
}
