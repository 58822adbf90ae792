package share

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeClipboard struct {
	mu     sync.Mutex
	text   string
	writes int
	err    error
}

func (c *fakeClipboard) WriteText(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.text = text
	c.writes++
	return nil
}

type fakeOpener struct {
	target string
	size   WindowSize
	calls  int
}

func (o *fakeOpener) Open(target string, size WindowSize) {
	o.target = target
	o.size = size
	o.calls++
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) time.Duration {
	t.Helper()
	start := time.Now()
	for time.Since(start) < timeout {
		if cond() {
			return time.Since(start)
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s", timeout)
	return 0
}

func TestDispatcherOpensPopup(t *testing.T) {
	opener := &fakeOpener{}
	clip := &fakeClipboard{}
	d := NewDispatcher(Page{URL: articleURL, Title: "Foods to Avoid"}, clip, opener)
	defer d.Close()

	if err := d.Share(context.Background(), Twitter); err != nil {
		t.Fatalf("Share: %v", err)
	}
	if opener.calls != 1 {
		t.Fatalf("expected one popup, got %d", opener.calls)
	}
	want := "https://twitter.com/intent/tweet?url=https%3A%2F%2Fexample.com%2Fblog%2Ffoods-to-avoid-during-pregnancy&text=Foods%20to%20Avoid"
	if opener.target != want {
		t.Errorf("target = %q, want %q", opener.target, want)
	}
	if opener.size != (WindowSize{Width: 600, Height: 400}) {
		t.Errorf("size = %+v", opener.size)
	}
	if clip.writes != 0 {
		t.Error("social share must not touch the clipboard")
	}
	if d.Copied() {
		t.Error("social share must not set the copied flag")
	}
}

func TestDispatcherCopy(t *testing.T) {
	clip := &fakeClipboard{}
	var mu sync.Mutex
	var transitions []State
	d := NewDispatcher(Page{URL: articleURL}, clip, &fakeOpener{},
		WithResetDelay(100*time.Millisecond),
		WithOnChange(func(s State) {
			mu.Lock()
			transitions = append(transitions, s)
			mu.Unlock()
		}),
	)
	defer d.Close()

	if d.State() != Idle {
		t.Fatal("initial state should be idle")
	}
	start := time.Now()
	if err := d.Share(context.Background(), Copy); err != nil {
		t.Fatalf("Share(copy): %v", err)
	}
	if clip.text != articleURL {
		t.Errorf("clipboard = %q, want %q", clip.text, articleURL)
	}
	if !d.Copied() {
		t.Fatal("expected copied immediately after a successful write")
	}
	waitFor(t, time.Second, func() bool { return !d.Copied() })
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Errorf("reset fired early after %s", elapsed)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(transitions) != 2 || transitions[0] != Copied || transitions[1] != Idle {
		t.Errorf("transitions = %v, want [copied idle]", transitions)
	}
}

func TestDispatcherCopyFailureKeepsIdle(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("permission denied")}
	d := NewDispatcher(Page{URL: articleURL}, clip, nil)
	defer d.Close()

	err := d.Share(context.Background(), Copy)
	if err == nil {
		t.Fatal("expected clipboard error")
	}
	if d.Copied() {
		t.Error("failed write must not set the copied flag")
	}
}

func TestDispatcherRejectsRelativeURL(t *testing.T) {
	opener := &fakeOpener{}
	d := NewDispatcher(Page{URL: "/blog/x/"}, &fakeClipboard{}, opener)
	defer d.Close()

	if err := d.Share(context.Background(), Facebook); !errors.Is(err, ErrInvalidPageURL) {
		t.Errorf("expected ErrInvalidPageURL, got %v", err)
	}
	if opener.calls != 0 {
		t.Error("popup opened for invalid page url")
	}
}

func TestDispatcherUnknownPlatform(t *testing.T) {
	d := NewDispatcher(Page{URL: articleURL}, &fakeClipboard{}, &fakeOpener{})
	defer d.Close()
	if err := d.Share(context.Background(), Platform("tiktok")); !errors.Is(err, ErrUnknownPlatform) {
		t.Errorf("expected ErrUnknownPlatform, got %v", err)
	}
}

func TestDispatcherDefaultDelay(t *testing.T) {
	d := NewDispatcher(Page{URL: articleURL}, &fakeClipboard{}, nil)
	defer d.Close()
	if d.ResetDelay() != 2000*time.Millisecond {
		t.Errorf("ResetDelay() = %s, want 2s", d.ResetDelay())
	}
}
