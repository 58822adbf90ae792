package share

import (
	"sync"
	"time"
)

// DefaultResetDelay is how long the "copied" flag stays set.
const DefaultResetDelay = 2 * time.Second

// State is the copy feedback state of a single page instance.
type State int

const (
	Idle State = iota
	Copied
)

func (s State) String() string {
	if s == Copied {
		return "copied"
	}
	return "idle"
}

// Feedback is the two-state idle/copied machine behind the copy button.
// A new copy cancels the pending reset and starts a fresh one, so the flag
// clears exactly one delay after the last copy.
type Feedback struct {
	mu       sync.Mutex
	state    State
	delay    time.Duration
	timer    *time.Timer
	gen      uint64
	closed   bool
	onChange func(State)
}

// NewFeedback returns an idle Feedback. A non-positive delay selects
// DefaultResetDelay. onChange may be nil.
func NewFeedback(delay time.Duration, onChange func(State)) *Feedback {
	if delay <= 0 {
		delay = DefaultResetDelay
	}
	return &Feedback{delay: delay, onChange: onChange}
}

// Delay returns the reset delay.
func (f *Feedback) Delay() time.Duration {
	return f.delay
}

// State returns the current state.
func (f *Feedback) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Copied reports whether the flag is currently set.
func (f *Feedback) Copied() bool {
	return f.State() == Copied
}

// MarkCopied sets the flag and (re)starts the reset timer. It is a no-op
// once the Feedback is closed.
func (f *Feedback) MarkCopied() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	if f.timer != nil {
		f.timer.Stop()
	}
	f.gen++
	gen := f.gen
	changed := f.state != Copied
	f.state = Copied
	f.timer = time.AfterFunc(f.delay, func() { f.reset(gen) })
	f.mu.Unlock()

	if changed {
		f.notify(Copied)
	}
}

// reset clears the flag unless a newer copy superseded this timer or the
// Feedback was closed in the meantime.
func (f *Feedback) reset(gen uint64) {
	f.mu.Lock()
	if f.closed || gen != f.gen || f.state != Copied {
		f.mu.Unlock()
		return
	}
	f.state = Idle
	f.timer = nil
	f.mu.Unlock()

	f.notify(Idle)
}

// Close cancels any pending reset. After Close the state never changes.
func (f *Feedback) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *Feedback) notify(s State) {
	if f.onChange != nil {
		f.onChange(s)
	}
}
