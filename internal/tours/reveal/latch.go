// Package reveal implements the one-shot visibility latch used to defer full
// card rendering until a card nears the viewport.
package reveal

import (
	"strconv"
	"sync"
)

// State is the visibility of one card.
type State int

const (
	// Hidden is the initial state; the card renders a placeholder.
	Hidden State = iota
	// Revealed is terminal; the card renders its full content.
	Revealed
)

func (s State) String() string {
	switch s {
	case Revealed:
		return "revealed"
	default:
		return "hidden"
	}
}

const (
	// DefaultRootMargin grows the viewport on every side before intersecting.
	DefaultRootMargin = 50
	// DefaultThreshold is the minimum visible fraction of a card.
	DefaultThreshold = 0.1
)

// Options configures the intersection region a card must enter.
type Options struct {
	RootMargin int
	Threshold  float64
}

// DefaultOptions returns the margin and threshold used by the tours page.
func DefaultOptions() Options {
	return Options{RootMargin: DefaultRootMargin, Threshold: DefaultThreshold}
}

// normalized clamps the threshold into [0, 1] and forbids negative margins.
func (o Options) normalized() Options {
	if o.RootMargin < 0 {
		o.RootMargin = 0
	}
	if o.Threshold < 0 {
		o.Threshold = 0
	}
	if o.Threshold > 1 {
		o.Threshold = 1
	}
	return o
}

// MarginAttr renders the margin in CSS rootMargin syntax.
func (o Options) MarginAttr() string {
	return strconv.Itoa(o.normalized().RootMargin) + "px"
}

// ThresholdAttr renders the threshold for a data attribute.
func (o Options) ThresholdAttr() string {
	return strconv.FormatFloat(o.normalized().Threshold, 'f', -1, 64)
}

// Entry is one intersection delivery for a target.
type Entry struct {
	Intersecting bool
	Ratio        float64
}

// Target identifies an observed element and its layout box.
type Target struct {
	ID   string
	Rect Rect
}

// Observer delivers intersection entries for a target until the returned
// subscription is disposed.
type Observer interface {
	Observe(target Target, opts Options, fn func(Entry)) Subscription
}

// Subscription is a cancellable observation. Dispose may be called any number
// of times.
type Subscription interface {
	Dispose()
}

// SubscriptionFunc adapts a teardown function into an idempotent Subscription.
func SubscriptionFunc(fn func()) Subscription {
	return &onceSubscription{fn: fn}
}

type onceSubscription struct {
	once sync.Once
	fn   func()
}

func (s *onceSubscription) Dispose() {
	s.once.Do(func() {
		if s.fn != nil {
			s.fn()
		}
	})
}

// Latch moves one card from Hidden to Revealed on the first qualifying
// intersection and never back.
type Latch struct {
	onReveal func()
	opts     Options

	mu    sync.Mutex
	state State
	sub   Subscription
}

// NewLatch returns a hidden latch. onReveal runs once, on the transition.
func NewLatch(opts Options, onReveal func()) *Latch {
	return &Latch{onReveal: onReveal, opts: opts.normalized()}
}

// State returns the current visibility.
func (l *Latch) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Mount starts observing target. Mounting a revealed latch, or mounting
// twice, does nothing.
func (l *Latch) Mount(observer Observer, target Target) {
	if observer == nil {
		return
	}
	l.mu.Lock()
	if l.state == Revealed || l.sub != nil {
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()

	sub := observer.Observe(target, l.opts, l.deliver)

	l.mu.Lock()
	if l.state == Revealed || l.sub != nil {
		// Revealed synchronously during Observe, or raced with another Mount.
		l.mu.Unlock()
		sub.Dispose()
		return
	}
	l.sub = sub
	l.mu.Unlock()
}

// Unmount tears down any live observation. Safe to call repeatedly.
func (l *Latch) Unmount() {
	l.mu.Lock()
	sub := l.sub
	l.sub = nil
	l.mu.Unlock()
	if sub != nil {
		sub.Dispose()
	}
}

// Reveal forces the transition, as when a card is rendered above the fold.
// It reports whether this call performed the transition.
func (l *Latch) Reveal() bool {
	l.mu.Lock()
	if l.state == Revealed {
		l.mu.Unlock()
		return false
	}
	l.state = Revealed
	sub := l.sub
	l.sub = nil
	l.mu.Unlock()

	if sub != nil {
		sub.Dispose()
	}
	if l.onReveal != nil {
		l.onReveal()
	}
	return true
}

func (l *Latch) deliver(entry Entry) {
	if !entry.Intersecting || entry.Ratio < l.opts.Threshold {
		return
	}
	l.Reveal()
}
