package reveal

import (
	"strconv"
	"sync"
)

// Rect is an axis-aligned layout box in document coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

func (r Rect) grow(margin float64) Rect {
	return Rect{X: r.X - margin, Y: r.Y - margin, Width: r.Width + 2*margin, Height: r.Height + 2*margin}
}

func (r Rect) intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.Width, other.X+other.Width)
	y1 := min(r.Y+r.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Viewport is an in-process Observer that derives intersections from layout
// geometry. Scrolling moves the visible window and notifies every live
// observation.
type Viewport struct {
	mu      sync.Mutex
	window  Rect
	nextID  int
	watches map[int]*watch
}

type watch struct {
	target Target
	opts   Options
	fn     func(Entry)
}

// NewViewport returns a viewport of the given size at the top of the page.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{
		window:  Rect{Width: width, Height: height},
		watches: make(map[int]*watch),
	}
}

// Observe registers fn and delivers the initial entry for target
// immediately, as browsers do on observe.
func (v *Viewport) Observe(target Target, opts Options, fn func(Entry)) Subscription {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	w := &watch{target: target, opts: opts.normalized(), fn: fn}
	v.watches[id] = w
	entry := entryFor(v.window, w)
	v.mu.Unlock()

	sub := SubscriptionFunc(func() {
		v.mu.Lock()
		delete(v.watches, id)
		v.mu.Unlock()
	})
	if fn != nil {
		fn(entry)
	}
	return sub
}

// Scroll moves the top of the window to offset and delivers an entry to every
// live observation.
func (v *Viewport) Scroll(offset float64) {
	v.mu.Lock()
	v.window.Y = offset
	window := v.window
	pending := make([]*watch, 0, len(v.watches))
	for _, w := range v.watches {
		pending = append(pending, w)
	}
	v.mu.Unlock()

	for _, w := range pending {
		if w.fn != nil {
			w.fn(entryFor(window, w))
		}
	}
}

// Live returns the number of undisposed observations.
func (v *Viewport) Live() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.watches)
}

func entryFor(window Rect, w *watch) Entry {
	area := w.target.Rect.area()
	if area == 0 {
		return Entry{}
	}
	overlap := window.grow(float64(w.opts.RootMargin)).intersect(w.target.Rect).area()
	ratio := overlap / area
	return Entry{Intersecting: overlap > 0, Ratio: ratio}
}

// Grid lays out n cards of a fixed size in rows of columns, separated by gap.
// Placeholders use the same size so layout never shifts on reveal.
func Grid(n, columns int, cardWidth, cardHeight, gap, top float64) []Rect {
	if columns <= 0 {
		columns = 1
	}
	out := make([]Rect, n)
	for idx := range out {
		row := idx / columns
		col := idx % columns
		out[idx] = Rect{
			X:      float64(col) * (cardWidth + gap),
			Y:      top + float64(row)*(cardHeight+gap),
			Width:  cardWidth,
			Height: cardHeight,
		}
	}
	return out
}

// InitiallyRevealed counts the cards that reveal before any scroll in a
// viewport of the given size.
func InitiallyRevealed(rects []Rect, viewportWidth, viewportHeight float64, opts Options) int {
	viewport := NewViewport(viewportWidth, viewportHeight)
	count := 0
	for idx, rect := range rects {
		latch := NewLatch(opts, func() { count++ })
		latch.Mount(viewport, Target{ID: "card-" + strconv.Itoa(idx), Rect: rect})
		latch.Unmount()
	}
	return count
}
