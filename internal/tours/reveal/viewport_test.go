package reveal

import "testing"

func TestViewportRevealsCardsAsTheyScrollIntoView(t *testing.T) {
	t.Parallel()

	viewport := NewViewport(1200, 800)
	rects := Grid(9, 3, 380, 500, 30, 600)
	revealed := make([]int, len(rects))
	latches := make([]*Latch, len(rects))
	for idx, rect := range rects {
		latches[idx] = NewLatch(DefaultOptions(), func() { revealed[idx]++ })
		latches[idx].Mount(viewport, Target{ID: "card", Rect: rect})
	}

	// First row spans 600..1100; the window plus margin reaches 850, which
	// covers half of each first-row card.
	for idx := range 3 {
		if latches[idx].State() != Revealed {
			t.Fatalf("card %d state = %v, want revealed", idx, latches[idx].State())
		}
	}
	for idx := 3; idx < 9; idx++ {
		if latches[idx].State() != Hidden {
			t.Fatalf("card %d state = %v, want hidden", idx, latches[idx].State())
		}
	}
	if got := viewport.Live(); got != 6 {
		t.Fatalf("Live() = %d, want 6", got)
	}

	viewport.Scroll(900)
	viewport.Scroll(0)
	viewport.Scroll(900)
	for idx := range latches {
		if latches[idx].State() != Revealed {
			t.Fatalf("card %d state = %v, want revealed", idx, latches[idx].State())
		}
		if revealed[idx] != 1 {
			t.Fatalf("card %d reveal calls = %d, want 1", idx, revealed[idx])
		}
	}
	if got := viewport.Live(); got != 0 {
		t.Fatalf("Live() = %d, want 0 after every card revealed", got)
	}
}

func TestViewportRespectsThreshold(t *testing.T) {
	t.Parallel()

	viewport := NewViewport(1000, 1000)
	// Only 40 of 500 units fall inside the grown window: ratio 0.08.
	target := Target{ID: "edge", Rect: Rect{Y: 1010, Width: 100, Height: 500}}
	latch := NewLatch(DefaultOptions(), nil)
	latch.Mount(viewport, target)
	if latch.State() != Hidden {
		t.Fatalf("State() = %v, want hidden below threshold", latch.State())
	}
	viewport.Scroll(20)
	if latch.State() != Revealed {
		t.Fatalf("State() = %v, want revealed at ratio 0.12", latch.State())
	}
}

func TestViewportUnmountStopsDelivery(t *testing.T) {
	t.Parallel()

	viewport := NewViewport(800, 600)
	calls := 0
	latch := NewLatch(DefaultOptions(), func() { calls++ })
	latch.Mount(viewport, Target{ID: "far", Rect: Rect{Y: 5000, Width: 100, Height: 100}})
	latch.Unmount()
	viewport.Scroll(5000)
	if calls != 0 || latch.State() != Hidden {
		t.Fatalf("calls=%d state=%v after unmount", calls, latch.State())
	}
	if viewport.Live() != 0 {
		t.Fatalf("Live() = %d, want 0", viewport.Live())
	}
}

func TestInitiallyRevealed(t *testing.T) {
	t.Parallel()

	rects := Grid(12, 3, 380, 500, 30, 600)
	if got := InitiallyRevealed(rects, 1200, 800, DefaultOptions()); got != 3 {
		t.Fatalf("InitiallyRevealed() = %d, want 3", got)
	}
	if got := InitiallyRevealed(rects, 1200, 100, DefaultOptions()); got != 0 {
		t.Fatalf("InitiallyRevealed() = %d, want 0", got)
	}
}
