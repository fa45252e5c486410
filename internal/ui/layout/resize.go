package layout

import "github.com/sadopc/bizadvisor/internal/ui/viewport"

// Source is a viewport that emits resize events.
type Source interface {
	Width() int
	AddListener(fn viewport.Listener) viewport.ListenerID
	RemoveListener(id viewport.ListenerID) bool
}

// Tracker keeps the page width in sync with a Source while mounted.
// Lifecycle: Unmounted -> Mounted -> Unmounted.
type Tracker struct {
	params   Params
	width    float64
	src      Source
	id       viewport.ListenerID
	mounted  bool
	onChange func(float64)
}

// NewTracker creates an unmounted tracker.
func NewTracker(p Params) *Tracker {
	return &Tracker{params: p}
}

// OnChange sets a callback fired after each recomputation.
func (t *Tracker) OnChange(fn func(float64)) {
	t.onChange = fn
}

// Mount computes the width from the source's current size and registers one
// resize listener. Mounting an already mounted tracker does nothing.
func (t *Tracker) Mount(src Source) {
	if t.mounted {
		return
	}
	t.src = src
	t.mounted = true
	t.recompute(src.Width())
	t.id = src.AddListener(func(width, _ int) {
		t.recompute(width)
	})
}

// Unmount releases the listener. Safe to call more than once.
func (t *Tracker) Unmount() {
	if !t.mounted {
		return
	}
	t.src.RemoveListener(t.id)
	t.mounted = false
	t.src = nil
	t.id = 0
}

// Mounted reports whether the tracker currently holds a listener.
func (t *Tracker) Mounted() bool {
	return t.mounted
}

// Width returns the last computed page width.
func (t *Tracker) Width() float64 {
	return t.width
}

// Columns returns the page width as a renderable column count.
func (t *Tracker) Columns() int {
	return Columns(t.width)
}

func (t *Tracker) recompute(viewportWidth int) {
	if !t.mounted {
		return
	}
	t.width = t.params.Width(float64(viewportWidth))
	if t.onChange != nil {
		t.onChange(t.width)
	}
}
