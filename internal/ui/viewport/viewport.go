package viewport

import "sync"

// Listener is called with the new viewport size after every resize.
type Listener func(width, height int)

// ListenerID identifies a registered listener for removal.
type ListenerID uint64

// Viewport tracks the terminal size and fans resize events out to listeners.
// It plays the role of the window object: components subscribe while mounted
// and unsubscribe when torn down.
type Viewport struct {
	mu        sync.Mutex
	width     int
	height    int
	nextID    ListenerID
	listeners map[ListenerID]Listener
	order     []ListenerID
}

// New creates a viewport with an initial size. The zero Viewport is also
// usable and starts at 0x0.
func New(width, height int) *Viewport {
	return &Viewport{
		width:     width,
		height:    height,
		listeners: make(map[ListenerID]Listener),
	}
}

// Width returns the current viewport width.
func (v *Viewport) Width() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width
}

// Height returns the current viewport height.
func (v *Viewport) Height() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.height
}

// AddListener registers fn and returns its id.
func (v *Viewport) AddListener(fn Listener) ListenerID {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.listeners == nil {
		v.listeners = make(map[ListenerID]Listener)
	}
	v.nextID++
	id := v.nextID
	v.listeners[id] = fn
	v.order = append(v.order, id)
	return id
}

// RemoveListener unregisters a listener. It reports false if id was not registered.
func (v *Viewport) RemoveListener(id ListenerID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.listeners[id]; !ok {
		return false
	}
	delete(v.listeners, id)
	for i, o := range v.order {
		if o == id {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
	return true
}

// ListenerCount returns the number of registered listeners.
func (v *Viewport) ListenerCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.listeners)
}

// Resize records the new size and calls every listener synchronously, in
// registration order. Listeners run outside the lock so they may read the
// viewport or add and remove listeners. A listener removed by an earlier one
// during the same Resize is not called; one added during it waits for the next.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	v.width = width
	v.height = height
	ids := append([]ListenerID(nil), v.order...)
	v.mu.Unlock()

	for _, id := range ids {
		v.mu.Lock()
		fn, ok := v.listeners[id]
		v.mu.Unlock()
		if ok {
			fn(width, height)
		}
	}
}
