package interaction

import (
	"sync"

	"room-designer/internal/designer/models"
)

// ============================================================
// Pointer Bus
// ============================================================

// Listener receives global pointer events in screen coordinates.
type Listener struct {
	Move func(models.Point)
	Up   func(models.Point)
}

// Unbind removes a listener. Calling it more than once is a no-op.
type Unbind func()

type binding struct {
	id       uint64
	listener Listener
}

// PointerBus fans pointer-move and pointer-up events out to bound listeners,
// in registration order.
type PointerBus struct {
	mu       sync.Mutex
	nextID   uint64
	bindings []binding
}

func NewPointerBus() *PointerBus {
	return &PointerBus{}
}

func (b *PointerBus) Bind(l Listener) Unbind {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.bindings = append(b.bindings, binding{id: id, listener: l})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

// Listeners reports how many listeners are bound.
func (b *PointerBus) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.bindings)
}

func (b *PointerBus) Move(p models.Point) {
	for _, l := range b.snapshot() {
		if l.Move != nil {
			l.Move(p)
		}
	}
}

func (b *PointerBus) Up(p models.Point) {
	for _, l := range b.snapshot() {
		if l.Up != nil {
			l.Up(p)
		}
	}
}

// snapshot copies the listeners so handlers can unbind while being dispatched.
func (b *PointerBus) snapshot() []Listener {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Listener, len(b.bindings))
	for i, bd := range b.bindings {
		out[i] = bd.listener
	}
	return out
}

func (b *PointerBus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, bd := range b.bindings {
		if bd.id == id {
			b.bindings = append(b.bindings[:i], b.bindings[i+1:]...)
			return
		}
	}
}
