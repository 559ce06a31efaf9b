package reactive

import (
	"sync"

	lifetime "github.com/lifetime-fn/lifetime-go"
)

// Property is a reactive single-value container. It holds one current value
// and notifies advised handlers on every Set. Advising delivers the current
// value immediately, so a handler always starts from a known state.
//
// The owning lifetime clears the subscriber list on termination; that is the
// only use Property makes of the core. The value itself stays readable after
// the owner ends.
type Property[T any] struct {
	mu     sync.Mutex
	value  T
	change *Signal[T]
}

// NewProperty creates a property holding initial, scoped to owner.
func NewProperty[T any](owner lifetime.Lifetime, initial T) *Property[T] {
	return &Property[T]{
		value:  initial,
		change: NewSignal[T](owner),
	}
}

// Value returns the current value.
func (p *Property[T]) Value() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Set stores v and fires it to every advised handler.
func (p *Property[T]) Set(v T) {
	p.mu.Lock()
	p.value = v
	p.mu.Unlock()

	p.change.Fire(v)
}

// Advise invokes fn immediately with the current value, then on every change
// until lt terminates. A nil fn is rejected with lifetime.ErrNilAction;
// advising with an already terminated lt is a no-op.
func (p *Property[T]) Advise(lt lifetime.Lifetime, fn func(T)) error {
	if fn == nil {
		return lifetime.ErrNilAction
	}
	if lt.IsTerminated() {
		return nil
	}

	if err := p.change.Advise(lt, fn); err != nil {
		return err
	}
	fn(p.Value())
	return nil
}

// Change exposes the property's change signal for advanced composition.
func (p *Property[T]) Change() *Signal[T] {
	return p.change
}
