// Package reactive provides lifetime-scoped reactive containers: a Signal
// event source and a Property single-value container. Both consume only the
// public registration and query surface of the lifetime package; the owning
// lifetime is used for exactly one thing, clearing the subscriber list when
// it ends.
package reactive

import (
	"sync"

	lifetime "github.com/lifetime-fn/lifetime-go"
)

// Signal is an event source scoped to an owning lifetime. Handlers advised
// on it receive every fired value until their own lifetime ends. When the
// owning lifetime ends the subscriber list is cleared and further Fire calls
// deliver nothing.
type Signal[T any] struct {
	mu     sync.Mutex
	subs   map[uint64]func(T)
	order  []uint64
	nextID uint64
	closed bool
}

// NewSignal creates a signal whose subscriber list is cleared when owner
// terminates. An owner that has already terminated yields a permanently
// closed signal.
func NewSignal[T any](owner lifetime.Lifetime) *Signal[T] {
	s := &Signal[T]{subs: make(map[uint64]func(T))}

	if owner.IsTerminated() {
		s.closed = true
		s.subs = nil
		return s
	}

	_ = owner.OnTermination(func() error {
		s.mu.Lock()
		s.subs = nil
		s.order = nil
		s.closed = true
		s.mu.Unlock()
		return nil
	})
	return s
}

// Advise subscribes fn until lt terminates. Handlers run in subscription
// order, in-line on the goroutine calling Fire. A nil fn is rejected with
// lifetime.ErrNilAction; advising with an already terminated lt, or on a
// closed signal, is a no-op.
func (s *Signal[T]) Advise(lt lifetime.Lifetime, fn func(T)) error {
	if fn == nil {
		return lifetime.ErrNilAction
	}
	if lt.IsTerminated() {
		return nil
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	return lt.OnTermination(func() error {
		s.remove(id)
		return nil
	})
}

// Fire delivers v to every current subscriber.
func (s *Signal[T]) Fire(v T) {
	s.mu.Lock()
	fns := make([]func(T), 0, len(s.order))
	for _, id := range s.order {
		if fn, ok := s.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Closed reports whether the owning lifetime has ended.
func (s *Signal[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Signal[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs == nil {
		return
	}
	delete(s.subs, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
