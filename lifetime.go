package lifetime

import (
	"io"
	"runtime"
)

// Lifetime is the read-write handle to a Definition: the surface consumers
// use to register termination actions. It carries no state of its own and is
// safe to copy freely. Two Lifetimes are equal (==) exactly when they
// reference the same Definition.
//
// The zero value is the eternal lifetime. Eternal is a type-level fact, a
// Lifetime with no definition behind it rather than a sentinel instance: there is
// no Definition to terminate, so "never terminates" cannot be violated.
type Lifetime struct {
	def *Definition
}

// Eternal returns the process-wide lifetime that never terminates. Actions
// registered on it are discarded and never invoked; each discarded
// registration is reported through the diagnostic logger, since dropping an
// action silently is a leak of intent. See SetDiagnosticLogger.
func Eternal() Lifetime {
	return Lifetime{}
}

// IsEternal reports whether lt is the eternal lifetime.
func (lt Lifetime) IsEternal() bool {
	return lt.def == nil
}

// IsTerminated reports whether termination has begun. Always false for the
// eternal lifetime.
func (lt Lifetime) IsTerminated() bool {
	if lt.def == nil {
		return false
	}
	return lt.def.IsTerminated()
}

// Outer returns the read-only view of this lifetime.
func (lt Lifetime) Outer() Outer {
	return Outer{def: lt.def}
}

// OnTermination registers fn to run when the lifetime ends. A nil fn is
// rejected with ErrNilAction. On the eternal lifetime the action is
// discarded with a diagnostic; on a lifetime whose termination has begun it
// is dropped and observers see an OnDiscard event.
func (lt Lifetime) OnTermination(fn func() error) error {
	if fn == nil {
		return ErrNilAction
	}
	if lt.def == nil {
		discardOnEternal("action")
		return nil
	}
	return lt.def.OnTermination(fn)
}

// AddCloser registers c.Close as a termination action, tying the resource's
// release to the end of the lifetime.
func (lt Lifetime) AddCloser(c io.Closer) error {
	if c == nil {
		return ErrNilCloser
	}
	return lt.OnTermination(c.Close)
}

// Bracket pairs acquisition with guaranteed release in a single call:
// acquire runs synchronously and immediately, then release is registered as
// a termination action.
//
// On a lifetime whose termination has already begun neither function runs:
// the release could never be invoked, so the acquisition is skipped too. On
// the eternal lifetime acquire runs and release is discarded: an eternal
// scope never ends, so nothing is ever released.
func (lt Lifetime) Bracket(acquire func(), release func() error) error {
	if acquire == nil || release == nil {
		return ErrNilAction
	}
	if lt.def == nil {
		acquire()
		discardOnEternal("bracket release")
		return nil
	}
	return lt.def.bracket(acquire, release)
}

// KeepAlive registers a no-op termination action that holds a reference to
// obj until the lifetime ends, preventing the collector from reclaiming it
// early. A nil obj is rejected with ErrNilValue.
func (lt Lifetime) KeepAlive(obj any) error {
	if obj == nil {
		return ErrNilValue
	}
	return lt.OnTermination(func() error {
		runtime.KeepAlive(obj)
		return nil
	})
}
