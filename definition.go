package lifetime

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Definition states. Terminating is transient: it exists only while the
// action list is being drained, and is never observable as a distinct state
// from outside the package.
const (
	stateActive int32 = iota
	stateTerminating
	stateTerminated
)

// Definition owns a lifetime: the ordered list of termination actions and the
// termination state machine. It is the only entity that can be terminated.
//
// A Definition is identified by pointer; never copy the struct. Whoever
// creates a root Definition owns it and must eventually call Terminate,
// unless the Definition is nested under an outer lifetime, in which case the
// outer cascade terminates it.
//
// A Definition never stores pointers to its children. Attaching a child
// registers a callback invoking the child's Terminate, nothing more, so the
// hierarchy has no back-edges and no reference cycles.
type Definition struct {
	mu      sync.Mutex
	state   int32
	actions []func() error

	// set at construction, immutable afterwards
	name      string
	observers []Observer
}

// Option is a modifier for definitions.
type Option func(*Definition)

// WithName sets a human-readable name, used in diagnostics and errors.
func WithName(name string) Option {
	return func(d *Definition) {
		d.name = name
	}
}

// WithObserver returns an option that registers an observer on a definition.
// Observers are inherited by nested definitions created from this
// definition's Outer view.
func WithObserver(obs Observer) Option {
	return func(d *Definition) {
		if obs != nil {
			d.observers = append(d.observers, obs)
		}
	}
}

var idCounter atomic.Uint64

func nextName() string {
	return fmt.Sprintf("lifetime-%d", idCounter.Add(1))
}

// NewRoot creates an independent Active definition with an empty action list.
// The caller owns it: nothing terminates a root automatically.
func NewRoot(opts ...Option) *Definition {
	d := &Definition{}
	for _, opt := range opts {
		opt(d)
	}
	if d.name == "" {
		d.name = nextName()
	}
	for _, obs := range d.observers {
		obs.OnCreate(d)
	}
	return d
}

// NewNested creates a definition whose termination is registered as a
// termination action on outer, so terminating the outer lifetime terminates
// the new definition first.
//
// If outer is eternal or its termination has already begun, nothing is
// attached: the new definition is orphaned, still live, and never
// auto-terminated. The caller must terminate an orphan explicitly; observers
// on the orphan see an OnDiscard event with DiscardOrphaned.
func NewNested(outer Outer, opts ...Option) *Definition {
	d := &Definition{}
	if outer.def != nil {
		d.observers = append([]Observer(nil), outer.def.observers...)
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.name == "" {
		d.name = nextName()
	}
	for _, obs := range d.observers {
		obs.OnCreate(d)
	}
	if outer.def == nil {
		d.notifyDiscard(DiscardOrphaned)
		return d
	}
	outer.def.Attach(d)
	return d
}

// Name returns the definition's name.
func (d *Definition) Name() string {
	return d.name
}

// Lifetime returns the read-write handle for this definition.
func (d *Definition) Lifetime() Lifetime {
	return Lifetime{def: d}
}

// Outer returns the read-only view of this definition.
func (d *Definition) Outer() Outer {
	return Outer{def: d}
}

// IsTerminated reports whether termination has begun.
func (d *Definition) IsTerminated() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state != stateActive
}

// OnTermination appends fn to the action list. fn runs exactly once, when the
// definition terminates, in reverse registration order relative to the other
// actions. A nil fn is rejected with ErrNilAction. Once termination has
// begun the action is dropped, never to be invoked; observers see an
// OnDiscard event.
func (d *Definition) OnTermination(fn func() error) error {
	if fn == nil {
		return ErrNilAction
	}
	if !d.append(fn) {
		d.notifyDiscard(DiscardTerminated)
	}
	return nil
}

// Attach registers child's Terminate as a termination action on d. If d's
// termination has already begun the child is left orphaned, and if the child
// is already terminated there is nothing left to tear down; either way
// nothing is registered.
func (d *Definition) Attach(child *Definition) {
	if child == nil || child == d {
		return
	}
	if child.IsTerminated() {
		return
	}
	if !d.append(func() error { return child.Terminate() }) {
		child.notifyDiscard(DiscardOrphaned)
		return
	}
	for _, obs := range d.observers {
		obs.OnAttach(d, child)
	}
}

// Terminate drains the action list from last-registered to first-registered,
// invoking every action in-line on the calling goroutine. An attached
// child's Terminate is itself one of those actions, so the child's entire
// cascade completes before the next (earlier) action of this definition
// runs: teardown is depth-first, most-recently-attached-first.
//
// Terminate is idempotent. Only the first call drains; concurrent,
// re-entrant, and repeated calls return nil immediately.
//
// A failing or panicking action does not stop the drain: every remaining
// action still runs and the state always reaches terminated. Each failure is
// wrapped in *ActionError and the whole set is returned joined via
// errors.Join, unless an observer's OnActionError reports it handled.
func (d *Definition) Terminate() error {
	d.mu.Lock()
	if d.state != stateActive {
		d.mu.Unlock()
		return nil
	}
	d.state = stateTerminating
	actions := d.actions
	d.actions = nil
	d.mu.Unlock()

	var errs []error
	for i := len(actions) - 1; i >= 0; i-- {
		if aerr := d.run(actions[i]); aerr != nil {
			if !d.notifyActionError(aerr) {
				errs = append(errs, aerr)
			}
		}
	}

	d.mu.Lock()
	d.state = stateTerminated
	d.mu.Unlock()

	for _, obs := range d.observers {
		obs.OnTerminate(d)
	}

	return errors.Join(errs...)
}

// run executes a single termination action with panic isolation.
func (d *Definition) run(fn func() error) (aerr *ActionError) {
	defer func() {
		if r := recover(); r != nil {
			aerr = &ActionError{
				Lifetime: d.name,
				Err:      fmt.Errorf("panic: %v", r),
				Stack:    debug.Stack(),
			}
		}
	}()

	if err := fn(); err != nil {
		return &ActionError{
			Lifetime: d.name,
			Err:      err,
		}
	}
	return nil
}

// append adds fn to the action list if the definition is still Active.
// It reports whether the registration was accepted; a false return means the
// caller raced (or followed) termination and the action will never run.
func (d *Definition) append(fn func() error) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != stateActive {
		return false
	}
	d.actions = append(d.actions, fn)
	return true
}

// bracket runs acquire and registers release, keeping the pair consistent
// against a racing Terminate: if the registration loses the race, release
// runs immediately so the acquisition cannot leak.
func (d *Definition) bracket(acquire func(), release func() error) error {
	if d.IsTerminated() {
		d.notifyDiscard(DiscardTerminated)
		return nil
	}

	acquire()

	if !d.append(release) {
		if aerr := d.run(release); aerr != nil {
			return aerr
		}
	}
	return nil
}

func (d *Definition) notifyDiscard(reason DiscardReason) {
	for _, obs := range d.observers {
		obs.OnDiscard(d, reason)
	}
}

func (d *Definition) notifyActionError(aerr *ActionError) bool {
	for _, obs := range d.observers {
		if obs.OnActionError(aerr) {
			return true
		}
	}
	return false
}
