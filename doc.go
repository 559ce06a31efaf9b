// Package lifetime provides a hierarchical resource-lifecycle primitive for Go.
//
// # Overview
//
// A lifetime represents how long something is allowed to live. Callers
// register termination actions on it, and when the lifetime ends every
// action runs automatically, in reverse registration order. Lifetimes nest:
// terminating a parent tears down every descendant first. This replaces
// manual pairing of acquire/release calls and ad-hoc cancellation flags with
// a single composable primitive.
//
// The package is organized around three types:
//
//  1. Definition: the owning, mutable object, the only thing that can be terminated
//  2. Lifetime: the read-write handle used to register termination actions
//  3. Outer: the read-only view used to depend on a scope's end without owning it
//
// # Basic Usage
//
// Create a root definition, register cleanup through its handle, terminate:
//
//	def := lifetime.NewRoot()
//	lt := def.Lifetime()
//
//	lt.OnTermination(func() error {
//	    log.Println("first registered, last to run")
//	    return nil
//	})
//	lt.AddCloser(conn)
//
//	err := def.Terminate() // closes conn, then runs the logged action
//
// # Nesting
//
// NewNested attaches a new definition's termination as an action on an outer
// lifetime:
//
//	app := lifetime.NewRoot(lifetime.WithName("app"))
//	request := lifetime.NewNested(app.Outer(), lifetime.WithName("request"))
//
//	app.Terminate() // terminates request first, then app's own actions
//
// Teardown is depth-first and most-recently-attached-first: an attached
// child's whole cascade completes before the parent's earlier actions run.
//
// If the outer lifetime is eternal or already terminated, the new definition
// is orphaned: live, valid, and never auto-terminated. The caller must
// terminate an orphan explicitly.
//
// # The Capability Split
//
// A function that receives a Lifetime may register cleanup on it. A function
// that receives only an Outer cannot: the type has no registration methods.
// It can observe liveness, or derive its own nested definition which it must
// then terminate itself. Pass Outer to code that should depend on a scope
// without being able to pile cleanup onto it.
//
// # The Eternal Lifetime
//
// The zero value of Lifetime (also available as Eternal()) never terminates.
// Its IsTerminated is always false and every action registered on it is
// discarded, never invoked. Discards are reported through the diagnostic
// logger (SetDiagnosticLogger) because they usually indicate code that
// mistook an ambient scope for one it owns.
//
// # Brackets and Closers
//
//	// acquire now, release at termination, one call
//	lt.Bracket(
//	    func() { pool.Grab() },
//	    func() error { pool.Put(); return nil },
//	)
//
//	// any io.Closer
//	lt.AddCloser(file)
//
//	// hold a reference until the lifetime ends
//	lt.KeepAlive(buffer)
//
// # Error Handling
//
// Registration fails only on invalid arguments (ErrNilAction, ErrNilCloser,
// ErrNilValue). Terminate isolates failing actions: a returned error or a
// panic in one action never stops the drain, the state always reaches
// terminated, and the failures come back joined via errors.Join, each
// wrapped in *ActionError.
//
// # Observers
//
// Observers hook lifetime events for cross-cutting concerns:
//
//	type auditObserver struct {
//	    lifetime.BaseObserver
//	}
//
//	func (o *auditObserver) OnTerminate(d *lifetime.Definition) {
//	    log.Printf("ended: %s", d.Name())
//	}
//
//	root := lifetime.NewRoot(lifetime.WithObserver(&auditObserver{
//	    BaseObserver: lifetime.NewBaseObserver("audit"),
//	}))
//
// Nested definitions inherit the observers of the definition they attach to.
// The extensions subpackage ships a logging observer and a tree visualizer.
//
// # Thread Safety
//
// All operations on a Definition are safe for concurrent use. At most one
// goroutine ever drains a given definition; a registration racing a
// Terminate either lands before the drain snapshot (and runs) or is dropped
// with an OnDiscard observer event. It is never lost without a defined,
// observable outcome. Actions themselves run in-line on the goroutine that
// called Terminate, so a slow action blocks that caller, not the library.
//
// # Ownership Discipline
//
// Whoever creates a root Definition must eventually call Terminate on it.
// Attaching to a parent transfers the decision of when to the parent's
// cascade; calling Terminate manually afterwards is safe (idempotent) but
// redundant. Never attach a definition as a descendant of itself or of one
// of its own descendants; the package does not detect cycles.
package lifetime
