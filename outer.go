package lifetime

// Outer is the read-only capability view of a lifetime. Its method set is
// restricted to liveness queries: code holding only an Outer cannot register
// termination actions on it, so piling cleanup onto an ambient scope you do
// not own is a compile-time error rather than a runtime leak.
//
// To depend on an outer scope's end, create your own nested Definition with
// NewNested(outer), and terminate it yourself.
//
// An Outer is obtained from Lifetime.Outer or Definition.Outer. The zero
// value views the eternal lifetime.
type Outer struct {
	def *Definition
}

// IsEternal reports whether the view is of the eternal lifetime.
func (o Outer) IsEternal() bool {
	return o.def == nil
}

// IsTerminated reports whether termination of the underlying lifetime has
// begun. Always false for the eternal lifetime.
func (o Outer) IsTerminated() bool {
	if o.def == nil {
		return false
	}
	return o.def.IsTerminated()
}
