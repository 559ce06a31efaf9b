package lifetime

// DiscardReason explains why a registration was dropped.
type DiscardReason string

const (
	// DiscardTerminated indicates a registration arrived after termination
	// of the target lifetime had begun.
	DiscardTerminated DiscardReason = "terminated"
	// DiscardOrphaned indicates a nested definition could not attach to its
	// outer lifetime and is now independently owned.
	DiscardOrphaned DiscardReason = "orphaned"
)

// Observer provides hooks into lifetime events. Register one with
// WithObserver; nested definitions inherit the observers of the definition
// they attach to.
//
// Hooks run in-line on the goroutine performing the operation, so they must
// not block and must be safe for concurrent use if the lifetimes are.
type Observer interface {
	// Name returns the observer's name
	Name() string

	// OnCreate is called when a definition is created
	OnCreate(d *Definition)

	// OnAttach is called when child's termination is registered on parent
	OnAttach(parent, child *Definition)

	// OnTerminate is called after a definition finishes draining its actions
	OnTerminate(d *Definition)

	// OnDiscard is called when a registration or attachment is dropped
	OnDiscard(d *Definition, reason DiscardReason)

	// OnActionError handles a failed termination action.
	// Returns true if the error was handled, false to surface it from Terminate.
	OnActionError(aerr *ActionError) bool
}

// BaseObserver provides default implementations for Observer methods
type BaseObserver struct {
	name string
}

// NewBaseObserver creates a new base observer with the given name
func NewBaseObserver(name string) BaseObserver {
	return BaseObserver{name: name}
}

func (o *BaseObserver) Name() string {
	return o.name
}

func (o *BaseObserver) OnCreate(d *Definition) {
}

func (o *BaseObserver) OnAttach(parent, child *Definition) {
}

func (o *BaseObserver) OnTerminate(d *Definition) {
}

func (o *BaseObserver) OnDiscard(d *Definition, reason DiscardReason) {
}

func (o *BaseObserver) OnActionError(aerr *ActionError) bool {
	return false
}
