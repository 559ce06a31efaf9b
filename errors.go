package lifetime

import (
	"errors"
	"fmt"
)

// Invalid-argument sentinels. These are the only errors the registration
// surface can return; every other misuse degrades to a documented no-op.
var (
	// ErrNilAction is returned when a nil function is registered.
	ErrNilAction = errors.New("lifetime: nil termination action")

	// ErrNilCloser is returned when AddCloser receives a nil closer.
	ErrNilCloser = errors.New("lifetime: nil closer")

	// ErrNilValue is returned when KeepAlive receives a nil value.
	ErrNilValue = errors.New("lifetime: nil keep-alive value")
)

// ActionError reports a single termination action that failed or panicked
// during a drain. Terminate joins every ActionError of its drain via
// errors.Join; a cascading child's failures arrive wrapped again, naming the
// path down the hierarchy.
type ActionError struct {
	// Lifetime is the name of the definition whose drain observed the failure.
	Lifetime string
	// Err is the action's error, or the recovered panic value for panics.
	Err error
	// Stack is the goroutine stack at recovery time; set only for panics.
	Stack []byte
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("termination action failed in %s: %v", e.Lifetime, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
