package errs

import "fmt"

// InvalidStateError reports an operation that is well-formed but not
// allowed in the object's current state.
type InvalidStateError struct {
	Object string
	State  string
	Cause  error
}

func NewInvalidStateError(object, state string) *InvalidStateError {
	return &InvalidStateError{Object: object, State: state}
}

func NewInvalidStateErrorWithCause(object, state string, cause error) *InvalidStateError {
	return &InvalidStateError{Object: object, State: state, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	return withCause(fmt.Sprintf("%s: %s is %s", ErrInvalidState, e.Object, e.State), e.Cause)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}
