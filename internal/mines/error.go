package mines

import (
	"errors"
	"fmt"
)

// AssertionError is raised with panic when a caller breaks a contract
// the engine relies on, such as asking for more mines than cells.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(AssertionError{fmt.Sprintf(format, args...)})
	}
}

// Recover turns a panicking [AssertionError] into an error. Other panics
// are re-raised. Use it deferred:
//
//	defer mines.Recover(&err)
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	var ae AssertionError
	if e, ok := r.(error); ok && errors.As(e, &ae) {
		*err = ae
		return
	}
	panic(r)
}
