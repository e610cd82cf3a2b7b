package errors

import (
	"github.com/pkg/errors"
)

// stackTracer is implemented by errors from github.com/pkg/errors that
// carry a recorded stack.
type stackTracer interface {
	error
	StackTrace() errors.StackTrace
}

// stackTrace returns the stack trace attached to any layer of given error,
// or nil if none was recorded yet.
func stackTrace(err error) errors.StackTrace {
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}

// StackTrace returns the stack trace recorded when given error was created,
// or nil for errors that carry none.
func StackTrace(err error) errors.StackTrace {
	return stackTrace(err)
}
