// Package apierr holds the sentinel error values and the Error type
// shared across internal/api and internal/history. Error pairs a
// human-readable message with zero or more cause errors that
// errors.Is can match against directly, mirroring server/serr's
// approach but built around a calculator API's own failure modes
// (bad credentials, missing history records, a broken history store)
// rather than an account/game-session API's.
package apierr

import "errors"

var (
	ErrBadCredentials = errors.New("the supplied username/password combination is incorrect")
	ErrPermissions    = errors.New("you don't have permission to do that")
	ErrNotFound       = errors.New("the requested entity could not be found")
	ErrDB             = errors.New("an error occurred with the history store")
	ErrBadArgument    = errors.New("one or more of the arguments is invalid")
	ErrBodyUnmarshal  = errors.New("malformed data in request")
)

// Error carries an explanatory message alongside any number of cause
// errors. A caller can run errors.Is against any registered sentinel
// without first unwrapping or type-asserting Error by hand. Build one
// with New or WrapDB rather than the zero value.
type Error struct {
	msg    string
	causes []error
}

// Error satisfies the error interface. With no causes, it is just the
// message; with causes, the first cause's text is appended after a
// colon, and a bare message-less Error defers entirely to it.
func (e Error) Error() string {
	switch {
	case len(e.causes) == 0:
		return e.msg
	case e.msg == "":
		return e.causes[0].Error()
	default:
		return e.msg + ": " + e.causes[0].Error()
	}
}

// Unwrap exposes every cause to the errors package (Go 1.20+), so
// errors.Is/As walk into each one in turn.
func (e Error) Unwrap() []error {
	if len(e.causes) == 0 {
		return nil
	}
	return e.causes
}

// Is reports whether target is one of e's causes, or another Error
// with the same message and an identical set of causes.
func (e Error) Is(target error) bool {
	for _, c := range e.causes {
		if c == target {
			return true
		}
	}

	other, ok := target.(Error)
	if !ok || other.msg != e.msg || len(other.causes) != len(e.causes) {
		return false
	}
	for i, c := range e.causes {
		if c != other.causes[i] {
			return false
		}
	}
	return true
}

// WrapDB reports err as a history store failure, tagging it with
// ErrDB so callers can check for storage problems without caring
// which Store implementation produced err.
func WrapDB(msg string, err error) Error {
	return Error{msg: msg, causes: []error{err, ErrDB}}
}

// New builds an Error with msg and the given causes, in order.
func New(msg string, causes ...error) Error {
	e := Error{msg: msg}
	if len(causes) > 0 {
		e.causes = append([]error(nil), causes...)
	}
	return e
}
