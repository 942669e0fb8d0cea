// Package check provides the structured error type shared by the signing
// packages along with the assertion helpers used to raise it.
package check

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error raised by one of the signing packages.  It has
// full support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
//
// Arg names the offending argument or field when there is one.
type Error struct {
	Err         error
	Arg         string
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	if e.Arg == "" {
		return e.Description
	}
	return e.Arg + ": " + e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// MakeError creates an Error given a set of arguments.
func MakeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}

// ArgError creates an Error that names the argument it is about.
func ArgError(kind ErrorKind, arg, desc string) Error {
	return Error{Err: kind, Arg: arg, Description: desc}
}

// Argument returns an argument error when cond is false and nil otherwise.
func Argument(cond bool, kind ErrorKind, arg, desc string) error {
	if cond {
		return nil
	}
	return ArgError(kind, arg, desc)
}

// State returns a state error when cond is false and nil otherwise.  State
// errors describe a missing precondition rather than a bad value.
func State(cond bool, kind ErrorKind, desc string) error {
	if cond {
		return nil
	}
	return MakeError(kind, desc)
}
