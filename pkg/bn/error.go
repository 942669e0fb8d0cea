package bn

import "github.com/mahdiidarabi/ecsign/internal/check"

// These constants are used to identify a specific Error.
const (
	// ErrInvalidString is returned when a string cannot be parsed as an
	// integer in the requested base.
	ErrInvalidString = check.ErrorKind("ErrInvalidString")

	// ErrScriptNumOverflow is returned when a script number buffer is longer
	// than the permitted maximum size.
	ErrScriptNumOverflow = check.ErrorKind("ErrScriptNumOverflow")

	// ErrNonMinimalScriptNum is returned when a script number is required to
	// be minimally encoded and is not.
	ErrNonMinimalScriptNum = check.ErrorKind("ErrNonMinimalScriptNum")

	// ErrOverflow is returned by the safe arithmetic methods when an operand
	// or the result exceeds its byte-size bound.
	ErrOverflow = check.ErrorKind("ErrOverflow")
)
