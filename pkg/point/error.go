package point

import "github.com/mahdiidarabi/ecsign/internal/check"

// These constants identify why a point could not be built or validated.
// Errors returned by this package wrap one of them in a check.Error, so
// callers test them with errors.Is.
const (
	// ErrPointAtInfinity is returned when a point that must be finite is
	// the identity element.
	ErrPointAtInfinity = check.ErrorKind("ErrPointAtInfinity")

	// ErrInvalidY is returned when the y coordinate of a point does not
	// match the one recomputed from its x coordinate and parity.
	ErrInvalidY = check.ErrorKind("ErrInvalidY")

	// ErrNotOnCurve is returned when no y coordinate exists for an x
	// coordinate.
	ErrNotOnCurve = check.ErrorKind("ErrNotOnCurve")

	// ErrNotInGroup is returned when multiplying a point by the curve order
	// does not yield infinity.
	ErrNotInGroup = check.ErrorKind("ErrNotInGroup")

	// ErrXTooBig is returned when an x coordinate is not below the field
	// prime.
	ErrXTooBig = check.ErrorKind("ErrXTooBig")

	// ErrInvalidFormat is returned when a serialized point has an unknown
	// prefix or length.
	ErrInvalidFormat = check.ErrorKind("ErrInvalidFormat")
)
