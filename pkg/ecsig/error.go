package ecsig

import "github.com/mahdiidarabi/ecsign/internal/check"

// These constants are used to identify a specific signing or verification
// error.  Verification failures are reported through Result.Reason rather
// than returned, but they wrap the same kinds.
const (
	// ErrUnknownScheme is returned for a Scheme value outside the known set.
	ErrUnknownScheme = check.ErrorKind("ErrUnknownScheme")

	// ErrInvalidHashLen is used when the hash is not exactly 32 bytes.
	ErrInvalidHashLen = check.ErrorKind("ErrInvalidHashLen")

	// ErrMissingPrivateKey is returned when signing without a private key.
	ErrMissingPrivateKey = check.ErrorKind("ErrMissingPrivateKey")

	// ErrMissingPublicKey is returned when verifying or searching for a
	// recovery id without a public key.
	ErrMissingPublicKey = check.ErrorKind("ErrMissingPublicKey")

	// ErrMissingSignature is returned when verifying without a signature.
	ErrMissingSignature = check.ErrorKind("ErrMissingSignature")

	// ErrPrivateKeyRange is returned when a private key is not in [1, N-1].
	ErrPrivateKeyRange = check.ErrorKind("ErrPrivateKeyRange")

	// ErrNonceRange is returned when a caller supplied nonce is not in
	// [1, N-1].
	ErrNonceRange = check.ErrorKind("ErrNonceRange")

	// ErrInvalidRecoveryID is returned when recovering with a recovery id
	// outside 0..3.
	ErrInvalidRecoveryID = check.ErrorKind("ErrInvalidRecoveryID")

	// ErrNoRecoveryID is returned when none of the four recovery ids yields
	// the expected public key.
	ErrNoRecoveryID = check.ErrorKind("ErrNoRecoveryID")

	// ErrSigRange is used when r or s is not in [1, N-1].
	ErrSigRange = check.ErrorKind("ErrSigRange")

	// ErrPointInfinity is used when a point computed during verification or
	// recovery, or the public key itself, is the point at infinity.
	ErrPointInfinity = check.ErrorKind("ErrPointInfinity")

	// ErrInvalidSignature is used when an ECDSA signature does not match.
	ErrInvalidSignature = check.ErrorKind("ErrInvalidSignature")

	// ErrSchnorrSigLen is used when the padded lengths of r and s do not add
	// up to 64 or 65 bytes.
	ErrSchnorrSigLen = check.ErrorKind("ErrSchnorrSigLen")

	// ErrSigRTooBig is used when a Schnorr r is not below the field prime.
	ErrSigRTooBig = check.ErrorKind("ErrSigRTooBig")

	// ErrSigSTooBig is used when a Schnorr s is not below the group order.
	ErrSigSTooBig = check.ErrorKind("ErrSigSTooBig")

	// ErrSigRNotOnCurve is used when the recomputed Schnorr R is the point
	// at infinity.
	ErrSigRNotOnCurve = check.ErrorKind("ErrSigRNotOnCurve")

	// ErrSigRYNotSquare is used when the recomputed Schnorr R does not have
	// a square y coordinate.
	ErrSigRYNotSquare = check.ErrorKind("ErrSigRYNotSquare")

	// ErrUnequalRValues is used when the recomputed Schnorr R.x differs from
	// the signature's r.
	ErrUnequalRValues = check.ErrorKind("ErrUnequalRValues")

	// ErrSigInvalidLen is returned when a fixed-size signature encoding has
	// the wrong length.
	ErrSigInvalidLen = check.ErrorKind("ErrSigInvalidLen")

	// ErrSigInvalidRecoveryCode is returned when a compact signature's first
	// byte is not a valid recovery code.
	ErrSigInvalidRecoveryCode = check.ErrorKind("ErrSigInvalidRecoveryCode")

	// ErrSigTooShort is returned when a DER signature is shorter than the
	// smallest possible encoding.
	ErrSigTooShort = check.ErrorKind("ErrSigTooShort")

	// ErrSigTooLong is returned when a DER signature is longer than the
	// largest possible encoding.
	ErrSigTooLong = check.ErrorKind("ErrSigTooLong")

	// ErrSigInvalidSeqID is returned when a DER signature does not start
	// with the ASN.1 sequence identifier.
	ErrSigInvalidSeqID = check.ErrorKind("ErrSigInvalidSeqID")

	// ErrSigInvalidDataLen is returned when a DER signature's length byte
	// does not match the remaining data.
	ErrSigInvalidDataLen = check.ErrorKind("ErrSigInvalidDataLen")

	// ErrSigMissingSTypeID is returned when a DER signature ends before the
	// S integer identifier.
	ErrSigMissingSTypeID = check.ErrorKind("ErrSigMissingSTypeID")

	// ErrSigMissingSLen is returned when a DER signature ends before the S
	// length.
	ErrSigMissingSLen = check.ErrorKind("ErrSigMissingSLen")

	// ErrSigInvalidSLen is returned when the S length of a DER signature
	// does not match the remaining data.
	ErrSigInvalidSLen = check.ErrorKind("ErrSigInvalidSLen")

	// ErrSigInvalidRIntID is returned when R is not tagged as an ASN.1
	// integer.
	ErrSigInvalidRIntID = check.ErrorKind("ErrSigInvalidRIntID")

	// ErrSigInvalidSIntID is returned when S is not tagged as an ASN.1
	// integer.
	ErrSigInvalidSIntID = check.ErrorKind("ErrSigInvalidSIntID")

	// ErrSigZeroRLen is returned when R has zero length.
	ErrSigZeroRLen = check.ErrorKind("ErrSigZeroRLen")

	// ErrSigZeroSLen is returned when S has zero length.
	ErrSigZeroSLen = check.ErrorKind("ErrSigZeroSLen")

	// ErrSigNegativeR is returned when R has its sign bit set.
	ErrSigNegativeR = check.ErrorKind("ErrSigNegativeR")

	// ErrSigNegativeS is returned when S has its sign bit set.
	ErrSigNegativeS = check.ErrorKind("ErrSigNegativeS")

	// ErrSigTooMuchRPadding is returned when R has a needless leading zero.
	ErrSigTooMuchRPadding = check.ErrorKind("ErrSigTooMuchRPadding")

	// ErrSigTooMuchSPadding is returned when S has a needless leading zero.
	ErrSigTooMuchSPadding = check.ErrorKind("ErrSigTooMuchSPadding")
)
