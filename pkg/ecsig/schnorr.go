package ecsig

import (
	"github.com/mahdiidarabi/ecsign/internal/check"
	"github.com/mahdiidarabi/ecsign/pkg/bn"
	"github.com/mahdiidarabi/ecsign/pkg/digest"
	"github.com/mahdiidarabi/ecsign/pkg/point"
)

// schnorrChallenge returns sha256(r || P || m) as an integer, where r is
// padded to 32 bytes and P is compressed.
func schnorrChallenge(r *bn.Int, pub *point.Point, m []byte) *bn.Int {
	buf := concat(ProperSizeBuffer(r), pub.Compressed(), m)
	return bn.FromBuffer(digest.Sha256(buf), bn.BigEndian)
}

// schnorrFindSignature computes (r, s) for the message value e.  The nonce is
// always derived deterministically; its sign is chosen so that R = kG has a
// square y coordinate.
func schnorrFindSignature(d, e *bn.Int) (*bn.Int, *bn.Int, error) {
	if !inScalarRange(d) {
		return nil, nil, check.ArgError(ErrPrivateKeyRange, "d", "private key must be in [1, N-1]")
	}
	n := point.N()
	e32 := e.Bytes32()

	k := SchnorrNonce(d.Bytes32(), e32)
	P := point.G().Mul(d)
	R := point.G().Mul(k)
	if !R.HasSquare() {
		k = n.Sub(k)
	}
	r := R.X()

	e0 := schnorrChallenge(r, P, e32)
	s := e0.Mul(d).Add(k).Umod(n)
	return r, s, nil
}

// schnorrSigError returns why ctx.Signature is not a valid Schnorr signature,
// or nil when it is.
func schnorrSigError(ctx Context) error {
	if len(ctx.Hash) != HashLen {
		return failure(ErrInvalidHashLen, "hashbuf must be a 32 byte buffer")
	}

	r, s := ctx.Signature.R, ctx.Signature.S
	if sigLen := len(ProperSizeBuffer(r)) + len(ProperSizeBuffer(s)); sigLen != 64 && sigLen != 65 {
		return failure(ErrSchnorrSigLen, "schnorr signature must be 64 or 65 bytes")
	}

	m := ctx.Hash
	if ctx.Endian == bn.LittleEndian {
		m = bn.Reverse(ctx.Hash)
	}

	P := ctx.PublicKey.Point
	n := point.N()
	switch {
	case P.IsInfinity():
		return failure(ErrPointInfinity, "public key is the point at infinity")
	case r.Sign() < 0 || s.Sign() < 0:
		return failure(ErrSigRange, "r and s must not be negative")
	case r.Gte(point.P()):
		return failure(ErrSigRTooBig, "r is not below the field prime")
	case s.Gte(n):
		return failure(ErrSigSTooBig, "s is not below the group order")
	}

	e := schnorrChallenge(r, P, m).Umod(n)

	// R = sG - eP
	R := point.G().MulAdd(s, P, n.Sub(e))
	switch {
	case R.IsInfinity():
		return failure(ErrSigRNotOnCurve, "calculated R point is the point at infinity")
	case !R.HasSquare():
		return failure(ErrSigRYNotSquare, "calculated R y-value is not a square")
	case !R.X().Eq(r):
		return failure(ErrUnequalRValues, "calculated R x-value does not match r")
	}
	return nil
}
