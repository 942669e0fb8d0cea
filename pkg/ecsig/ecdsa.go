package ecsig

import (
	"fmt"

	"github.com/mahdiidarabi/ecsign/internal/check"
	"github.com/mahdiidarabi/ecsign/pkg/bn"
	"github.com/mahdiidarabi/ecsign/pkg/point"
)

// ecdsaFindSignature computes (r, s) for the message value e.
//
// The first nonce is ctx.Nonce when set, otherwise the RFC6979 nonce.  When r
// or s comes out zero the next RFC6979 candidate is used, so a rejected
// explicit nonce also falls back to the deterministic sequence.  The result
// is low-S.
func ecdsaFindSignature(ctx Context, d, e *bn.Int) (*bn.Int, *bn.Int, error) {
	return findECDSASignature(ctx, d, e, nonZeroRS)
}

func nonZeroRS(r, s *bn.Int) bool { return r.Sign() > 0 && s.Sign() > 0 }

// findECDSASignature is ecdsaFindSignature with the candidate check supplied
// by the caller.
func findECDSASignature(ctx Context, d, e *bn.Int, accept func(r, s *bn.Int) bool) (*bn.Int, *bn.Int, error) {
	n := point.N()
	k := ctx.Nonce
	if k != nil && !inScalarRange(k) {
		return nil, nil, check.ArgError(ErrNonceRange, "nonce", "nonce must be in [1, N-1]")
	}

	var r, s *bn.Int
	for badrs := 0; ; {
		if k == nil || badrs > 0 {
			k = DeterministicK(ctx.Hash, ctx.Endian, d, badrs)
		}
		badrs++

		q := point.G().Mul(k)
		r = q.X().Umod(n)
		s = k.Invm(n).Mul(e.Add(d.Mul(r))).Umod(n)
		if accept(r, s) {
			break
		}
	}

	if s.Gt(lowSThreshold) {
		s = n.Sub(s)
	}
	return r, s, nil
}

// ecdsaSigError returns why ctx.Signature is not a valid ECDSA signature, or
// nil when it is.
func ecdsaSigError(ctx Context) error {
	if len(ctx.Hash) != HashLen {
		return failure(ErrInvalidHashLen, "hashbuf must be a 32 byte buffer")
	}

	r, s := ctx.Signature.R, ctx.Signature.S
	if !inScalarRange(r) || !inScalarRange(s) {
		return failure(ErrSigRange, "r and s not in range")
	}

	n := point.N()
	e := bn.FromBuffer(ctx.Hash, ctx.Endian)
	sinv := s.Invm(n)
	u1 := sinv.Mul(e).Umod(n)
	u2 := sinv.Mul(r).Umod(n)

	p := point.G().MulAdd(u1, ctx.PublicKey.Point, u2)
	if p.IsInfinity() {
		return failure(ErrPointInfinity, "p is infinity")
	}
	if !p.X().Umod(n).Eq(r) {
		return failure(ErrInvalidSignature, "Invalid signature")
	}
	return nil
}

// RecoverPublicKey recovers the public key that produced sig over hash.
// sig.RecoveryID selects the candidate:
//
//   - bit 0: the nonce point R has an odd y
//   - bit 1: R.x is r + N rather than r
//
// The returned key carries sig.Compressed.  Recovery does not prove the
// signature is valid for any particular key; compare the result with the
// expected key or verify separately.
func RecoverPublicKey(hash []byte, endian bn.Endian, sig *Signature) (*PublicKey, error) {
	if len(hash) != HashLen {
		return nil, check.ArgError(ErrInvalidHashLen, "hash",
			fmt.Sprintf("hash must be %d bytes, got %d", HashLen, len(hash)))
	}
	if !sig.HasRecoveryID() {
		return nil, check.ArgError(ErrInvalidRecoveryID, "sig",
			fmt.Sprintf("recovery id %d is not in 0..3", sig.RecoveryID))
	}
	if !inScalarRange(sig.R) || !inScalarRange(sig.S) {
		return nil, check.ArgError(ErrSigRange, "sig", "r and s not in range")
	}

	n := point.N()
	isYOdd := sig.RecoveryID&1 == 1
	isSecondKey := sig.RecoveryID>>1 == 1

	// 1.1 x = r + jN
	x := sig.R
	if isSecondKey {
		x = x.Add(n)
	}

	// 1.3 R from x and the parity bit.
	R, err := point.FromX(isYOdd, x)
	if err != nil {
		return nil, err
	}

	// 1.4 nR must be infinity.
	if err := R.Validate(); err != nil {
		return nil, err
	}

	// 1.5 -e mod N
	eNeg := bn.FromBuffer(hash, endian).Neg().Umod(n)

	// 1.6 Q = r^-1 (sR - eG)
	q := R.MulAdd(sig.S, point.G(), eNeg).Mul(sig.R.Invm(n))
	if q.IsInfinity() {
		return nil, check.MakeError(ErrPointInfinity, "recovered public key is the point at infinity")
	}
	return &PublicKey{Point: q, Compressed: sig.Compressed}, nil
}

// CalcI returns a copy of sig with the first recovery id in 0..3 whose
// recovered key equals ctx.PublicKey, or the key derived from ctx.PrivateKey
// when no public key is set.  The copy takes the compression flag of that
// key.
func CalcI(ctx Context, sig *Signature) (*Signature, error) {
	pub := ctx.PublicKey
	if pub == nil && ctx.PrivateKey != nil {
		pub = ctx.PrivateKey.PubKey()
	}
	if err := check.State(pub != nil && pub.Point != nil,
		ErrMissingPublicKey, "public key is required to calculate the recovery id"); err != nil {
		return nil, err
	}

	for i := 0; i < 4; i++ {
		cand := sig.WithRecoveryID(i)
		q, err := RecoverPublicKey(ctx.Hash, ctx.Endian, cand)
		if err != nil {
			continue
		}
		if q.Equal(pub) {
			cand.Compressed = pub.Compressed
			return cand, nil
		}
	}
	return nil, check.MakeError(ErrNoRecoveryID, "Unable to find valid recovery factor")
}

// SignWithCalcI signs with ECDSA and fills in the recovery id, producing a
// signature ready for SerializeCompact.
func SignWithCalcI(ctx Context) (*Signature, error) {
	sig, err := ECDSA.Sign(ctx)
	if err != nil {
		return nil, err
	}
	return CalcI(ctx, sig)
}
