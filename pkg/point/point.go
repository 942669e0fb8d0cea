// Package point implements affine points on the secp256k1 curve.
//
// Field and group arithmetic is delegated to
// github.com/decred/dcrd/dcrec/secp256k1/v4; this package adds the
// validating constructor, Euler-criterion square test and SEC1 encodings the
// signature schemes need, expressed over bn.Int coordinates.
//
// A Point is immutable.  Operations return new points and never modify their
// receiver or arguments.
package point

import (
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mahdiidarabi/ecsign/internal/check"
	"github.com/mahdiidarabi/ecsign/pkg/bn"
)

const (
	// CompressedLen is the length of a SEC1 compressed point.
	CompressedLen = 33

	// UncompressedLen is the length of a SEC1 uncompressed point.
	UncompressedLen = 65

	prefixEven         = 0x02
	prefixOdd          = 0x03
	prefixUncompressed = 0x04
)

// Point is a point on secp256k1 in affine coordinates, or the point at
// infinity.
type Point struct {
	x, y *bn.Int
	inf  bool
}

// Infinity returns the identity element of the group.
func Infinity() *Point {
	return &Point{x: bn.Zero, y: bn.Zero, inf: true}
}

// New returns the point (x, y).  Unless skipValidation is set, the point is
// checked with Validate and an error is returned when it is not a member of
// the group.  Callers skip validation only for coordinates produced by curve
// arithmetic.
func New(x, y *bn.Int, skipValidation bool) (*Point, error) {
	p := &Point{x: x, y: y}
	if skipValidation {
		return p, nil
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// FromX returns the point with the given x coordinate whose y coordinate has
// the requested parity.
func FromX(odd bool, x *bn.Int) (*Point, error) {
	if x.Sign() < 0 || x.Gte(P()) {
		return nil, check.ArgError(ErrXTooBig, "x", "x coordinate is not below the field prime")
	}
	var fx, fy secp256k1.FieldVal
	fx.SetByteSlice(x.Bytes32())
	if !secp256k1.DecompressY(&fx, odd, &fy) {
		return nil, check.ArgError(ErrNotOnCurve, "x", "no curve point has this x coordinate")
	}
	fy.Normalize()
	return &Point{x: x, y: bn.FromBuffer(fy.Bytes()[:], bn.BigEndian)}, nil
}

// Parse decodes a 33-byte compressed or 65-byte uncompressed SEC1 point and
// validates it.
func Parse(buf []byte) (*Point, error) {
	switch {
	case len(buf) == 1 && buf[0] == 0x00:
		return nil, check.ArgError(ErrPointAtInfinity, "buf", "point at infinity is not a valid key")

	case len(buf) == CompressedLen && (buf[0] == prefixEven || buf[0] == prefixOdd):
		return FromX(buf[0] == prefixOdd, bn.FromBuffer(buf[1:], bn.BigEndian))

	case len(buf) == UncompressedLen && buf[0] == prefixUncompressed:
		x := bn.FromBuffer(buf[1:33], bn.BigEndian)
		y := bn.FromBuffer(buf[33:], bn.BigEndian)
		return New(x, y, false)
	}
	return nil, check.ArgError(ErrInvalidFormat, "buf",
		fmt.Sprintf("malformed point: %d bytes", len(buf)))
}

// Validate checks that p is a finite point on the curve whose y coordinate is
// the one implied by its x coordinate and parity, and that p * N is infinity.
func (p *Point) Validate() error {
	if p.inf {
		return check.MakeError(ErrPointAtInfinity, "point cannot be the point at infinity")
	}
	want, err := FromX(p.y.IsOdd(), p.x)
	if err != nil {
		return err
	}
	if !want.y.Eq(p.y) {
		return check.MakeError(ErrInvalidY, "invalid y value for curve")
	}
	// N is not a valid scalar, so compute (N-1)*p + p.
	if !p.Mul(N().Sub(bn.One)).Add(p).inf {
		return check.MakeError(ErrNotInGroup, "point times N must be infinity")
	}
	return nil
}

// X returns the x coordinate.  It is zero for the point at infinity.
func (p *Point) X() *bn.Int { return p.x }

// Y returns the y coordinate.  It is zero for the point at infinity.
func (p *Point) Y() *bn.Int { return p.y }

// IsInfinity reports whether p is the point at infinity.
func (p *Point) IsInfinity() bool { return p.inf }

// HasSquare reports whether p is finite and its y coordinate is a quadratic
// residue.
func (p *Point) HasSquare() bool {
	return !p.inf && IsSquare(p.y)
}

// Equal reports whether p and q are the same point.
func (p *Point) Equal(q *Point) bool {
	if p.inf || q.inf {
		return p.inf == q.inf
	}
	return p.x.Eq(q.x) && p.y.Eq(q.y)
}

// Mul returns k * p.  The scalar is reduced modulo N first.
func (p *Point) Mul(k *bn.Int) *Point {
	if p.inf {
		return Infinity()
	}
	s := scalar(k)
	var r secp256k1.JacobianPoint
	if p.Equal(G()) {
		secp256k1.ScalarBaseMultNonConst(s, &r)
	} else {
		j := p.jacobian()
		secp256k1.ScalarMultNonConst(s, &j, &r)
	}
	return fromJacobian(&r)
}

// Add returns p + q.
func (p *Point) Add(q *Point) *Point {
	switch {
	case p.inf:
		return q
	case q.inf:
		return p
	}
	a, b := p.jacobian(), q.jacobian()
	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&a, &b, &r)
	return fromJacobian(&r)
}

// MulAdd returns k1*p + k2*q.
func (p *Point) MulAdd(k1 *bn.Int, q *Point, k2 *bn.Int) *Point {
	return p.Mul(k1).Add(q.Mul(k2))
}

// Neg returns -p.
func (p *Point) Neg() *Point {
	if p.inf || p.y.IsZero() {
		return p
	}
	return &Point{x: p.x, y: P().Sub(p.y)}
}

// Compressed returns the 33-byte SEC1 compressed encoding of p.  The point at
// infinity encodes as a single zero byte.
func (p *Point) Compressed() []byte {
	if p.inf {
		return []byte{0x00}
	}
	out := make([]byte, 0, CompressedLen)
	prefix := byte(prefixEven)
	if p.y.IsOdd() {
		prefix = prefixOdd
	}
	out = append(out, prefix)
	return append(out, p.x.Bytes32()...)
}

// Uncompressed returns the 65-byte SEC1 uncompressed encoding of p.  The
// point at infinity encodes as a single zero byte.
func (p *Point) Uncompressed() []byte {
	if p.inf {
		return []byte{0x00}
	}
	out := make([]byte, 0, UncompressedLen)
	out = append(out, prefixUncompressed)
	out = append(out, p.x.Bytes32()...)
	return append(out, p.y.Bytes32()...)
}

// ToCompressed returns the compressed encoding of p.
func ToCompressed(p *Point) []byte {
	return p.Compressed()
}

// PubKey converts p into a decred public key.  It returns nil for the point at
// infinity.
func (p *Point) PubKey() *secp256k1.PublicKey {
	if p.inf {
		return nil
	}
	var fx, fy secp256k1.FieldVal
	fx.SetByteSlice(p.x.Bytes32())
	fy.SetByteSlice(p.y.Bytes32())
	return secp256k1.NewPublicKey(&fx, &fy)
}

// String returns the point as "(x, y)" in hex, or "infinity".
func (p *Point) String() string {
	if p.inf {
		return "infinity"
	}
	return "(" + hex.EncodeToString(p.x.Bytes32()) + ", " + hex.EncodeToString(p.y.Bytes32()) + ")"
}

func scalar(k *bn.Int) *secp256k1.ModNScalar {
	var s secp256k1.ModNScalar
	s.SetByteSlice(k.Umod(N()).Bytes32())
	return &s
}

func (p *Point) jacobian() secp256k1.JacobianPoint {
	var j secp256k1.JacobianPoint
	j.X.SetByteSlice(p.x.Bytes32())
	j.Y.SetByteSlice(p.y.Bytes32())
	j.Z.SetInt(1)
	return j
}

func fromJacobian(j *secp256k1.JacobianPoint) *Point {
	if (j.X.IsZero() && j.Y.IsZero()) || j.Z.IsZero() {
		return Infinity()
	}
	j.ToAffine()
	return &Point{
		x: bn.FromBuffer(j.X.Bytes()[:], bn.BigEndian),
		y: bn.FromBuffer(j.Y.Bytes()[:], bn.BigEndian),
	}
}
