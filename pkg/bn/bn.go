// Package bn provides the arbitrary-precision integer used by the signing
// packages.  It wraps math/big and adds the byte encodings a blockchain
// library needs: explicit-size buffers, endianness, and the sign-magnitude
// script number format.
//
// An Int is immutable once constructed.  Every arithmetic method allocates and
// returns a new *Int, so values can be shared freely between goroutines.
package bn

import (
	"math/big"
	"strings"

	"github.com/mahdiidarabi/ecsign/internal/check"
	"github.com/templexxx/xhex"
)

// Int is an arbitrary-precision signed integer.
type Int struct {
	v big.Int
}

var (
	// Zero is the value 0.
	Zero = FromInt64(0)

	// One is the value 1.
	One = FromInt64(1)
)

func wrap(v *big.Int) *Int {
	x := new(Int)
	x.v.Set(v)
	return x
}

// FromInt64 returns n as an Int.
func FromInt64(n int64) *Int {
	x := new(Int)
	x.v.SetInt64(n)
	return x
}

// FromBigInt returns a copy of v as an Int.  A nil v yields zero.
func FromBigInt(v *big.Int) *Int {
	if v == nil {
		return new(Int)
	}
	return wrap(v)
}

// FromString parses s in the given base.  Base 0 honors the usual 0x, 0o and
// 0b prefixes, and base 16 accepts an optional 0x prefix.
func FromString(s string, base int) (*Int, error) {
	if base == 16 {
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	}
	x := new(Int)
	if _, ok := x.v.SetString(s, base); !ok {
		return nil, check.ArgError(ErrInvalidString, "s",
			"cannot parse "+quote(s)+" as an integer")
	}
	return x, nil
}

// FromHex parses a big-endian hex string, with or without a 0x prefix.
func FromHex(s string) (*Int, error) {
	return FromString(s, 16)
}

// MustFromHex is like FromHex but panics on malformed input.  It is meant for
// package-level constants.
func MustFromHex(s string) *Int {
	x, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return x
}

func quote(s string) string {
	if len(s) > 80 {
		s = s[:77] + "..."
	}
	return "\"" + s + "\""
}

// BigInt returns a copy of the value as a *big.Int.
func (x *Int) BigInt() *big.Int {
	return new(big.Int).Set(&x.v)
}

// Int64 returns the low 64 bits of x as a signed integer.
func (x *Int) Int64() int64 {
	return x.v.Int64()
}

// Text returns the value in the given base.
func (x *Int) Text(base int) string {
	return x.v.Text(base)
}

// String returns the decimal representation of x.
func (x *Int) String() string {
	return x.v.String()
}

// Hex returns the natural big-endian buffer encoding of x as hex.  The
// output always has an even length and carries no sign; negative values
// encode their magnitude.
func (x *Int) Hex() string {
	buf := x.Buffer(BufferOpts{})
	dst := make([]byte, len(buf)*2)
	xhex.Encode(dst, buf)
	return string(dst)
}

// Sign returns -1, 0 or 1 depending on the sign of x.
func (x *Int) Sign() int { return x.v.Sign() }

// IsZero reports whether x == 0.
func (x *Int) IsZero() bool { return x.v.Sign() == 0 }

// IsOdd reports whether the magnitude of x is odd.
func (x *Int) IsOdd() bool { return x.v.Bit(0) == 1 }

// BitLen returns the bit length of the magnitude of x.
func (x *Int) BitLen() int { return x.v.BitLen() }

// Cmp compares x and y and returns -1, 0 or 1.
func (x *Int) Cmp(y *Int) int { return x.v.Cmp(&y.v) }

// Eq reports whether x == y.
func (x *Int) Eq(y *Int) bool { return x.v.Cmp(&y.v) == 0 }

// Lt reports whether x < y.
func (x *Int) Lt(y *Int) bool { return x.v.Cmp(&y.v) < 0 }

// Lte reports whether x <= y.
func (x *Int) Lte(y *Int) bool { return x.v.Cmp(&y.v) <= 0 }

// Gt reports whether x > y.
func (x *Int) Gt(y *Int) bool { return x.v.Cmp(&y.v) > 0 }

// Gte reports whether x >= y.
func (x *Int) Gte(y *Int) bool { return x.v.Cmp(&y.v) >= 0 }

// Add returns x + y.
func (x *Int) Add(y *Int) *Int {
	z := new(Int)
	z.v.Add(&x.v, &y.v)
	return z
}

// Sub returns x - y.
func (x *Int) Sub(y *Int) *Int {
	z := new(Int)
	z.v.Sub(&x.v, &y.v)
	return z
}

// Mul returns x * y.
func (x *Int) Mul(y *Int) *Int {
	z := new(Int)
	z.v.Mul(&x.v, &y.v)
	return z
}

// Mod returns the remainder of x / y truncated toward zero, so the result
// takes the sign of x.  It panics if y is zero.
func (x *Int) Mod(y *Int) *Int {
	z := new(Int)
	z.v.Rem(&x.v, &y.v)
	return z
}

// Umod returns x mod |y| in the range [0, |y|).  It panics if y is zero.
func (x *Int) Umod(y *Int) *Int {
	var m big.Int
	m.Abs(&y.v)
	z := new(Int)
	z.v.Mod(&x.v, &m)
	return z
}

// Neg returns -x.
func (x *Int) Neg() *Int {
	z := new(Int)
	z.v.Neg(&x.v)
	return z
}

// Abs returns |x|.
func (x *Int) Abs() *Int {
	z := new(Int)
	z.v.Abs(&x.v)
	return z
}

// Invm returns the multiplicative inverse of x modulo m, or nil when none
// exists.
func (x *Int) Invm(m *Int) *Int {
	z := new(Int)
	if z.v.ModInverse(x.Umod(m).BigInt(), &m.v) == nil {
		return nil
	}
	return z
}

// Exp returns x**y mod m.  The modulus must be positive.
func (x *Int) Exp(y, m *Int) *Int {
	z := new(Int)
	z.v.Exp(&x.v, &y.v, &m.v)
	return z
}

// Rsh returns x >> n.
func (x *Int) Rsh(n uint) *Int {
	z := new(Int)
	z.v.Rsh(&x.v, n)
	return z
}
