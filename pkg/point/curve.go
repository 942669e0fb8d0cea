package point

import (
	"sync"

	"github.com/mahdiidarabi/ecsign/pkg/bn"
)

const (
	orderHex = "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"
	primeHex = "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F"
	gxHex    = "79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"
	gyHex    = "483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"
)

var (
	curveN     = sync.OnceValue(func() *bn.Int { return bn.MustFromHex(orderHex) })
	curveP     = sync.OnceValue(func() *bn.Int { return bn.MustFromHex(primeHex) })
	curveHalfN = sync.OnceValue(func() *bn.Int { return curveN().Rsh(1) })
	sqrtExp    = sync.OnceValue(func() *bn.Int { return curveP().Sub(bn.One).Rsh(1) })
	generator  = sync.OnceValue(func() *Point {
		return &Point{x: bn.MustFromHex(gxHex), y: bn.MustFromHex(gyHex)}
	})
)

// G returns the generator of the secp256k1 group.
func G() *Point { return generator() }

// N returns the order of the secp256k1 group.
func N() *bn.Int { return curveN() }

// P returns the secp256k1 field prime.
func P() *bn.Int { return curveP() }

// HalfN returns N >> 1.
func HalfN() *bn.Int { return curveHalfN() }

// IsSquare reports whether x is a quadratic residue modulo P, using Euler's
// criterion.
func IsSquare(x *bn.Int) bool {
	return x.Umod(P()).Exp(sqrtExp(), P()).Eq(bn.One)
}
