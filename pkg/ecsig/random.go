package ecsig

import (
	"github.com/mahdiidarabi/ecsign/pkg/bn"
	"lukechampine.com/frand"
)

// RandomK returns a uniformly random scalar in [1, N-1] drawn from frand's
// cryptographically secure generator.
func RandomK() *bn.Int {
	for {
		k := bn.FromBuffer(frand.Bytes(32), bn.BigEndian)
		if inScalarRange(k) {
			return k
		}
	}
}
