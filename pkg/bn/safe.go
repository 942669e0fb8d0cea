package bn

import (
	"fmt"

	"github.com/mahdiidarabi/ecsign/internal/check"
)

// maxResultSize bounds the result of every safe operation, independent of the
// operand bound the caller passes.
const maxResultSize = 8

// Size returns the number of bytes needed to hold the magnitude of x plus a
// sign bit.  The value may be fractional; it is only meant for comparing
// against a byte bound.  Zero counts as one bit.
func (x *Int) Size() float64 {
	bits := x.v.BitLen()
	if bits == 0 {
		bits = 1
	}
	return float64(bits+1) / 8
}

// SafeAdd returns x + y, failing with ErrOverflow when an operand is larger
// than maxSize bytes or the sum is larger than 8 bytes.
func (x *Int) SafeAdd(y *Int, maxSize int) (*Int, error) {
	return x.checked("add", y, x.Add(y), maxSize)
}

// SafeSub returns x - y under the same bounds as SafeAdd.
func (x *Int) SafeSub(y *Int, maxSize int) (*Int, error) {
	return x.checked("sub", y, x.Sub(y), maxSize)
}

// SafeMul returns x * y under the same bounds as SafeAdd.
func (x *Int) SafeMul(y *Int, maxSize int) (*Int, error) {
	return x.checked("mul", y, x.Mul(y), maxSize)
}

func (x *Int) checked(op string, y, result *Int, maxSize int) (*Int, error) {
	limit := float64(maxSize)
	if x.Size() > limit || y.Size() > limit || result.Size() > maxResultSize {
		return nil, check.MakeError(ErrOverflow,
			fmt.Sprintf("%s overflow: operands %.3f/%.3f bytes (max %d), result %.3f bytes (max %d)",
				op, x.Size(), y.Size(), maxSize, result.Size(), maxResultSize))
	}
	return result, nil
}
