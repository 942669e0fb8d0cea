package bn

import (
	"fmt"

	"github.com/mahdiidarabi/ecsign/internal/check"
)

// DefaultScriptNumSize is the maximum script number size in bytes used when
// the caller does not supply one.
const DefaultScriptNumSize = 4

// FromScriptNumBuffer decodes a little-endian sign-magnitude script number.
//
// The buffer may be at most maxSize bytes, where a non-positive maxSize means
// DefaultScriptNumSize.  When requireMinimal is set, the encoding must use the
// fewest possible bytes: the most significant byte, ignoring its sign bit, may
// only be zero when the byte below it has its top bit set.  That extra byte is
// needed for values such as +-255, which encode as 0xff00 and 0xff80.
func FromScriptNumBuffer(buf []byte, requireMinimal bool, maxSize int) (*Int, error) {
	if maxSize <= 0 {
		maxSize = DefaultScriptNumSize
	}
	if len(buf) > maxSize {
		return nil, check.ArgError(ErrScriptNumOverflow, "buf",
			fmt.Sprintf("script number overflow: %d > %d bytes", len(buf), maxSize))
	}

	if requireMinimal && len(buf) > 0 {
		// This also rejects negative zero, 0x80.
		if buf[len(buf)-1]&0x7f == 0 {
			if len(buf) <= 1 || buf[len(buf)-2]&0x80 == 0 {
				return nil, check.ArgError(ErrNonMinimalScriptNum, "buf",
					"non-minimally encoded script number")
			}
		}
	}
	return FromSM(buf, LittleEndian), nil
}

// ScriptNumBuffer returns the script number encoding of x: little-endian
// sign-magnitude with zero as an empty slice.
func (x *Int) ScriptNumBuffer() []byte {
	return x.SM(LittleEndian)
}

// ScriptBigNumBuffer returns the little-endian sign-magnitude encoding of x
// with an explicit sign byte in the most significant position.  Unlike
// ScriptNumBuffer, zero encodes as a single zero byte.
func (x *Int) ScriptBigNumBuffer() []byte {
	mag := x.v.Bytes()
	sign := byte(0x00)
	if x.Sign() < 0 {
		sign = 0x80
	}
	return Reverse(append([]byte{sign}, mag...))
}
