package bn

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	x, err := FromString("123456789012345678901234567890", 10)
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", x.String())

	h, err := FromString("0xff", 16)
	require.NoError(t, err)
	assert.Equal(t, int64(255), h.Int64())

	p, err := FromString("0b101", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.Int64())

	_, err = FromString("12z", 10)
	require.ErrorIs(t, err, ErrInvalidString)

	assert.True(t, FromBigInt(nil).IsZero())
	b := big.NewInt(-42)
	y := FromBigInt(b)
	b.SetInt64(7)
	assert.Equal(t, int64(-42), y.Int64(), "FromBigInt must copy its input")
}

func TestArithmeticReturnsNewValues(t *testing.T) {
	a := FromInt64(17)
	b := FromInt64(5)

	assert.Equal(t, int64(22), a.Add(b).Int64())
	assert.Equal(t, int64(12), a.Sub(b).Int64())
	assert.Equal(t, int64(85), a.Mul(b).Int64())
	assert.Equal(t, int64(2), a.Mod(b).Int64())
	assert.Equal(t, int64(-2), a.Neg().Mod(b).Int64(), "Mod keeps the sign of the dividend")
	assert.Equal(t, int64(3), a.Neg().Umod(b).Int64(), "Umod is never negative")
	assert.Equal(t, int64(3), a.Neg().Umod(b.Neg()).Int64())
	assert.Equal(t, int64(17), a.Int64(), "operands are not modified")

	inv := FromInt64(3).Invm(FromInt64(7))
	require.NotNil(t, inv)
	assert.Equal(t, int64(5), inv.Int64())
	assert.Nil(t, FromInt64(2).Invm(FromInt64(4)))

	assert.Equal(t, int64(1), FromInt64(4).Exp(FromInt64(3), FromInt64(7)).Int64())
}

func TestBufferRoundTrip(t *testing.T) {
	values := []string{"0", "1", "7f", "80", "ff", "0100", "deadbeef", "00112233445566778899aabbccddeeff"}
	for _, v := range values {
		x := MustFromHex(v)
		for _, size := range []int{0, 16, 32} {
			for _, endian := range []Endian{BigEndian, LittleEndian} {
				buf := x.Buffer(BufferOpts{Size: size, Endian: endian})
				if size > 0 {
					require.Len(t, buf, size)
				}
				back := FromBuffer(buf, endian)
				assert.True(t, x.Eq(back), "value %s size %d endian %s", v, size, endian)
			}
		}
	}
}

func TestBufferSizing(t *testing.T) {
	x := MustFromHex("0102")

	assert.Equal(t, []byte{0x00}, Zero.Buffer(BufferOpts{}))
	assert.Equal(t, []byte{0x01, 0x02}, x.Buffer(BufferOpts{}))
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x02}, x.Buffer(BufferOpts{Size: 4}))
	assert.Equal(t, []byte{0x02, 0x01, 0x00, 0x00}, x.Buffer(BufferOpts{Size: 4, Endian: LittleEndian}))
	assert.Equal(t, []byte{0x02}, x.Buffer(BufferOpts{Size: 1}), "trimming keeps the low bytes")
	assert.Len(t, One.Bytes32(), 32)
}

func TestFromBufferLittleEndian(t *testing.T) {
	assert.Equal(t, int64(0x0201), FromBuffer([]byte{0x01, 0x02}, LittleEndian).Int64())
	assert.Equal(t, int64(0x0102), FromBuffer([]byte{0x01, 0x02}, BigEndian).Int64())
}

func TestSMRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 127, -127, 128, -128, 255, -255, 32767, -32768, 1 << 40, -(1 << 40)} {
		x := FromInt64(n)
		for _, endian := range []Endian{BigEndian, LittleEndian} {
			assert.Equal(t, n, FromSM(x.SM(endian), endian).Int64(), "n=%d endian=%s", n, endian)
		}
	}
}

func TestSize(t *testing.T) {
	assert.Equal(t, 0.25, Zero.Size())
	assert.Equal(t, 0.25, One.Size())
	assert.Equal(t, 1.0, FromInt64(127).Size())
	assert.Equal(t, 1.125, FromInt64(128).Size())
	assert.Equal(t, 1.125, FromInt64(-128).Size(), "sign does not count twice")
}

func TestSafeArithmetic(t *testing.T) {
	small := FromInt64(1000)
	sum, err := small.SafeAdd(small, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), sum.Int64())

	diff, err := small.SafeSub(FromInt64(1), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(999), diff.Int64())

	prod, err := small.SafeMul(small, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), prod.Int64())

	// Operand larger than the operand bound.
	big5 := MustFromHex("7fffffffff")
	_, err = big5.SafeAdd(One, 4)
	require.ErrorIs(t, err, ErrOverflow)
	_, err = One.SafeSub(big5, 4)
	require.ErrorIs(t, err, ErrOverflow)

	// Operands within bound, result larger than eight bytes.
	max8 := MustFromHex("7fffffffffffffff")
	_, err = max8.SafeMul(max8, 8)
	require.ErrorIs(t, err, ErrOverflow)
	_, err = max8.SafeAdd(One, 8)
	require.ErrorIs(t, err, ErrOverflow)

	ok, err := max8.SafeSub(One, 8)
	require.NoError(t, err)
	assert.Equal(t, "7ffffffffffffffe", ok.Hex())
}

func TestHexHelpers(t *testing.T) {
	x := MustFromHex("0x00ff")
	assert.Equal(t, "ff", x.Hex())
	assert.Equal(t, "ff", hex.EncodeToString(x.Buffer(BufferOpts{})))
	assert.Panics(t, func() { MustFromHex("xyz") })

	tests := []struct {
		in   *Int
		want string
	}{
		{Zero, "00"},
		{One, "01"},
		{FromInt64(0x100), "0100"},
		{FromInt64(-255), "ff"},
	}
	for i, test := range tests {
		assert.Equal(t, test.want, test.in.Hex(), "#%d", i)
		assert.Zero(t, len(test.in.Hex())%2, "#%d", i)
	}
}
