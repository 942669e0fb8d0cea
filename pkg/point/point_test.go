package point

import (
	"encoding/hex"
	"sync"
	"testing"

	"github.com/mahdiidarabi/ecsign/pkg/bn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	twoG = mustPoint("C6047F9441ED7D6D3045406E95C07CD85C778E4B8CEF3CA7ABAC09B95C709EE5",
		"1AE168FEA63DC339A3C58419466CEAEEF7F632653266D0E1236431A950CFE52A")
	threeG = mustPoint("F9308A019258C31049344F85F89D5229B531C845836F99B08601F113BCE036F9",
		"388F7B0F632DE8140FE337E62A37F3566500A99934C2231B6CB9FD7584B8E672")
)

func mustPoint(x, y string) *Point {
	p, err := New(bn.MustFromHex(x), bn.MustFromHex(y), false)
	if err != nil {
		panic(err)
	}
	return p
}

func TestConstants(t *testing.T) {
	require.NoError(t, G().Validate())
	assert.Equal(t, "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		hex.EncodeToString(G().Compressed()))
	assert.True(t, HalfN().Eq(bn.MustFromHex("7FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF5D576E7357A4501DDFE92F46681B20A0")))
	assert.True(t, N().Lt(P()))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Same(t, G(), G())
		}()
	}
	wg.Wait()
}

func TestArithmetic(t *testing.T) {
	assert.True(t, G().Mul(bn.FromInt64(2)).Equal(twoG))
	assert.True(t, G().Add(G()).Equal(twoG))
	assert.True(t, twoG.Add(G()).Equal(threeG))
	assert.True(t, G().MulAdd(bn.One, G(), bn.FromInt64(2)).Equal(threeG))
	assert.True(t, twoG.Mul(bn.One).Equal(twoG))

	assert.True(t, G().Mul(N()).IsInfinity())
	assert.True(t, G().Mul(bn.Zero).IsInfinity())
	assert.True(t, G().Add(G().Neg()).IsInfinity())
	assert.True(t, G().Mul(N().Sub(bn.One)).Equal(G().Neg()))
	assert.True(t, G().Mul(bn.FromInt64(-1)).Equal(G().Neg()), "negative scalars are reduced mod N")

	assert.True(t, Infinity().Add(G()).Equal(G()))
	assert.True(t, G().Add(Infinity()).Equal(G()))
	assert.True(t, Infinity().Mul(bn.FromInt64(5)).IsInfinity())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		p    *Point
		err  error
	}{
		{"generator", G(), nil},
		{"negated generator", G().Neg(), nil},
		{"infinity", Infinity(), ErrPointAtInfinity},
		{"inconsistent y", &Point{x: G().X(), y: G().Y().Add(bn.FromInt64(2))}, ErrInvalidY},
		{"flipped parity", &Point{x: G().X(), y: G().Y().Add(bn.One)}, ErrInvalidY},
		{"x too big", &Point{x: P(), y: bn.One}, ErrXTooBig},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.p.Validate()
			if test.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, test.err)
		})
	}

	_, err := New(G().X(), G().Y().Add(bn.FromInt64(2)), false)
	require.ErrorIs(t, err, ErrInvalidY)
	p, err := New(G().X(), G().Y().Add(bn.FromInt64(2)), true)
	require.NoError(t, err, "skip validation accepts any coordinates")
	assert.False(t, p.Equal(G()))
}

func TestFromX(t *testing.T) {
	even, err := FromX(false, G().X())
	require.NoError(t, err)
	odd, err := FromX(true, G().X())
	require.NoError(t, err)
	assert.True(t, even.Equal(G()), "the generator has an even y")
	assert.True(t, odd.Equal(G().Neg()))

	_, err = FromX(false, P())
	require.ErrorIs(t, err, ErrXTooBig)

	var on, off int
	for i := int64(1); i <= 40; i++ {
		x := bn.FromInt64(i)
		rhs := x.Mul(x).Mul(x).Add(bn.FromInt64(7)).Umod(P())
		_, err := FromX(false, x)
		if IsSquare(rhs) {
			require.NoError(t, err, "x=%d", i)
			on++
		} else {
			require.ErrorIs(t, err, ErrNotOnCurve, "x=%d", i)
			off++
		}
	}
	assert.NotZero(t, on)
	assert.NotZero(t, off)
}

func TestSquares(t *testing.T) {
	assert.True(t, IsSquare(bn.FromInt64(4)))
	assert.True(t, IsSquare(bn.One))
	assert.False(t, IsSquare(bn.Zero))
	assert.False(t, IsSquare(P().Sub(bn.One)), "-1 is not a square since P = 3 mod 4")

	// Exactly one of y and -y is a square.
	for _, p := range []*Point{G(), twoG, threeG} {
		assert.NotEqual(t, p.HasSquare(), p.Neg().HasSquare())
	}
	assert.False(t, Infinity().HasSquare())
}

func TestEncoding(t *testing.T) {
	for _, p := range []*Point{G(), G().Neg(), twoG, threeG} {
		c := p.Compressed()
		require.Len(t, c, CompressedLen)
		assert.Equal(t, c, ToCompressed(p))
		back, err := Parse(c)
		require.NoError(t, err)
		assert.True(t, back.Equal(p))

		u := p.Uncompressed()
		require.Len(t, u, UncompressedLen)
		back, err = Parse(u)
		require.NoError(t, err)
		assert.True(t, back.Equal(p))

		assert.Equal(t, c, p.PubKey().SerializeCompressed())
		assert.Equal(t, u, p.PubKey().SerializeUncompressed())
	}

	_, err := Parse([]byte{0x00})
	require.ErrorIs(t, err, ErrPointAtInfinity)
	_, err = Parse(make([]byte, 32))
	require.ErrorIs(t, err, ErrInvalidFormat)

	bad := G().Uncompressed()
	bad[64] ^= 0x02
	_, err = Parse(bad)
	require.ErrorIs(t, err, ErrInvalidY)

	assert.Equal(t, "infinity", Infinity().String())
	assert.Nil(t, Infinity().PubKey())
}
