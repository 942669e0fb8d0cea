package ecsig

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/mahdiidarabi/ecsign/pkg/bn"
	"github.com/mahdiidarabi/ecsign/pkg/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature_Compact(t *testing.T) {
	for _, compressed := range []bool{true, false} {
		key := &PrivateKey{D: bn.FromInt64(7), Compressed: compressed}
		sig, err := SignWithCalcI(Context{Hash: vectorHash(), PrivateKey: key})
		require.NoError(t, err)

		buf, err := sig.SerializeCompact()
		require.NoError(t, err)
		require.Len(t, buf, CompactSigLen)

		code := 27 + sig.RecoveryID
		if compressed {
			code += 4
		}
		assert.Equal(t, byte(code), buf[0])

		back, err := ParseCompact(buf)
		require.NoError(t, err)
		assert.True(t, back.Equal(sig))
		assert.Equal(t, sig.RecoveryID, back.RecoveryID)
		assert.Equal(t, compressed, back.Compressed)
	}

	_, err := NewSignature(bn.One, bn.One).SerializeCompact()
	require.ErrorIs(t, err, ErrInvalidRecoveryID)

	_, err = ParseCompact(make([]byte, 64))
	require.ErrorIs(t, err, ErrSigInvalidLen)

	bad := make([]byte, CompactSigLen)
	for _, code := range []byte{0, 26, 35, 255} {
		bad[0] = code
		_, err = ParseCompact(bad)
		require.ErrorIs(t, err, ErrSigInvalidRecoveryCode, "code %d", code)
	}
	for code := byte(27); code <= 34; code++ {
		bad[0] = code
		sig, err := ParseCompact(bad)
		require.NoError(t, err)
		assert.Equal(t, int(code-27)%4, sig.RecoveryID)
		assert.Equal(t, code >= 31, sig.Compressed)
	}
}

func TestSignature_Schnorr(t *testing.T) {
	sig, err := Sign(Schnorr, vectorHash(), mustKey(t, "3"))
	require.NoError(t, err)

	buf := sig.SerializeSchnorr()
	back, sighash, err := ParseSchnorr(buf)
	require.NoError(t, err)
	assert.Nil(t, sighash)
	assert.True(t, back.Equal(sig))

	back, sighash, err = ParseSchnorr(append(buf, 0x41))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41}, sighash)
	assert.True(t, back.Equal(sig))

	_, _, err = ParseSchnorr(buf[:63])
	require.ErrorIs(t, err, ErrSigInvalidLen)
}

func TestSignature_DER(t *testing.T) {
	key := mustKey(t, "1")
	sig, err := Sign(ECDSA, vectorHash(), key)
	require.NoError(t, err)

	der := sig.Serialize()
	back, err := ParseDER(der)
	require.NoError(t, err)
	assert.True(t, back.Equal(sig))

	small := NewSignature(bn.One, bn.FromInt64(0x80))
	assert.Equal(t, "300702010102020080", hex.EncodeToString(small.Serialize()))
	back, err = ParseDER(small.Serialize())
	require.NoError(t, err)
	assert.True(t, back.Equal(small))
}

func TestSignature_ParseDERErrors(t *testing.T) {
	tests := []struct {
		name string
		sig  string
		kind error
	}{
		{"too short", "30060201010201", ErrSigTooShort},
		{"too long", "30" + "46" + "0221" + "00" + strings.Repeat("ff", 32) + "0221" + "00" + strings.Repeat("ff", 32) + "00", ErrSigTooLong},
		{"bad sequence id", "3106020101020101", ErrSigInvalidSeqID},
		{"bad data length", "3007020101020101", ErrSigInvalidDataLen},
		{"missing S type", "3006020401010101", ErrSigMissingSTypeID},
		{"missing S length", "3006020301010102", ErrSigMissingSLen},
		{"bad S length", "3006020101020201", ErrSigInvalidSLen},
		{"bad R marker", "3006030101020101", ErrSigInvalidRIntID},
		{"zero R length", "3006020002020101", ErrSigZeroRLen},
		{"negative R", "3006020181020101", ErrSigNegativeR},
		{"R padding", "300702020001020101", ErrSigTooMuchRPadding},
		{"bad S marker", "3006020101030101", ErrSigInvalidSIntID},
		{"negative S", "3006020101020181", ErrSigNegativeS},
		{"S padding", "300702010102020001", ErrSigTooMuchSPadding},
		{"zero R value", "3006020100020101", ErrSigRange},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf, err := hex.DecodeString(test.sig)
			require.NoError(t, err)
			_, err = ParseDER(buf)
			require.ErrorIs(t, err, test.kind)
		})
	}
}

func TestSignature_LowS(t *testing.T) {
	half := point.HalfN()
	low := NewSignature(bn.One, half)
	assert.True(t, low.IsLowS())
	assert.True(t, low.ToLowS().Equal(low))

	high := NewSignature(bn.One, half.Add(bn.One)).WithRecoveryID(2)
	assert.False(t, high.IsLowS())
	fixed := high.ToLowS()
	assert.True(t, fixed.IsLowS())
	assert.True(t, fixed.S.Eq(point.N().Sub(half.Add(bn.One))))
	assert.Equal(t, 3, fixed.RecoveryID)
	assert.Equal(t, 2, high.RecoveryID, "ToLowS returns a copy")
}

func TestSignature_ToLowSKeepsRecovery(t *testing.T) {
	key := mustKey(t, "5")
	hash := vectorHash()
	sig, err := SignWithCalcI(Context{Hash: hash, PrivateKey: key})
	require.NoError(t, err)

	high := NewSignature(sig.R, point.N().Sub(sig.S)).WithRecoveryID(sig.RecoveryID ^ 1)
	pub, err := RecoverPublicKey(hash, bn.BigEndian, high)
	require.NoError(t, err)
	assert.True(t, pub.Equal(key.PubKey()))

	low := high.ToLowS()
	assert.True(t, low.Equal(sig))
	assert.Equal(t, sig.RecoveryID, low.RecoveryID)
}
