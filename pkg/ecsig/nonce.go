package ecsig

import (
	"bytes"

	"github.com/mahdiidarabi/ecsign/pkg/bn"
	"github.com/mahdiidarabi/ecsign/pkg/digest"
	"github.com/mahdiidarabi/ecsign/pkg/point"
)

// schnorrNonceTag separates Schnorr nonces from ECDSA nonces derived from the
// same key and hash.  The two trailing spaces pad it to 16 bytes.
const schnorrNonceTag = "Schnorr+SHA256  "

var (
	singleZero = []byte{0x00}
	singleOne  = []byte{0x01}
)

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func inScalarRange(k *bn.Int) bool {
	return k.Sign() > 0 && k.Lt(point.N())
}

// DeterministicK derives the ECDSA nonce for hash and d per RFC6979 with
// HMAC-SHA256.
//
// Args:
//   - hash: the 32-byte message hash, reversed first when endian is little
//   - d: the private scalar, encoded as 32 bytes
//   - badrs: number of candidates already rejected by the signer because r
//     or s came out zero
//
// Each rejected candidate advances the generator by one extra round, as in
// step h.3 of RFC6979, instead of restarting from the initial state.  A
// candidate outside [1, N-1] is always skipped.
func DeterministicK(hash []byte, endian bn.Endian, d *bn.Int, badrs int) *bn.Int {
	v := bytes.Repeat(singleOne, 32)
	k := make([]byte, 32)
	x := d.Bytes32()
	h := hash
	if endian == bn.LittleEndian {
		h = bn.Reverse(hash)
	}

	k = digest.Sha256Hmac(concat(v, singleZero, x, h), k)
	v = digest.Sha256Hmac(v, k)
	k = digest.Sha256Hmac(concat(v, singleOne, x, h), k)
	v = digest.Sha256Hmac(v, k)
	v = digest.Sha256Hmac(v, k)
	t := bn.FromBuffer(v, bn.BigEndian)

	for i := 0; i < badrs || !inScalarRange(t); i++ {
		k = digest.Sha256Hmac(concat(v, singleZero), k)
		v = digest.Sha256Hmac(v, k)
		v = digest.Sha256Hmac(v, k)
		t = bn.FromBuffer(v, bn.BigEndian)
	}
	return t
}

// SchnorrNonce derives the Schnorr nonce from a 32-byte private key and a
// 32-byte big-endian message value.  It follows the RFC6979 HMAC-SHA256
// construction with the Schnorr tag appended to the key material, and has no
// retry counter.
func SchnorrNonce(d32, e32 []byte) *bn.Int {
	blob := concat(d32, e32, []byte(schnorrNonceTag))
	v := bytes.Repeat(singleOne, 32)
	k := make([]byte, 32)

	k = digest.Sha256Hmac(concat(v, singleZero, blob), k)
	v = digest.Sha256Hmac(v, k)
	k = digest.Sha256Hmac(concat(v, singleOne, blob), k)
	v = digest.Sha256Hmac(v, k)

	for {
		v = digest.Sha256Hmac(v, k)
		t := bn.FromBuffer(v, bn.BigEndian)
		if inScalarRange(t) {
			return t
		}
		k = digest.Sha256Hmac(concat(v, singleZero), k)
		v = digest.Sha256Hmac(v, k)
	}
}
