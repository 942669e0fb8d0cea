// Package digest collects the hash functions the signing schemes consume.
//
// SHA-256 is backed by github.com/minio/sha256-simd, which uses SIMD
// instructions where the CPU has them.
package digest

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha512"

	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/ripemd160"
)

// Size is the size of a SHA-256 digest in bytes.
const Size = sha256.Size

// Sha256 returns the SHA-256 digest of buf.
func Sha256(buf []byte) []byte {
	h := sha256.Sum256(buf)
	return h[:]
}

// Sha256Sha256 returns SHA-256 applied twice, as used for bitcoin ids and
// message digests.
func Sha256Sha256(buf []byte) []byte {
	h := sha256.Sum256(buf)
	h = sha256.Sum256(h[:])
	return h[:]
}

// Sha512 returns the SHA-512 digest of buf.
func Sha512(buf []byte) []byte {
	h := sha512.Sum512(buf)
	return h[:]
}

// Sha1 returns the SHA-1 digest of buf.  It is only here for script opcodes
// that still reference it.
func Sha1(buf []byte) []byte {
	h := sha1.Sum(buf)
	return h[:]
}

// Ripemd160 returns the RIPEMD-160 digest of buf.
func Ripemd160(buf []byte) []byte {
	r := ripemd160.New()
	r.Write(buf)
	return r.Sum(nil)
}

// Sha256Ripemd160 returns ripemd160(sha256(buf)), commonly known as hash160.
func Sha256Ripemd160(buf []byte) []byte {
	return Ripemd160(Sha256(buf))
}

// Sha256Hmac returns HMAC-SHA256 of data keyed with key.  Note the argument
// order: data first, then key.
func Sha256Hmac(data, key []byte) []byte {
	m := hmac.New(sha256.New, key)
	m.Write(data)
	return m.Sum(nil)
}

// Sha512Hmac returns HMAC-SHA512 of data keyed with key.
func Sha512Hmac(data, key []byte) []byte {
	m := hmac.New(sha512.New, key)
	m.Write(data)
	return m.Sum(nil)
}
