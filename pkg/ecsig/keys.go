package ecsig

import (
	"fmt"

	"github.com/mahdiidarabi/ecsign/internal/check"
	"github.com/mahdiidarabi/ecsign/pkg/bn"
	"github.com/mahdiidarabi/ecsign/pkg/point"
)

// PrivateKeyLen is the length of a serialized private key.
const PrivateKeyLen = 32

// PrivateKey carries a secret scalar and whether its public key is encoded
// compressed.
type PrivateKey struct {
	D          *bn.Int // secret scalar in [1, N-1]
	Compressed bool    // encoding of the matching public key
}

// PublicKey carries a curve point and whether it is encoded compressed.
type PublicKey struct {
	Point      *point.Point
	Compressed bool
}

// NewPrivateKey returns a compressed private key for d, which must be in
// [1, N-1].
func NewPrivateKey(d *bn.Int) (*PrivateKey, error) {
	if d == nil || d.Sign() <= 0 || d.Gte(point.N()) {
		return nil, check.ArgError(ErrPrivateKeyRange, "d", "private key must be in [1, N-1]")
	}
	return &PrivateKey{D: d, Compressed: true}, nil
}

// ParsePrivateKey decodes a 32-byte big-endian private key.
func ParsePrivateKey(buf []byte) (*PrivateKey, error) {
	if len(buf) != PrivateKeyLen {
		return nil, check.ArgError(ErrPrivateKeyRange, "buf",
			fmt.Sprintf("private key must be %d bytes, got %d", PrivateKeyLen, len(buf)))
	}
	return NewPrivateKey(bn.FromBuffer(buf, bn.BigEndian))
}

// GeneratePrivateKey returns a new random compressed private key.
func GeneratePrivateKey() *PrivateKey {
	return &PrivateKey{D: RandomK(), Compressed: true}
}

// Bytes returns the 32-byte big-endian encoding of the secret.
func (k *PrivateKey) Bytes() []byte {
	return k.D.Bytes32()
}

// PubKey returns D*G with the key's compression flag.
func (k *PrivateKey) PubKey() *PublicKey {
	return &PublicKey{Point: point.G().Mul(k.D), Compressed: k.Compressed}
}

// ParsePublicKey decodes a SEC1 public key.  The compression flag follows the
// encoding that was parsed.
func ParsePublicKey(buf []byte) (*PublicKey, error) {
	p, err := point.Parse(buf)
	if err != nil {
		return nil, err
	}
	return &PublicKey{Point: p, Compressed: len(buf) == point.CompressedLen}, nil
}

// Bytes returns the SEC1 encoding selected by the compression flag.
func (k *PublicKey) Bytes() []byte {
	if k.Compressed {
		return k.Point.Compressed()
	}
	return k.Point.Uncompressed()
}

// Equal reports whether both keys hold the same point.  The compression flag
// is not compared.
func (k *PublicKey) Equal(other *PublicKey) bool {
	return k.Point.Equal(other.Point)
}
