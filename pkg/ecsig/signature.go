package ecsig

import (
	"fmt"

	"github.com/mahdiidarabi/ecsign/internal/check"
	"github.com/mahdiidarabi/ecsign/pkg/bn"
	"github.com/mahdiidarabi/ecsign/pkg/point"
)

const (
	// CompactSigLen is the length of a compact recoverable signature.
	CompactSigLen = 65

	// SchnorrSigLen is the length of a serialized Schnorr signature without
	// a sighash byte.
	SchnorrSigLen = 64

	// NoRecoveryID marks a signature whose recovery id is unknown.
	NoRecoveryID = -1

	compactSigMagicOffset = 27
	compactSigCompPubKey  = 4
)

// lowSThreshold is the largest s accepted as canonical.  It equals N >> 1.
var lowSThreshold = bn.MustFromHex("7FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF5D576E7357A4501DDFE92F46681B20A0")

// Signature is an (r, s) pair with the optional recovery data of a compact
// ECDSA signature.  Signatures are returned fresh by every signing call and
// are not modified afterwards; WithRecoveryID and ToLowS return copies.
type Signature struct {
	R          *bn.Int
	S          *bn.Int
	RecoveryID int  // 0..3, or NoRecoveryID
	Compressed bool // whether the signing public key was compressed
}

// NewSignature returns the signature (r, s) without a recovery id.
func NewSignature(r, s *bn.Int) *Signature {
	return &Signature{R: r, S: s, RecoveryID: NoRecoveryID}
}

// WithRecoveryID returns a copy of sig carrying recovery id i.
func (sig *Signature) WithRecoveryID(i int) *Signature {
	c := *sig
	c.RecoveryID = i
	return &c
}

// HasRecoveryID reports whether the recovery id is set and in range.
func (sig *Signature) HasRecoveryID() bool {
	return sig.RecoveryID >= 0 && sig.RecoveryID <= 3
}

// IsLowS reports whether s is at most N/2.
func (sig *Signature) IsLowS() bool {
	return sig.S.Lte(lowSThreshold)
}

// ToLowS returns a copy of sig with s replaced by N - s when s is above N/2.
// Negating s flips the parity of the nonce point, so a known recovery id has
// its low bit toggled.
func (sig *Signature) ToLowS() *Signature {
	c := *sig
	if sig.IsLowS() {
		return &c
	}
	c.S = point.N().Sub(sig.S)
	if c.HasRecoveryID() {
		c.RecoveryID ^= 1
	}
	return &c
}

// Equal reports whether both signatures have the same r and s.
func (sig *Signature) Equal(other *Signature) bool {
	return sig.R.Eq(other.R) && sig.S.Eq(other.S)
}

// SerializeCompact returns the 65-byte compact recoverable encoding
//
//	<27 + recovery id + 4 if compressed> <32-byte r> <32-byte s>
//
// The recovery id must be set, see CalcI.
func (sig *Signature) SerializeCompact() ([]byte, error) {
	if !sig.HasRecoveryID() {
		return nil, check.ArgError(ErrInvalidRecoveryID, "sig",
			fmt.Sprintf("recovery id %d is not in 0..3", sig.RecoveryID))
	}
	code := compactSigMagicOffset + sig.RecoveryID
	if sig.Compressed {
		code += compactSigCompPubKey
	}
	b := make([]byte, 0, CompactSigLen)
	b = append(b, byte(code))
	b = append(b, sig.R.Bytes32()...)
	return append(b, sig.S.Bytes32()...), nil
}

// ParseCompact decodes a compact recoverable signature.
func ParseCompact(buf []byte) (*Signature, error) {
	if len(buf) != CompactSigLen {
		return nil, check.ArgError(ErrSigInvalidLen, "buf",
			fmt.Sprintf("compact signature must be %d bytes, got %d", CompactSigLen, len(buf)))
	}
	i := int(buf[0]) - compactSigMagicOffset - compactSigCompPubKey
	compressed := true
	if i < 0 {
		compressed = false
		i += compactSigCompPubKey
	}
	if i < 0 || i > 3 {
		return nil, check.ArgError(ErrSigInvalidRecoveryCode, "buf",
			fmt.Sprintf("invalid compact signature recovery code %d", buf[0]))
	}
	return &Signature{
		R:          bn.FromBuffer(buf[1:33], bn.BigEndian),
		S:          bn.FromBuffer(buf[33:], bn.BigEndian),
		RecoveryID: i,
		Compressed: compressed,
	}, nil
}

// SerializeSchnorr returns the 64-byte <32-byte r> <32-byte s> encoding.
func (sig *Signature) SerializeSchnorr() []byte {
	b := make([]byte, 0, SchnorrSigLen)
	b = append(b, ProperSizeBuffer(sig.R)...)
	return append(b, ProperSizeBuffer(sig.S)...)
}

// ParseSchnorr decodes a 64-byte Schnorr signature, or a 65-byte one whose
// trailing byte is a sighash flag.  The flag is returned as a one-byte slice,
// or nil when absent.
func ParseSchnorr(buf []byte) (*Signature, []byte, error) {
	var sighash []byte
	switch len(buf) {
	case SchnorrSigLen:
	case SchnorrSigLen + 1:
		sighash = []byte{buf[SchnorrSigLen]}
	default:
		return nil, nil, check.ArgError(ErrSigInvalidLen, "buf",
			fmt.Sprintf("schnorr signature must be %d or %d bytes, got %d",
				SchnorrSigLen, SchnorrSigLen+1, len(buf)))
	}
	sig := NewSignature(bn.FromBuffer(buf[:32], bn.BigEndian), bn.FromBuffer(buf[32:64], bn.BigEndian))
	return sig, sighash, nil
}

// ProperSizeBuffer returns the big-endian encoding of v left-padded to at
// least 32 bytes.  Longer values are returned unpadded.
func ProperSizeBuffer(v *bn.Int) []byte {
	buf := v.Buffer(bn.BufferOpts{})
	if len(buf) < 32 {
		return v.Buffer(bn.BufferOpts{Size: 32})
	}
	return buf
}
