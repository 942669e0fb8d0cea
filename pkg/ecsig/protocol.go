package ecsig

import (
	"fmt"
	"strings"

	"github.com/mahdiidarabi/ecsign/internal/check"
	"github.com/mahdiidarabi/ecsign/pkg/bn"
)

// HashLen is the required length of the hash passed to Sign and Verify.
const HashLen = 32

// Scheme selects a signature algorithm.  The set is closed: only the
// constants below are valid.
type Scheme int

const (
	// ECDSA is recoverable ECDSA with RFC6979 nonces and low-S signatures.
	ECDSA Scheme = iota

	// Schnorr is the square-y Schnorr variant.
	Schnorr
)

// String returns the lower-case name of the scheme.
func (s Scheme) String() string {
	switch s {
	case ECDSA:
		return "ecdsa"
	case Schnorr:
		return "schnorr"
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

// ParseScheme returns the scheme named name, ignoring case.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(name) {
	case "ecdsa":
		return ECDSA, nil
	case "schnorr":
		return Schnorr, nil
	}
	return 0, check.ArgError(ErrUnknownScheme, "name", fmt.Sprintf("unknown scheme %q", name))
}

// Context holds the inputs of one sign or verify call.  It is a plain value:
// Sign and Verify read it and return their results, so a Context may be
// copied and reused freely.
type Context struct {
	Hash       []byte      // 32-byte message hash
	Endian     bn.Endian   // byte order of Hash
	PrivateKey *PrivateKey // required by Sign
	PublicKey  *PublicKey  // required by Verify; derived from PrivateKey by Sign
	Nonce      *bn.Int     // ECDSA only: explicit k, nil for RFC6979
	Signature  *Signature  // required by Verify
}

// Result is the outcome of a verification.
type Result struct {
	Verified bool
	Reason   error // why verification failed, nil when Verified
}

// Sign signs ctx.Hash with ctx.PrivateKey.
//
// The returned signature's Compressed flag comes from ctx.PublicKey, or from
// the private key when no public key is set.  ECDSA signatures come back
// without a recovery id; see CalcI and SignWithCalcI.
func (s Scheme) Sign(ctx Context) (*Signature, error) {
	if err := check.Argument(len(ctx.Hash) == HashLen, ErrInvalidHashLen, "hash",
		fmt.Sprintf("hash must be %d bytes, got %d", HashLen, len(ctx.Hash))); err != nil {
		return nil, err
	}
	if err := check.State(ctx.PrivateKey != nil && ctx.PrivateKey.D != nil,
		ErrMissingPrivateKey, "private key is required to sign"); err != nil {
		return nil, err
	}

	d := ctx.PrivateKey.D
	e := bn.FromBuffer(ctx.Hash, ctx.Endian)

	var (
		r, sv *bn.Int
		err   error
	)
	switch s {
	case ECDSA:
		r, sv, err = ecdsaFindSignature(ctx, d, e)
	case Schnorr:
		r, sv, err = schnorrFindSignature(d, e)
	default:
		return nil, check.MakeError(ErrUnknownScheme, fmt.Sprintf("cannot sign with %s", s))
	}
	if err != nil {
		return nil, err
	}

	compressed := ctx.PrivateKey.Compressed
	if ctx.PublicKey != nil {
		compressed = ctx.PublicKey.Compressed
	}
	sig := NewSignature(r, sv)
	sig.Compressed = compressed
	return sig, nil
}

// Verify checks ctx.Signature against ctx.Hash and ctx.PublicKey.
//
// An error is returned only when the signature or public key is missing or
// the scheme is unknown.  A signature that does not verify yields
// Result{Verified: false} with the reason.
func (s Scheme) Verify(ctx Context) (Result, error) {
	if err := check.State(ctx.Signature != nil && ctx.Signature.R != nil && ctx.Signature.S != nil,
		ErrMissingSignature, "signature is required to verify"); err != nil {
		return Result{}, err
	}
	if err := check.State(ctx.PublicKey != nil && ctx.PublicKey.Point != nil,
		ErrMissingPublicKey, "public key is required to verify"); err != nil {
		return Result{}, err
	}

	var reason error
	switch s {
	case ECDSA:
		reason = ecdsaSigError(ctx)
	case Schnorr:
		reason = schnorrSigError(ctx)
	default:
		return Result{}, check.MakeError(ErrUnknownScheme, fmt.Sprintf("cannot verify with %s", s))
	}
	return Result{Verified: reason == nil, Reason: reason}, nil
}

// Option adjusts the Context built by the package-level Sign and Verify.
type Option func(*Context)

// WithEndian sets the byte order of the hash.
func WithEndian(endian bn.Endian) Option {
	return func(ctx *Context) {
		ctx.Endian = endian
	}
}

// WithNonce makes ECDSA signing start from the nonce k instead of the
// RFC6979 nonce.  Schnorr ignores it.
func WithNonce(k *bn.Int) Option {
	return func(ctx *Context) {
		ctx.Nonce = k
	}
}

// WithRandomNonce makes ECDSA signing start from a random nonce.  Schnorr
// ignores it.
func WithRandomNonce() Option {
	return func(ctx *Context) {
		ctx.Nonce = RandomK()
	}
}

// Sign signs a 32-byte hash with key using scheme.
func Sign(scheme Scheme, hash []byte, key *PrivateKey, opts ...Option) (*Signature, error) {
	ctx := Context{Hash: hash, PrivateKey: key}
	for _, opt := range opts {
		opt(&ctx)
	}
	return scheme.Sign(ctx)
}

// Verify reports whether sig is a valid scheme signature of hash by pub.
func Verify(scheme Scheme, hash []byte, sig *Signature, pub *PublicKey, opts ...Option) bool {
	ctx := Context{Hash: hash, PublicKey: pub, Signature: sig}
	for _, opt := range opts {
		opt(&ctx)
	}
	res, err := scheme.Verify(ctx)
	return err == nil && res.Verified
}

// failure builds a verification failure reason.
func failure(kind check.ErrorKind, desc string) error {
	return check.MakeError(kind, desc)
}
