// Package ecsig implements the two secp256k1 signature schemes of the library
// on a shared signing protocol:
//
//   - ECDSA with RFC6979 deterministic nonces, low-S canonical signatures
//     and public key recovery.  It is used for message signing.
//   - Schnorr with the square-y nonce convention and the
//     "Schnorr+SHA256  " nonce tag.  It is used for transaction signing.
//
// # Usage
//
// The simplest entry points sign and verify a 32-byte hash directly:
//
//	key, _ := ecsig.NewPrivateKey(d)
//	sig, err := ecsig.Sign(ecsig.ECDSA, hash, key)
//	ok := ecsig.Verify(ecsig.ECDSA, hash, sig, key.PubKey())
//
// For full control, build a Context and call the scheme's methods.  Both Sign
// and Verify are pure functions of the Context: they return a fresh
// *Signature or Result and never write into the Context.
//
//	ctx := ecsig.Context{Hash: hash, Endian: bn.LittleEndian, PrivateKey: key}
//	sig, err := ecsig.ECDSA.Sign(ctx)
//	ctx.PublicKey, ctx.Signature = key.PubKey(), sig
//	res, err := ecsig.ECDSA.Verify(ctx)
//
// Errors are returned only for misuse, such as a missing key or signature.
// An invalid signature is reported as Result{Verified: false} with a Reason
// that wraps one of the error kinds in this package.
//
// # Wire formats
//
// Signatures serialize to the 65-byte compact recoverable form
// (SerializeCompact), the 64-byte Schnorr form (SerializeSchnorr) and strict
// DER (Serialize).
package ecsig
