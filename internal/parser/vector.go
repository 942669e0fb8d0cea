// Package parser reads signing and verification vectors from JSON or CSV
// files for the batch tools.
//
// A vector names a scheme, a message hash (or a message to hash with
// SHA-256), and whichever of private key, public key and signature the job
// needs.  Numbers may be written as 0x-prefixed or lettered hex, or as
// decimal.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mahdiidarabi/ecsign/pkg/bn"
	"github.com/mahdiidarabi/ecsign/pkg/digest"
	"github.com/mahdiidarabi/ecsign/pkg/ecsig"
)

// Vector is one signing or verification job.
type Vector struct {
	Index      int               // position in the source, starting at 0
	Scheme     ecsig.Scheme      // defaults to ECDSA
	Hash       []byte            // message hash
	Endian     bn.Endian         // byte order of Hash
	PrivateKey *ecsig.PrivateKey // nil when absent
	PublicKey  *ecsig.PublicKey  // nil when absent
	Signature  *ecsig.Signature  // nil when r or s is absent
}

// Context returns the signing context described by the vector.
func (v *Vector) Context() ecsig.Context {
	return ecsig.Context{
		Hash:       v.Hash,
		Endian:     v.Endian,
		PrivateKey: v.PrivateKey,
		PublicKey:  v.PublicKey,
		Signature:  v.Signature,
	}
}

// Fields names the keys (JSON) or header columns (CSV) a vector is read
// from.  Empty names fall back to DefaultFields.
type Fields struct {
	Scheme     string // "ecdsa" or "schnorr"
	Message    string // text hashed with SHA-256 when Hash is absent
	Hash       string // hex hash, takes precedence over Message
	Endian     string // "big" or "little"
	Key        string // private key
	PubKey     string // hex SEC1 public key
	R          string
	S          string
	RecoveryID string
	Compressed string // "true" or "false"
}

// DefaultFields returns the field names used when a parser leaves them empty.
func DefaultFields() Fields {
	return Fields{
		Scheme:     "scheme",
		Message:    "message",
		Hash:       "hash",
		Endian:     "endian",
		Key:        "key",
		PubKey:     "pubkey",
		R:          "r",
		S:          "s",
		RecoveryID: "i",
		Compressed: "compressed",
	}
}

func (f Fields) withDefaults() Fields {
	d := DefaultFields()
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return Fields{
		Scheme:     pick(f.Scheme, d.Scheme),
		Message:    pick(f.Message, d.Message),
		Hash:       pick(f.Hash, d.Hash),
		Endian:     pick(f.Endian, d.Endian),
		Key:        pick(f.Key, d.Key),
		PubKey:     pick(f.PubKey, d.PubKey),
		R:          pick(f.R, d.R),
		S:          pick(f.S, d.S),
		RecoveryID: pick(f.RecoveryID, d.RecoveryID),
		Compressed: pick(f.Compressed, d.Compressed),
	}
}

// record is a source-independent view of one input row.
type record func(field string) (any, bool)

// buildVector assembles a Vector from a record.
func buildVector(index int, f Fields, get record) (*Vector, error) {
	v := &Vector{Index: index}

	if val, ok := get(f.Scheme); ok {
		scheme, err := ecsig.ParseScheme(fmt.Sprint(val))
		if err != nil {
			return nil, fmt.Errorf("failed to parse scheme: %w", err)
		}
		v.Scheme = scheme
	}

	// Get the hash, or hash the message
	if val, ok := get(f.Hash); ok {
		h, err := DecodeHex(fmt.Sprint(val))
		if err != nil {
			return nil, fmt.Errorf("failed to parse hash: %w", err)
		}
		v.Hash = h
	} else if val, ok := get(f.Message); ok {
		msg, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("message field must be a string")
		}
		v.Hash = digest.Sha256([]byte(msg))
	} else {
		return nil, fmt.Errorf("missing %s or %s field", f.Hash, f.Message)
	}

	if val, ok := get(f.Endian); ok {
		switch strings.ToLower(fmt.Sprint(val)) {
		case "big", "be":
			v.Endian = bn.BigEndian
		case "little", "le":
			v.Endian = bn.LittleEndian
		default:
			return nil, fmt.Errorf("invalid endian %q", val)
		}
	}

	compressed := true
	if val, ok := get(f.Compressed); ok {
		c, err := parseBool(val)
		if err != nil {
			return nil, fmt.Errorf("failed to parse compressed: %w", err)
		}
		compressed = c
	}

	if val, ok := get(f.Key); ok {
		d, err := parseInt(val)
		if err != nil {
			return nil, fmt.Errorf("failed to parse key: %w", err)
		}
		key, err := ecsig.NewPrivateKey(d)
		if err != nil {
			return nil, fmt.Errorf("invalid key: %w", err)
		}
		key.Compressed = compressed
		v.PrivateKey = key
	}

	if val, ok := get(f.PubKey); ok {
		buf, err := DecodeHex(fmt.Sprint(val))
		if err != nil {
			return nil, fmt.Errorf("failed to parse pubkey: %w", err)
		}
		pub, err := ecsig.ParsePublicKey(buf)
		if err != nil {
			return nil, fmt.Errorf("invalid pubkey: %w", err)
		}
		v.PublicKey = pub
	} else if v.PrivateKey != nil {
		v.PublicKey = v.PrivateKey.PubKey()
	}

	rVal, hasR := get(f.R)
	sVal, hasS := get(f.S)
	switch {
	case hasR && hasS:
		r, err := parseInt(rVal)
		if err != nil {
			return nil, fmt.Errorf("failed to parse r: %w", err)
		}
		s, err := parseInt(sVal)
		if err != nil {
			return nil, fmt.Errorf("failed to parse s: %w", err)
		}
		v.Signature = ecsig.NewSignature(r, s)
		v.Signature.Compressed = compressed
		if v.PublicKey != nil {
			v.Signature.Compressed = v.PublicKey.Compressed
		}
	case hasR || hasS:
		return nil, fmt.Errorf("r and s must be given together")
	}

	if val, ok := get(f.RecoveryID); ok {
		if v.Signature == nil {
			return nil, fmt.Errorf("%s given without a signature", f.RecoveryID)
		}
		i, err := parseInt(val)
		if err != nil {
			return nil, fmt.Errorf("failed to parse recovery id: %w", err)
		}
		if i.Sign() < 0 || i.Gt(bn.FromInt64(3)) {
			return nil, fmt.Errorf("recovery id %s is not in 0..3", i)
		}
		v.Signature = v.Signature.WithRecoveryID(int(i.Int64()))
	}

	return v, nil
}

func parseBool(val any) (bool, error) {
	switch b := val.(type) {
	case bool:
		return b, nil
	case string:
		return strconv.ParseBool(b)
	}
	return false, fmt.Errorf("unsupported type: %T", val)
}

// FromValues builds a vector from field values keyed by the default field
// names.  Empty values count as absent.
func FromValues(values map[string]string) (*Vector, error) {
	get := func(field string) (any, bool) {
		val, ok := values[field]
		if !ok || strings.TrimSpace(val) == "" {
			return nil, false
		}
		return val, true
	}
	return buildVector(0, DefaultFields(), get)
}
