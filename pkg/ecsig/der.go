package ecsig

import (
	"errors"
	"fmt"

	dcrecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/mahdiidarabi/ecsign/internal/check"
	"github.com/mahdiidarabi/ecsign/pkg/bn"
)

const (
	asn1SequenceID = 0x30
	asn1IntegerID  = 0x02
)

// derInt returns the minimal DER integer encoding of a non-negative value.
func derInt(v *bn.Int) []byte {
	b := v.Buffer(bn.BufferOpts{})
	if b[0]&0x80 != 0 {
		b = append([]byte{0x00}, b...)
	}
	return b
}

// Serialize returns the strict DER encoding of the signature:
//
//	0x30 <total length> 0x02 <length of R> <R> 0x02 <length of S> <S>
//
// The signature is encoded as is; callers wanting canonical signatures use
// ToLowS first.  decred's Signature.Serialize is not used because it always
// writes the low-S form.
func (sig *Signature) Serialize() []byte {
	r, s := derInt(sig.R), derInt(sig.S)
	totalLen := 6 + len(r) + len(s)
	b := make([]byte, 0, totalLen)
	b = append(b, asn1SequenceID, byte(totalLen-2))
	b = append(b, asn1IntegerID, byte(len(r)))
	b = append(b, r...)
	b = append(b, asn1IntegerID, byte(len(s)))
	return append(b, s...)
}

// derErrorKinds maps the DER parse failures reported by decred's parser onto
// this package's kinds.  Zero and overflowing values are range errors here.
var derErrorKinds = map[dcrecdsa.ErrorKind]check.ErrorKind{
	dcrecdsa.ErrSigTooShort:        ErrSigTooShort,
	dcrecdsa.ErrSigTooLong:         ErrSigTooLong,
	dcrecdsa.ErrSigInvalidSeqID:    ErrSigInvalidSeqID,
	dcrecdsa.ErrSigInvalidDataLen:  ErrSigInvalidDataLen,
	dcrecdsa.ErrSigMissingSTypeID:  ErrSigMissingSTypeID,
	dcrecdsa.ErrSigMissingSLen:     ErrSigMissingSLen,
	dcrecdsa.ErrSigInvalidSLen:     ErrSigInvalidSLen,
	dcrecdsa.ErrSigInvalidRIntID:   ErrSigInvalidRIntID,
	dcrecdsa.ErrSigZeroRLen:        ErrSigZeroRLen,
	dcrecdsa.ErrSigNegativeR:       ErrSigNegativeR,
	dcrecdsa.ErrSigTooMuchRPadding: ErrSigTooMuchRPadding,
	dcrecdsa.ErrSigRIsZero:         ErrSigRange,
	dcrecdsa.ErrSigRTooBig:         ErrSigRange,
	dcrecdsa.ErrSigInvalidSIntID:   ErrSigInvalidSIntID,
	dcrecdsa.ErrSigZeroSLen:        ErrSigZeroSLen,
	dcrecdsa.ErrSigNegativeS:       ErrSigNegativeS,
	dcrecdsa.ErrSigTooMuchSPadding: ErrSigTooMuchSPadding,
	dcrecdsa.ErrSigSIsZero:         ErrSigRange,
	dcrecdsa.ErrSigSTooBig:         ErrSigRange,
}

// ParseDER decodes a strict DER signature.  Beyond the encoding rules, r and s
// must both be in [1, N-1].
func ParseDER(sig []byte) (*Signature, error) {
	parsed, err := dcrecdsa.ParseDERSignature(sig)
	if err != nil {
		var kind dcrecdsa.ErrorKind
		if errors.As(err, &kind) {
			if ours, ok := derErrorKinds[kind]; ok {
				return nil, check.ArgError(ours, "sig", err.Error())
			}
		}
		return nil, fmt.Errorf("malformed signature: %w", err)
	}

	r, s := parsed.R(), parsed.S()
	rb, sb := r.Bytes(), s.Bytes()
	return NewSignature(bn.FromBuffer(rb[:], bn.BigEndian), bn.FromBuffer(sb[:], bn.BigEndian)), nil
}
