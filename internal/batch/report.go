package batch

import (
	"github.com/mahdiidarabi/ecsign/internal/parser"
	"github.com/mahdiidarabi/ecsign/pkg/ecsig"
)

// Report is the JSON form of a Result.
type Report struct {
	Index      int    `json:"index"`
	Scheme     string `json:"scheme"`
	Mode       string `json:"mode"`
	R          string `json:"r,omitempty"`
	S          string `json:"s,omitempty"`
	RecoveryID *int   `json:"i,omitempty"`
	Compact    string `json:"compact,omitempty"`
	DER        string `json:"der,omitempty"`
	Schnorr    string `json:"schnorr,omitempty"`
	PublicKey  string `json:"pubkey,omitempty"`
	Verified   bool   `json:"verified"`
	Reason     string `json:"reason,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Report converts r for output.  Numbers are written as 32-byte hex.
func (r *Result) Report() Report {
	out := Report{
		Index:    r.Index,
		Scheme:   r.Scheme.String(),
		Mode:     r.Mode.String(),
		Verified: r.Verified,
	}
	if sig := r.Signature; sig != nil {
		out.R = parser.EncodeHex(ecsig.ProperSizeBuffer(sig.R))
		out.S = parser.EncodeHex(ecsig.ProperSizeBuffer(sig.S))
		switch r.Scheme {
		case ecsig.ECDSA:
			out.DER = parser.EncodeHex(sig.Serialize())
		case ecsig.Schnorr:
			out.Schnorr = parser.EncodeHex(sig.SerializeSchnorr())
		}
		if sig.HasRecoveryID() {
			i := sig.RecoveryID
			out.RecoveryID = &i
			if compact, err := sig.SerializeCompact(); err == nil {
				out.Compact = parser.EncodeHex(compact)
			}
		}
	}
	if r.PublicKey != nil {
		out.PublicKey = parser.EncodeHex(r.PublicKey.Bytes())
	}
	if r.Reason != nil {
		out.Reason = r.Reason.Error()
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return out
}

// Summary counts the outcomes of a run.
type Summary struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Rejected int `json:"rejected"`
	Failed   int `json:"failed"`
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for i := range results {
		switch {
		case results[i].Err != nil:
			s.Failed++
		case results[i].Verified:
			s.Verified++
		default:
			s.Rejected++
		}
	}
	return s
}
