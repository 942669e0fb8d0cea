// Package batch signs, verifies and recovers many vectors concurrently.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mahdiidarabi/ecsign/internal/parser"
	"github.com/mahdiidarabi/ecsign/pkg/ecsig"
	"golang.org/x/sync/errgroup"
)

// Mode selects what is done with each vector.
type Mode int

const (
	// Auto verifies vectors that carry a signature and a public key,
	// recovers the key of vectors that carry only a signature, and signs
	// the rest.
	Auto Mode = iota
	Sign
	Verify
	Recover
)

func (m Mode) String() string {
	switch m {
	case Auto:
		return "auto"
	case Sign:
		return "sign"
	case Verify:
		return "verify"
	case Recover:
		return "recover"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the Mode named by s.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{Auto, Sign, Verify, Recover} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return Auto, fmt.Errorf("unknown batch mode %q", s)
}

// Config controls a batch run.
type Config struct {
	// Workers is the number of vectors processed at once.  0 uses the
	// number of CPUs.
	Workers int

	Mode Mode

	// RandomNonce makes ECDSA signing start from a random nonce.
	RandomNonce bool

	// StopOnError aborts the run at the first vector that fails.  Otherwise
	// failures are recorded in the vector's Result.
	StopOnError bool
}

// Result is the outcome of one vector.
type Result struct {
	Index     int
	Scheme    ecsig.Scheme
	Mode      Mode // the mode actually applied, never Auto
	Signature *ecsig.Signature
	PublicKey *ecsig.PublicKey
	Verified  bool
	Reason    error // why verification failed
	Err       error // why the vector could not be processed

	// Done is false for vectors skipped after the run stopped early.
	Done bool
}

// Processor runs vectors through the signing schemes.
type Processor struct {
	cfg       Config
	log       *slog.Logger
	processed atomic.Int64
}

// New returns a Processor.  A nil logger uses slog.Default.
func New(cfg Config, log *slog.Logger) *Processor {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Processor{cfg: cfg, log: log}
}

// Processed returns the number of vectors completed so far.
func (p *Processor) Processed() int64 {
	return p.processed.Load()
}

// Run processes every vector and returns one Result per vector in input
// order.  It stops early when ctx is cancelled, or at the first failure when
// StopOnError is set.
func (p *Processor) Run(ctx context.Context, vectors []*parser.Vector) ([]Result, error) {
	start := time.Now()
	p.log.Info("starting batch", "vectors", len(vectors), "workers", p.cfg.Workers, "mode", p.cfg.Mode)

	results := make([]Result, len(vectors))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.cfg.Workers)

	for i, v := range vectors {
		if gctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := p.process(v)
			res.Done = true
			results[i] = res
			p.processed.Add(1)

			if res.Err != nil {
				p.log.Warn("vector failed", "index", v.Index, "mode", res.Mode, "err", res.Err)
				if p.cfg.StopOnError {
					return fmt.Errorf("vector %d: %w", v.Index, res.Err)
				}
			} else {
				p.log.Debug("vector done", "index", v.Index, "mode", res.Mode, "verified", res.Verified)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	p.log.Info("batch complete", "processed", p.Processed(), "duration", time.Since(start))
	return results, nil
}

// process applies the configured mode to one vector.
func (p *Processor) process(v *parser.Vector) Result {
	res := Result{Index: v.Index, Scheme: v.Scheme, Mode: p.resolve(v)}
	ctx := v.Context()

	switch res.Mode {
	case Sign:
		if p.cfg.RandomNonce {
			ctx.Nonce = ecsig.RandomK()
		}
		var sig *ecsig.Signature
		var err error
		if v.Scheme == ecsig.ECDSA {
			sig, err = ecsig.SignWithCalcI(ctx)
		} else {
			sig, err = v.Scheme.Sign(ctx)
		}
		res.Signature, res.PublicKey, res.Err = sig, v.PublicKey, err
		if err == nil {
			res.Verified = ecsig.Verify(v.Scheme, v.Hash, sig, v.PublicKey, ecsig.WithEndian(v.Endian))
		}

	case Verify:
		out, err := v.Scheme.Verify(ctx)
		res.Signature, res.PublicKey = v.Signature, v.PublicKey
		res.Verified, res.Reason, res.Err = out.Verified, out.Reason, err

	case Recover:
		res.Signature = v.Signature
		if v.Scheme != ecsig.ECDSA {
			res.Err = fmt.Errorf("cannot recover a public key from a %s signature", v.Scheme)
			break
		}
		if v.Signature == nil {
			res.Err = errors.New("signature is required to recover")
			break
		}
		pub, err := ecsig.RecoverPublicKey(v.Hash, v.Endian, v.Signature)
		if err != nil {
			res.Err = err
			break
		}
		res.PublicKey = pub
		res.Verified = v.PublicKey == nil || pub.Equal(v.PublicKey)
		if !res.Verified {
			res.Reason = errors.New("recovered public key does not match")
		}
	}
	return res
}

func (p *Processor) resolve(v *parser.Vector) Mode {
	if p.cfg.Mode != Auto {
		return p.cfg.Mode
	}
	switch {
	case v.Signature == nil:
		return Sign
	case v.Scheme == ecsig.ECDSA && v.Signature.HasRecoveryID() && v.PublicKey == nil:
		return Recover
	}
	return Verify
}
