package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mahdiidarabi/ecsign/internal/batch"
	"github.com/mahdiidarabi/ecsign/internal/parser"
	"github.com/mahdiidarabi/ecsign/pkg/ecsig"
	"github.com/urfave/cli/v2"
)

var messageFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "message",
		Usage: "message text, hashed with SHA-256",
	},
	&cli.StringFlag{
		Name:  "hash",
		Usage: "32-byte message hash in hex, used instead of --message",
	},
	&cli.StringFlag{
		Name:    "endian",
		Usage:   "byte order of the hash (big or little)",
		Value:   "big",
		EnvVars: []string{"ECSIGN_ENDIAN"},
	},
	&cli.StringFlag{
		Name:    "scheme",
		Usage:   "signature scheme (ecdsa or schnorr)",
		Value:   "ecdsa",
		EnvVars: []string{"ECSIGN_SCHEME"},
	},
}

var keyFlag = &cli.StringFlag{
	Name:     "key",
	Usage:    "private key as hex (0x-prefixed or lettered) or decimal",
	Required: true,
	EnvVars:  []string{"ECSIGN_PRIVATE_KEY"},
}

var signatureFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "sig",
		Usage: "encoded signature in hex",
	},
	&cli.StringFlag{
		Name:  "encoding",
		Usage: "encoding of --sig (der, compact or schnorr); guessed when empty",
	},
	&cli.StringFlag{
		Name:  "r",
		Usage: "signature r value, used with --s instead of --sig",
	},
	&cli.StringFlag{
		Name:  "s",
		Usage: "signature s value",
	},
	&cli.IntFlag{
		Name:  "i",
		Usage: "recovery id for --r and --s",
		Value: ecsig.NoRecoveryID,
	},
}

var cmdSign = &cli.Command{
	Name:      "sign",
	Usage:     "sign a message or hash",
	ArgsUsage: " ",
	Flags: append([]cli.Flag{
		keyFlag,
		&cli.BoolFlag{
			Name:  "uncompressed",
			Usage: "mark the public key and signature as uncompressed",
		},
		&cli.BoolFlag{
			Name:  "random-nonce",
			Usage: "start ECDSA signing from a random nonce instead of RFC6979",
		},
	}, messageFlags...),
	Action: runSign,
}

var cmdVerify = &cli.Command{
	Name:      "verify",
	Usage:     "verify a signature against a public key",
	ArgsUsage: " ",
	Flags: append(append([]cli.Flag{
		&cli.StringFlag{
			Name:     "pubkey",
			Usage:    "SEC1 public key in hex",
			Required: true,
			EnvVars:  []string{"ECSIGN_PUBLIC_KEY"},
		},
	}, messageFlags...), signatureFlags...),
	Action: runVerify,
}

var cmdRecover = &cli.Command{
	Name:      "recover",
	Usage:     "recover the public key from an ECDSA signature with a recovery id",
	ArgsUsage: " ",
	Flags: append(append([]cli.Flag{
		&cli.StringFlag{
			Name:  "pubkey",
			Usage: "expected SEC1 public key in hex",
		},
	}, messageFlags...), signatureFlags...),
	Action: runRecover,
}

// vectorFromFlags builds a single vector from the message, key and signature
// flags present on the command.
func vectorFromFlags(cctx *cli.Context) (*parser.Vector, error) {
	values := map[string]string{
		"scheme":  cctx.String("scheme"),
		"message": cctx.String("message"),
		"hash":    cctx.String("hash"),
		"endian":  cctx.String("endian"),
		"key":     cctx.String("key"),
		"pubkey":  cctx.String("pubkey"),
		"r":       cctx.String("r"),
		"s":       cctx.String("s"),
	}
	if cctx.Bool("uncompressed") {
		values["compressed"] = "false"
	}
	if i := cctx.Int("i"); cctx.IsSet("i") {
		values["i"] = strconv.Itoa(i)
	}
	if values["message"] == "" && values["hash"] == "" {
		return nil, fmt.Errorf("one of --message or --hash is required")
	}

	v, err := parser.FromValues(values)
	if err != nil {
		return nil, err
	}

	if raw := cctx.String("sig"); raw != "" {
		sig, err := decodeSignature(v.Scheme, cctx.String("encoding"), raw)
		if err != nil {
			return nil, err
		}
		if v.PublicKey != nil && !sig.HasRecoveryID() {
			sig.Compressed = v.PublicKey.Compressed
		}
		v.Signature = sig
	}
	return v, nil
}

// decodeSignature parses a hex signature in the given encoding.  With no
// encoding, Schnorr signatures are read as r || s, 65-byte ECDSA signatures
// as compact and anything else as DER.
func decodeSignature(scheme ecsig.Scheme, encoding, raw string) (*ecsig.Signature, error) {
	buf, err := parser.DecodeHex(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signature: %w", err)
	}
	if encoding == "" {
		switch {
		case scheme == ecsig.Schnorr:
			encoding = "schnorr"
		case len(buf) == ecsig.CompactSigLen:
			encoding = "compact"
		default:
			encoding = "der"
		}
	}

	var sig *ecsig.Signature
	switch strings.ToLower(encoding) {
	case "der":
		sig, err = ecsig.ParseDER(buf)
	case "compact":
		sig, err = ecsig.ParseCompact(buf)
	case "schnorr":
		sig, _, err = ecsig.ParseSchnorr(buf)
	default:
		return nil, fmt.Errorf("unknown signature encoding %q", encoding)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s signature: %w", encoding, err)
	}
	return sig, nil
}

// runOne processes a single vector and prints its report.
func runOne(cctx *cli.Context, v *parser.Vector, cfg batch.Config) (*batch.Result, error) {
	cfg.Workers = 1
	results, err := batch.New(cfg, slog.Default()).Run(cctx.Context, []*parser.Vector{v})
	if err != nil {
		return nil, err
	}
	res := &results[0]
	if err := printJSON(cctx.App.Writer, res.Report()); err != nil {
		return nil, err
	}
	if res.Err != nil {
		return nil, res.Err
	}
	return res, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runSign(cctx *cli.Context) error {
	v, err := vectorFromFlags(cctx)
	if err != nil {
		return err
	}
	_, err = runOne(cctx, v, batch.Config{Mode: batch.Sign, RandomNonce: cctx.Bool("random-nonce")})
	return err
}

func runVerify(cctx *cli.Context) error {
	v, err := vectorFromFlags(cctx)
	if err != nil {
		return err
	}
	if v.Signature == nil {
		return fmt.Errorf("one of --sig or --r and --s is required")
	}
	res, err := runOne(cctx, v, batch.Config{Mode: batch.Verify})
	if err != nil {
		return err
	}
	if !res.Verified {
		return cli.Exit("signature is invalid", 1)
	}
	return nil
}

func runRecover(cctx *cli.Context) error {
	v, err := vectorFromFlags(cctx)
	if err != nil {
		return err
	}
	if v.Signature == nil {
		return fmt.Errorf("one of --sig or --r, --s and --i is required")
	}
	res, err := runOne(cctx, v, batch.Config{Mode: batch.Recover})
	if err != nil {
		return err
	}
	if !res.Verified {
		return cli.Exit("recovered public key does not match --pubkey", 1)
	}
	return nil
}
