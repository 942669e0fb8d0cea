package main

import (
	"fmt"

	"github.com/mahdiidarabi/ecsign/internal/parser"
	"github.com/mahdiidarabi/ecsign/pkg/bn"
	"github.com/mahdiidarabi/ecsign/pkg/ecsig"
	"github.com/urfave/cli/v2"
)

var cmdNonce = &cli.Command{
	Name:      "nonce",
	Usage:     "print the deterministic nonce a signature would use",
	ArgsUsage: " ",
	Flags: append([]cli.Flag{
		keyFlag,
		&cli.IntFlag{
			Name:  "badrs",
			Usage: "number of ECDSA candidates to skip",
		},
	}, messageFlags...),
	Action: runNonce,
}

func runNonce(cctx *cli.Context) error {
	v, err := vectorFromFlags(cctx)
	if err != nil {
		return err
	}
	badrs := cctx.Int("badrs")
	if badrs < 0 {
		return fmt.Errorf("--badrs must not be negative")
	}

	var k *bn.Int
	switch v.Scheme {
	case ecsig.ECDSA:
		k = ecsig.DeterministicK(v.Hash, v.Endian, v.PrivateKey.D, badrs)
	case ecsig.Schnorr:
		e := bn.FromBuffer(v.Hash, v.Endian)
		k = ecsig.SchnorrNonce(v.PrivateKey.D.Bytes32(), e.Bytes32())
	}
	fmt.Fprintln(cctx.App.Writer, parser.EncodeHex(k.Bytes32()))
	return nil
}
