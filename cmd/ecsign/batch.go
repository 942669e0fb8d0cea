package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mahdiidarabi/ecsign/internal/batch"
	"github.com/mahdiidarabi/ecsign/internal/parser"
	"github.com/urfave/cli/v2"
)

var cmdBatch = &cli.Command{
	Name:      "batch",
	Usage:     "sign, verify or recover every vector in a JSON or CSV file",
	ArgsUsage: "<file>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Usage: "vector file format (json or csv); guessed from the extension when empty",
		},
		&cli.StringFlag{
			Name:    "mode",
			Usage:   "what to do with each vector (auto, sign, verify or recover)",
			Value:   "auto",
			EnvVars: []string{"ECSIGN_BATCH_MODE"},
		},
		&cli.IntFlag{
			Name:    "workers",
			Usage:   "number of vectors processed at once (0 = number of CPUs)",
			EnvVars: []string{"ECSIGN_WORKERS"},
		},
		&cli.BoolFlag{
			Name:  "stop-on-error",
			Usage: "abort at the first vector that cannot be processed",
		},
		&cli.BoolFlag{
			Name:  "random-nonce",
			Usage: "start ECDSA signing from random nonces instead of RFC6979",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "file to write JSON lines results to (default stdout)",
		},
	},
	Action: runBatch,
}

func runBatch(cctx *cli.Context) error {
	if cctx.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one vector file argument")
	}
	path := cctx.Args().First()
	logger := slog.Default().With("file", path)

	mode, err := batch.ParseMode(cctx.String("mode"))
	if err != nil {
		return err
	}
	p, err := parser.ForFormat(cctx.String("format"), path)
	if err != nil {
		return err
	}
	vectors, err := p.ParseVectors(path)
	if err != nil {
		return fmt.Errorf("failed to load vectors: %w", err)
	}

	// Trap SIGINT to stop handing out vectors.
	ctx, stop := signal.NotifyContext(cctx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	proc := batch.New(batch.Config{
		Workers:     cctx.Int("workers"),
		Mode:        mode,
		RandomNonce: cctx.Bool("random-nonce"),
		StopOnError: cctx.Bool("stop-on-error"),
	}, logger)
	results, runErr := proc.Run(ctx, vectors)

	var out io.Writer = cctx.App.Writer
	if name := cctx.String("output"); name != "" && name != "-" {
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	for i := range results {
		if !results[i].Done {
			continue
		}
		if err := enc.Encode(results[i].Report()); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	if runErr != nil {
		return fmt.Errorf("batch stopped: %w", runErr)
	}

	summary := batch.Summarize(results)
	logger.Info("summary", "total", summary.Total, "verified", summary.Verified,
		"rejected", summary.Rejected, "failed", summary.Failed)
	if summary.Rejected+summary.Failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d vectors did not verify", summary.Rejected+summary.Failed, summary.Total), 1)
	}
	return nil
}
