// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"hashcrack/internal/cli"
	"hashcrack/internal/config"
	"hashcrack/internal/logging"
	"hashcrack/internal/output"
	"hashcrack/internal/pipeline"
	"hashcrack/internal/version"
	"hashcrack/internal/writers"
)

// Exit codes: 0 success, 2 usage/config error, 3 runtime error, 130 canceled.
// A run that finishes with zero matches exits with --no-match-exit-code.

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("hashcrack")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "hashcrack version %s\n", version.Version)
		return 0
	}

	cfg, err := config.Load(parent, opts.ConfigPath)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	applyOverrides(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	if _, err := os.Stat(cfg.Input.CSVPath); err != nil {
		_, _ = fmt.Fprintf(stderr, "wordlist: %v\n", err)
		return 2
	}

	log, err := logging.New(cfg.Output.LogPath, cfg.Output.Verbose || opts.Verbose)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	defer func() { _ = log.Close() }()

	res, err := pipeline.Run(parent, pipeline.Options{Config: cfg, Log: log})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	if !opts.Quiet {
		format, _ := output.ParseFormat(opts.Output)
		var werr error
		switch format {
		case output.FormatJSON:
			werr = output.WriteJSON(outw, res.Report)
		case output.FormatJSONL:
			werr = output.WriteJSONL(outw, res.Report.Matches)
		default:
			werr = output.WriteText(outw, res)
		}
		// A downstream consumer closing early (| head) is not a failure.
		if werr != nil && !writers.IsBrokenPipe(werr) {
			_, _ = fmt.Fprintln(stderr, werr)
			return 3
		}
		if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
	}
	// Persistence failure is reported separately and does not flip the
	// processing-success verdict.
	if res.PersistErr != nil {
		_, _ = fmt.Fprintf(stderr, "warning: results not persisted: %v\n", res.PersistErr)
	}

	if res.Matches == 0 {
		return opts.NoMatchExitCode
	}
	return 0
}

func applyOverrides(cfg *config.Config, opts cli.Options) {
	if opts.Workers > 0 {
		cfg.General.WorkerCount = opts.Workers
	}
	if opts.ChunkSize > 0 {
		cfg.General.ChunkSize = opts.ChunkSize
	}
	if opts.Target != "" {
		cfg.Hash.Target = opts.Target
	}
	if opts.Algorithm != "" {
		cfg.Hash.Algorithm = opts.Algorithm
	}
	if opts.CSVPath != "" {
		cfg.Input.CSVPath = opts.CSVPath
	}
	if opts.Results != "" {
		cfg.Output.ResultsPath = opts.Results
	}
	if opts.Log != "" {
		cfg.Output.LogPath = opts.Log
	}
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
