// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"hashcrack/internal/output"
	"hashcrack/internal/version"
)

// Options holds all CLI flags and arguments. Flags override the matching
// config-file fields; the config file is the baseline.
type Options struct {
	ConfigPath string

	// Overrides
	Workers   int
	ChunkSize int
	Target    string
	Algorithm string
	CSVPath   string
	Results   string
	Log       string

	// Behavior
	Output          string
	NoMatchExitCode int
	Quiet           bool
	Verbose         bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: parallel dictionary attack against a target digest

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.ConfigPath, "config", "", "JSON or YAML configuration file [*]")

	// Config overrides
	fs.IntVar(&opt.Workers, "workers", 0, "number of parallel workers (0 = use config) [0]")
	fs.IntVar(&opt.ChunkSize, "chunk-size", 0, "candidates per task chunk (0 = use config) [0]")
	fs.StringVar(&opt.Target, "target", "", "target digest (hex, case-insensitive)")
	fs.StringVar(&opt.Algorithm, "algorithm", "", "digest algorithm: SHA256 | SHA384 | SHA512 | PBKDF2 | BLAKE3")
	fs.StringVar(&opt.CSVPath, "wordlist", "", "candidate CSV file (first column is the candidate)")
	fs.StringVar(&opt.Results, "results", "", "results artifact path")
	fs.StringVar(&opt.Log, "log", "", "log file path")

	fs.StringVar(&opt.Output, "output", "text", "stdout summary format: text | json | jsonl [text]")
	fs.IntVar(&opt.NoMatchExitCode, "no-match-exit-code", 1, "exit code when no match is found [1]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress the stdout summary [false]")
	fs.BoolVar(&opt.Verbose, "verbose", false, "debug logging and stderr mirror [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	// Validation
	if opt.ConfigPath == "" {
		return opt, errors.New("--config is required")
	}
	if opt.Workers < 0 {
		return opt, errors.New("--workers must be >= 0")
	}
	if opt.ChunkSize < 0 {
		return opt, errors.New("--chunk-size must be >= 0")
	}
	if opt.NoMatchExitCode < 0 || opt.NoMatchExitCode > 255 {
		return opt, errors.New("--no-match-exit-code must be in 0..255")
	}
	if _, err := output.ParseFormat(opt.Output); err != nil {
		return opt, err
	}
	return opt, nil
}
