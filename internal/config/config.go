// Package config loads and validates run configuration.
//
// Configuration comes from a single JSON or YAML file (chosen by
// extension), after which environment variables prefixed HASHCRACK_ are
// applied as overrides. All validation failures are fatal before any chunk
// is processed: the pipeline never starts partially configured.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"encoding/json"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"hashcrack-core/hasher"
)

// Config is the full run configuration, mirroring the four sections of the
// config file.
type Config struct {
	General General `json:"general" yaml:"general"`
	Hash    Hash    `json:"hash" yaml:"hash"`
	Input   Input   `json:"input" yaml:"input"`
	Output  Output  `json:"output" yaml:"output"`
}

// General holds pipeline-wide knobs.
type General struct {
	WorkerCount int `json:"worker_count" yaml:"worker_count" env:"HASHCRACK_WORKERS,overwrite"`
	ChunkSize   int `json:"chunk_size" yaml:"chunk_size" env:"HASHCRACK_CHUNK_SIZE,overwrite"`
}

// Hash selects the digest algorithm and its parameters.
type Hash struct {
	Algorithm  string `json:"algorithm" yaml:"algorithm" env:"HASHCRACK_ALGORITHM,overwrite"`
	Target     string `json:"target_hash" yaml:"target_hash" env:"HASHCRACK_TARGET,overwrite"`
	Iterations int    `json:"pbkdf2_iterations" yaml:"pbkdf2_iterations" env:"HASHCRACK_PBKDF2_ITERATIONS,overwrite"`
	SaltLength int    `json:"pbkdf2_salt_length" yaml:"pbkdf2_salt_length" env:"HASHCRACK_PBKDF2_SALT_LENGTH,overwrite"`
}

// Input locates the candidate source.
type Input struct {
	CSVPath   string `json:"csv_path" yaml:"csv_path" env:"HASHCRACK_CSV_PATH,overwrite"`
	Delimiter string `json:"csv_delimiter" yaml:"csv_delimiter" env:"HASHCRACK_CSV_DELIMITER,overwrite"`
}

// Output locates the artifacts.
type Output struct {
	LogPath     string `json:"log_path" yaml:"log_path" env:"HASHCRACK_LOG_PATH,overwrite"`
	ResultsPath string `json:"results_path" yaml:"results_path" env:"HASHCRACK_RESULTS_PATH,overwrite"`
	Verbose     bool   `json:"verbose" yaml:"verbose" env:"HASHCRACK_VERBOSE,overwrite"`
}

// Default returns the configuration used when a field is left unset.
func Default() Config {
	return Config{
		General: General{WorkerCount: 4, ChunkSize: 100},
		Hash: Hash{
			Algorithm:  string(hasher.SHA256),
			Iterations: hasher.DefaultIterations,
			SaltLength: hasher.DefaultSaltLength,
		},
		Input:  Input{Delimiter: ","},
		Output: Output{LogPath: "logs/hashcrack.log", ResultsPath: "results/results.json"},
	}
}

// Load reads path (JSON, or YAML for .yaml/.yml), applies environment
// overrides, fills defaults, and validates.
func Load(ctx context.Context, path string) (Config, error) {
	cfg, err := Parse(path)
	if err != nil {
		return Config{}, err
	}
	return Finalize(ctx, cfg)
}

// Parse decodes the config file at path without finalizing it. The web
// adapter parses its base config once and finalizes a copy per request.
func Parse(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Finalize applies environment overrides and defaults to cfg, then
// validates it. Callers that build a Config in memory (the web adapter)
// use this directly.
func Finalize(ctx context.Context, cfg Config) (Config, error) {
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("apply env overrides: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.General.WorkerCount == 0 {
		c.General.WorkerCount = def.General.WorkerCount
	}
	if c.General.ChunkSize == 0 {
		c.General.ChunkSize = def.General.ChunkSize
	}
	if c.Hash.Algorithm == "" {
		c.Hash.Algorithm = def.Hash.Algorithm
	}
	if c.Hash.Iterations == 0 {
		c.Hash.Iterations = def.Hash.Iterations
	}
	if c.Hash.SaltLength == 0 {
		c.Hash.SaltLength = def.Hash.SaltLength
	}
	if c.Input.Delimiter == "" {
		c.Input.Delimiter = def.Input.Delimiter
	}
	if c.Output.LogPath == "" {
		c.Output.LogPath = def.Output.LogPath
	}
	if c.Output.ResultsPath == "" {
		c.Output.ResultsPath = def.Output.ResultsPath
	}
}

// Validate enforces the setup-time invariants. The target digest may be
// empty: an empty target matches nothing, which is valid (if unproductive).
func (c *Config) Validate() error {
	if c.General.WorkerCount < 1 {
		return fmt.Errorf("config: worker_count must be at least 1, got %d", c.General.WorkerCount)
	}
	if c.General.ChunkSize < 1 {
		return fmt.Errorf("config: chunk_size must be at least 1, got %d", c.General.ChunkSize)
	}
	if _, err := hasher.ParseAlgorithm(c.Hash.Algorithm); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Input.CSVPath == "" {
		return fmt.Errorf("config: input.csv_path is required")
	}
	if utf8.RuneCountInString(c.Input.Delimiter) != 1 {
		return fmt.Errorf("config: csv_delimiter must be a single character, got %q", c.Input.Delimiter)
	}
	if c.Output.ResultsPath == "" {
		return fmt.Errorf("config: output.results_path is required")
	}
	if c.Output.LogPath == "" {
		return fmt.Errorf("config: output.log_path is required")
	}
	return nil
}

// DelimiterRune returns the CSV delimiter as a rune. Validate guarantees a
// single character.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Input.Delimiter)
	return r
}
