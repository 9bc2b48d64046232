// Package hasher contains the digest core. It never imports app, cli, or
// pipeline; keep it domain-only.
package hasher

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/pbkdf2"
)

// Algorithm identifies a supported digest algorithm.
type Algorithm string

const (
	SHA256 Algorithm = "SHA256"
	SHA384 Algorithm = "SHA384"
	SHA512 Algorithm = "SHA512"
	PBKDF2 Algorithm = "PBKDF2"
	BLAKE3 Algorithm = "BLAKE3"
)

// Algorithms lists every supported algorithm identifier, in the order they
// should appear in help and error text.
func Algorithms() []Algorithm {
	return []Algorithm{SHA256, SHA384, SHA512, PBKDF2, BLAKE3}
}

// ParseAlgorithm normalizes a user-supplied identifier (case-insensitive,
// "SHA-256" and "sha256" both accepted) to a canonical Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	for _, a := range Algorithms() {
		if norm == string(a) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown hash algorithm %q (supported: %s)", s, joinAlgorithms())
}

func joinAlgorithms() string {
	parts := make([]string, 0, len(Algorithms()))
	for _, a := range Algorithms() {
		parts = append(parts, string(a))
	}
	return strings.Join(parts, ", ")
}

// Config carries algorithm parameters. Iterations and SaltLength apply only
// to PBKDF2 and are ignored elsewhere.
type Config struct {
	Algorithm  Algorithm
	Iterations int // PBKDF2 rounds; defaults to DefaultIterations when <= 0
	SaltLength int // PBKDF2 salt bytes; defaults to DefaultSaltLength when <= 0
}

const (
	DefaultIterations = 100000
	DefaultSaltLength = 32

	pbkdf2KeyLength = 32
)

// Hasher computes lowercase-hex digests of candidate values. A Hasher is
// stateless after construction and safe for concurrent use.
type Hasher struct {
	cfg Config
}

// New validates cfg and returns a Hasher. Unknown algorithms are rejected
// here, before any work starts.
func New(cfg Config) (*Hasher, error) {
	a, err := ParseAlgorithm(string(cfg.Algorithm))
	if err != nil {
		return nil, err
	}
	cfg.Algorithm = a
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultIterations
	}
	if cfg.SaltLength <= 0 {
		cfg.SaltLength = DefaultSaltLength
	}
	if cfg.Algorithm == PBKDF2 && cfg.SaltLength > sha256.Size {
		return nil, fmt.Errorf("pbkdf2 salt length %d exceeds maximum %d", cfg.SaltLength, sha256.Size)
	}
	return &Hasher{cfg: cfg}, nil
}

// Algorithm returns the canonical identifier this Hasher was built with.
func (h *Hasher) Algorithm() Algorithm { return h.cfg.Algorithm }

// Sum computes the digest of value and returns it as lowercase hex.
//
// PBKDF2 salts are derived from the value itself (SHA-256 of the value,
// truncated to the configured length) so the digest is a pure function of
// the input and reproducible across runs and workers.
func (h *Hasher) Sum(value string) (string, error) {
	data := []byte(value)
	switch h.cfg.Algorithm {
	case SHA256:
		d := sha256.Sum256(data)
		return hex.EncodeToString(d[:]), nil
	case SHA384:
		d := sha512.Sum384(data)
		return hex.EncodeToString(d[:]), nil
	case SHA512:
		d := sha512.Sum512(data)
		return hex.EncodeToString(d[:]), nil
	case BLAKE3:
		d := blake3.Sum256(data)
		return hex.EncodeToString(d[:]), nil
	case PBKDF2:
		salt := sha256.Sum256(data)
		key := pbkdf2.Key(data, salt[:h.cfg.SaltLength], h.cfg.Iterations, pbkdf2KeyLength, sha256.New)
		return hex.EncodeToString(key), nil
	default:
		return "", fmt.Errorf("unknown hash algorithm %q", h.cfg.Algorithm)
	}
}

// NormalizeDigest canonicalizes a digest string for comparison: trimmed and
// lowercased. Comparisons between digests are case-insensitive everywhere.
func NormalizeDigest(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
