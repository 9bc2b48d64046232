// Package wordlist reads candidate values from CSV sources.
//
// Each row contributes its first column, whitespace-trimmed. Empty rows and
// empty records are skipped and counted, never fatal; only failing to open
// or scan the source at all is an error.
package wordlist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stats counts what a read pass saw.
type Stats struct {
	TotalLines   int
	ValidRecords int
	Skipped      int
}

// Options controls CSV parsing.
type Options struct {
	Delimiter rune // 0 means ','
}

// ForEach streams candidates from r, calling emit for each valid record.
// Malformed rows (bare quotes, ragged fields) are counted as skipped and do
// not abort the scan.
func ForEach(r io.Reader, opts Options, emit func(string) error) (Stats, error) {
	var st Stats
	cr := csv.NewReader(r)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.FieldsPerRecord = -1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return st, nil
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			st.TotalLines++
			st.Skipped++
			continue
		}
		if err != nil {
			return st, fmt.Errorf("wordlist scan: %w", err)
		}
		st.TotalLines++
		if len(row) == 0 {
			st.Skipped++
			continue
		}
		rec := strings.TrimSpace(row[0])
		if rec == "" {
			st.Skipped++
			continue
		}
		st.ValidRecords++
		if err := emit(rec); err != nil {
			return st, err
		}
	}
}

// ReadAll materializes every valid candidate from r, in input order.
func ReadAll(r io.Reader, opts Options) ([]string, Stats, error) {
	var out []string
	st, err := ForEach(r, opts, func(rec string) error {
		out = append(out, rec)
		return nil
	})
	return out, st, err
}

// ReadFile opens path and reads all candidates from it. A missing or
// unreadable file is a setup error.
func ReadFile(path string, opts Options) ([]string, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open wordlist: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadAll(f, opts)
}
