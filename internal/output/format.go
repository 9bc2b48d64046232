// internal/output/format.go
// Package output renders a finished run for the terminal. The JSON and
// JSONL forms reuse the stable v1 schema; the text form is for humans and
// carries no compatibility promise.
package output

import "fmt"

// Format selects a renderer.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
)

// ParseFormat validates a --output flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatJSONL:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, or jsonl)", s)
	}
}
