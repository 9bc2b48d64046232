// internal/output/jsonl.go
package output

import (
	"io"

	"hashcrack/internal/writers"
	"hashcrack/pkg/api"
)

// WriteJSONL streams one match per line, nothing else. An empty report
// produces empty output, which downstream line-oriented tools expect.
func WriteJSONL(w io.Writer, matches []api.MatchV1) error {
	in, done := writers.StartMatchJSONLWriter(w, len(matches))
	for _, m := range matches {
		in <- m
	}
	close(in)
	return <-done
}
