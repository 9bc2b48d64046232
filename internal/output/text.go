// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"hashcrack/internal/pipeline"
	"hashcrack/internal/timing"
)

// WriteText prints the human-readable run summary: one header line, then
// one line per match in the report's deterministic order.
func WriteText(w io.Writer, res *pipeline.Result) error {
	_, err := fmt.Fprintf(w, "Processed %d candidates in %s (%d skipped)\n",
		res.Items, timing.FormatDuration(res.Elapsed), res.WordlistStats.Skipped)
	if err != nil {
		return err
	}
	if res.Report.TotalMatches == 0 {
		_, err = fmt.Fprintln(w, "No matches found")
		return err
	}
	if _, err = fmt.Fprintf(w, "Matches found: %d\n", res.Report.TotalMatches); err != nil {
		return err
	}
	for _, m := range res.Report.Matches {
		_, err = fmt.Fprintf(w, "  worker=%d original=%q hash=%s algorithm=%s\n",
			m.WorkerID, m.Original, m.Hash, m.Algorithm)
		if err != nil {
			return err
		}
	}
	return nil
}
