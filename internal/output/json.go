// internal/output/json.go
package output

import (
	"io"

	"hashcrack/internal/jsonutil"
	"hashcrack/pkg/api"
)

// WriteJSON writes the v1 report, pretty-indented, exactly as the
// persisted artifact would read.
func WriteJSON(w io.Writer, rep api.ReportV1) error {
	return jsonutil.EncodePretty(w, rep)
}
