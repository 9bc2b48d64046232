// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"hashcrack/internal/jsonlutil"
	"hashcrack/pkg/api"
)

// StartMatchJSONLWriter streams each match as one JSON line (v1).
func StartMatchJSONLWriter(out io.Writer, bufSize int) (chan<- api.MatchV1, <-chan error) {
	return jsonlutil.Start[api.MatchV1](out, bufSize,
		func(enc *json.Encoder, m api.MatchV1) error {
			return enc.Encode(m)
		},
		IsBrokenPipe,
	)
}
