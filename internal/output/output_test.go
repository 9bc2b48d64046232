// internal/output/output_test.go
package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"hashcrack/internal/pipeline"
	"hashcrack/pkg/api"
)

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		Report: api.ReportV1{
			TotalMatches: 1,
			Matches: []api.MatchV1{
				{WorkerID: 2, Original: "bob", Hash: "abc123", Algorithm: "sha256"},
			},
		},
		Items:   10,
		Matches: 1,
		Elapsed: 1500 * time.Millisecond,
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("text"); err != nil || f != FormatText {
		t.Fatalf("text: got %v, %v", f, err)
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Fatalf("json: got %v, %v", f, err)
	}
	if f, err := ParseFormat("jsonl"); err != nil || f != FormatJSONL {
		t.Fatalf("jsonl: got %v, %v", f, err)
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestWriteJSONL(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSONL(&buf, sampleResult().Report.Matches); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	var m api.MatchV1
	if err := json.Unmarshal([]byte(lines[0]), &m); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Original != "bob" {
		t.Fatalf("unexpected record: %+v", m)
	}

	buf.Reset()
	if err := WriteJSONL(&buf, nil); err != nil {
		t.Fatalf("WriteJSONL empty: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected empty output, got %q", buf.String())
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleResult()); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Processed 10 candidates in 1.50s (0 skipped)",
		"Matches found: 1",
		`original="bob"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestWriteTextNoMatches(t *testing.T) {
	res := sampleResult()
	res.Report = api.ReportV1{Matches: []api.MatchV1{}}
	res.Matches = 0

	var buf bytes.Buffer
	if err := WriteText(&buf, res); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if !strings.Contains(buf.String(), "No matches found") {
		t.Fatalf("expected no-match line, got:\n%s", buf.String())
	}
}

func TestWriteJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult().Report); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var rep api.ReportV1
	if err := json.Unmarshal(buf.Bytes(), &rep); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rep.TotalMatches != 1 || rep.Matches[0].Original != "bob" {
		t.Fatalf("unexpected report: %+v", rep)
	}
}
