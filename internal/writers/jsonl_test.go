package writers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"hashcrack/pkg/api"
)

func TestStartMatchJSONLWriter(t *testing.T) {
	var buf bytes.Buffer
	in, done := StartMatchJSONLWriter(&buf, 0)
	in <- api.MatchV1{WorkerID: 0, Original: "alice", Hash: "aa", Algorithm: "sha256"}
	in <- api.MatchV1{WorkerID: 1, Original: "bob", Hash: "bb", Algorithm: "sha256"}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), buf.String())
	}
	var m api.MatchV1
	if err := json.Unmarshal([]byte(lines[1]), &m); err != nil {
		t.Fatalf("parse line: %v", err)
	}
	if m.Original != "bob" || m.WorkerID != 1 {
		t.Fatalf("unexpected record: %+v", m)
	}
}

func TestIsBrokenPipe(t *testing.T) {
	if IsBrokenPipe(nil) {
		t.Fatal("nil is not a broken pipe")
	}
}
