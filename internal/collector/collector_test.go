package collector

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"hashcrack/internal/logging"
	"hashcrack/internal/store"
	"hashcrack/pkg/api"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	l, err := logging.New(filepath.Join(t.TempDir(), "collector.log"), false)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestCollectDeterministicOrder(t *testing.T) {
	s := store.New()
	inserts := []store.Match{
		{WorkerID: 1, Original: "zeta", Hash: "h1", Algorithm: "SHA256", Sequence: 1},
		{WorkerID: 0, Original: "beta", Hash: "h2", Algorithm: "SHA256", Sequence: 1},
		{WorkerID: 1, Original: "alpha", Hash: "h3", Algorithm: "SHA256", Sequence: 2},
		{WorkerID: 0, Original: "gamma", Hash: "h4", Algorithm: "SHA256", Sequence: 2},
	}
	for _, m := range inserts {
		if err := s.Insert(store.Key(m.WorkerID, m.Sequence), m); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	want := api.ReportV1{
		TotalMatches: 4,
		Matches: []api.MatchV1{
			{WorkerID: 0, Original: "beta", Hash: "h2", Algorithm: "SHA256"},
			{WorkerID: 0, Original: "gamma", Hash: "h4", Algorithm: "SHA256"},
			{WorkerID: 1, Original: "alpha", Hash: "h3", Algorithm: "SHA256"},
			{WorkerID: 1, Original: "zeta", Hash: "h1", Algorithm: "SHA256"},
		},
	}
	got := Collect(s)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}

	// Same store, same report.
	if diff := cmp.Diff(got, Collect(s)); diff != "" {
		t.Errorf("collect not deterministic (-first +second):\n%s", diff)
	}
}

func TestEmptyStoreYieldsEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.json")
	report, err := Run(store.New(), path, testLogger(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.TotalMatches != 0 {
		t.Errorf("total = %d, want 0", report.TotalMatches)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	// The artifact must contain an empty array, not null.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(raw["matches"]) != "[]" {
		t.Errorf("matches = %s, want []", raw["matches"])
	}
	if string(raw["total_matches"]) != "0" {
		t.Errorf("total_matches = %s, want 0", raw["total_matches"])
	}
}

func TestPersistRoundTrip(t *testing.T) {
	s := store.New()
	m := store.Match{WorkerID: 2, Original: "bob", Hash: "81b6", Algorithm: "SHA256", Sequence: 1}
	if err := s.Insert(store.Key(2, 1), m); err != nil {
		t.Fatalf("insert: %v", err)
	}

	path := filepath.Join(t.TempDir(), "results.json")
	if _, err := Run(s, path, testLogger(t)); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got api.ReportV1
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := api.ReportV1{TotalMatches: 1, Matches: []api.MatchV1{
		{WorkerID: 2, Original: "bob", Hash: "81b6", Algorithm: "SHA256"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("artifact mismatch (-want +got):\n%s", diff)
	}
}

// Persistence failure is reported but the collected report is still
// returned intact: processing success and persistence are distinct.
func TestPersistFailureStillReturnsReport(t *testing.T) {
	s := store.New()
	if err := s.Insert("k", store.Match{Original: "a"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	dir := t.TempDir()
	// A directory at the artifact path forces the create to fail.
	bad := filepath.Join(dir, "results.json")
	if err := os.Mkdir(bad, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	report, err := Run(s, bad, testLogger(t))
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if report.TotalMatches != 1 {
		t.Errorf("report lost on persistence failure: %+v", report)
	}
}
