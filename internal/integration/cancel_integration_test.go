package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hashcrack/internal/app"
)

func TestCanceledRunExits130(t *testing.T) {
	dir := t.TempDir()
	words := strings.Repeat("alice\nbob\ncharlie\n", 1000)
	csv := write(t, filepath.Join(dir, "words.csv"), words)
	cfgPath := writeConfig(t, dir, csv, bobSHA256)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errBuf bytes.Buffer
	code := app.RunContext(ctx, []string{"--config", cfgPath}, &out, &errBuf)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d, err=%s", code, errBuf.String())
	}

	// A canceled run must not claim a persisted report.
	if _, err := os.Stat(filepath.Join(dir, "results.json")); err == nil {
		t.Fatalf("expected no results artifact after cancellation")
	}
}
