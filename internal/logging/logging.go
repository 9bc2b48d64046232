// Package logging provides the process-wide synchronized log sink shared by
// every pipeline component.
//
// Records are timestamped, leveled, and tagged with the owning process id.
// All writes go through an internal lock so concurrent writers never tear a
// record. Prefer constructing one *Logger explicitly with New and passing it
// into components; Get exists for the lazy shared instance and keeps the
// historical first-caller-wins behavior (see Get).
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chainguard-dev/clog"
)

// LevelCritical extends slog's built-in levels for failures worth paging on.
const LevelCritical = slog.Level(12)

// Logger is a leveled, synchronized sink writing to a log file and, when
// verbose, to stderr.
type Logger struct {
	log  *clog.Logger
	mu   sync.Mutex // serializes sink writes; held by lockedWriter
	file *os.File

	path    string
	verbose bool
}

// lockedWriter serializes writes from concurrent workers so a record is
// never interleaved with another.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

// New opens (or creates, appending) the log file at path and returns a
// Logger. When verbose is true, the sink level drops to debug and every
// record, debug included, is mirrored to stderr.
func New(path string, verbose bool) (*Logger, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := &Logger{file: f, path: path, verbose: verbose}

	var sink io.Writer = f
	if verbose {
		sink = io.MultiWriter(f, os.Stderr)
	}
	minLevel := slog.LevelInfo
	if verbose {
		minLevel = slog.LevelDebug
	}
	h := slog.NewTextHandler(&lockedWriter{mu: &l.mu, w: sink}, &slog.HandlerOptions{
		Level:       minLevel,
		ReplaceAttr: renameCritical,
	})
	l.log = clog.New(h).With("pid", os.Getpid())
	return l, nil
}

func renameCritical(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl >= LevelCritical {
			a.Value = slog.StringValue("CRITICAL")
		}
	}
	return a
}

var (
	sharedMu sync.Mutex
	shared   *Logger
)

// Get returns the shared process-wide Logger, creating it from path and
// verbose on first use. Later callers receive the same instance and their
// arguments are ignored, even when they differ. That first-caller-wins
// behavior is inherited from this tool's predecessor and is documented
// rather than "fixed": components that need distinct sinks must use New.
func Get(path string, verbose bool) (*Logger, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared != nil {
		return shared, nil
	}
	l, err := New(path, verbose)
	if err != nil {
		return nil, err
	}
	shared = l
	return shared, nil
}

// Path returns the log file path this Logger was created with.
func (l *Logger) Path() string { return l.path }

// Close flushes and closes the underlying file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

func (l *Logger) Debugf(format string, args ...any) { l.log.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.log.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.log.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.log.Errorf(format, args...) }

// Criticalf records a message at the critical level.
func (l *Logger) Criticalf(format string, args ...any) {
	l.log.Log(context.Background(), LevelCritical, fmt.Sprintf(format, args...))
}

// WorkerStart records a worker entering its take loop.
func (l *Logger) WorkerStart(workerID int) {
	l.log.Info("worker started", "worker", workerID)
}

// WorkerDone records a worker's final stats at shutdown.
func (l *Logger) WorkerDone(workerID int, elapsed time.Duration, items, matches int) {
	l.log.Info("worker completed",
		"worker", workerID,
		"elapsed", elapsed.Round(time.Millisecond).String(),
		"items", items,
		"matches", matches,
	)
}

// MatchFound records a successful digest comparison.
func (l *Logger) MatchFound(workerID int, original, digest string) {
	l.log.Info("match found", "worker", workerID, "original", original, "hash", digest)
}

// PipelineStats records the run-level summary. Throughput is only reported
// when elapsed is positive.
func (l *Logger) PipelineStats(elapsed time.Duration, items, matches int) {
	attrs := []any{
		"elapsed", elapsed.Round(time.Millisecond).String(),
		"items", items,
		"matches", matches,
	}
	if elapsed > 0 {
		attrs = append(attrs, "items_per_sec", fmt.Sprintf("%.2f", float64(items)/elapsed.Seconds()))
	}
	l.log.Info("pipeline completed", attrs...)
}
