package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"hashcrack-core/chunker"
	"hashcrack-core/hasher"
	"hashcrack-core/wordlist"
	"hashcrack/internal/collector"
	"hashcrack/internal/config"
	"hashcrack/internal/logging"
	"hashcrack/internal/pool"
	"hashcrack/internal/queue"
	"hashcrack/internal/store"
	"hashcrack/internal/timing"
	"hashcrack/pkg/api"
)

// Options wires a run. Clock and TakeTimeout exist for tests; zero values
// select the real clock and the pool default.
type Options struct {
	Config      config.Config
	Log         *logging.Logger
	Clock       clockwork.Clock
	TakeTimeout time.Duration
}

// Result is the full accounting of one run. PersistErr is a distinct
// outcome from processing success: a run that processed everything but
// failed to write its artifact still reports its matches here.
type Result struct {
	RunID         string
	Report        api.ReportV1
	WordlistStats wordlist.Stats
	WorkerStats   []pool.Stats
	Items         int
	Matches       int
	Elapsed       time.Duration
	PersistErr    error
}

// Run executes the pipeline end to end. The returned error covers
// setup-time and channel-fatal failures (including cancellation); local
// per-record and per-candidate failures are logged, counted, and swallowed.
func Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.Config
	log := opts.Log
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	alg, err := hasher.ParseAlgorithm(cfg.Hash.Algorithm)
	if err != nil {
		return nil, err
	}
	dig, err := hasher.New(hasher.Config{
		Algorithm:  alg,
		Iterations: cfg.Hash.Iterations,
		SaltLength: cfg.Hash.SaltLength,
	})
	if err != nil {
		return nil, err
	}

	words, wstats, err := wordlist.ReadFile(cfg.Input.CSVPath, wordlist.Options{Delimiter: cfg.DelimiterRune()})
	if err != nil {
		return nil, err
	}
	if wstats.Skipped > 0 {
		log.Warnf("skipped %d invalid records from %s", wstats.Skipped, cfg.Input.CSVPath)
	}

	runID := uuid.NewString()
	log.Infof("run %s: %d candidates, %d workers, chunk size %d, algorithm %s",
		runID, len(words), cfg.General.WorkerCount, cfg.General.ChunkSize, alg)

	sw := timing.New(clock)
	sw.Start()

	q := queue.New(clock)
	defer q.Close()
	results := store.New()

	workers, err := pool.New(pool.Config{
		Workers:     cfg.General.WorkerCount,
		Target:      cfg.Hash.Target,
		Hasher:      dig,
		Queue:       q,
		Store:       results,
		Log:         log,
		TakeTimeout: opts.TakeTimeout,
	})
	if err != nil {
		return nil, err
	}
	if err := workers.Start(ctx); err != nil {
		return nil, err
	}

	// Feed every chunk, then exactly one shutdown marker per worker. The
	// markers queue behind all real work, so a worker can never exit with
	// chunks still undelivered.
	submitErr := chunker.ForEach(words, cfg.General.ChunkSize, func(c []string) error {
		return q.Submit(queue.Chunk{Values: c})
	})
	if submitErr != nil {
		log.Errorf("run %s: submitting chunks: %v", runID, submitErr)
	}
	if err := workers.Drain(); err != nil {
		return nil, fmt.Errorf("drain pool: %w", err)
	}

	wstatsPool, waitErr := workers.Wait()

	res := &Result{
		RunID:         runID,
		WordlistStats: wstats,
		WorkerStats:   wstatsPool,
	}
	for _, st := range wstatsPool {
		res.Items += st.Items
		res.Matches += st.Matches
	}

	// The collector runs strictly after every worker has terminated. A run
	// that failed in flight still reports what it found, but never writes
	// the artifact.
	if waitErr == nil {
		res.Report, res.PersistErr = collector.Run(results, cfg.Output.ResultsPath, log)
	} else {
		res.Report = collector.Collect(results)
	}

	res.Elapsed = sw.Stop()
	log.PipelineStats(res.Elapsed, res.Items, res.Matches)

	if submitErr != nil {
		return res, fmt.Errorf("submit chunks: %w", submitErr)
	}
	if waitErr != nil {
		return res, waitErr
	}
	return res, nil
}
