// Package pool runs the parallel workers that hash candidates and record
// matches. The pool is a supervised component with explicit lifecycle
// states; the orchestrator advances to collection only after Wait reports
// every worker terminated.
package pool

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"hashcrack-core/hasher"
	"hashcrack/internal/logging"
	"hashcrack/internal/queue"
	"hashcrack/internal/store"
)

// State is the pool lifecycle: Idle until Start, Running while workers
// consume tasks, Draining once shutdown markers are broadcast, Terminated
// after every worker has joined.
type State int32

const (
	Idle State = iota
	Running
	Draining
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Draining:
		return "draining"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Digester is the minimal hashing capability the pool needs. Any hasher
// (including fakes in tests) can satisfy it.
type Digester interface {
	Sum(value string) (string, error)
	Algorithm() hasher.Algorithm
}

// Stats is one worker's final accounting, produced once at shutdown.
type Stats struct {
	WorkerID int
	Items    int
	Matches  int
	Elapsed  time.Duration
}

// DefaultTakeTimeout bounds a worker's blocking take so idle workers can
// periodically recheck for cancellation.
const DefaultTakeTimeout = 5 * time.Second

// Config wires a pool to its collaborators.
type Config struct {
	Workers     int
	Target      string // target digest; normalized internally
	Hasher      Digester
	Queue       *queue.Queue
	Store       *store.Store
	Log         *logging.Logger
	TakeTimeout time.Duration // defaults to DefaultTakeTimeout
}

// Pool supervises N workers racing over the shared queue.
type Pool struct {
	cfg    Config
	target string
	state  atomic.Int32

	eg    *errgroup.Group
	stats []Stats
}

// New validates cfg and returns an Idle pool.
func New(cfg Config) (*Pool, error) {
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("pool: worker count must be >= 1, got %d", cfg.Workers)
	}
	if cfg.Hasher == nil || cfg.Queue == nil || cfg.Store == nil || cfg.Log == nil {
		return nil, errors.New("pool: hasher, queue, store, and log are all required")
	}
	if cfg.TakeTimeout <= 0 {
		cfg.TakeTimeout = DefaultTakeTimeout
	}
	return &Pool{
		cfg:    cfg,
		target: hasher.NormalizeDigest(cfg.Target),
		stats:  make([]Stats, cfg.Workers),
	}, nil
}

// State reports the current lifecycle state.
func (p *Pool) State() State { return State(p.state.Load()) }

// Start launches the workers. It is an error to start a pool twice.
func (p *Pool) Start(ctx context.Context) error {
	if !p.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return fmt.Errorf("pool: start in state %s", p.State())
	}
	p.eg = &errgroup.Group{}
	for i := 0; i < p.cfg.Workers; i++ {
		p.eg.Go(func() error {
			return p.worker(ctx, i)
		})
	}
	return nil
}

// Drain broadcasts one shutdown marker per worker. Every chunk must already
// be submitted: markers queue behind real work, so no chunk is lost to an
// early exit.
func (p *Pool) Drain() error {
	if !p.state.CompareAndSwap(int32(Running), int32(Draining)) {
		return fmt.Errorf("pool: drain in state %s", p.State())
	}
	return p.cfg.Queue.BroadcastShutdown(p.cfg.Workers)
}

// Wait blocks until every worker has exited and returns their stats. The
// error is the first channel-fatal or cancellation failure, if any;
// per-candidate failures never surface here.
func (p *Pool) Wait() ([]Stats, error) {
	err := p.eg.Wait()
	p.state.Store(int32(Terminated))
	out := make([]Stats, len(p.stats))
	copy(out, p.stats)
	return out, err
}

// worker is the hot loop: take with a bounded timeout, retry on timeout,
// exit on a shutdown marker, hash and compare everything else. Cancellation
// is checked between tasks so a canceled run abandons queued work.
func (p *Pool) worker(ctx context.Context, id int) error {
	log := p.cfg.Log
	log.WorkerStart(id)

	started := time.Now()
	var st Stats
	st.WorkerID = id

	defer func() {
		st.Elapsed = time.Since(started)
		p.stats[id] = st
		log.WorkerDone(id, st.Elapsed, st.Items, st.Matches)
	}()

	for {
		if err := ctx.Err(); err != nil {
			log.Infof("worker %d canceled", id)
			return err
		}
		task, err := p.cfg.Queue.Take(p.cfg.TakeTimeout)
		switch {
		case errors.Is(err, queue.ErrTimeout):
			if ctx.Err() != nil {
				log.Infof("worker %d canceled while idle", id)
				return ctx.Err()
			}
			continue
		case err != nil:
			// Channel failure: exit defensively rather than loop forever.
			log.Errorf("worker %d queue failure: %v", id, err)
			return fmt.Errorf("worker %d: %w", id, err)
		}

		switch t := task.(type) {
		case queue.Shutdown:
			log.Debugf("worker %d received shutdown marker", id)
			return nil
		case queue.Chunk:
			p.processChunk(id, t.Values, &st)
		default:
			log.Errorf("worker %d received unknown task %T", id, task)
			return fmt.Errorf("worker %d: unknown task type %T", id, task)
		}
	}
}

// processChunk hashes every candidate in the chunk. A single bad candidate
// is logged and skipped; it never aborts the chunk or the worker. The
// worker keeps scanning after a match: multiple simultaneous matches are
// supported and there is no early global termination.
func (p *Pool) processChunk(id int, values []string, st *Stats) {
	for _, candidate := range values {
		digest, err := p.cfg.Hasher.Sum(candidate)
		if err != nil {
			p.cfg.Log.Errorf("worker %d error hashing %q: %v", id, candidate, err)
			continue
		}
		st.Items++

		if p.target == "" || hasher.NormalizeDigest(digest) != p.target {
			continue
		}
		seq := st.Matches + 1
		m := store.Match{
			WorkerID:  id,
			Original:  candidate,
			Hash:      digest,
			Algorithm: string(p.cfg.Hasher.Algorithm()),
			Sequence:  seq,
		}
		if err := p.cfg.Store.Insert(store.Key(id, seq), m); err != nil {
			// Keys embed worker id + sequence; a collision is a bug, not a race.
			p.cfg.Log.Errorf("worker %d store insert: %v", id, err)
			continue
		}
		// Count the match only once it is durably recorded, so the store's
		// final size always equals the sum of worker match counters.
		st.Matches = seq
		p.cfg.Log.MatchFound(id, candidate, digest)
	}
}
