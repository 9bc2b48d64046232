// Package queue implements the FIFO task channel between the orchestrator
// and the worker pool: unbounded submits, timeout-bounded takes, and a
// per-worker shutdown broadcast.
package queue

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

var (
	// ErrTimeout reports that Take waited the full timeout without a task.
	// It is distinct from any real task; callers loop and take again.
	ErrTimeout = errors.New("queue: no task available")

	// ErrClosed reports use of a queue after Close. A worker seeing this
	// exits defensively rather than looping forever.
	ErrClosed = errors.New("queue: closed")

	// ErrEmptyChunk rejects a chunk with no candidates. Empty chunks are
	// never valid work and would be indistinguishable from a bug upstream.
	ErrEmptyChunk = errors.New("queue: empty chunk")
)

// Queue is an unbounded FIFO of Tasks, safe for concurrent use. Tasks are
// delivered in submission order for a single producer; this pipeline has
// exactly one (the orchestrator).
type Queue struct {
	in  chan Task
	out chan Task

	size  atomic.Int64
	clock clockwork.Clock

	mu     sync.Mutex // guards closed + sends on in
	closed bool
}

// New returns a running Queue. A nil clock selects the real clock.
func New(clock clockwork.Clock) *Queue {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	q := &Queue{
		in:    make(chan Task),
		out:   make(chan Task),
		clock: clock,
	}
	go q.pump()
	return q
}

// pump shuttles tasks from in to out through an unbounded buffer, so Submit
// never blocks on slow consumers. When in closes, any tasks still buffered
// are dropped and out is closed: Close is called only after every worker
// has joined, so a buffered task at that point has no consumer left and
// waiting to deliver it would strand the pump forever.
func (q *Queue) pump() {
	var buf []Task
	for {
		var out chan Task
		var next Task
		if len(buf) > 0 {
			out = q.out
			next = buf[0]
		}
		select {
		case t, ok := <-q.in:
			if !ok {
				q.size.Store(0)
				close(q.out)
				return
			}
			buf = append(buf, t)
		case out <- next:
			buf = buf[1:]
		}
	}
}

// Submit enqueues a task. It never blocks for longer than the pump takes to
// accept the handoff (bounded only by memory). Submitting to a closed queue
// or submitting an empty chunk is an error.
func (q *Queue) Submit(t Task) error {
	if c, ok := t.(Chunk); ok && len(c.Values) == 0 {
		return ErrEmptyChunk
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	q.in <- t
	q.size.Add(1)
	return nil
}

// BroadcastShutdown enqueues k Shutdown markers, one per worker. Each
// worker consumes exactly one marker before ceasing.
func (q *Queue) BroadcastShutdown(k int) error {
	for i := 0; i < k; i++ {
		if err := q.Submit(Shutdown{}); err != nil {
			return err
		}
	}
	return nil
}

// Take blocks until a task is available or timeout elapses. A timeout
// returns ErrTimeout; a closed queue returns ErrClosed. A non-positive
// timeout polls without blocking.
func (q *Queue) Take(timeout time.Duration) (Task, error) {
	if timeout <= 0 {
		select {
		case t, ok := <-q.out:
			return q.took(t, ok)
		default:
			return nil, ErrTimeout
		}
	}
	select {
	case t, ok := <-q.out:
		return q.took(t, ok)
	case <-q.clock.After(timeout):
		return nil, ErrTimeout
	}
}

func (q *Queue) took(t Task, ok bool) (Task, error) {
	if !ok {
		return nil, ErrClosed
	}
	q.size.Add(-1)
	return t, nil
}

// Len returns a best-effort, eventually-consistent count of queued tasks.
// It is not safe for exact accounting under concurrent access.
func (q *Queue) Len() int {
	n := q.size.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

// Close stops the queue and releases the pump. Only the orchestrator calls
// this, after every worker has joined; tasks still queued at Close (a
// canceled run exits with work left) are dropped and subsequent takes
// report ErrClosed.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.in)
}
