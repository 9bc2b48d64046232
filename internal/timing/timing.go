// Package timing provides a small stopwatch and duration formatting for
// run summaries.
package timing

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// Stopwatch measures elapsed wall time. The zero value is not usable; call
// New. Clock injection keeps tests off the real clock.
type Stopwatch struct {
	clock   clockwork.Clock
	started time.Time
	stopped time.Time
	running bool
}

// New returns a Stopwatch on the given clock. Pass clockwork.NewRealClock()
// outside tests.
func New(clock clockwork.Clock) *Stopwatch {
	return &Stopwatch{clock: clock}
}

// Start begins (or restarts) the measurement.
func (s *Stopwatch) Start() {
	s.started = s.clock.Now()
	s.running = true
}

// Stop ends the measurement and returns the elapsed duration.
func (s *Stopwatch) Stop() time.Duration {
	s.stopped = s.clock.Now()
	s.running = false
	return s.stopped.Sub(s.started)
}

// Elapsed returns the duration measured so far without stopping. Before
// Start it returns zero.
func (s *Stopwatch) Elapsed() time.Duration {
	if s.started.IsZero() {
		return 0
	}
	if s.running {
		return s.clock.Now().Sub(s.started)
	}
	return s.stopped.Sub(s.started)
}

// FormatDuration renders d for human-facing summaries: "12.34s",
// "2m 3.50s", or "1h 2m 3.00s".
func FormatDuration(d time.Duration) string {
	secs := d.Seconds()
	switch {
	case secs < 60:
		return fmt.Sprintf("%.2fs", secs)
	case secs < 3600:
		m := int(secs) / 60
		return fmt.Sprintf("%dm %.2fs", m, secs-float64(m*60))
	default:
		h := int(secs) / 3600
		m := (int(secs) % 3600) / 60
		return fmt.Sprintf("%dh %dm %.2fs", h, m, secs-float64(h*3600)-float64(m*60))
	}
}
