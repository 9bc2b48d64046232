package timing

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestStopwatch(t *testing.T) {
	clock := clockwork.NewFakeClock()
	sw := New(clock)

	if sw.Elapsed() != 0 {
		t.Error("elapsed before start should be zero")
	}

	sw.Start()
	clock.Advance(1500 * time.Millisecond)
	if got := sw.Elapsed(); got != 1500*time.Millisecond {
		t.Errorf("elapsed while running = %v", got)
	}

	clock.Advance(500 * time.Millisecond)
	if got := sw.Stop(); got != 2*time.Second {
		t.Errorf("stop = %v, want 2s", got)
	}

	// After stop, elapsed is frozen.
	clock.Advance(time.Hour)
	if got := sw.Elapsed(); got != 2*time.Second {
		t.Errorf("elapsed after stop = %v, want 2s", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{1500 * time.Millisecond, "1.50s"},
		{59 * time.Second, "59.00s"},
		{61 * time.Second, "1m 1.00s"},
		{exactly(1, 2, 3.5), "1h 2m 3.50s"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.in); got != c.want {
			t.Errorf("format(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func exactly(h, m int, s float64) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s*float64(time.Second))
}
