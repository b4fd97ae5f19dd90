package monitoring

import (
	"time"

	"github.com/banshee-data/ripples/internal/timeutil"
)

// Progress logs throughput of a long loop at a fixed cadence.
type Progress struct {
	label string
	total int
	every int
	start time.Time
	clock timeutil.Clock
}

// NewProgress starts a reporter for a loop of total iterations that logs every
// `every` iterations and on the last one. every <= 0 only logs completion.
func NewProgress(label string, total, every int) *Progress {
	return NewProgressWithClock(label, total, every, timeutil.RealClock{})
}

// NewProgressWithClock is NewProgress timed by clock.
func NewProgressWithClock(label string, total, every int, clock timeutil.Clock) *Progress {
	return &Progress{
		label: label,
		total: total,
		every: every,
		start: clock.Now(),
		clock: clock,
	}
}

// Observe records that done iterations have completed and logs when done hits
// the cadence. It reports whether a line was logged.
func (p *Progress) Observe(done int) bool {
	if done != p.total && (p.every <= 0 || done%p.every != 0) {
		return false
	}
	Logf("%s: %d/%d (%.0f/s)", p.label, done, p.total, p.Rate(done))
	return true
}

// Rate returns iterations per second since the reporter started.
func (p *Progress) Rate(done int) float64 {
	elapsed := p.Elapsed().Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(done) / elapsed
}

// Elapsed returns the time since the reporter started.
func (p *Progress) Elapsed() time.Duration {
	return p.clock.Since(p.start)
}
