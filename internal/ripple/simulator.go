package ripple

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/ripples/internal/monitoring"
)

// FrameSink receives the profile at the render cadence. Each sink gets its
// own copy of the profile. An error is logged and does not stop the run.
type FrameSink interface {
	RenderFrame(Frame) error
}

// FrameSinkFunc adapts a function to FrameSink.
type FrameSinkFunc func(Frame) error

// RenderFrame calls f.
func (f FrameSinkFunc) RenderFrame(fr Frame) error {
	return f(fr)
}

// EventOutcome describes one impact event.
type EventOutcome struct {
	Impacts      int     // impact count after the event
	LaunchHeight float64 // sampled launch height
	Resolved     bool    // false when the grain cleared the whole bed
	ImpactCell   int     // eroded cell, -1 when unresolved
	DepositCell  int     // receiving cell, -1 when unresolved
	Wrapped      bool    // deposit wrapped from the last cell to cell 0
	Rendered     bool    // a frame was pushed to the sinks
	Saved        bool    // a snapshot was captured
}

// Stats counts event outcomes over a run.
type Stats struct {
	Events   int
	Resolved int
	Skipped  int
	Wrapped  int
	Frames   int
}

// Result is what a completed (or cancelled) run hands back to the caller.
type Result struct {
	RunID     string
	Params    Params
	Positions []float64
	Profile   []float64
	Snapshots []Snapshot
	Stats     Stats
	Elapsed   time.Duration
}

// Simulator fires grains at a Field. It is not safe for concurrent use;
// collaborators observe the profile through frames, snapshots, or between
// calls to Step.
type Simulator struct {
	params        Params
	field         *Field
	sampler       HeightSampler
	amount        float64
	impacts       int
	snapshots     *SnapshotBuffer
	sinks         []FrameSink
	stats         Stats
	progressEvery int
	positions     []float64
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithSampler replaces the default uniform launch-height sampler.
func WithSampler(s HeightSampler) Option {
	return func(sim *Simulator) {
		sim.sampler = s
	}
}

// WithSeed seeds the default uniform sampler. Ignored when WithSampler is
// also given.
func WithSeed(seed uint64) Option {
	return func(sim *Simulator) {
		if sim.sampler != nil {
			return
		}
		lo, hi := LaunchRange(sim.field, sim.params.ImpactAngle)
		sim.sampler = NewUniformSampler(lo, hi, seed)
	}
}

// WithFrameSink registers a render collaborator.
func WithFrameSink(s FrameSink) Option {
	return func(sim *Simulator) {
		if s != nil {
			sim.sinks = append(sim.sinks, s)
		}
	}
}

// WithProgressEvery logs run progress every n impacts. Zero disables it.
func WithProgressEvery(n int) Option {
	return func(sim *Simulator) {
		sim.progressEvery = n
	}
}

// NewSimulator validates p and returns a simulator over a flat field. The
// flat profile is captured as the snapshot at impact count 0.
func NewSimulator(p Params, opts ...Option) (*Simulator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return newSimulator(p, NewField(p.NBins, p.BinWidth), opts...)
}

// NewSimulatorWithField is NewSimulator over an existing field, for runs that
// start from a non-flat bed. The field must have p.NBins+1 cells and is owned
// by the simulator afterwards.
func NewSimulatorWithField(p Params, f *Field, opts ...Option) (*Simulator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if f == nil || f.Len() != p.NBins+1 {
		return nil, fmt.Errorf("%w: field must have n_bins+1 = %d cells", ErrInvalidParams, p.NBins+1)
	}
	return newSimulator(p, f, opts...)
}

func newSimulator(p Params, f *Field, opts ...Option) (*Simulator, error) {
	sim := &Simulator{
		params:    p,
		field:     f,
		amount:    p.TransferAmount(),
		snapshots: NewSnapshotBuffer(p.SnapshotSlots()),
		positions: f.Positions(),
	}
	for _, opt := range opts {
		opt(sim)
	}
	if sim.sampler == nil {
		lo, hi := LaunchRange(f, p.ImpactAngle)
		sim.sampler = NewUniformSampler(lo, hi, uint64(time.Now().UnixNano()))
	}
	sim.snapshots.Capture(0, f.heights)
	return sim, nil
}

// Params returns the run parameters.
func (s *Simulator) Params() Params {
	return s.params
}

// Field returns the live field. Callers must only read it between events.
func (s *Simulator) Field() *Field {
	return s.field
}

// Impacts returns the number of events fired so far.
func (s *Simulator) Impacts() int {
	return s.impacts
}

// Done reports whether the full run of NGrainsFired+1 events has been fired.
func (s *Simulator) Done() bool {
	return s.impacts >= s.params.TotalEvents()
}

// Profile returns a copy of the current profile.
func (s *Simulator) Profile() []float64 {
	return s.field.Snapshot()
}

// Snapshots returns copies of the snapshots captured so far.
func (s *Simulator) Snapshots() []Snapshot {
	return s.snapshots.Snapshots()
}

// Stats returns the event counters.
func (s *Simulator) Stats() Stats {
	return s.stats
}

// Step fires one grain with a sampled launch height.
func (s *Simulator) Step() EventOutcome {
	return s.ApplyLaunch(s.sampler.Rand())
}

// ApplyLaunch fires one grain from launchHeight. The profile is only exposed
// to sinks and snapshots after the boundary and recentering steps.
func (s *Simulator) ApplyLaunch(launchHeight float64) EventOutcome {
	s.impacts++
	s.stats.Events++
	out := EventOutcome{
		Impacts:      s.impacts,
		LaunchHeight: launchHeight,
		ImpactCell:   -1,
		DepositCell:  -1,
	}

	traj := NewTrajectory(launchHeight, s.params.ImpactAngle)
	if cell, ok := ResolveImpact(s.field, traj); ok {
		dep := s.field.DownstreamOf(cell)
		s.field.Erode(cell, s.amount)
		s.field.Deposit(dep, s.amount)
		s.field.EnforcePeriodicBoundary()
		s.field.Recenter()

		out.Resolved = true
		out.ImpactCell = cell
		out.DepositCell = dep
		out.Wrapped = dep < cell
		s.stats.Resolved++
		if out.Wrapped {
			s.stats.Wrapped++
		}
	} else {
		s.stats.Skipped++
	}

	if s.impacts%s.params.PlotEvery == 0 {
		s.publish()
		out.Rendered = true
	}
	if s.impacts%s.params.SaveEvery == 0 {
		out.Saved = s.snapshots.Capture(s.impacts, s.field.heights)
	}
	return out
}

func (s *Simulator) publish() {
	s.stats.Frames++
	for _, sink := range s.sinks {
		fr := Frame{
			Impacts:   s.impacts,
			Positions: s.positions,
			Profile:   s.field.Snapshot(),
		}
		if err := sink.RenderFrame(fr); err != nil {
			monitoring.Logf("ripple: frame %d: render failed: %v", s.impacts, err)
		}
	}
}

// Run fires the remaining events of the run. ctx is checked between events;
// on cancellation the partial result is returned with ctx.Err().
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	total := s.params.TotalEvents()
	progress := monitoring.NewProgress("ripple run "+runID[:8], total, s.progressEvery)
	monitoring.Logf("ripple run %s: %d impacts over %d cells (transfer %.3g m)",
		runID, total, s.field.Len(), s.amount)

	for !s.Done() {
		select {
		case <-ctx.Done():
			monitoring.Logf("ripple run %s: cancelled after %d impacts", runID, s.impacts)
			return s.result(runID, progress.Elapsed()), ctx.Err()
		default:
		}
		s.Step()
		if s.progressEvery > 0 {
			progress.Observe(s.impacts)
		}
	}

	res := s.result(runID, progress.Elapsed())
	monitoring.Logf("ripple run %s: done in %s (%d resolved, %d skipped, %d wrapped)",
		runID, res.Elapsed.Round(time.Millisecond), s.stats.Resolved, s.stats.Skipped, s.stats.Wrapped)
	return res, nil
}

func (s *Simulator) result(runID string, elapsed time.Duration) *Result {
	return &Result{
		RunID:     runID,
		Params:    s.params,
		Positions: s.field.Positions(),
		Profile:   s.field.Snapshot(),
		Snapshots: s.snapshots.Snapshots(),
		Stats:     s.stats,
		Elapsed:   elapsed,
	}
}
