// Package live serves the evolving ripple profile over HTTP while a run is
// in progress.
package live

import (
	"sync"
	"time"

	"github.com/banshee-data/ripples/internal/ripple"
	"github.com/banshee-data/ripples/internal/timeutil"
)

// Feed holds the most recent frame of a run. The simulator writes to it as a
// ripple.FrameSink and HTTP handlers read from it concurrently; the writer
// never waits on readers for longer than a pointer swap.
type Feed struct {
	mu      sync.RWMutex
	frame   *ripple.Frame
	frames  int
	updated time.Time
	result  *ripple.Result
	clock   timeutil.Clock
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return NewFeedWithClock(timeutil.RealClock{})
}

// NewFeedWithClock returns an empty feed that stamps frames with clock.
func NewFeedWithClock(clock timeutil.Clock) *Feed {
	return &Feed{clock: clock}
}

// RenderFrame implements ripple.FrameSink. The frame's profile is already a
// private copy, so it is stored as is.
func (f *Feed) RenderFrame(fr ripple.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frame = &fr
	f.frames++
	f.updated = f.clock.Now()
	return nil
}

// Latest returns the most recent frame, if any has been rendered.
func (f *Feed) Latest() (ripple.Frame, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.frame == nil {
		return ripple.Frame{}, false
	}
	return *f.frame, true
}

// Frames returns the number of frames received and the time of the last one.
func (f *Feed) Frames() (int, time.Time) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.frames, f.updated
}

// SetResult publishes the finished (or cancelled) run.
func (f *Feed) SetResult(res *ripple.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.result = res
}

// Result returns the published run result.
func (f *Feed) Result() (*ripple.Result, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.result, f.result != nil
}
