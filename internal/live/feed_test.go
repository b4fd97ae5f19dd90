package live

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/ripples/internal/ripple"
	"github.com/banshee-data/ripples/internal/timeutil"
)

func TestFeed_Latest(t *testing.T) {
	t.Parallel()

	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f := NewFeedWithClock(timeutil.NewManualClock(stamp))
	_, ok := f.Latest()
	assert.False(t, ok)

	require.NoError(t, f.RenderFrame(ripple.Frame{Impacts: 500, Profile: []float64{0.1}}))
	require.NoError(t, f.RenderFrame(ripple.Frame{Impacts: 1000, Profile: []float64{0.2}}))

	fr, ok := f.Latest()
	require.True(t, ok)
	assert.Equal(t, 1000, fr.Impacts)
	assert.Equal(t, []float64{0.2}, fr.Profile)

	n, updated := f.Frames()
	assert.Equal(t, 2, n)
	assert.Equal(t, stamp, updated)
}

func TestFeed_Result(t *testing.T) {
	t.Parallel()

	f := NewFeed()
	_, ok := f.Result()
	assert.False(t, ok)

	f.SetResult(&ripple.Result{RunID: "abc"})
	res, ok := f.Result()
	require.True(t, ok)
	assert.Equal(t, "abc", res.RunID)
}

// Run with -race: the simulator writes while handlers read.
func TestFeed_ConcurrentReaders(t *testing.T) {
	t.Parallel()

	p := ripple.DefaultParams()
	p.NGrainsFired = 5000
	p.PlotEvery = 10

	f := NewFeed()
	sim, err := ripple.NewSimulator(p, ripple.WithSeed(3), ripple.WithFrameSink(f))
	require.NoError(t, err)

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				if fr, ok := f.Latest(); ok {
					assert.Len(t, fr.Profile, p.NBins+1)
				}
			}
		}()
	}

	for !sim.Done() {
		sim.Step()
	}
	close(done)
	wg.Wait()

	n, _ := f.Frames()
	assert.Equal(t, 500, n)
}
