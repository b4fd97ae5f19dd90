package ripple

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/ripples/internal/testutil"
)

func TestNewField(t *testing.T) {
	t.Parallel()

	f := NewField(200, 0.01)
	require.Equal(t, 201, f.Len())
	assert.Equal(t, 200, f.Last())
	assert.Equal(t, 0.01, f.BinWidth())
	assert.Equal(t, 0.0, f.Position(0))
	assert.InDelta(t, 2.0, f.Position(200), 1e-12)
	for i := 0; i < f.Len(); i++ {
		assert.Zero(t, f.HeightAt(i), "cell %d", i)
	}
}

func TestNewFieldFromHeights_CopiesInput(t *testing.T) {
	t.Parallel()

	heights := []float64{1, 2, 3}
	f := NewFieldFromHeights(0.5, heights)
	heights[0] = 99

	assert.Equal(t, 1.0, f.HeightAt(0))
	assert.Equal(t, []float64{0, 0.5, 1}, f.Positions())
}

func TestField_ErodeDeposit(t *testing.T) {
	t.Parallel()

	f := NewField(4, 1)
	f.Erode(2, 0.25)
	f.Deposit(3, 0.25)

	assert.Equal(t, -0.25, f.HeightAt(2))
	assert.Equal(t, 0.25, f.HeightAt(3))

	// Erosion is not clamped at zero.
	f.Erode(2, 1)
	assert.Equal(t, -1.25, f.HeightAt(2))
}

func TestField_DownstreamOf(t *testing.T) {
	t.Parallel()

	f := NewField(200, 0.01)
	assert.Equal(t, 6, f.DownstreamOf(5))
	assert.Equal(t, 200, f.DownstreamOf(199))
	assert.Equal(t, 0, f.DownstreamOf(200), "deposit past the last cell wraps to cell 0")
}

func TestField_EnforcePeriodicBoundary(t *testing.T) {
	t.Parallel()

	f := NewFieldFromHeights(1, []float64{5, 1, 2, -3})
	f.EnforcePeriodicBoundary()

	assert.Equal(t, -3.0, f.HeightAt(0))
	assert.Equal(t, -3.0, f.HeightAt(3))
	assert.Equal(t, 1.0, f.HeightAt(1))
}

func TestField_Recenter(t *testing.T) {
	t.Parallel()

	f := NewFieldFromHeights(1, []float64{1, 2, 3, 6})
	mean := f.Recenter()

	assert.Equal(t, 3.0, mean)
	assert.Equal(t, []float64{-2, -1, 0, 3}, f.Snapshot())
	assert.InDelta(t, 0, f.Mean(), testutil.ProfileTolerance)
	assert.InDelta(t, 0, f.Sum(), testutil.ProfileTolerance)
}

func TestField_SnapshotIsIndependent(t *testing.T) {
	t.Parallel()

	f := NewFieldFromHeights(1, []float64{0.1, 0.2, 0.3})
	snap := f.Snapshot()
	want := []float64{0.1, 0.2, 0.3}

	f.Erode(1, 5)
	f.Recenter()
	assert.Empty(t, cmp.Diff(want, snap), "live mutation leaked into snapshot")

	snap[0] = 42
	assert.NotEqual(t, 42.0, f.HeightAt(0), "snapshot mutation leaked into field")
}

func TestField_OutOfRangePanics(t *testing.T) {
	t.Parallel()

	f := NewField(10, 0.1)
	assert.Panics(t, func() { f.HeightAt(-1) })
	assert.Panics(t, func() { f.HeightAt(11) })
	assert.Panics(t, func() { f.Erode(11, 1) })
	assert.Panics(t, func() { f.Deposit(-1, 1) })
	assert.NotPanics(t, func() { f.HeightAt(10) })
}

// Erosion and deposition move the same amount, so the raw sum is conserved
// before the boundary step in every case, including the wrap to cell 0. The
// boundary step then overwrites cell 0 with the last cell, which changes the
// sum whenever an event has touched either end; recentering absorbs that.
func TestField_MassConservation(t *testing.T) {
	t.Parallel()

	amount := DefaultParams().TransferAmount()

	t.Run("interior impact conserves the sum through the boundary step", func(t *testing.T) {
		t.Parallel()
		f := NewFieldFromHeights(0.01, testutil.Ramp(201, -0.01, 0.0001))
		f.EnforcePeriodicBoundary()
		before := f.Sum()

		f.Erode(5, amount)
		f.Deposit(f.DownstreamOf(5), amount)
		assert.InDelta(t, before, f.Sum(), 1e-15)

		f.EnforcePeriodicBoundary()
		assert.InDelta(t, before, f.Sum(), 1e-15)
	})

	t.Run("wrapped deposit conserves the sum until the boundary step", func(t *testing.T) {
		t.Parallel()
		f := NewField(200, 0.01)
		before := f.Sum()

		f.Erode(200, amount)
		dep := f.DownstreamOf(200)
		require.Equal(t, 0, dep)
		f.Deposit(dep, amount)
		assert.InDelta(t, before, f.Sum(), 1e-15)

		// cell 0 held +amount and is overwritten with the eroded last cell.
		f.EnforcePeriodicBoundary()
		assert.InDelta(t, before-2*amount, f.Sum(), 1e-15)
	})

	t.Run("deposit into the last cell changes the sum at the boundary step", func(t *testing.T) {
		t.Parallel()
		f := NewField(200, 0.01)

		f.Erode(199, amount)
		f.Deposit(f.DownstreamOf(199), amount)
		assert.InDelta(t, 0, f.Sum(), 1e-15)

		f.EnforcePeriodicBoundary()
		assert.InDelta(t, amount, f.Sum(), 1e-15)
	})
}
