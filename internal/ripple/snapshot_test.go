package ripple

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotBuffer_CaptureCopies(t *testing.T) {
	t.Parallel()

	b := NewSnapshotBuffer(2)
	profile := []float64{1, 2, 3}
	require.True(t, b.Capture(0, profile))

	profile[1] = -7
	snaps := b.Snapshots()
	require.Len(t, snaps, 1)
	assert.Equal(t, []float64{1, 2, 3}, snaps[0].Profile)
	assert.Equal(t, 0, snaps[0].Impacts)
}

func TestSnapshotBuffer_FixedCapacity(t *testing.T) {
	t.Parallel()

	b := NewSnapshotBuffer(2)
	assert.Equal(t, 2, b.Cap())
	assert.True(t, b.Capture(0, []float64{0}))
	assert.True(t, b.Capture(5000, []float64{1}))
	assert.False(t, b.Capture(10000, []float64{2}), "write past the last slot")
	assert.Equal(t, 2, b.Len())

	snaps := b.Snapshots()
	assert.Equal(t, 5000, snaps[1].Impacts)
	assert.Equal(t, []float64{1}, snaps[1].Profile)
}

func TestSnapshotBuffer_ReturnedSlotsAreCopies(t *testing.T) {
	t.Parallel()

	b := NewSnapshotBuffer(1)
	b.Capture(0, []float64{0.5})
	b.Snapshots()[0].Profile[0] = 100
	assert.Equal(t, 0.5, b.Snapshots()[0].Profile[0])
}
