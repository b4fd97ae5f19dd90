package ripple

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformSampler_StaysInRange(t *testing.T) {
	t.Parallel()

	lo, hi := 0.0, DefaultImpactAngle*2.01
	s := NewUniformSampler(lo, hi, 1)
	for i := 0; i < 10000; i++ {
		h := s.Rand()
		require.GreaterOrEqual(t, h, lo)
		require.LessOrEqual(t, h, hi)
	}
}

func TestUniformSampler_SeedReproducible(t *testing.T) {
	t.Parallel()

	a := NewUniformSampler(0, 1, 1234)
	b := NewUniformSampler(0, 1, 1234)
	c := NewUniformSampler(0, 1, 4321)

	same, differ := true, false
	for i := 0; i < 100; i++ {
		x, y, z := a.Rand(), b.Rand(), c.Rand()
		if x != y {
			same = false
		}
		if x != z {
			differ = true
		}
	}
	assert.True(t, same, "same seed produced different sequences")
	assert.True(t, differ, "different seeds produced the same sequence")
}

func TestSequenceSampler(t *testing.T) {
	t.Parallel()

	in := []float64{0.1, 0.2, 0.3}
	s := NewSequenceSampler(in...)
	in[0] = 9

	got := make([]float64, 7)
	for i := range got {
		got[i] = s.Rand()
	}
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.1, 0.2, 0.3, 0.1}, got)

	assert.Panics(t, func() { NewSequenceSampler() })
}

func TestRecordingSampler(t *testing.T) {
	t.Parallel()

	r := &RecordingSampler{Source: NewSequenceSampler(1, 2)}
	r.Rand()
	r.Rand()
	r.Rand()
	assert.Equal(t, []float64{1, 2, 1}, r.History)
}
