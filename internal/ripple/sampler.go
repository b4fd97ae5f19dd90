package ripple

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// HeightSampler draws launch heights. distuv.Uniform satisfies it.
type HeightSampler interface {
	Rand() float64
}

// NewUniformSampler returns a uniform launch-height distribution over
// [min, max] driven by a PCG source seeded with seed.
func NewUniformSampler(min, max float64, seed uint64) distuv.Uniform {
	return distuv.Uniform{
		Min: min,
		Max: max,
		Src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}
}

// SequenceSampler replays a fixed list of launch heights, starting over
// when the list is exhausted. It makes runs reproducible in tests and
// replays.
type SequenceSampler struct {
	heights []float64
	next    int
}

// NewSequenceSampler returns a sampler over a copy of heights. It panics if
// heights is empty.
func NewSequenceSampler(heights ...float64) *SequenceSampler {
	if len(heights) == 0 {
		panic("ripple: sequence sampler needs at least one height")
	}
	hs := make([]float64, len(heights))
	copy(hs, heights)
	return &SequenceSampler{heights: hs}
}

// Rand returns the next height in the sequence.
func (s *SequenceSampler) Rand() float64 {
	h := s.heights[s.next]
	s.next = (s.next + 1) % len(s.heights)
	return h
}

// RecordingSampler wraps another sampler and keeps every height it returns,
// so a random run can be replayed exactly with a SequenceSampler.
type RecordingSampler struct {
	Source  HeightSampler
	History []float64
}

// Rand draws from Source and records the value.
func (r *RecordingSampler) Rand() float64 {
	h := r.Source.Rand()
	r.History = append(r.History, h)
	return h
}
