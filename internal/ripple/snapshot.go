package ripple

// Snapshot is a profile retained at a given impact count.
type Snapshot struct {
	Impacts int
	Profile []float64
}

// Frame is a profile handed to a render collaborator. Positions is shared
// between frames of one run and must not be modified.
type Frame struct {
	Impacts   int
	Positions []float64
	Profile   []float64
}

// SnapshotBuffer is a fixed number of write-once slots. Every slot holds its
// own copy of the profile.
type SnapshotBuffer struct {
	slots []Snapshot
	used  int
}

// NewSnapshotBuffer returns an empty buffer with the given number of slots.
func NewSnapshotBuffer(capacity int) *SnapshotBuffer {
	return &SnapshotBuffer{slots: make([]Snapshot, capacity)}
}

// Capture copies profile into the next free slot. It returns false, and
// stores nothing, once every slot has been written.
func (b *SnapshotBuffer) Capture(impacts int, profile []float64) bool {
	if b.used >= len(b.slots) {
		return false
	}
	p := make([]float64, len(profile))
	copy(p, profile)
	b.slots[b.used] = Snapshot{Impacts: impacts, Profile: p}
	b.used++
	return true
}

// Len returns the number of slots written so far.
func (b *SnapshotBuffer) Len() int {
	return b.used
}

// Cap returns the total number of slots.
func (b *SnapshotBuffer) Cap() int {
	return len(b.slots)
}

// Snapshots returns copies of the written slots in capture order.
func (b *SnapshotBuffer) Snapshots() []Snapshot {
	out := make([]Snapshot, b.used)
	for i := 0; i < b.used; i++ {
		p := make([]float64, len(b.slots[i].Profile))
		copy(p, b.slots[i].Profile)
		out[i] = Snapshot{Impacts: b.slots[i].Impacts, Profile: p}
	}
	return out
}
